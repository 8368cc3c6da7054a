package persist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vlite/pkg/store"
)

type item struct {
	Text string `json:"text"`
	ID   int    `json:"id"`
}

type todoState struct {
	Items  []item `json:"todoItems"`
	NextID int    `json:"nextItemId"`
}

func TestLoadMissingKeyReturnsDefaults(t *testing.T) {
	defaults := todoState{Items: []item{}, NextID: 0}
	got, err := Load(context.Background(), NewMemory(), "todoApp", defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, got)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "todoApp", []byte(`{"nextItemId":7}`)))

	defaults := todoState{Items: []item{{Text: "seed", ID: 1}}}
	got, err := Load(ctx, kv, "todoApp", defaults)
	require.NoError(t, err)
	assert.Equal(t, 7, got.NextID)
	assert.Equal(t, []item{{Text: "seed", ID: 1}}, got.Items)

	got.Items[0].Text = "changed"
	assert.Equal(t, "seed", defaults.Items[0].Text, "defaults must not share memory with the result")
}

func TestLoadCorruptData(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "todoApp", []byte(`{not json`)))

	defaults := todoState{NextID: 3}
	got, err := Load(ctx, kv, "todoApp", defaults)
	assert.Error(t, err)
	assert.Equal(t, defaults, got)
}

func TestBindSavesEveryTransition(t *testing.T) {
	kv := NewMemory()
	st := store.New(todoState{})
	obs := &persistRecorder{}
	b := Bind(st, kv, "todoApp", WithObserver(obs), WithBackendName("memory"))

	st.Execute(func(s todoState) todoState {
		return todoState{Items: append(append([]item(nil), s.Items...), item{"Rice", 1}), NextID: 1}
	})
	st.Execute(func(s todoState) todoState {
		return todoState{Items: append(append([]item(nil), s.Items...), item{"Bread", 2}), NextID: 2}
	})

	assert.Equal(t, uint64(2), b.Saves())
	assert.Equal(t, []string{"memory", "memory"}, obs.backends)

	data, err := kv.Get(context.Background(), "todoApp")
	require.NoError(t, err)
	assert.JSONEq(t, `{"todoItems":[{"text":"Rice","id":1},{"text":"Bread","id":2}],"nextItemId":2}`, string(data))

	restored, err := Load(context.Background(), kv, "todoApp", todoState{})
	require.NoError(t, err)
	assert.Equal(t, st.GetState(), restored)
}

type failingKV struct{ *Memory }

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestBindFailureIsContained(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	st := store.New(0)
	b := Bind(st, failingKV{NewMemory()}, "n", WithLogger(logger))
	after := 0
	st.Subscribe(func(int) { after++ })

	st.Execute(func(s int) int { return s + 1 })

	assert.Equal(t, 1, st.GetState())
	assert.Equal(t, 1, after, "later subscribers must still run")
	assert.Equal(t, uint64(1), b.Failures())
	assert.Contains(t, buf.String(), "save state failed")
	assert.Contains(t, buf.String(), "disk full")
}

type persistRecorder struct {
	backends []string
	errs     []error
}

func (r *persistRecorder) ObservePersist(backend string, err error) {
	r.backends = append(r.backends, backend)
	r.errs = append(r.errs, err)
}
