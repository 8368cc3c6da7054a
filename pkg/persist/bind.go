package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vango-dev/vlite/pkg/store"
)

// DefaultTimeout bounds each write made by a Binding.
const DefaultTimeout = 5 * time.Second

// Load returns the state stored under key decoded over a copy of
// defaults, so fields missing from the stored JSON keep their default. A
// missing key returns defaults and no error.
func Load[S any](ctx context.Context, kv KV, key string, defaults S) (S, error) {
	out, err := clone(defaults)
	if err != nil {
		return defaults, err
	}
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return defaults, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return defaults, fmt.Errorf("persist: decode %s: %w", key, err)
	}
	return out, nil
}

// clone deep-copies v through JSON so decoding over the copy cannot touch
// slices or maps shared with v.
func clone[S any](v S) (S, error) {
	var out S
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("persist: encode defaults: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("persist: copy defaults: %w", err)
	}
	return out, nil
}

// Observer receives the outcome of every write.
type Observer interface {
	ObservePersist(backend string, err error)
}

// Binding writes a store's state to a KV after every transition.
type Binding struct {
	kv      KV
	key     string
	backend string
	timeout time.Duration
	logger  *slog.Logger
	obs     Observer

	saves    atomic.Uint64
	failures atomic.Uint64
}

// BindOption configures a Binding.
type BindOption func(*Binding)

// WithLogger sets the logger for write failures.
func WithLogger(logger *slog.Logger) BindOption {
	return func(b *Binding) {
		b.logger = logger
	}
}

// WithTimeout bounds each write.
func WithTimeout(d time.Duration) BindOption {
	return func(b *Binding) {
		b.timeout = d
	}
}

// WithObserver sets the write observer (typically metrics).
func WithObserver(obs Observer) BindOption {
	return func(b *Binding) {
		b.obs = obs
	}
}

// WithBackendName labels the backend in logs and metrics.
func WithBackendName(name string) BindOption {
	return func(b *Binding) {
		b.backend = name
	}
}

// Bind subscribes a writer for key to st. Write failures are logged and
// counted; they never reach the store or its other subscribers.
func Bind[S any](st *store.Store[S], kv KV, key string, opts ...BindOption) *Binding {
	b := &Binding{
		kv:      kv,
		key:     key,
		backend: "kv",
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.logger = b.logger.With("key", key, "backend", b.backend)

	st.Subscribe(func(s S) {
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()
		if err := b.Save(ctx, s); err != nil {
			b.logger.Error("save state failed", "error", err)
		}
	})
	return b
}

// Save encodes v and writes it under the binding's key.
func (b *Binding) Save(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err == nil {
		err = b.kv.Set(ctx, b.key, data)
	}
	if b.obs != nil {
		b.obs.ObservePersist(b.backend, err)
	}
	if err != nil {
		b.failures.Add(1)
		return err
	}
	b.saves.Add(1)
	return nil
}

// Saves returns the number of successful writes.
func (b *Binding) Saves() uint64 {
	return b.saves.Load()
}

// Failures returns the number of failed writes.
func (b *Binding) Failures() uint64 {
	return b.failures.Load()
}
