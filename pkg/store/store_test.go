package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type todoState struct {
	Items  []string
	NextID int
}

func TestGetStateInitial(t *testing.T) {
	st := New(todoState{NextID: 1})
	if got := st.GetState(); got.NextID != 1 || got.Items != nil {
		t.Errorf("GetState() = %+v", got)
	}
	if st.Name() != "default" {
		t.Errorf("Name() = %q, want default", st.Name())
	}
}

func TestExecuteNotifiesInOrder(t *testing.T) {
	st := New(0)
	var calls []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		st.Subscribe(func(s int) { calls = append(calls, fmt.Sprintf("%s:%d", name, s)) })
	}
	st.Subscribe(nil)

	st.Execute(func(s int) int { return s + 1 })
	st.Execute(func(s int) int { return s * 10 })

	want := []string{"a:1", "b:1", "c:1", "a:10", "b:10", "c:10"}
	if fmt.Sprint(calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if st.GetState() != 10 {
		t.Errorf("GetState() = %d, want 10", st.GetState())
	}
}

func TestExecuteWithoutSubscribers(t *testing.T) {
	st := New("a")
	st.Execute(func(s string) string { return s + "b" })
	if st.GetState() != "ab" {
		t.Errorf("GetState() = %q, want ab", st.GetState())
	}
}

func TestExecuteModifierPanic(t *testing.T) {
	obs := &recordingObserver{}
	st := New(5, WithObserver(obs), WithName("counter"))
	notified := false
	st.Subscribe(func(int) { notified = true })

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("recover() = %v, want boom", r)
			}
		}()
		st.Execute(func(int) int { panic("boom") })
	}()

	if st.GetState() != 5 {
		t.Errorf("GetState() = %d, want 5", st.GetState())
	}
	if notified {
		t.Error("subscriber should not be notified after a modifier panic")
	}
	if len(obs.errs) != 1 || !errors.Is(obs.errs[0], ErrModifierPanicked) {
		t.Errorf("observed errors = %v", obs.errs)
	}

	// The lock must have been released.
	st.Execute(func(s int) int { return s + 1 })
	if st.GetState() != 6 {
		t.Errorf("GetState() = %d, want 6", st.GetState())
	}
}

func TestExecuteSubscriberPanicAbortsRest(t *testing.T) {
	st := New(0)
	var seen []int
	st.Subscribe(func(s int) { seen = append(seen, s) })
	st.Subscribe(func(int) { panic("sub") })
	st.Subscribe(func(s int) { seen = append(seen, -s) })

	func() {
		defer func() { _ = recover() }()
		st.Execute(func(s int) int { return s + 1 })
	}()

	if st.GetState() != 1 {
		t.Errorf("GetState() = %d, want 1", st.GetState())
	}
	if len(seen) != 1 || seen[0] != 1 {
		t.Errorf("seen = %v, want [1]", seen)
	}
}

func TestReentrantExecute(t *testing.T) {
	st := New(0)
	var log []string
	st.Subscribe(func(s int) {
		log = append(log, fmt.Sprintf("first:%d", s))
		if s == 1 {
			st.Execute(func(s int) int { return s + 1 })
		}
	})
	st.Subscribe(func(s int) { log = append(log, fmt.Sprintf("second:%d", s)) })

	st.Execute(func(s int) int { return s + 1 })

	want := []string{"first:1", "first:2", "second:2", "second:1"}
	if fmt.Sprint(log) != fmt.Sprint(want) {
		t.Errorf("log = %v, want %v", log, want)
	}
	if st.GetState() != 2 {
		t.Errorf("GetState() = %d, want 2", st.GetState())
	}
}

func TestSubscribeDuringNotify(t *testing.T) {
	st := New(0)
	late := 0
	st.Subscribe(func(int) {
		st.Subscribe(func(int) { late++ })
	})
	st.Execute(func(s int) int { return s + 1 })
	if late != 0 {
		t.Errorf("subscriber added during notify ran in the same call")
	}
	st.Execute(func(s int) int { return s + 1 })
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}

func TestTryExecute(t *testing.T) {
	obs := &recordingObserver{}
	st := New(todoState{NextID: 0}, WithName("todo"), WithObserver(obs))
	calls := 0
	st.Subscribe(func(todoState) { calls++ })

	errEmpty := errors.New("empty item")
	add := func(text string) func(todoState) (todoState, error) {
		return func(s todoState) (todoState, error) {
			if text == "" {
				return s, errEmpty
			}
			items := append(append([]string(nil), s.Items...), text)
			return todoState{Items: items, NextID: s.NextID + 1}, nil
		}
	}

	if err := st.TryExecute(add("Rice")); err != nil {
		t.Fatalf("TryExecute() error = %v", err)
	}
	err := st.TryExecute(add(""))
	var te *TransitionError
	if !errors.As(err, &te) || !errors.Is(err, errEmpty) {
		t.Fatalf("TryExecute() error = %v, want TransitionError wrapping errEmpty", err)
	}
	if te.Store != "todo" {
		t.Errorf("TransitionError.Store = %q, want todo", te.Store)
	}
	if got := st.GetState(); len(got.Items) != 1 || got.NextID != 1 {
		t.Errorf("GetState() = %+v", got)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if len(obs.errs) != 2 || obs.errs[0] != nil || obs.errs[1] == nil {
		t.Errorf("observed errors = %v", obs.errs)
	}
	if obs.subs[0] != 1 {
		t.Errorf("observed subscribers = %d, want 1", obs.subs[0])
	}
}

func TestConcurrentExecuteThroughDispatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(0, nil)
	d.Start(ctx)

	st := New(0)
	var seen []int
	st.Subscribe(func(s int) {
		// Give an unserialized caller the chance to overtake.
		time.Sleep(time.Millisecond)
		seen = append(seen, s)
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.Do(ctx, func() {
				st.Execute(func(s int) int { return s + 1 })
			}); err != nil {
				t.Errorf("Do() error = %v", err)
			}
		}()
	}
	wg.Wait()

	var last []int
	if err := d.Do(ctx, func() { last = append(last, seen...) }); err != nil {
		t.Fatal(err)
	}
	if st.GetState() != 50 {
		t.Errorf("GetState() = %d, want 50", st.GetState())
	}
	if len(last) != 50 {
		t.Fatalf("notified %d times, want 50", len(last))
	}
	for i, v := range last {
		if v != i+1 {
			t.Fatalf("notification %d got state %d, want %d", i, v, i+1)
		}
	}
}

func TestDispatcherHoldsBlockedNotification(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(0, nil)
	d.Start(ctx)

	st := New(0)
	release := make(chan struct{})
	var delivered []int
	st.Subscribe(func(s int) {
		if s == 1 {
			<-release
		}
		delivered = append(delivered, s)
	})

	inc := func(s int) int { return s + 1 }
	first := make(chan error, 1)
	go func() { first <- d.Do(ctx, func() { st.Execute(inc) }) }()

	second := make(chan error, 1)
	go func() { second <- d.Do(ctx, func() { st.Execute(inc) }) }()

	// Whichever transition ran first is blocked in its subscriber; the other
	// must wait behind it.
	select {
	case err := <-second:
		t.Fatalf("second Do() returned early: %v", err)
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	if err := <-first; err != nil {
		t.Fatal(err)
	}
	if err := <-second; err != nil {
		t.Fatal(err)
	}

	if got := st.GetState(); got != 2 {
		t.Errorf("GetState() = %d, want 2", got)
	}
	if len(delivered) != 2 || delivered[len(delivered)-1] != st.GetState() {
		t.Errorf("delivered = %v, last should equal GetState()", delivered)
	}
}

type recordingObserver struct {
	mu    sync.Mutex
	names []string
	subs  []int
	errs  []error
}

func (o *recordingObserver) ObserveExecute(store string, _ time.Duration, subscribers int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.names = append(o.names, store)
	o.subs = append(o.subs, subscribers)
	o.errs = append(o.errs, err)
}
