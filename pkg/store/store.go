package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrModifierPanicked is reported to the Observer when a modifier passed to
// Execute panics. Execute itself lets the panic propagate.
var ErrModifierPanicked = errors.New("store: modifier panicked")

// Modifier computes the next state from the current one.
type Modifier[S any] func(S) S

// Subscriber is called with each new state.
type Subscriber[S any] func(S)

// Observer receives the outcome of every transition.
type Observer interface {
	ObserveExecute(store string, d time.Duration, subscribers int, err error)
}

// TransitionError is returned by TryExecute when the transition fails.
type TransitionError struct {
	Store string
	Err   error
}

func (e *TransitionError) Error() string {
	if e.Store == "" {
		return fmt.Sprintf("store: transition failed: %v", e.Err)
	}
	return fmt.Sprintf("store %s: transition failed: %v", e.Store, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// Store holds a value of type S and the functions subscribed to it.
//
// A Store serves one logical thread of control. GetState and Subscribe may
// be called from any goroutine, but Execute and TryExecute calls must not
// overlap: notifications of overlapping calls can finish out of order.
// Callers on several goroutines submit their transitions through a
// Dispatcher.
type Store[S any] struct {
	mu    sync.Mutex
	state S
	subs  []Subscriber[S]

	name     string
	observer Observer
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	name     string
	observer Observer
	logger   *slog.Logger
}

// WithName labels the store in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithObserver sets the transition observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a store holding initial.
func New[S any](initial S, opts ...Option) *Store[S] {
	o := options{name: "default"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Store[S]{
		state:    initial,
		name:     o.name,
		observer: o.observer,
		logger:   o.logger.With("store", o.name),
	}
}

// Name returns the store's label.
func (s *Store[S]) Name() string {
	return s.name
}

// GetState returns the current state.
func (s *Store[S]) GetState() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe appends fn to the subscriber list. Subscriptions last for the
// lifetime of the store. A nil fn is ignored.
func (s *Store[S]) Subscribe(fn Subscriber[S]) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Execute sets the state to m(current) and notifies every subscriber with
// the new state, in registration order.
//
// If m panics the panic propagates, the state is unchanged and no
// subscriber runs. If a subscriber panics the remaining subscribers of
// this call are skipped. m must not call back into the store; subscribers
// may call Execute on the same goroutine.
func (s *Store[S]) Execute(m Modifier[S]) {
	start := time.Now()
	ok := false
	defer func() {
		if !ok {
			s.observe(start, 0, ErrModifierPanicked)
		}
	}()

	next, subs := s.transition(func(cur S) (S, error) { return m(cur), nil })
	ok = true
	s.notify(next, subs)
	s.observe(start, len(subs), nil)
}

// TryExecute is Execute for transitions that can fail. When m returns an
// error the state is unchanged, no subscriber runs, and the error is
// returned as a *TransitionError.
func (s *Store[S]) TryExecute(m func(S) (S, error)) error {
	start := time.Now()
	var failed error
	next, subs := s.transition(func(cur S) (S, error) {
		n, err := m(cur)
		failed = err
		return n, err
	})
	if failed != nil {
		err := &TransitionError{Store: s.name, Err: failed}
		s.logger.Debug("transition rejected", "error", failed)
		s.observe(start, 0, err)
		return err
	}
	s.notify(next, subs)
	s.observe(start, len(subs), nil)
	return nil
}

// transition applies fn under the lock and returns the new state with a
// snapshot of the subscribers. On error the state is left alone.
func (s *Store[S]) transition(fn func(S) (S, error)) (S, []Subscriber[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil {
		return next, nil
	}
	s.state = next
	return next, s.subs[:len(s.subs):len(s.subs)]
}

func (s *Store[S]) notify(next S, subs []Subscriber[S]) {
	for _, sub := range subs {
		sub(next)
	}
}

func (s *Store[S]) observe(start time.Time, subscribers int, err error) {
	if s.observer != nil {
		s.observer.ObserveExecute(s.name, time.Since(start), subscribers, err)
	}
}

