package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

var (
	// ErrDispatcherStopped is returned when submitting to a stopped
	// dispatcher.
	ErrDispatcherStopped = errors.New("store: dispatcher stopped")

	// ErrQueueFull is returned by Post when the queue has no room.
	ErrQueueFull = errors.New("store: dispatch queue full")
)

// DefaultQueueSize is the dispatcher queue length used when none is given.
const DefaultQueueSize = 256

// PanicError is returned by Do when the function panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("store: dispatched function panicked: %v", e.Value)
}

// Dispatcher runs submitted functions one at a time on a single
// goroutine. Panics are recovered and logged so one bad event cannot stop
// the loop.
type Dispatcher struct {
	queue  chan func()
	done   chan struct{}
	logger *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	exited    chan struct{}
}

// NewDispatcher creates a dispatcher with the given queue size. A size of
// zero or less uses DefaultQueueSize. A nil logger uses slog.Default().
func NewDispatcher(size int, logger *slog.Logger) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		queue:  make(chan func(), size),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		logger: logger,
	}
}

// Start runs the loop in a new goroutine until ctx is done or Stop is
// called. Calling Start more than once has no effect.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		go d.loop(ctx)
	})
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer close(d.exited)
	for {
		select {
		case fn := <-d.queue:
			d.execute(fn)
		case <-ctx.Done():
			d.Stop()
			return
		case <-d.done:
			return
		}
	}
}

// execute runs fn with panic recovery.
func (d *Dispatcher) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Do runs fn on the dispatcher goroutine and waits for it to finish. It
// returns a *PanicError if fn panicked. Do must not be called from a
// function already running on the dispatcher.
func (d *Dispatcher) Do(ctx context.Context, fn func()) error {
	result := make(chan error, 1)
	wrapped := func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				d.logger.Error("dispatch panic", "panic", r, "stack", string(stack))
				result <- &PanicError{Value: r, Stack: stack}
			}
		}()
		fn()
		result <- nil
	}

	select {
	case d.queue <- wrapped:
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post queues fn without waiting.
func (d *Dispatcher) Post(fn func()) error {
	select {
	case <-d.done:
		return ErrDispatcherStopped
	default:
	}
	select {
	case d.queue <- fn:
		return nil
	default:
		d.logger.Warn("dispatch queue full, discarding callback")
		return ErrQueueFull
	}
}

// Stop ends the loop. Queued functions that have not started are dropped.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
	})
}

// Done is closed once the loop goroutine has exited.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.exited
}
