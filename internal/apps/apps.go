// Package apps builds the bundled demo applications with their stores and
// optional persistence.
package apps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vango-dev/vlite/internal/apps/counter"
	"github.com/vango-dev/vlite/internal/apps/todo"
	"github.com/vango-dev/vlite/pkg/persist"
	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/store"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// App is a mountable application.
type App interface {
	Name() string
	Mount(ctx context.Context, root *render.Root) error
}

// Names lists the bundled applications.
var Names = []string{counter.Name, todo.Name}

// Observer receives store and persistence outcomes (typically a
// *metrics.Collector).
type Observer interface {
	store.Observer
	persist.Observer
}

// Options configures Build.
type Options struct {
	Logger   *slog.Logger
	Observer Observer

	// KV enables persistence when non-nil.
	KV      persist.KV
	Key     string
	Backend string
}

// Build creates the named app. With a KV, the initial state is loaded from
// Key; if loading fails the app starts from defaults and saving is
// disabled for this run.
func Build(ctx context.Context, name string, opts Options) (App, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	switch name {
	case counter.Name:
		st := newStore(ctx, name, counter.State{}, opts)
		return counter.New(st), nil
	case todo.Name:
		st := newStore(ctx, name, todo.DefaultState(), opts)
		return todo.New(st), nil
	default:
		return nil, fmt.Errorf("unknown app %q", name)
	}
}

// View returns the initial tree of the named app with default state.
func View(name string) (*vdom.VNode, error) {
	switch name {
	case counter.Name:
		return counter.New(store.New(counter.State{})).View(counter.State{}), nil
	case todo.Name:
		return todo.New(store.New(todo.DefaultState())).View(todo.DefaultState()), nil
	default:
		return nil, fmt.Errorf("unknown app %q", name)
	}
}

func newStore[S any](ctx context.Context, name string, defaults S, opts Options) *store.Store[S] {
	logger := opts.Logger.With("app", name)
	storeOpts := []store.Option{store.WithName(name), store.WithLogger(logger)}
	if opts.Observer != nil {
		storeOpts = append(storeOpts, store.WithObserver(opts.Observer))
	}

	if opts.KV == nil {
		return store.New(defaults, storeOpts...)
	}

	state, err := persist.Load(ctx, opts.KV, opts.Key, defaults)
	st := store.New(state, storeOpts...)
	if err != nil {
		logger.Warn("unable to load saved state, persistence disabled", "key", opts.Key, "error", err)
		return st
	}
	logger.Info("state restored", "key", opts.Key, "backend", opts.Backend)

	bindOpts := []persist.BindOption{persist.WithLogger(logger), persist.WithBackendName(opts.Backend)}
	if opts.Observer != nil {
		bindOpts = append(bindOpts, persist.WithObserver(opts.Observer))
	}
	persist.Bind(st, opts.KV, opts.Key, bindOpts...)
	return st
}
