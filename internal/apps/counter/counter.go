// Package counter is the click-counter demo: a button whose click count
// lives in a store, and a typed greeting component rendered twice.
package counter

import (
	"context"
	"fmt"

	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/store"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// Name is the app's registry name.
const Name = "counter"

// State is the counter app state.
type State struct {
	Clicks int `json:"clicks"`
}

// Increment adds one click.
func Increment(s State) State {
	return State{Clicks: s.Clicks + 1}
}

// SayHiProps are the props of SayHi.
type SayHiProps struct {
	Name string `prop:"name"`
}

// SayHi renders a greeting for a name.
var SayHi = vdom.Component(func(p SayHiProps) *vdom.VNode {
	return vdom.H("div", nil,
		"Hello ",
		vdom.H("strong", nil, p.Name),
	)
})

// App binds the counter view to its store.
type App struct {
	store *store.Store[State]
}

// New creates the app around st.
func New(st *store.Store[State]) *App {
	return &App{store: st}
}

// Name returns the app's registry name.
func (a *App) Name() string { return Name }

// Store returns the app's store.
func (a *App) Store() *store.Store[State] { return a.store }

// View builds the tree for s.
func (a *App) View(s State) *vdom.VNode {
	return vdom.H("main", nil,
		vdom.H("h1", nil, "Header"),
		vdom.H("p", nil,
			vdom.H("strong", nil, "A button"),
			vdom.H("button", vdom.Props{"onclick": a.onClick}, "Button Text"),
			vdom.H("span", nil, fmt.Sprintf("Button clicked %d times", s.Clicks)),
		),
		vdom.H("p", nil,
			"Functional components",
			vdom.H(SayHi, vdom.Props{"name": "Foo"}),
			vdom.H(SayHi, vdom.Props{"name": "Bar"}),
		),
	)
}

func (a *App) onClick() {
	a.store.Execute(Increment)
}

// Mount renders the current state into root and re-renders on every
// change.
func (a *App) Mount(ctx context.Context, root *render.Root) error {
	if err := root.Render(ctx, a.View(a.store.GetState())); err != nil {
		return err
	}
	a.store.Subscribe(func(s State) {
		// Root logs render failures.
		root.Render(ctx, a.View(s))
	})
	return nil
}
