// Package todo is the todo-list demo app.
//
// All state lives in a store. The "Add Item" button takes the new item's
// text from the event value; the live host fills it from the input named
// by the button's data-value-from attribute.
package todo

import (
	"context"
	"strings"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/store"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// Name is the app's registry name.
const Name = "todo"

// InputID is the id of the new-item text input.
const InputID = "new-item"

// TodoItem is one entry in the list.
type TodoItem struct {
	Text string `json:"text"`
	ID   int    `json:"id"`
}

// State is the todo app state.
type State struct {
	TodoItems  []TodoItem `json:"todoItems"`
	NextItemID int        `json:"nextItemId"`
}

// DefaultState is the state of a fresh list.
func DefaultState() State {
	return State{TodoItems: []TodoItem{}, NextItemID: 0}
}

// AddTodoItem returns a modifier appending an item with the next id.
func AddTodoItem(text string) store.Modifier[State] {
	return func(s State) State {
		id := s.NextItemID + 1
		items := make([]TodoItem, 0, len(s.TodoItems)+1)
		items = append(items, s.TodoItems...)
		items = append(items, TodoItem{Text: text, ID: id})
		return State{TodoItems: items, NextItemID: id}
	}
}

// RemoveTodoItem returns a modifier dropping the item with id.
func RemoveTodoItem(id int) store.Modifier[State] {
	return func(s State) State {
		items := make([]TodoItem, 0, len(s.TodoItems))
		for _, item := range s.TodoItems {
			if item.ID != id {
				items = append(items, item)
			}
		}
		return State{TodoItems: items, NextItemID: s.NextItemID}
	}
}

// App binds the todo view to its store.
type App struct {
	store    *store.Store[State]
	itemList vdom.ComponentFunc
	itemView vdom.ComponentFunc
}

// New creates the app around st.
func New(st *store.Store[State]) *App {
	a := &App{store: st}
	a.itemList = a.renderItemList
	a.itemView = vdom.Component(a.renderItem)
	return a
}

// Name returns the app's registry name.
func (a *App) Name() string { return Name }

// Store returns the app's store.
func (a *App) Store() *store.Store[State] { return a.store }

// View builds the tree for s.
func (a *App) View(s State) *vdom.VNode {
	return vdom.H("main", nil,
		vdom.H("h1", nil, "Todo App"),
		vdom.H("p", nil,
			vdom.H("input", vdom.Props{"id": InputID, "type": "text", "placeholder": "New item text"}),
			vdom.H("button", vdom.Props{"onclick": a.addItem, "data-value-from": InputID}, "Add Item"),
		),
		vdom.H("p", nil,
			vdom.H(a.itemList, vdom.Props{"items": s.TodoItems}),
		),
	)
}

func (a *App) addItem(ev *dom.Event) {
	text := strings.TrimSpace(ev.Value)
	if text == "" {
		return
	}
	a.store.Execute(AddTodoItem(text))
}

func (a *App) renderItemList(props vdom.Props) *vdom.VNode {
	items, _ := props["items"].([]TodoItem)
	if len(items) == 0 {
		return vdom.H("strong", nil, "No items")
	}
	return vdom.H("div", nil,
		vdom.H("div", nil, "Items: ", len(items)),
		vdom.H("div", nil, vdom.Range(items, func(item TodoItem, _ int) *vdom.VNode {
			return vdom.H(a.itemView, vdom.Props{"text": item.Text, "id": item.ID})
		})),
	)
}

type itemProps struct {
	Text string `prop:"text"`
	ID   int    `prop:"id"`
}

func (a *App) renderItem(p itemProps) *vdom.VNode {
	return vdom.H("div", nil,
		vdom.H("strong", nil, p.Text),
		vdom.H("button", vdom.Props{"onclick": func() {
			a.store.Execute(RemoveTodoItem(p.ID))
		}}, "Remove"),
	)
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
