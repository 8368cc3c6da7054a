package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vlite/internal/apps/todo"
	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/store"
)

func demoCmd() *cobra.Command {
	var remove int

	cmd := &cobra.Command{
		Use:   "demo [item...]",
		Short: "Drive the todo store headless and log every state",
		Long: `Add each argument as a todo item, then remove the item with id
--remove, printing the state after every transition and the final view.`,
		Example: `  vlite demo
  vlite demo Milk Eggs --remove 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"Rice", "Bread"}
			}
			return runDemo(cmd, args, remove)
		},
	}

	cmd.Flags().IntVarP(&remove, "remove", "r", 1, "Item id to remove after adding (0 to skip)")

	return cmd
}

func runDemo(cmd *cobra.Command, items []string, remove int) error {
	w := cmd.OutOrStdout()
	st := store.New(todo.DefaultState(), store.WithName(todo.Name))
	app := todo.New(st)

	st.Subscribe(func(s todo.State) {
		logState(w, s)
	})

	doc := dom.NewDocument()
	root := render.NewRoot(doc.Body())
	if err := app.Mount(cmd.Context(), root); err != nil {
		return err
	}

	for _, text := range items {
		st.Execute(todo.AddTodoItem(text))
	}
	if remove > 0 {
		st.Execute(todo.RemoveTodoItem(remove))
	}

	fmt.Fprintln(w)
	if err := doc.Body().WriteHTML(w, dom.HTMLOptions{Pretty: true}); err != nil {
		return err
	}
	success(w, "%d renders", root.Generation())
	return nil
}

func logState(w io.Writer, s todo.State) {
	data, err := json.Marshal(s)
	if err != nil {
		fmt.Fprintf(w, "state: %v\n", err)
		return
	}
	fmt.Fprintf(w, "state: %s\n", data)
}
