package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vlite/internal/apps"
	"github.com/vango-dev/vlite/internal/config"
	"github.com/vango-dev/vlite/internal/errors"
	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/render"
)

func renderCmd() *cobra.Command {
	var (
		appName string
		pretty  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print an application's initial view as HTML",
		Long: `Materialize the initial tree of a built-in application with default
state and write it to stdout as HTML.`,
		Example: `  vlite render
  vlite render --app counter --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := apps.View(appName)
			if err != nil {
				return errors.New("V104").
					WithDetail(err.Error()).
					WithSuggestion(fmt.Sprintf("Use one of: %v", apps.Names))
			}

			doc := dom.NewDocument()
			node, err := render.Materialize(doc, view)
			if err != nil {
				return errors.New("V202").Wrap(err)
			}

			w := cmd.OutOrStdout()
			if err := node.WriteHTML(w, dom.HTMLOptions{Pretty: pretty}); err != nil {
				return err
			}
			if !pretty {
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&appName, "app", "a", config.DefaultApp, "Application to render (counter, todo)")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the output")

	return cmd
}
