package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vlite/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦╦  ┬┌┬┐┌─┐
  ╚╗╔╝║  │ │ ├┤
   ╚╝ ╩═╝┴ ┴ └─┘
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vlite",
		Short: "A minimal virtual-node UI runtime",
		Long: `vlite builds virtual node trees, materializes them into a display
tree and re-renders on every store transition.

It ships two demo applications (counter and todo) that can be served
live over WebSocket, rendered once to HTML, or driven headless.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		demoCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printError prints coded errors in full and anything else on one line.
func printError(w io.Writer, err error) {
	var ve *errors.Error
	if stderrors.As(err, &ve) {
		fmt.Fprintln(w, ve.FormatFor(w))
		return
	}
	out := termenv.NewOutput(w)
	fmt.Fprintf(w, "%s %s\n", out.String("Error:").Foreground(termenv.ANSIRed), err)
}

// printBanner prints the vlite ASCII art banner.
func printBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprint(w, out.String(banner).Foreground(termenv.ANSICyan))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	out := termenv.NewOutput(w)
	fmt.Fprintf(w, "%s %s\n", out.String("✓").Foreground(termenv.ANSIGreen), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	out := termenv.NewOutput(w)
	fmt.Fprintf(w, "%s %s\n", out.String("⚠").Foreground(termenv.ANSIYellow), fmt.Sprintf(format, args...))
}
