package errors

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Format renders the error for terminal display without colors.
func (e *Error) Format() string {
	return e.format(termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii)))
}

// FormatFor renders the error with the colors w supports.
func (e *Error) FormatFor(w io.Writer) string {
	return e.format(termenv.NewOutput(w))
}

func (e *Error) format(out *termenv.Output) string {
	var b strings.Builder
	red := func(s string) string { return out.String(s).Foreground(out.Color("1")).Bold().String() }
	cyan := func(s string) string { return out.String(s).Foreground(out.Color("6")).String() }
	bold := func(s string) string { return out.String(s).Bold().String() }

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(red("ERROR "))
		b.WriteString(bold(e.Code + ": "))
	} else {
		b.WriteString(red("ERROR: "))
	}
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(cyan("Cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(cyan("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}
	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *Error) FormatCompact() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
