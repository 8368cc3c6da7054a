// Package errors provides coded, actionable errors for the vlite CLI and
// configuration layer.
//
// Each error has a code (e.g. "V101") registered with a category, a short
// message and a longer detail. Callers add context fluently:
//
//	err := errors.New("V101").
//	    WithDetail("line 3: mapping values are not allowed here").
//	    WithSuggestion("Check that vlite.yaml is valid YAML")
//
// Format renders the error for a terminal, FormatCompact for logs.
package errors
