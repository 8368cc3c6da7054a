package vdom

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidType is returned when the node type is neither a tag name
	// nor a component function.
	ErrInvalidType = errors.New("vdom: node type must be a tag name or component function")

	// ErrInvalidTag is returned for an empty tag name.
	ErrInvalidTag = errors.New("vdom: empty tag name")

	// ErrInvalidHandler is returned when an event prop does not hold a
	// callable handler.
	ErrInvalidHandler = errors.New("vdom: event prop is not a handler")

	// ErrInvalidAttribute is returned when an attribute prop holds a value
	// that cannot be rendered as text.
	ErrInvalidAttribute = errors.New("vdom: attribute value cannot be rendered as text")

	// ErrInvalidChild is returned for children that are not nodes, strings
	// or scalars.
	ErrInvalidChild = errors.New("vdom: unsupported child type")

	// ErrInvalidProps is returned when component props cannot be decoded.
	ErrInvalidProps = errors.New("vdom: props do not match component")
)

// BuildError reports a node that could not be constructed.
type BuildError struct {
	// Op is the part being built: "type", "prop", "child" or "component".
	Op string

	// Key is the prop key or child index involved, if any.
	Key string

	// Err is the underlying sentinel error.
	Err error

	// Cause carries extra detail, such as a decoder message.
	Cause error
}

func (e *BuildError) Error() string {
	msg := e.Err.Error()
	if e.Key != "" {
		msg += " (" + e.Op + " " + strconv.Quote(e.Key) + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the sentinel error.
func (e *BuildError) Unwrap() error {
	return e.Err
}
