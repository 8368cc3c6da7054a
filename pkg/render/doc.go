// Package render turns virtual nodes into display nodes and mounts them.
//
// Materialize builds a detached display subtree from a VNode. Render
// replaces the whole content of a container with a freshly materialized
// tree; there is no diffing, so every render discards the previous
// subtree along with its listeners.
//
// Root wraps a container for repeated renders from a store subscriber. It
// traces each render with OpenTelemetry, logs failures, and numbers renders
// with a generation counter that transports use to detect stale events.
package render
