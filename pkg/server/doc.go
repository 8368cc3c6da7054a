// Package server hosts a vlite app in the browser.
//
// The server owns one document and one render root. The app is mounted
// into the document body, and every render is pushed to connected browsers
// over a WebSocket as a frame holding the new node tree. Browsers forward
// events back as element paths; the server dispatches them to the
// listeners the materializer registered, which typically run a store
// transition and cause the next render.
//
// All mounts, events and renders run on a single store.Dispatcher, so the
// app sees one logical thread of control no matter how many clients are
// connected.
//
// Routes:
//
//	GET /          page shell with the current HTML and the client script
//	GET /ws        WebSocket event channel
//	GET /healthz   liveness probe
//	GET /metrics   Prometheus metrics, when a gatherer is configured
//
// Wire format (JSON text messages):
//
//	client → server  {"type":"event","path":[0,2,1],"event":"click","value":"Rice","generation":3}
//	server → client  {"type":"render","generation":4,"html":"...","tree":{...}}
package server
