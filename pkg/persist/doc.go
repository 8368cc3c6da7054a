// Package persist saves store state to a key-value backend and restores it
// on startup.
//
// Persistence is a side channel: a Binding subscribes to a store and writes
// every new state as JSON, logging and counting failures without ever
// propagating them into the store's notification.
//
//	kv := persist.NewMemory()
//	state, err := persist.Load(ctx, kv, "todoApp", todo.State{})
//	if err != nil {
//	    logger.Warn("state not restored, saving disabled", "error", err)
//	}
//	st := store.New(state)
//	if err == nil {
//	    persist.Bind(st, kv, "todoApp")
//	}
//
// Backends:
//   - Memory: in-process map, for tests and single-run demos
//   - File: one JSON file per key in a directory
//   - Redis: go-redis client with a key prefix and optional TTL
//   - S3: one object per key under a bucket prefix
package persist
