// Package store provides a generic state container with ordered
// subscriber notification.
//
// A Store owns one current value. Execute replaces it with the result of a
// modifier and then calls every subscriber, in registration order, with
// the new value:
//
//	st := store.New(State{})
//	st.Subscribe(func(s State) { render(s) })
//	st.Execute(func(s State) State {
//	    s.Clicks++
//	    return s
//	})
//
// Modifiers must return a new value rather than mutate shared data
// reachable from the old one (slices and maps in particular); subscribers
// may hold on to the values they receive.
//
// Notification is synchronous. A subscriber that calls Execute on the same
// store starts a nested transition whose subscribers all run before the
// outer notification continues; later subscribers of the outer call still
// receive the outer value.
//
// A Store does not order transitions that run in parallel: the state
// update is atomic, but notification runs after it. Hosts that receive
// events on several goroutines submit every Execute through a Dispatcher,
// which runs functions one at a time on a single goroutine and so keeps the
// whole execute-notify-render sequence serialized:
//
//	d := store.NewDispatcher(0, logger)
//	d.Start(ctx)
//	err := d.Do(ctx, func() { st.Execute(increment) })
package store
