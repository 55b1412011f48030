// Package statemachine provides a generic, thread-safe finite-state-machine
// engine driven by composable matchers instead of exact state keys.
//
// States and events are opaque user-defined values; the engine knows nothing
// about their shape beyond what the registered matchers test. A graph is
// declared once through a builder as an ordered table of
// (state matcher, definition) pairs, where each definition carries its own
// ordered (event matcher, transition) table plus enter and exit listeners.
// Ordering matters: when a value is accepted by several matchers, the first
// registered entry wins.
//
// # Usage
//
//	type State interface{ loan() }
//	type Event interface{ change() }
//
//	machine := statemachine.Create[State, Event](Active{}, func(b *statemachine.GraphBuilder[State, Event]) {
//	    b.State(statemachine.Any[State, Active](), func(s *statemachine.StateBuilder[State, Event]) {
//	        s.On(statemachine.Any[Event, Return](), func(from State, e Event) State {
//	            return Returned{}
//	        })
//	    })
//	    b.State(statemachine.Any[State, Returned](), nil)
//	})
//
//	t := machine.Apply(Return{})
//	if !t.Valid {
//	    // the event has no effect in the current state
//	}
//
// # Semantics
//
// Apply returns a Transition value rather than an error: an event with no
// matching transition yields an invalid Transition and leaves the state
// unchanged. The single genuinely fatal condition is reaching a state with
// no registered definition, which panics because it is a construction-time
// bug in the graph.
//
// # Concurrency
//
// Exactly one Apply runs its read-match-compute-swap sequence at a time;
// Current is a cheap read that never observes a partial swap. Listeners are
// invoked after the critical section is released so they may call Apply
// reentrantly, at the cost of possibly observing a state newer than the
// transition that triggered them.
package statemachine
