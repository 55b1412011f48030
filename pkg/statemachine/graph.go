package statemachine

// Transition is the outcome of applying one event to the machine. It is a
// plain value, not an error: an invalid transition means the event has no
// effect in the current state, and callers are expected to check Valid.
type Transition[S, E any] struct {
	FromState S
	Event     E
	ToState   S // zero value unless Valid
	Valid     bool
}

// TransitionFunc computes the destination state for a matched event. A
// self-loop still returns a fresh state value; the machine never mutates
// states in place.
type TransitionFunc[S, E any] func(from S, event E) S

// Listener observes a state being entered or exited because of an event.
type Listener[S, E any] func(state S, event E)

// TransitionListener observes every Apply outcome, valid or not.
type TransitionListener[S, E any] func(transition Transition[S, E])

type transitionEntry[S, E any] struct {
	matcher ValueMatcher[E]
	fn      TransitionFunc[S, E]
}

// StateDefinition holds the enter/exit listeners and the ordered transition
// table registered for one state matcher.
type StateDefinition[S, E any] struct {
	onEnter     []Listener[S, E]
	onExit      []Listener[S, E]
	transitions []transitionEntry[S, E]
}

type stateEntry[S, E any] struct {
	matcher    ValueMatcher[S]
	definition *StateDefinition[S, E]
}

// Graph is the immutable description of a state machine: an initial state,
// an ordered state-definition table and global transition listeners.
// Definition order is significant: when a state value is accepted by several
// matchers, the first registered wins.
type Graph[S, E any] struct {
	initialState S
	states       []stateEntry[S, E]
	onTransition []TransitionListener[S, E]
}

// InitialState returns the state the machine starts in.
func (g *Graph[S, E]) InitialState() S {
	return g.initialState
}

// definition returns the first registered definition matching the state,
// or nil when the state was never declared.
func (g *Graph[S, E]) definition(state S) *StateDefinition[S, E] {
	for _, entry := range g.states {
		if entry.matcher.Matches(state) {
			return entry.definition
		}
	}
	return nil
}

// copyWithInitial derives a graph sharing all definitions and listeners but
// starting from a different state. Used by Machine.WithModifications.
func (g *Graph[S, E]) copyWithInitial(initial S) *Graph[S, E] {
	states := make([]stateEntry[S, E], len(g.states))
	copy(states, g.states)
	listeners := make([]TransitionListener[S, E], len(g.onTransition))
	copy(listeners, g.onTransition)
	return &Graph[S, E]{
		initialState: initial,
		states:       states,
		onTransition: listeners,
	}
}
