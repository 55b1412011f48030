package statemachine

// GraphBuilder assembles a Graph declaratively. Registration order is
// preserved: state definitions and per-state transitions are evaluated
// first-registered-wins at Apply time.
type GraphBuilder[S, E any] struct {
	initialState S
	hasInitial   bool
	states       []stateEntry[S, E]
	onTransition []TransitionListener[S, E]
}

// NewGraphBuilder creates an empty builder.
func NewGraphBuilder[S, E any]() *GraphBuilder[S, E] {
	return &GraphBuilder[S, E]{}
}

// newGraphBuilderFrom seeds a builder with an existing graph's definitions
// and listeners so they can be extended.
func newGraphBuilderFrom[S, E any](graph *Graph[S, E]) *GraphBuilder[S, E] {
	b := &GraphBuilder[S, E]{
		initialState: graph.initialState,
		hasInitial:   true,
	}
	b.states = append(b.states, graph.states...)
	b.onTransition = append(b.onTransition, graph.onTransition...)
	return b
}

// Initial sets the state the machine starts in.
func (b *GraphBuilder[S, E]) Initial(state S) *GraphBuilder[S, E] {
	b.initialState = state
	b.hasInitial = true
	return b
}

// State registers a definition for every state accepted by the matcher.
func (b *GraphBuilder[S, E]) State(matcher ValueMatcher[S], define func(*StateBuilder[S, E])) *GraphBuilder[S, E] {
	sb := &StateBuilder[S, E]{definition: &StateDefinition[S, E]{}}
	if define != nil {
		define(sb)
	}
	b.states = append(b.states, stateEntry[S, E]{matcher: matcher, definition: sb.definition})
	return b
}

// StateValue registers a definition for exactly the given state value.
// Sugar for State with an Eq matcher; it is a free function because the
// equality constraint cannot be expressed on the builder's type parameters.
func StateValue[S comparable, E any](b *GraphBuilder[S, E], state S, define func(*StateBuilder[S, E])) *GraphBuilder[S, E] {
	return b.State(Eq[S, S](state), define)
}

// OnTransition registers a listener invoked with every Apply outcome.
func (b *GraphBuilder[S, E]) OnTransition(listener TransitionListener[S, E]) *GraphBuilder[S, E] {
	if listener != nil {
		b.onTransition = append(b.onTransition, listener)
	}
	return b
}

// Build finalizes the graph. It panics when no initial state was set,
// mirroring the fail-fast policy for construction bugs.
func (b *GraphBuilder[S, E]) Build() *Graph[S, E] {
	if !b.hasInitial {
		panic("statemachine: graph built without an initial state")
	}
	states := make([]stateEntry[S, E], len(b.states))
	copy(states, b.states)
	listeners := make([]TransitionListener[S, E], len(b.onTransition))
	copy(listeners, b.onTransition)
	return &Graph[S, E]{
		initialState: b.initialState,
		states:       states,
		onTransition: listeners,
	}
}

// StateBuilder assembles one state definition: its transition table and the
// listeners fired when the state is entered or exited.
type StateBuilder[S, E any] struct {
	definition *StateDefinition[S, E]
}

// On registers a transition for every event accepted by the matcher. Within
// a state the first matching registration wins.
func (s *StateBuilder[S, E]) On(matcher ValueMatcher[E], fn TransitionFunc[S, E]) *StateBuilder[S, E] {
	s.definition.transitions = append(s.definition.transitions, transitionEntry[S, E]{
		matcher: matcher,
		fn:      fn,
	})
	return s
}

// OnEvent registers a transition for exactly the given event value. Sugar
// for On with an Eq matcher, as a free function like StateValue.
func OnEvent[S any, E comparable](s *StateBuilder[S, E], event E, fn TransitionFunc[S, E]) *StateBuilder[S, E] {
	return s.On(Eq[E, E](event), fn)
}

// OnEnter registers a listener fired after the machine enters this state.
func (s *StateBuilder[S, E]) OnEnter(listener Listener[S, E]) *StateBuilder[S, E] {
	if listener != nil {
		s.definition.onEnter = append(s.definition.onEnter, listener)
	}
	return s
}

// OnExit registers a listener fired after the machine leaves this state.
func (s *StateBuilder[S, E]) OnExit(listener Listener[S, E]) *StateBuilder[S, E] {
	if listener != nil {
		s.definition.onExit = append(s.definition.onExit, listener)
	}
	return s
}
