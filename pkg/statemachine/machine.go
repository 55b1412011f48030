package statemachine

import (
	"fmt"
	"sync"
)

// Machine holds the live state and applies events against an immutable
// Graph. It is safe for concurrent use: Apply calls are serialized, so
// transitions are linearizable and Current never observes a half-applied
// swap.
type Machine[S, E any] struct {
	graph *Graph[S, E]

	mu      sync.RWMutex
	current S
}

// Create builds a graph with the given initial state and wraps it in a
// machine. It panics when the builder leaves the graph without an initial
// state (a construction bug, not a runtime condition).
func Create[S, E any](initialState S, build func(*GraphBuilder[S, E])) *Machine[S, E] {
	b := NewGraphBuilder[S, E]().Initial(initialState)
	if build != nil {
		build(b)
	}
	return NewMachine(b.Build())
}

// NewMachine wraps an already built graph.
func NewMachine[S, E any](graph *Graph[S, E]) *Machine[S, E] {
	return &Machine[S, E]{
		graph:   graph,
		current: graph.initialState,
	}
}

// Current returns the live state without blocking behind in-flight Apply
// calls longer than the state swap itself.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Apply feeds one event to the machine.
//
// The read-match-compute-swap sequence runs in a single critical section, so
// no two Apply calls interleave. Listeners run after the section is
// released: global transition listeners first, then - for valid transitions
// only - the exit listeners of the source definition followed by the enter
// listeners of the destination definition. Because listeners run unlocked
// they may call Apply themselves, but they must not assume Current still
// equals the transition's ToState by the time they run.
//
// Apply panics when the current state has no registered definition: every
// state the machine can reach must have been declared at build time.
func (m *Machine[S, E]) Apply(event E) Transition[S, E] {
	m.mu.Lock()
	fromState := m.current
	fromDef := m.mustDefinition(fromState)

	transition := Transition[S, E]{FromState: fromState, Event: event}
	for _, entry := range fromDef.transitions {
		if entry.matcher.Matches(event) {
			transition.ToState = entry.fn(fromState, event)
			transition.Valid = true
			m.current = transition.ToState
			break
		}
	}
	m.mu.Unlock()

	for _, listener := range m.graph.onTransition {
		listener(transition)
	}
	if transition.Valid {
		for _, listener := range fromDef.onExit {
			listener(fromState, event)
		}
		toDef := m.mustDefinition(transition.ToState)
		for _, listener := range toDef.onEnter {
			listener(transition.ToState, event)
		}
	}
	return transition
}

// WithModifications derives a new machine that keeps every definition and
// listener of this one, starts from this machine's current state, and
// applies the extra builder mutations. The receiver is left untouched.
func (m *Machine[S, E]) WithModifications(build func(*GraphBuilder[S, E])) *Machine[S, E] {
	b := newGraphBuilderFrom(m.graph.copyWithInitial(m.Current()))
	if build != nil {
		build(b)
	}
	return NewMachine(b.Build())
}

func (m *Machine[S, E]) mustDefinition(state S) *StateDefinition[S, E] {
	def := m.graph.definition(state)
	if def == nil {
		panic(fmt.Sprintf("statemachine: no definition registered for state %v", any(state)))
	}
	return def
}
