package dsl

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// StateBuilder provides a fluent API for configuring a state and its outgoing transitions.
type StateBuilder struct {
	id        string
	start     bool
	accepting bool
	rows      []schema.Transition
	builder   *Builder
}

// Start marks the state as the start state.
func (s *StateBuilder) Start() *StateBuilder {
	s.start = true
	return s
}

// Accepting marks the state as accepting (final, for Turing machines).
func (s *StateBuilder) Accepting() *StateBuilder {
	s.accepting = true
	return s
}

// On adds a transition on symbol. Only NFAs may list several targets.
func (s *StateBuilder) On(symbol string, targets ...string) *StateBuilder {
	s.rows = append(s.rows, schema.Transition{From: s.id, Symbol: symbol, To: targets})
	return s
}

// Epsilon adds a non-consuming NFA move.
func (s *StateBuilder) Epsilon(targets ...string) *StateBuilder {
	return s.On(domain.Epsilon, targets...)
}

// Rule adds a Turing machine transition: on read, write and move, then enter target.
func (s *StateBuilder) Rule(read, write string, move domain.Move, target string) *StateBuilder {
	s.rows = append(s.rows, schema.Transition{
		From:   s.id,
		Symbol: read,
		To:     []string{target},
		Write:  write,
		Move:   move,
	})
	return s
}

// Add declares another state on the same builder, for chaining.
func (s *StateBuilder) Add(id string) *StateBuilder {
	return s.builder.Add(id)
}
