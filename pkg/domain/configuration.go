package domain

import (
	"fmt"
	"strings"
)

// Configuration is the observable snapshot of a machine.
// Which fields are meaningful depends on Kind:
//   - nfa: Active, Position
//   - dfa: State, Position
//   - turing: State, Tape, Head
type Configuration struct {
	Kind Kind `json:"kind"`

	// Active is the epsilon-closed set of current NFA states.
	Active StateSet `json:"active,omitempty"`

	// State is the single current state of a DFA or Turing machine.
	State string `json:"state,omitempty"`

	// Position counts the input symbols consumed so far (finite automata).
	Position int `json:"position"`

	// Tape holds the Turing machine tape, left-origin.
	Tape []string `json:"tape,omitempty"`

	// Head indexes into Tape.
	Head int `json:"head"`
}

// Clone returns a deep copy so stored history cannot be mutated through a published value.
func (c Configuration) Clone() Configuration {
	out := c
	if c.Active != nil {
		out.Active = append(make(StateSet, 0, len(c.Active)), c.Active...)
	}
	if c.Tape != nil {
		out.Tape = append(make([]string, 0, len(c.Tape)), c.Tape...)
	}
	return out
}

// Equal reports whether both configurations hold the same values.
func (c Configuration) Equal(other Configuration) bool {
	if c.Kind != other.Kind || c.State != other.State ||
		c.Position != other.Position || c.Head != other.Head {
		return false
	}
	if !c.Active.Equal(other.Active) || len(c.Tape) != len(other.Tape) {
		return false
	}
	for i := range c.Tape {
		if c.Tape[i] != other.Tape[i] {
			return false
		}
	}
	return true
}

// TapeString joins the tape cells.
func (c Configuration) TapeString() string {
	return strings.Join(c.Tape, "")
}

func (c Configuration) String() string {
	switch c.Kind {
	case KindNFA:
		return c.Active.String()
	case KindDFA:
		return fmt.Sprintf("%s @%d", c.State, c.Position)
	case KindTuring:
		return fmt.Sprintf("%s %s @%d", c.State, c.TapeString(), c.Head)
	}
	return "<empty>"
}
