package schema

import (
	"github.com/aretw0/automata/pkg/domain"
)

// Definition is the immutable configuration of one automaton.
type Definition struct {
	Name        string      `json:"name" yaml:"name" mapstructure:"name"`
	Kind        domain.Kind `json:"kind" yaml:"kind" mapstructure:"kind"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	States []string `json:"states" yaml:"states" mapstructure:"states"`

	// Alphabet is the input alphabet of finite automata. For a Turing machine it
	// is the optional tape alphabet; when empty, any tape symbol is readable.
	Alphabet []string `json:"alphabet,omitempty" yaml:"alphabet,omitempty" mapstructure:"alphabet"`

	Start string `json:"start" yaml:"start" mapstructure:"start"`

	// Accepting lists accepting states (NFA, DFA) or final states (Turing).
	Accepting []string `json:"accepting,omitempty" yaml:"accepting,omitempty" mapstructure:"accepting"`

	// Blank is the tape filler symbol. Defaults to "_" for Turing machines.
	Blank string `json:"blank,omitempty" yaml:"blank,omitempty" mapstructure:"blank"`

	Transitions []Transition `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// Transition is one row of the transition relation.
// NFA rows may list several targets; DFA and Turing rows list exactly one.
type Transition struct {
	From   string   `json:"from" yaml:"from" mapstructure:"from"`
	Symbol string   `json:"symbol,omitempty" yaml:"symbol,omitempty" mapstructure:"symbol"`
	To     []string `json:"to" yaml:"to" mapstructure:"to"`

	// Turing machine only.
	Write string      `json:"write,omitempty" yaml:"write,omitempty" mapstructure:"write"`
	Move  domain.Move `json:"move,omitempty" yaml:"move,omitempty" mapstructure:"move"`
}

// Target returns the single destination of a deterministic row.
func (t Transition) Target() string {
	if len(t.To) == 0 {
		return ""
	}
	return t.To[0]
}

// Normalize rewrites user friendly spellings into their canonical form:
// kind aliases, the "ε" epsilon alias, long move names and the default blank.
// Unparseable values are left untouched so Validate can report them.
func (d *Definition) Normalize() {
	if k, err := domain.ParseKind(string(d.Kind)); err == nil {
		d.Kind = k
	}
	if d.Kind == domain.KindTuring && d.Blank == "" {
		d.Blank = domain.DefaultBlank
	}
	for i := range d.Transitions {
		t := &d.Transitions[i]
		if t.Symbol == domain.EpsilonAlias {
			t.Symbol = domain.Epsilon
		}
		if t.Move != "" {
			if m, err := domain.ParseMove(string(t.Move)); err == nil {
				t.Move = m
			}
		}
	}
}

// IsAccepting reports whether state is listed in Accepting.
func (d *Definition) IsAccepting(state string) bool {
	for _, s := range d.Accepting {
		if s == state {
			return true
		}
	}
	return false
}

// Clone deep-copies the definition.
func (d *Definition) Clone() *Definition {
	out := *d
	out.States = append([]string(nil), d.States...)
	out.Alphabet = append([]string(nil), d.Alphabet...)
	out.Accepting = append([]string(nil), d.Accepting...)
	out.Transitions = make([]Transition, len(d.Transitions))
	for i, t := range d.Transitions {
		t.To = append([]string(nil), t.To...)
		out.Transitions[i] = t
	}
	return &out
}
