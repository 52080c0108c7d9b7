package registry

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// Builtin definition names.
const (
	NFAExample  = "nfa-example"
	ContainsOne = "contains-one"
	ZeroThenOne = "zero-then-one"
	BitFlipper  = "bit-flipper"
)

func to(states ...string) []string { return states }

// Builtins returns the catalog used when no definitions directory is given.
// Each call returns fresh values.
func Builtins() []*schema.Definition {
	return []*schema.Definition{
		{
			Name:        NFAExample,
			Kind:        domain.KindNFA,
			Description: "Accepts strings that start with `01` or `ab`. Once `q3` is reached every symbol keeps it active, so cyclic mode loops forever on `01`.",
			States:      []string{"q0", "q1", "q2", "q3"},
			Alphabet:    []string{"0", "1", "a", "b"},
			Start:       "q0",
			Accepting:   []string{"q3"},
			Transitions: []schema.Transition{
				{From: "q0", Symbol: domain.Epsilon, To: to("q0")},
				{From: "q0", Symbol: "0", To: to("q1")},
				{From: "q0", Symbol: "a", To: to("q2")},
				{From: "q1", Symbol: "0", To: to("q1")},
				{From: "q1", Symbol: "1", To: to("q3")},
				{From: "q2", Symbol: "a", To: to("q2")},
				{From: "q2", Symbol: "b", To: to("q3")},
				{From: "q3", Symbol: "0", To: to("q3")},
				{From: "q3", Symbol: "1", To: to("q3")},
				{From: "q3", Symbol: "a", To: to("q3")},
				{From: "q3", Symbol: "b", To: to("q3")},
			},
		},
		{
			Name:        ContainsOne,
			Kind:        domain.KindDFA,
			Description: "Accepts binary strings containing at least one `1`.",
			States:      []string{"q0", "q1"},
			Alphabet:    []string{"0", "1"},
			Start:       "q0",
			Accepting:   []string{"q1"},
			Transitions: []schema.Transition{
				{From: "q0", Symbol: "0", To: to("q0")},
				{From: "q0", Symbol: "1", To: to("q1")},
				{From: "q1", Symbol: "0", To: to("q1")},
				{From: "q1", Symbol: "1", To: to("q1")},
			},
		},
		{
			Name:        ZeroThenOne,
			Kind:        domain.KindDFA,
			Description: "Accepts binary strings containing `01`: a `0` later followed by a `1`.",
			States:      []string{"q0", "q1", "q2"},
			Alphabet:    []string{"0", "1"},
			Start:       "q0",
			Accepting:   []string{"q2"},
			Transitions: []schema.Transition{
				{From: "q0", Symbol: "0", To: to("q1")},
				{From: "q0", Symbol: "1", To: to("q0")},
				{From: "q1", Symbol: "0", To: to("q1")},
				{From: "q1", Symbol: "1", To: to("q2")},
				{From: "q2", Symbol: "0", To: to("q2")},
				{From: "q2", Symbol: "1", To: to("q2")},
			},
		},
		{
			Name:        BitFlipper,
			Kind:        domain.KindTuring,
			Description: "Inverts every bit of the tape, then halts in `qf` on the first blank.",
			States:      []string{"q0", "qf"},
			Alphabet:    []string{"0", "1"},
			Start:       "q0",
			Accepting:   []string{"qf"},
			Blank:       domain.DefaultBlank,
			Transitions: []schema.Transition{
				{From: "q0", Symbol: "0", To: to("q0"), Write: "1", Move: domain.MoveRight},
				{From: "q0", Symbol: "1", To: to("q0"), Write: "0", Move: domain.MoveRight},
				{From: "q0", Symbol: domain.DefaultBlank, To: to("qf"), Write: domain.DefaultBlank, Move: domain.MoveStay},
			},
		},
	}
}

// Builtin returns one builtin by name, or nil.
func Builtin(name string) *schema.Definition {
	for _, def := range Builtins() {
		if def.Name == name {
			return def
		}
	}
	return nil
}
