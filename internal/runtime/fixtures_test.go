package runtime

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/stretchr/testify/require"
)

func to(states ...string) []string { return states }

// exampleNFA is the four state automaton accepting "01" and "ab".
func exampleNFA(t *testing.T) *schema.Definition {
	t.Helper()
	def := &schema.Definition{
		Name:      "example",
		Kind:      domain.KindNFA,
		States:    []string{"q0", "q1", "q2", "q3"},
		Alphabet:  []string{"0", "1", "a", "b"},
		Start:     "q0",
		Accepting: []string{"q3"},
		Transitions: []schema.Transition{
			{From: "q0", Symbol: "0", To: to("q1")},
			{From: "q0", Symbol: "a", To: to("q2")},
			{From: "q1", Symbol: "1", To: to("q3")},
			{From: "q2", Symbol: "b", To: to("q3")},
		},
	}
	require.NoError(t, def.Validate())
	return def
}

// epsilonNFA chains q0 -ε-> q1 -ε-> q2 and loops every state on 'a'.
func epsilonNFA(t *testing.T) *schema.Definition {
	t.Helper()
	def := &schema.Definition{
		Name:      "chain",
		Kind:      domain.KindNFA,
		States:    []string{"q0", "q1", "q2", "q3"},
		Alphabet:  []string{"a", "b"},
		Start:     "q0",
		Accepting: []string{"q2"},
		Transitions: []schema.Transition{
			{From: "q0", Symbol: domain.Epsilon, To: to("q1")},
			{From: "q1", Symbol: domain.Epsilon, To: to("q2", "q0")},
			{From: "q0", Symbol: "a", To: to("q0")},
			{From: "q2", Symbol: "b", To: to("q3")},
			{From: "q3", Symbol: domain.Epsilon, To: to("q3")},
		},
	}
	require.NoError(t, def.Validate())
	return def
}

func containsOneDFA(t *testing.T) *schema.Definition {
	t.Helper()
	def := &schema.Definition{
		Name:      "contains-one",
		Kind:      domain.KindDFA,
		States:    []string{"q0", "q1"},
		Alphabet:  []string{"0", "1"},
		Start:     "q0",
		Accepting: []string{"q1"},
		Transitions: []schema.Transition{
			{From: "q0", Symbol: "0", To: to("q0")},
			{From: "q0", Symbol: "1", To: to("q1")},
			{From: "q1", Symbol: "0", To: to("q1")},
			{From: "q1", Symbol: "1", To: to("q1")},
		},
	}
	require.NoError(t, def.Validate())
	return def
}

func bitFlipper(t *testing.T) *schema.Definition {
	t.Helper()
	def := &schema.Definition{
		Name:      "flip",
		Kind:      domain.KindTuring,
		States:    []string{"q0", "qf"},
		Start:     "q0",
		Accepting: []string{"qf"},
		Blank:     domain.DefaultBlank,
		Transitions: []schema.Transition{
			{From: "q0", Symbol: "0", To: to("q0"), Write: "1", Move: domain.MoveRight},
			{From: "q0", Symbol: "1", To: to("q0"), Write: "0", Move: domain.MoveRight},
			{From: "q0", Symbol: "_", To: to("qf"), Write: "_", Move: domain.MoveStay},
		},
	}
	require.NoError(t, def.Validate())
	return def
}
