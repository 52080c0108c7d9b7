package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		builtin  string
		contains []string
	}{
		{
			name:    "NFA With Epsilon",
			builtin: registry.NFAExample,
			contains: []string{
				"graph LR",
				`_start_((" ")) --> s_q0`,
				`s_q0(("q0"))`,
				`s_q3((("q3")))`,
				`s_q0 -- "ε" --> s_q0`,
				`s_q3 -- "0, 1, a, b" --> s_q3`,
			},
		},
		{
			name:    "DFA",
			builtin: registry.ContainsOne,
			contains: []string{
				`s_q1((("q1")))`,
				`s_q0 -- "1" --> s_q1`,
			},
		},
		{
			name:    "Turing Labels",
			builtin: registry.BitFlipper,
			contains: []string{
				`s_q0 -- "0/1,R, 1/0,R" --> s_q0`,
				`s_q0 -- "_/_,S" --> s_qf`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(registry.Builtin(tt.builtin), nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			assert.NotContains(t, got, "classDef")
		})
	}
}

func TestGenerateMermaid_Sanitizes(t *testing.T) {
	def := registry.Builtin(registry.ContainsOne)
	def.States = append(def.States, "odd-state.1")
	got := graph.GenerateMermaid(def, nil)
	assert.Contains(t, got, `s_odd_state_1(("odd-state.1"))`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	records := []domain.StepRecord{
		{Label: domain.StartLabel, After: domain.Configuration{Kind: domain.KindNFA, Active: domain.NewStateSet("q0")}},
		{Label: domain.StepLabel(1), After: domain.Configuration{Kind: domain.KindNFA, Active: domain.NewStateSet("q0", "q1")}},
		{Label: domain.StepLabel(2), After: domain.Configuration{Kind: domain.KindNFA, Active: domain.NewStateSet("q3")}},
	}

	overlay := graph.OverlayFromTrace(records, 1)
	require.NotNil(t, overlay)
	assert.Equal(t, []string{"q0", "q1"}, overlay.Current)

	got := graph.GenerateMermaid(registry.Builtin(registry.NFAExample), overlay)
	assert.Contains(t, got, "class s_q0 current;")
	assert.Contains(t, got, "class s_q1 current;")
	assert.NotContains(t, got, "s_q3 current")
	assert.NotContains(t, got, "visited;", "current states are not also marked visited")

	got = graph.GenerateMermaid(registry.Builtin(registry.NFAExample), graph.OverlayFromTrace(records, 2))
	assert.Contains(t, got, "class s_q0 visited;")
	assert.Contains(t, got, "class s_q3 current;")
	assert.Equal(t, 1, strings.Count(got, "class s_q0 "))

	assert.Nil(t, graph.OverlayFromTrace(records, 5))
	assert.Nil(t, graph.OverlayFromTrace(nil, -1))
}
