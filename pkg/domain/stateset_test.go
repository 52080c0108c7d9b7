package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStateSet_Canonical(t *testing.T) {
	a := NewStateSet("q2", "q0", "q1", "q0")
	b := NewStateSet("q1", "q2", "q0")

	assert.Equal(t, StateSet{"q0", "q1", "q2"}, a)
	assert.Equal(t, a, b, "same members must compare equal regardless of order")
	assert.True(t, a.Equal(b))
	assert.Equal(t, "{q0, q1, q2}", a.String())
}

func TestStateSet_Operations(t *testing.T) {
	s := NewStateSet("q0", "q2")
	other := NewStateSet("q2", "q3")

	assert.True(t, s.Contains("q2"))
	assert.False(t, s.Contains("q1"))
	assert.True(t, s.Intersects(other))
	assert.False(t, s.Intersects(NewStateSet("q1")))
	assert.Equal(t, NewStateSet("q0", "q2", "q3"), s.Union(other))
	assert.True(t, NewStateSet("q0").IsSubsetOf(s))
	assert.False(t, other.IsSubsetOf(s))
	assert.True(t, NewStateSet().Empty())
	assert.True(t, StateSet(nil).Equal(NewStateSet()))
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{"R", MoveRight, false},
		{"l", MoveLeft, false},
		{"stay", MoveStay, false},
		{"S", MoveStay, false},
		{"X", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMove(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResult_Message(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "No Survivors",
			res:  Result{Outcome: OutcomeRejected, Reason: ReasonNoSurvivingStates, Symbol: "b"},
			want: "rejected: no states survived reading 'b'",
		},
		{
			name: "Non Accepting Survivors",
			res: Result{
				Outcome: OutcomeRejected,
				Reason:  ReasonNotAccepting,
				Config:  Configuration{Kind: KindNFA, Active: NewStateSet("q1")},
			},
			want: "rejected: surviving states {q1} are all non-accepting",
		},
		{
			name: "Unrecognized",
			res:  Result{Outcome: OutcomeRejected, Reason: ReasonUnrecognizedSymbol, Symbol: "x"},
			want: "rejected: symbol 'x' not recognized",
		},
		{
			name: "Halted Final",
			res: Result{
				Outcome: OutcomeHalted,
				Reason:  ReasonFinalState,
				Config:  Configuration{Kind: KindTuring, State: "qf"},
			},
			want: "halted: reached final state qf",
		},
		{
			name: "Boundary At Start",
			res:  Result{Outcome: OutcomeBoundary, Reason: ReasonAtStart},
			want: "already at the first step",
		},
		{
			name: "Boundary At End",
			res:  Result{Outcome: OutcomeBoundary, Reason: ReasonAtEnd},
			want: "no further steps",
		},
		{
			name: "Boundary After Verdict",
			res: Result{
				Outcome: OutcomeBoundary,
				Reason:  ReasonAtEnd,
				Verdict: &Result{Outcome: OutcomeRejected, Reason: ReasonNoSurvivingStates, Symbol: "b"},
			},
			want: "no further steps (rejected: no states survived reading 'b')",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Message())
		})
	}
}

func TestEdge_String(t *testing.T) {
	assert.Equal(t, "(q0, '0') -> q1", Edge{From: "q0", Symbol: "0", To: "q1"}.String())
	assert.Equal(t, "(q0, 'ε') -> q0", Edge{From: "q0", Symbol: Epsilon, To: "q0"}.String())
	assert.Equal(t, "(q0, '0') -> (q0, '1', R)",
		Edge{From: "q0", Symbol: "0", To: "q0", Write: "1", Move: MoveRight}.String())
}
