package domain

import "fmt"

// StartLabel labels the initial record of every history.
const StartLabel = "start"

// StepLabel returns the label of the n-th applied step (1-based).
func StepLabel(n int) string {
	return fmt.Sprintf("step %d", n)
}

// Edge is a transition actually used during a step.
// Write and Move are only set for Turing machine edges.
type Edge struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
	Write  string `json:"write,omitempty"`
	Move   Move   `json:"move,omitempty"`
}

// String renders the edge as (q0, '0') -> q1, or (q0, '0') -> (q1, '1', R) for a Turing machine.
func (e Edge) String() string {
	if e.Move != "" {
		return fmt.Sprintf("(%s, '%s') -> (%s, '%s', %s)", e.From, DisplaySymbol(e.Symbol), e.To, e.Write, e.Move)
	}
	return fmt.Sprintf("(%s, '%s') -> %s", e.From, DisplaySymbol(e.Symbol), e.To)
}

// StepRecord is one entry of the append-only step history.
type StepRecord struct {
	Label  string        `json:"label"`
	Symbol string        `json:"symbol,omitempty"`
	Before Configuration `json:"before"`
	Edges  []Edge        `json:"edges,omitempty"`
	After  Configuration `json:"after"`

	// Outcome is OutcomeContinue unless applying this step ended the run
	// (e.g. the last input symbol was consumed, or a final state was entered).
	Outcome Outcome `json:"outcome"`
	Reason  Reason  `json:"reason,omitempty"`
}

// Clone deep-copies the record.
func (r StepRecord) Clone() StepRecord {
	out := r
	out.Before = r.Before.Clone()
	out.After = r.After.Clone()
	if r.Edges != nil {
		out.Edges = append([]Edge(nil), r.Edges...)
	}
	return out
}
