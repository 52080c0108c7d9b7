package tui

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
)

// Cells renders a row of symbols with the cell under the head in brackets,
// e.g. " 0  0 [1] _ ". A head outside the row brackets nothing.
func Cells(cells []string, head int) string {
	var sb strings.Builder
	for i, c := range cells {
		if i == head {
			sb.WriteString("[" + c + "]")
		} else {
			sb.WriteString(" " + c + " ")
		}
	}
	return sb.String()
}

// InputView shows what the machine is looking at: the tape for a Turing
// machine, the input with the next symbol bracketed for finite automata.
// Cyclic inputs wrap around.
func InputView(input string, cfg domain.Configuration, cyclic bool) string {
	if cfg.Kind == domain.KindTuring {
		return Cells(cfg.Tape, cfg.Head)
	}
	symbols := domain.Tokenize(input)
	head := cfg.Position
	if cyclic && len(symbols) > 0 {
		head %= len(symbols)
	}
	return Cells(symbols, head)
}

// EdgesText joins the edges of one step: "(q0, '0') -> q1; (q0, '0') -> q2".
func EdgesText(edges []domain.Edge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}

// ResultText is the short cell text for a record outcome.
func ResultText(outcome domain.Outcome, reason domain.Reason) string {
	if reason == domain.ReasonNone {
		return string(outcome)
	}
	return string(outcome) + " (" + string(reason) + ")"
}

// Styled colors a verdict message for out: green when accepted, red when
// rejected, yellow when halted, faint for navigation boundaries.
func Styled(out *termenv.Output, res domain.Result) termenv.Style {
	s := out.String(res.Message())
	switch res.Outcome {
	case domain.OutcomeAccepted:
		return s.Foreground(out.Color("#22c55e")).Bold()
	case domain.OutcomeRejected:
		return s.Foreground(out.Color("#ef4444")).Bold()
	case domain.OutcomeHalted:
		if res.Accepting {
			return s.Foreground(out.Color("#22c55e")).Bold()
		}
		return s.Foreground(out.Color("#eab308")).Bold()
	case domain.OutcomeBoundary:
		return s.Faint()
	}
	return s
}
