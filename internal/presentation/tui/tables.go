package tui

import (
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/olekukonko/tablewriter"
)

// TraceTable prints one row per step record.
func TraceTable(w io.Writer, records []domain.StepRecord) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Step", "Symbol", "Previous", "Transition", "Result"})

	for _, rec := range records {
		symbol, previous, transition := "", "", ""
		if rec.Label != domain.StartLabel {
			symbol = domain.DisplaySymbol(rec.Symbol)
			previous = rec.Before.String()
			transition = EdgesText(rec.Edges)
		}
		if err := table.Append([]string{
			rec.Label,
			symbol,
			previous,
			transition,
			rec.After.String() + "  " + ResultText(rec.Outcome, rec.Reason),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// TransitionTable prints the static transition relation of a definition.
func TransitionTable(w io.Writer, def *schema.Definition) error {
	table := tablewriter.NewWriter(w)
	turing := def.Kind == domain.KindTuring
	if turing {
		table.Header([]string{"State", "Symbol", "Next", "Write", "Move"})
	} else {
		table.Header([]string{"State", "Symbol", "Next"})
	}

	for _, t := range def.Transitions {
		state := t.From
		if t.From == def.Start {
			state = "→ " + state
		}
		if def.IsAccepting(t.From) {
			state += " *"
		}
		row := []string{state, domain.DisplaySymbol(t.Symbol), strings.Join(t.To, ", ")}
		if turing {
			row = append(row, t.Write, string(t.Move))
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
