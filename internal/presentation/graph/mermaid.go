package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// Overlay holds run data drawn on top of the static diagram.
type Overlay struct {
	Visited []string
	Current []string
}

// OverlayFromTrace marks every state a run has reached, up to and including the
// record under the cursor, and the states of that record as current.
func OverlayFromTrace(records []domain.StepRecord, index int) *Overlay {
	if index < 0 || index >= len(records) {
		return nil
	}
	o := &Overlay{}
	for _, rec := range records[:index+1] {
		o.Visited = append(o.Visited, statesOf(rec.After)...)
	}
	o.Current = statesOf(records[index].After)
	return o
}

func statesOf(c domain.Configuration) []string {
	if c.Kind == domain.KindNFA {
		return append([]string(nil), c.Active...)
	}
	if c.State == "" {
		return nil
	}
	return []string{c.State}
}

// GenerateMermaid renders the definition as a left-to-right flowchart:
// states are circles, accepting (final) states double circles, and parallel
// transitions between two states share one labelled arrow.
func GenerateMermaid(def *schema.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	sb.WriteString("    _start_((\" \")) --> " + sanitizeMermaidID(def.Start) + "\n")
	for _, state := range def.States {
		opener, closer := "((", "))"
		if def.IsAccepting(state) {
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(state), opener, escapeLabel(state), closer)
	}

	type pair struct{ from, to string }
	labels := make(map[pair][]string)
	var order []pair
	for _, t := range def.Transitions {
		for _, to := range t.To {
			p := pair{t.From, to}
			if _, ok := labels[p]; !ok {
				order = append(order, p)
			}
			labels[p] = append(labels[p], edgeLabel(def.Kind, t))
		}
	}
	for _, p := range order {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(p.from), escapeLabel(strings.Join(labels[p], ", ")), sanitizeMermaidID(p.to))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text stays readable on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		current := make(map[string]bool, len(overlay.Current))
		for _, s := range overlay.Current {
			current[s] = true
		}
		seen := make(map[string]bool)
		visited := make([]string, 0, len(overlay.Visited))
		for _, s := range overlay.Visited {
			if !seen[s] && !current[s] && s != "" {
				seen[s] = true
				visited = append(visited, s)
			}
		}
		sort.Strings(visited)
		for _, s := range visited {
			fmt.Fprintf(&sb, "    class %s visited;\n", sanitizeMermaidID(s))
		}
		for _, s := range domain.NewStateSet(overlay.Current...) {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(s))
		}
	}

	return sb.String()
}

func edgeLabel(kind domain.Kind, t schema.Transition) string {
	symbol := domain.DisplaySymbol(t.Symbol)
	if kind == domain.KindTuring {
		return fmt.Sprintf("%s/%s,%s", symbol, t.Write, t.Move)
	}
	return symbol
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	sb.WriteString("s_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
