package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// Renderer presents a running simulation.
type Renderer interface {
	Begin(def *schema.Definition, input string, cyclic bool)
	Result(res domain.Result)
	Trace(records []domain.StepRecord)
	Help()
	Error(err error)
}

// TextRenderer writes plain, uncolored lines. It is the default Renderer.
type TextRenderer struct {
	W io.Writer
}

// NewTextRenderer creates a TextRenderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w}
}

func (t *TextRenderer) Begin(def *schema.Definition, input string, cyclic bool) {
	mode := ""
	if cyclic {
		mode = " (cyclic)"
	}
	fmt.Fprintf(t.W, "%s [%s] input %q%s\n", def.Name, def.Kind, input, mode)
}

func (t *TextRenderer) Result(res domain.Result) {
	if res.Index >= 0 {
		fmt.Fprintf(t.W, "#%d ", res.Index)
	}
	fmt.Fprintln(t.W, res.Message())
}

func (t *TextRenderer) Trace(records []domain.StepRecord) {
	for _, rec := range records {
		if rec.Label == domain.StartLabel {
			fmt.Fprintf(t.W, "%-8s %s\n", rec.Label, rec.After)
			continue
		}
		edges := make([]string, len(rec.Edges))
		for i, e := range rec.Edges {
			edges[i] = e.String()
		}
		fmt.Fprintf(t.W, "%-8s '%s' %s => %s [%s]\n",
			rec.Label, domain.DisplaySymbol(rec.Symbol), strings.Join(edges, "; "), rec.After, rec.Outcome)
	}
}

func (t *TextRenderer) Help() {
	fmt.Fprintln(t.W, HelpText)
}

func (t *TextRenderer) Error(err error) {
	fmt.Fprintf(t.W, "error: %v\n", err)
}
