package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/muesli/termenv"
)

// Printer is the terminal runner.Renderer: colored verdicts, the input with the
// head in brackets, and tables for the definition and the trace.
type Printer struct {
	w        io.Writer
	out      *termenv.Output
	markdown MarkdownRenderer

	input  string
	cyclic bool
}

var _ runner.Renderer = (*Printer)(nil)

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithMarkdown renders definition descriptions, e.g. with NewMarkdownRenderer.
func WithMarkdown(md MarkdownRenderer) PrinterOption {
	return func(p *Printer) {
		p.markdown = md
	}
}

// NewPrinter creates a Printer writing to w. Colors are used only when w is a terminal.
func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{w: w, out: termenv.NewOutput(w)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) Begin(def *schema.Definition, input string, cyclic bool) {
	p.input, p.cyclic = input, cyclic

	title := fmt.Sprintf("%s (%s)", def.Name, def.Kind)
	fmt.Fprintln(p.w, p.out.String(title).Bold())
	if def.Description != "" {
		desc := def.Description
		if p.markdown != nil {
			if rendered, err := p.markdown(desc); err == nil {
				desc = rendered
			}
		}
		fmt.Fprintln(p.w, strings.TrimRight(desc, "\n"))
	}
	if err := TransitionTable(p.w, def); err != nil {
		p.Error(err)
	}

	mode := ""
	if cyclic {
		mode = " (cyclic)"
	}
	fmt.Fprintf(p.w, "input %q%s\n\n", input, mode)
}

func (p *Printer) Result(res domain.Result) {
	if res.Index < 0 {
		fmt.Fprintln(p.w, Styled(p.out, res))
		return
	}
	view := InputView(p.input, res.Config, p.cyclic)
	fmt.Fprintf(p.w, "#%-3d %s  %s\n", res.Index, view, Styled(p.out, res))
}

func (p *Printer) Trace(records []domain.StepRecord) {
	if err := TraceTable(p.w, records); err != nil {
		p.Error(err)
	}
}

func (p *Printer) Help() {
	fmt.Fprintln(p.w, p.out.String(runner.HelpText).Faint())
}

func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.out.String("error: "+err.Error()).Foreground(p.out.Color("#ef4444")))
}
