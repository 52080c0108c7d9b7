package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/muesli/termenv"
)

// RunOptions configures an interactive simulation.
type RunOptions struct {
	Input    string
	Cyclic   bool
	Headless bool
	Debug    bool
	MaxSteps int
	Version  string
}

// NewLogger is the CLI logger: stderr at debug level with --debug, silent otherwise.
func NewLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// RunInteractive steps def with commands read from in. Headless runs print
// plain text without prompt or banner, for pipes and scripts.
func RunInteractive(ctx context.Context, def *schema.Definition, opts RunOptions, in io.Reader, out io.Writer, logger *slog.Logger) error {
	input, err := runner.SanitizeInput(opts.Input)
	if err != nil {
		return err
	}

	sessOpts := []automata.Option{automata.WithLogger(logger)}
	if opts.Debug {
		sessOpts = append(sessOpts, automata.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	sess, err := automata.New(def, sessOpts...)
	if err != nil {
		return err
	}

	runnerOpts := []runner.Option{
		runner.WithInput(in),
		runner.WithOutput(out),
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless),
	}
	if opts.MaxSteps > 0 {
		runnerOpts = append(runnerOpts, runner.WithMaxSteps(opts.MaxSteps))
	}
	if !opts.Headless {
		tui.PrintBanner(out, opts.Version)
		fmt.Fprintln(out, runner.HelpText)
		runnerOpts = append(runnerOpts, runner.WithRenderer(tui.NewPrinter(out, tui.WithMarkdown(tui.NewMarkdownRenderer()))))
	}

	return runner.NewRunner(runnerOpts...).Run(ctx, sess, input, opts.Cyclic)
}

// TraceReport is the --json output of the trace command.
type TraceReport struct {
	Automaton string              `json:"automaton"`
	Kind      domain.Kind         `json:"kind"`
	Input     string              `json:"input"`
	Verdict   domain.Result       `json:"verdict"`
	Message   string              `json:"message"`
	Complete  bool                `json:"complete"`
	Records   []domain.StepRecord `json:"records"`
}

// Trace runs def on input to its verdict (or maxSteps) and writes the trace as
// a table or JSON. Hitting the step budget still prints the partial trace and
// returns domain.ErrStepLimit.
func Trace(ctx context.Context, def *schema.Definition, input string, cyclic bool, maxSteps int, asJSON bool, out io.Writer) error {
	clean, err := runner.SanitizeInput(input)
	if err != nil {
		return err
	}
	sess, err := automata.New(def)
	if err != nil {
		return err
	}
	if _, err := sess.Start(ctx, clean, cyclic); err != nil {
		return err
	}
	res, runErr := sess.RunToCompletion(ctx, maxSteps)
	if runErr != nil && !errors.Is(runErr, domain.ErrStepLimit) {
		return runErr
	}

	if asJSON {
		report := TraceReport{
			Automaton: def.Name,
			Kind:      def.Kind,
			Input:     clean,
			Verdict:   res,
			Message:   res.Message(),
			Complete:  runErr == nil,
			Records:   sess.Trace(),
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		return runErr
	}

	if err := tui.TraceTable(out, sess.Trace()); err != nil {
		return err
	}
	fmt.Fprintln(out, tui.Styled(termenv.NewOutput(out), res))
	return runErr
}

// Describe writes the description and transition table of def.
func Describe(def *schema.Definition, out io.Writer) error {
	fmt.Fprintf(out, "%s (%s)\n", def.Name, def.Kind)
	if def.Description != "" {
		md, err := tui.NewMarkdownRenderer()(def.Description)
		if err != nil {
			md = def.Description
		}
		fmt.Fprintln(out, strings.TrimRight(md, "\n"))
	}
	return tui.TransitionTable(out, def)
}
