package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"golang.org/x/term"
)

// DefaultMaxSteps bounds the run command when no limit is configured.
const DefaultMaxSteps = 10000

// Prompt is printed before each command unless the runner is headless.
const Prompt = "> "

// Runner reads commands and applies them to a session.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Renderer Renderer
	Logger   *slog.Logger
	Headless bool
	MaxSteps int
}

// NewRunner creates a runner on stdin/stdout with a TextRenderer.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:    os.Stdin,
		Output:   os.Stdout,
		Logger:   logging.NewNop(),
		MaxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Renderer == nil {
		r.Renderer = NewTextRenderer(r.Output)
	}
	return r
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run starts the session on input and processes commands until quit, end of
// input or ctx cancellation. Only errors starting the session are returned.
func (r *Runner) Run(ctx context.Context, sess *automata.Session, input string, cyclic bool) error {
	res, err := sess.Start(ctx, input, cyclic)
	if err != nil {
		return err
	}
	r.Renderer.Begin(sess.Definition(), input, cyclic)
	r.Renderer.Result(res)

	lines := r.readLines(ctx)
	for {
		if !r.Headless {
			fmt.Fprint(r.Output, Prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			r.Renderer.Error(err)
			continue
		}
		r.Logger.Debug("command", "command", cmd.String())
		if cmd == CmdQuit {
			return nil
		}
		if err := r.apply(ctx, sess, cmd, input, cyclic); err != nil {
			r.Renderer.Error(err)
		}
	}
}

func (r *Runner) apply(ctx context.Context, sess *automata.Session, cmd Command, input string, cyclic bool) error {
	switch cmd {
	case CmdNext, CmdPrevious:
		res, err := sess.Step(ctx, cmd == CmdNext)
		if err != nil {
			return err
		}
		r.Renderer.Result(res)
	case CmdRun:
		res, err := sess.RunToCompletion(ctx, r.MaxSteps)
		if err != nil && !errors.Is(err, domain.ErrStepLimit) {
			return err
		}
		if res.Outcome != "" {
			r.Renderer.Result(res)
		}
		return err
	case CmdTrace:
		r.Renderer.Trace(sess.Trace())
	case CmdRestart:
		res, err := sess.Start(ctx, input, cyclic)
		if err != nil {
			return err
		}
		r.Renderer.Result(res)
	case CmdHelp:
		r.Renderer.Help()
	}
	return nil
}

// readLines feeds the command channel; it is closed at end of input.
func (r *Runner) readLines(ctx context.Context) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r.Input)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			r.Logger.Warn("failed to read commands", "err", err)
		}
	}()
	return ch
}
