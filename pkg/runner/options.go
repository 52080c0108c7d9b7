package runner

import (
	"io"
	"log/slog"
)

// Option configures the Runner.
type Option func(*Runner)

// WithInput sets the command stream.
func WithInput(r io.Reader) Option {
	return func(rn *Runner) {
		rn.Input = r
	}
}

// WithOutput sets where prompts go. The default TextRenderer writes here too.
func WithOutput(w io.Writer) Option {
	return func(rn *Runner) {
		rn.Output = w
	}
}

// WithRenderer replaces the default TextRenderer.
func WithRenderer(renderer Renderer) Option {
	return func(rn *Runner) {
		rn.Renderer = renderer
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		rn.Logger = logger
	}
}

// WithHeadless suppresses prompts.
func WithHeadless(headless bool) Option {
	return func(rn *Runner) {
		rn.Headless = headless
	}
}

// WithMaxSteps bounds the run command. Cyclic sessions need it.
func WithMaxSteps(n int) Option {
	return func(rn *Runner) {
		rn.MaxSteps = n
	}
}
