package runner_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, name string) *automata.Session {
	t.Helper()
	sess, err := automata.New(registry.Builtin(name))
	require.NoError(t, err)
	return sess
}

func run(t *testing.T, name, input string, cyclic bool, commands string, opts ...runner.Option) string {
	t.Helper()
	out := &bytes.Buffer{}
	opts = append([]runner.Option{
		runner.WithInput(strings.NewReader(commands)),
		runner.WithOutput(out),
		runner.WithHeadless(true),
	}, opts...)
	r := runner.NewRunner(opts...)
	require.NoError(t, r.Run(context.Background(), newSession(t, name), input, cyclic))
	return out.String()
}

func TestRunner_StepsForwardAndBack(t *testing.T) {
	out := run(t, registry.ContainsOne, "01", false, "n\nn\nn\np\nq\nn\n")

	assert.Equal(t, strings.Join([]string{
		`contains-one [dfa] input "01"`,
		"#0 current configuration: q0 @0",
		"#1 current configuration: q0 @1",
		"#2 accepted: final configuration q1 @2",
		"#2 no further steps (accepted: final configuration q1 @2)",
		"#1 current configuration: q0 @1",
		"",
	}, "\n"), out, "nothing runs after quit")
}

func TestRunner_Trace(t *testing.T) {
	out := run(t, registry.ContainsOne, "1", false, "\nt\n")

	assert.Contains(t, out, "start    q0 @0")
	assert.Contains(t, out, "step 1   '1' (q0, '1') -> q1 => q1 @1 [accepted]")
}

func TestRunner_RunCommand(t *testing.T) {
	out := run(t, registry.BitFlipper, "01", false, "a\n")
	assert.Contains(t, out, "halted: reached final state qf")
}

func TestRunner_RunCommandStepLimit(t *testing.T) {
	out := run(t, registry.NFAExample, "01", true, "a\n", runner.WithMaxSteps(3))
	assert.Contains(t, out, "#3 current configuration: {q3}")
	assert.Contains(t, out, "error: step limit exceeded")
}

func TestRunner_Restart(t *testing.T) {
	out := run(t, registry.ContainsOne, "0", false, "n\nr\n")
	assert.Equal(t, 2, strings.Count(out, "#0 current configuration: q0 @0"))
}

func TestRunner_UnknownCommand(t *testing.T) {
	out := run(t, registry.ContainsOne, "0", false, "jump\nh\n")
	assert.Contains(t, out, `error: unknown command "jump"`)
	assert.Contains(t, out, runner.HelpText)
}

func TestRunner_Prompt(t *testing.T) {
	out := &bytes.Buffer{}
	r := runner.NewRunner(
		runner.WithInput(strings.NewReader("q\n")),
		runner.WithOutput(out),
	)
	require.NoError(t, r.Run(context.Background(), newSession(t, registry.ContainsOne), "0", false))
	assert.Contains(t, out.String(), runner.Prompt)
}

func TestRunner_StartError(t *testing.T) {
	r := runner.NewRunner(runner.WithInput(strings.NewReader("")), runner.WithOutput(&bytes.Buffer{}))
	err := r.Run(context.Background(), newSession(t, registry.ContainsOne), "01", true)
	assert.ErrorIs(t, err, domain.ErrCyclicUnsupported)
}

type blockingReader struct{ done chan struct{} }

func (b blockingReader) Read(p []byte) (int, error) {
	<-b.done
	return 0, nil
}

func TestRunner_ContextCancel(t *testing.T) {
	block := blockingReader{done: make(chan struct{})}
	defer close(block.done)

	ctx, cancel := context.WithCancel(context.Background())
	r := runner.NewRunner(runner.WithInput(block), runner.WithOutput(&bytes.Buffer{}), runner.WithHeadless(true))

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx, newSession(t, registry.ContainsOne), "0", false) }()
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop on cancellation")
	}
}

func TestParseCommand(t *testing.T) {
	tests := map[string]runner.Command{
		"":        runner.CmdNext,
		" N ":     runner.CmdNext,
		"back":    runner.CmdPrevious,
		"run":     runner.CmdRun,
		"t":       runner.CmdTrace,
		"restart": runner.CmdRestart,
		"?":       runner.CmdHelp,
		"exit":    runner.CmdQuit,
	}
	for line, want := range tests {
		got, err := runner.ParseCommand(line)
		require.NoError(t, err, line)
		assert.Equal(t, want, got, line)
	}
	_, err := runner.ParseCommand("x")
	assert.Error(t, err)
}
