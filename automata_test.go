package automata

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, name string, opts ...Option) *Session {
	t.Helper()
	def := registry.Builtin(name)
	require.NotNil(t, def, "builtin %s", name)
	s, err := New(def, opts...)
	require.NoError(t, err)
	return s
}

func TestNew_RejectsInvalidDefinition(t *testing.T) {
	def := registry.Builtin(registry.BitFlipper)
	def.Transitions[0].To = []string{"nowhere"}
	def.Transitions[1].Move = "X"

	_, err := New(def)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDefinition))
	assert.Equal(t, []string{schema.CodeInvalidTarget, schema.CodeMalformedMove}, codes(schema.Issues(err)))

	_, err = New(nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidDefinition))
}

func codes(issues []schema.Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Code
	}
	return out
}

func TestSession_NFAExample(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepts 01", func(t *testing.T) {
		s := newSession(t, registry.NFAExample)
		res, err := s.Start(ctx, "01", false)
		require.NoError(t, err)
		assert.Equal(t, domain.NewStateSet("q0"), res.Config.Active)

		res, err = s.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeContinue, res.Outcome)

		res, err = s.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeAccepted, res.Outcome)
		assert.Equal(t, domain.NewStateSet("q3"), res.Config.Active)
		assert.True(t, res.Accepting)
		assert.True(t, s.Finished())

		trace := s.Trace()
		require.Len(t, trace, 3)
		assert.Equal(t, domain.StartLabel, trace[0].Label)
		assert.Equal(t, "step 2", trace[2].Label)
		assert.Equal(t, "1", trace[2].Symbol)
		assert.Equal(t, []domain.Edge{{From: "q1", Symbol: "1", To: "q3"}}, trace[2].Edges)

		res, err = s.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeBoundary, res.Outcome)
		assert.Equal(t, domain.ReasonAtEnd, res.Reason)
	})

	t.Run("Rejects 0b", func(t *testing.T) {
		s := newSession(t, registry.NFAExample)
		_, err := s.Start(ctx, "0b", false)
		require.NoError(t, err)

		_, err = s.Next(ctx)
		require.NoError(t, err)
		res, err := s.Next(ctx)
		require.NoError(t, err)

		assert.Equal(t, domain.OutcomeRejected, res.Outcome)
		assert.Equal(t, domain.ReasonNoSurvivingStates, res.Reason)
		assert.Equal(t, "rejected: no states survived reading 'b'", res.Message())
		assert.Len(t, s.Trace(), 2, "a failed step is never recorded")
		assert.Equal(t, 1, s.Index())
	})

	t.Run("Unrecognized Symbol Ends The Run", func(t *testing.T) {
		s := newSession(t, registry.NFAExample)
		_, err := s.Start(ctx, "x0", false)
		require.NoError(t, err)

		res, err := s.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.ReasonUnrecognizedSymbol, res.Reason)
		assert.Equal(t, "x", res.Symbol)

		res, err = s.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeBoundary, res.Outcome, "no stepping after rejection until restart")

		_, err = s.Start(ctx, "01", false)
		require.NoError(t, err)
		assert.False(t, s.Finished())
	})
}

func TestSession_ContainsOne(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		input   string
		outcome domain.Outcome
	}{
		{"0001", domain.OutcomeAccepted},
		{"000", domain.OutcomeRejected},
		{"", domain.OutcomeRejected},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := newSession(t, registry.ContainsOne)
			_, err := s.Start(ctx, tt.input, false)
			require.NoError(t, err)

			res, err := s.RunToCompletion(ctx, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Len(t, s.Trace(), len(tt.input)+1)
		})
	}
}

func TestSession_BitFlipper(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, registry.BitFlipper)
	_, err := s.Start(ctx, "0000", false)
	require.NoError(t, err)

	res, err := s.RunToCompletion(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeHalted, res.Outcome)
	assert.Equal(t, domain.ReasonFinalState, res.Reason)
	assert.Equal(t, "1111_", res.Config.TapeString())
	assert.Equal(t, 4, res.Config.Head)

	for _, rec := range s.Trace() {
		assert.GreaterOrEqual(t, rec.After.Head, 0)
		assert.Less(t, rec.After.Head, len(rec.After.Tape))
	}
}

func TestSession_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{registry.NFAExample, registry.ZeroThenOne, registry.BitFlipper} {
		t.Run(name, func(t *testing.T) {
			s := newSession(t, name)
			_, err := s.Start(ctx, "0101", false)
			require.NoError(t, err)

			for {
				before, _ := s.Current()
				prev := s.Index()
				res, err := s.Next(ctx)
				require.NoError(t, err)
				if res.Index == prev {
					break // nothing recorded: boundary or failed step
				}

				back, err := s.Previous(ctx)
				require.NoError(t, err)
				assert.Equal(t, before, back.Config, "retreat must restore the previous configuration exactly")

				replay, err := s.Next(ctx)
				require.NoError(t, err)
				assert.Equal(t, res, replay, "replaying a stored step yields the same result")

				if res.Terminal() {
					break
				}
			}
		})
	}
}

func TestSession_Boundaries(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, registry.ContainsOne)

	res, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeBoundary, res.Outcome)
	assert.Equal(t, domain.ReasonNotStarted, res.Reason)
	assert.Equal(t, -1, res.Index)

	_, err = s.Start(ctx, "1", false)
	require.NoError(t, err)
	res, err = s.Previous(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonAtStart, res.Reason)
	assert.Equal(t, 0, res.Index)

	s.Reset(ctx)
	assert.Equal(t, -1, s.Index())
	assert.Empty(t, s.Trace())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_ReplayToUnrecordedVerdict(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, registry.NFAExample)
	_, err := s.Start(ctx, "0b", false)
	require.NoError(t, err)

	_, err = s.Next(ctx)
	require.NoError(t, err)
	res, err := s.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeRejected, res.Outcome)
	assert.Equal(t, 1, res.Index)

	back, err := s.Previous(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, back.Index)

	res, err = s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, res.Outcome, "the verdict is shown again on reaching the tail")
	assert.Equal(t, domain.ReasonNoSurvivingStates, res.Reason)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, s.Peek(), res)

	res, err = s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeBoundary, res.Outcome)
	assert.Equal(t, domain.ReasonAtEnd, res.Reason)
	require.NotNil(t, res.Verdict)
	assert.Equal(t, domain.OutcomeRejected, res.Verdict.Outcome)
	assert.Equal(t, "no further steps (rejected: no states survived reading 'b')", res.Message())
}

func TestSession_Cyclic(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, registry.NFAExample)

	_, err := s.Start(ctx, "", true)
	assert.True(t, errors.Is(err, domain.ErrEmptyCyclicInput))

	_, err = newSession(t, registry.ContainsOne).Start(ctx, "01", true)
	assert.True(t, errors.Is(err, domain.ErrCyclicUnsupported))

	_, err = s.Start(ctx, "01", true)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		res, err := s.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeContinue, res.Outcome)
		assert.False(t, res.Config.Active.Empty())
	}
	assert.Len(t, s.Trace(), 7)

	res, err := s.RunToCompletion(ctx, 10)
	assert.True(t, errors.Is(err, domain.ErrStepLimit))
	assert.Equal(t, domain.OutcomeContinue, res.Outcome)

	_, err = s.RunToCompletion(ctx, 0)
	assert.True(t, errors.Is(err, domain.ErrStepLimit))
}

func TestSession_Hooks(t *testing.T) {
	ctx := context.Background()
	var events []domain.EventType
	var replayed int
	record := func(_ context.Context, ev *domain.StepEvent) {
		events = append(events, ev.Type)
		if ev.Replayed && ev.Type == domain.EventStep {
			replayed++
		}
	}
	hooks := domain.LifecycleHooks{OnStart: record, OnStep: record, OnRetreat: record, OnVerdict: record, OnReset: record}

	s := newSession(t, registry.ContainsOne, WithLifecycleHooks(hooks), WithSessionID("s-1"))
	_, _ = s.Start(ctx, "1", false)
	_, _ = s.Next(ctx)
	_, _ = s.Previous(ctx)
	_, _ = s.Next(ctx)
	s.Reset(ctx)

	assert.Equal(t, []domain.EventType{
		domain.EventStart,
		domain.EventStep,
		domain.EventVerdict,
		domain.EventRetreat,
		domain.EventStep,
		domain.EventReset,
	}, events)
	assert.Equal(t, 1, replayed)
}

func TestResume(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, registry.NFAExample, WithSessionID("abc"))
	_, err := s.Start(ctx, "0b", false)
	require.NoError(t, err)
	_, _ = s.Next(ctx)
	_, _ = s.Next(ctx) // rejected, not recorded
	_, _ = s.Previous(ctx)

	snap := s.Snapshot()
	assert.Equal(t, "abc", snap.SessionID)
	assert.Equal(t, 0, snap.Index)
	require.NotNil(t, snap.Verdict)

	resumed, err := Resume(registry.Builtin(registry.NFAExample), snap)
	require.NoError(t, err)
	assert.Equal(t, "abc", resumed.ID())
	assert.Equal(t, s.Trace(), resumed.Trace())
	assert.True(t, resumed.Finished())

	res, err := resumed.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, domain.NewStateSet("q1"), res.Config.Active)

	res, err = resumed.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonAtEnd, res.Reason)

	_, err = Resume(registry.Builtin(registry.ContainsOne), snap)
	assert.True(t, errors.Is(err, ErrSnapshotMismatch))
}

func TestResume_OpenRun(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, registry.BitFlipper)
	_, err := s.Start(ctx, "01", false)
	require.NoError(t, err)
	_, _ = s.Next(ctx)

	resumed, err := Resume(registry.Builtin(registry.BitFlipper), s.Snapshot())
	require.NoError(t, err)

	res, err := resumed.RunToCompletion(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "10_", res.Config.TapeString())
	assert.Equal(t, domain.OutcomeHalted, res.Outcome)
}
