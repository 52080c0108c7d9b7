package automata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/history"
	"github.com/aretw0/automata/pkg/schema"
)

// Session is one simulation of one automaton: the compiled machine, its step
// history and the verdict once the run ended.
// A Session is not safe for concurrent use; see pkg/session for shared access.
type Session struct {
	def     *schema.Definition
	machine runtime.Machine
	history *history.Controller

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
	id     string

	input   string
	cyclic  bool
	verdict *domain.Result
}

// New validates and compiles def. Configuration errors are reported here,
// never during simulation.
func New(def *schema.Definition, opts ...Option) (*Session, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: definition is nil", domain.ErrInvalidDefinition)
	}
	def = def.Clone()
	if err := def.Validate(); err != nil {
		return nil, err
	}

	machine, err := runtime.Compile(def)
	if err != nil {
		return nil, err
	}

	s := &Session{
		def:     def,
		machine: machine,
		history: history.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("automaton", def.Name)
	if s.id != "" {
		s.logger = s.logger.With("session_id", s.id)
	}
	if s.now == nil {
		s.now = time.Now
	}

	return s, nil
}

// Start resets the machine from its configuration and input and records the
// initial configuration. Cyclic mode is only available for NFAs and needs a
// non-empty input. On error the previous run, if any, is left untouched.
func (s *Session) Start(ctx context.Context, input string, cyclic bool) (domain.Result, error) {
	initial, err := s.machine.Begin(input, cyclic)
	if err != nil {
		return domain.Result{}, fmt.Errorf("start %s: %w", s.def.Name, err)
	}

	s.history.Begin(domain.StepRecord{
		Label:   domain.StartLabel,
		Before:  initial,
		After:   initial,
		Outcome: domain.OutcomeContinue,
	})
	s.input = input
	s.cyclic = cyclic
	s.verdict = nil

	res := domain.Result{
		Outcome:   domain.OutcomeContinue,
		Config:    initial.Clone(),
		Accepting: s.machine.Accepting(initial),
		Index:     0,
	}

	s.logger.Debug("simulation started", "input", input, "cyclic", cyclic)
	s.emit(ctx, s.hooks.OnStart, domain.EventStart, res, domain.StartLabel, false)
	return res, nil
}

// Next is Step(ctx, true).
func (s *Session) Next(ctx context.Context) (domain.Result, error) {
	return s.Step(ctx, true)
}

// Previous is Step(ctx, false).
func (s *Session) Previous(ctx context.Context) (domain.Result, error) {
	return s.Step(ctx, false)
}

// Step moves forward or backward.
//
// Backward republishes the stored previous configuration. Forward replays a
// stored record when the cursor was rewound, and otherwise asks the engine for
// a new step; a step that fails (unrecognized symbol, no transition) is never
// recorded, so replaying up to the tail republishes the verdict instead.
// Moving past either end of the history yields OutcomeBoundary.
func (s *Session) Step(ctx context.Context, forward bool) (domain.Result, error) {
	if !s.history.Started() {
		return domain.Result{Outcome: domain.OutcomeBoundary, Reason: domain.ReasonNotStarted, Index: history.NoSimulation}, nil
	}
	if !forward {
		return s.retreat(ctx), nil
	}

	if rec, ok := s.history.Advance(); ok {
		s.machine.Restore(rec.After)
		res := s.recordResult(rec)
		if s.verdict != nil && s.history.AtTail() && s.verdict.Index == s.history.Index() {
			// The run ended on a step that was never recorded.
			res = *s.Verdict()
		}
		s.logger.Debug("step replayed", "index", res.Index, "outcome", res.Outcome)
		s.emit(ctx, s.hooks.OnStep, domain.EventStep, res, rec.Label, true)
		return res, nil
	}

	if s.verdict != nil {
		return s.boundary(domain.ReasonAtEnd), nil
	}

	before := s.machine.Current()
	adv := s.machine.Advance()

	label := ""
	if adv.Applied {
		label = domain.StepLabel(s.history.Len())
		rec := domain.StepRecord{
			Label:   label,
			Symbol:  adv.Symbol,
			Before:  before,
			Edges:   adv.Edges,
			After:   adv.After,
			Outcome: adv.Outcome,
			Reason:  adv.Reason,
		}
		if err := s.history.Append(rec); err != nil {
			// Unreachable while the cursor invariant holds; undo the engine move.
			s.machine.Restore(before)
			return domain.Result{}, fmt.Errorf("record step: %w", err)
		}
	}

	res := domain.Result{
		Outcome:   adv.Outcome,
		Reason:    adv.Reason,
		Symbol:    adv.Symbol,
		Config:    adv.After.Clone(),
		Accepting: s.machine.Accepting(adv.After),
		Index:     s.history.Index(),
	}

	if adv.Applied {
		s.logger.Debug("step applied", "index", res.Index, "symbol", adv.Symbol, "outcome", res.Outcome)
		s.emit(ctx, s.hooks.OnStep, domain.EventStep, res, label, false)
	}
	if res.Terminal() {
		verdict := res
		s.verdict = &verdict
		s.logger.Info("simulation finished", "outcome", res.Outcome, "reason", res.Reason, "index", res.Index)
		s.emit(ctx, s.hooks.OnVerdict, domain.EventVerdict, res, label, false)
	}
	return res, nil
}

func (s *Session) retreat(ctx context.Context) domain.Result {
	rec, ok := s.history.Retreat()
	if !ok {
		return s.boundary(domain.ReasonAtStart)
	}
	s.machine.Restore(rec.After)

	res := domain.Result{
		Outcome:   domain.OutcomeContinue,
		Symbol:    rec.Symbol,
		Config:    rec.After,
		Accepting: s.machine.Accepting(rec.After),
		Index:     s.history.Index(),
	}
	s.logger.Debug("step retreated", "index", res.Index)
	s.emit(ctx, s.hooks.OnRetreat, domain.EventRetreat, res, rec.Label, true)
	return res
}

// recordResult republishes a stored record, terminal outcome included.
func (s *Session) recordResult(rec domain.StepRecord) domain.Result {
	return domain.Result{
		Outcome:   rec.Outcome,
		Reason:    rec.Reason,
		Symbol:    rec.Symbol,
		Config:    rec.After,
		Accepting: s.machine.Accepting(rec.After),
		Index:     s.history.Index(),
	}
}

func (s *Session) boundary(reason domain.Reason) domain.Result {
	res := domain.Result{Outcome: domain.OutcomeBoundary, Reason: reason, Index: s.history.Index()}
	if rec, ok := s.history.Current(); ok {
		res.Config = rec.After
		res.Accepting = s.machine.Accepting(rec.After)
	}
	if reason == domain.ReasonAtEnd {
		res.Verdict = s.Verdict()
	}
	return res
}

// RunToCompletion steps forward until the run ends and returns the verdict.
// Cyclic runs never end on their own, so they need maxSteps > 0. When the
// budget is exhausted first, the last result is returned with ErrStepLimit.
func (s *Session) RunToCompletion(ctx context.Context, maxSteps int) (domain.Result, error) {
	if !s.history.Started() {
		return s.Step(ctx, true)
	}
	if s.cyclic && maxSteps <= 0 {
		return domain.Result{}, fmt.Errorf("%w: cyclic runs need a positive step budget", domain.ErrStepLimit)
	}

	var last domain.Result
	for steps := 0; maxSteps <= 0 || steps < maxSteps; steps++ {
		res, err := s.Next(ctx)
		if err != nil {
			return res, err
		}
		if res.Outcome == domain.OutcomeBoundary {
			if s.verdict != nil {
				return *s.verdict, nil
			}
			return res, nil
		}
		last = res
		if res.Terminal() && s.history.AtTail() {
			return res, nil
		}
	}
	return last, fmt.Errorf("%w: %d steps", domain.ErrStepLimit, maxSteps)
}

// Reset clears the run: the history is emptied and the verdict dropped.
func (s *Session) Reset(ctx context.Context) {
	prev := s.history.Index()
	s.history.Reset()
	s.input = ""
	s.cyclic = false
	s.verdict = nil

	s.logger.Debug("simulation reset")
	s.emit(ctx, s.hooks.OnReset, domain.EventReset, domain.Result{Outcome: domain.OutcomeBoundary, Reason: domain.ReasonNotStarted, Index: prev}, "", false)
}

// Trace returns the ordered step records for display.
func (s *Session) Trace() []domain.StepRecord {
	return s.history.Records()
}

// Current returns the configuration under the history cursor.
func (s *Session) Current() (domain.Configuration, bool) {
	rec, ok := s.history.Current()
	if !ok {
		return domain.Configuration{}, false
	}
	return rec.After, true
}

// Peek describes the cursor without moving it: the stored verdict when the
// cursor sits where the run ended, a continue result otherwise, and a
// not_started boundary before Start.
func (s *Session) Peek() domain.Result {
	rec, ok := s.history.Current()
	if !ok {
		return domain.Result{Outcome: domain.OutcomeBoundary, Reason: domain.ReasonNotStarted, Index: history.NoSimulation}
	}
	if s.verdict != nil && s.verdict.Index == s.history.Index() && s.history.AtTail() {
		return *s.Verdict()
	}
	return domain.Result{
		Outcome:   domain.OutcomeContinue,
		Symbol:    rec.Symbol,
		Config:    rec.After,
		Accepting: s.machine.Accepting(rec.After),
		Index:     s.history.Index(),
	}
}

// Index returns the history cursor (-1 before start).
func (s *Session) Index() int { return s.history.Index() }

// Verdict returns the terminal result, or nil while the run is still open.
func (s *Session) Verdict() *domain.Result {
	if s.verdict == nil {
		return nil
	}
	v := *s.verdict
	v.Config = s.verdict.Config.Clone()
	return &v
}

// Finished reports whether the run reached a terminal verdict.
func (s *Session) Finished() bool { return s.verdict != nil }

// Definition returns a copy of the compiled definition.
func (s *Session) Definition() *schema.Definition { return s.def.Clone() }

// ID returns the session id set with WithSessionID.
func (s *Session) ID() string { return s.id }

// Input returns the input of the current run and whether it is cyclic.
func (s *Session) Input() (string, bool) { return s.input, s.cyclic }

// Snapshot captures the whole session so it can be persisted and resumed.
func (s *Session) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		SessionID: s.id,
		Automaton: s.def.Name,
		Kind:      s.def.Kind,
		Input:     s.input,
		Cyclic:    s.cyclic,
		Records:   s.history.Records(),
		Index:     s.history.Index(),
		Verdict:   s.Verdict(),
		UpdatedAt: s.now(),
	}
}

// ErrSnapshotMismatch is returned by Resume when a snapshot was taken from a different automaton.
var ErrSnapshotMismatch = errors.New("snapshot does not belong to this automaton")

// Resume rebuilds a session from a snapshot without recomputing any step.
func Resume(def *schema.Definition, snap *domain.Snapshot, opts ...Option) (*Session, error) {
	if snap == nil {
		return nil, fmt.Errorf("resume: snapshot is nil")
	}
	if snap.SessionID != "" {
		opts = append([]Option{WithSessionID(snap.SessionID)}, opts...)
	}

	s, err := New(def, opts...)
	if err != nil {
		return nil, err
	}
	if snap.Automaton != s.def.Name || snap.Kind != s.def.Kind {
		return nil, fmt.Errorf("%w: %s/%s vs %s/%s", ErrSnapshotMismatch, snap.Automaton, snap.Kind, s.def.Name, s.def.Kind)
	}
	if len(snap.Records) == 0 {
		return s, nil
	}

	if _, err := s.machine.Begin(snap.Input, snap.Cyclic); err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	if err := s.history.Restore(snap.Records, snap.Index); err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}
	rec, _ := s.history.Current()
	s.machine.Restore(rec.After)

	s.input = snap.Input
	s.cyclic = snap.Cyclic
	if snap.Verdict != nil {
		v := *snap.Verdict
		v.Config = snap.Verdict.Config.Clone()
		s.verdict = &v
	}
	return s, nil
}

func (s *Session) emit(ctx context.Context, hook func(context.Context, *domain.StepEvent), typ domain.EventType, res domain.Result, label string, replayed bool) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{
			Timestamp: s.now(),
			Type:      typ,
			SessionID: s.id,
		},
		Automaton: s.def.Name,
		Kind:      s.def.Kind,
		Index:     res.Index,
		Label:     label,
		Symbol:    res.Symbol,
		Outcome:   res.Outcome,
		Reason:    res.Reason,
		Replayed:  replayed,
	})
}
