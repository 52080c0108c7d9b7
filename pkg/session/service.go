package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/google/uuid"
)

// Status is what shells show for a persisted session after each request.
type Status struct {
	SessionID string         `json:"session_id"`
	Automaton string         `json:"automaton"`
	Kind      domain.Kind    `json:"kind"`
	Input     string         `json:"input"`
	Cyclic    bool           `json:"cyclic,omitempty"`
	Result    domain.Result  `json:"result"`
	Steps     int            `json:"steps"`
	Verdict   *domain.Result `json:"verdict,omitempty"`
}

// Service runs simulations whose sessions live in a store, so that stateless
// shells (HTTP, MCP) can step them by ID. Each request resumes the session from
// its snapshot, applies one operation and saves it back under the session lock.
type Service struct {
	manager  *Manager
	registry *registry.Registry
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	newID    func() string
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithHooks registers lifecycle hooks on every session the service runs.
func WithHooks(hooks domain.LifecycleHooks) ServiceOption {
	return func(s *Service) {
		s.hooks = hooks
	}
}

// WithServiceLogger sets the logger passed to sessions.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithIDGenerator overrides uuid based session IDs.
func WithIDGenerator(gen func() string) ServiceOption {
	return func(s *Service) {
		s.newID = gen
	}
}

// NewService creates a service over a manager and a loaded registry.
func NewService(manager *Manager, reg *registry.Registry, opts ...ServiceOption) *Service {
	s := &Service{
		manager:  manager,
		registry: reg,
		logger:   logging.NewNop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the definition catalog the service serves.
func (s *Service) Registry() *registry.Registry { return s.registry }

func (s *Service) sessionOptions(id string) []automata.Option {
	return []automata.Option{
		automata.WithSessionID(id),
		automata.WithLifecycleHooks(s.hooks),
		automata.WithLogger(s.logger),
	}
}

// Create starts a simulation of the named automaton and persists it.
func (s *Service) Create(ctx context.Context, automaton, input string, cyclic bool) (*Status, error) {
	def, err := s.registry.Get(automaton)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	sess, err := automata.New(def, s.sessionOptions(id)...)
	if err != nil {
		return nil, err
	}
	res, err := sess.Start(ctx, input, cyclic)
	if err != nil {
		return nil, err
	}

	if err := s.manager.Create(ctx, id, sess.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return statusOf(sess, res), nil
}

// Step moves a stored session forward or backward.
func (s *Service) Step(ctx context.Context, sessionID string, forward bool) (*Status, error) {
	var status *Status
	err := s.manager.Update(ctx, sessionID, func(ctx context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
		sess, err := s.resume(snap)
		if err != nil {
			return nil, err
		}
		res, err := sess.Step(ctx, forward)
		if err != nil {
			return nil, err
		}
		status = statusOf(sess, res)
		return sess.Snapshot(), nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Run steps a stored session until its verdict, bounded by maxSteps (required
// for cyclic runs). When the budget runs out the progress is saved and the
// status is returned together with domain.ErrStepLimit.
func (s *Service) Run(ctx context.Context, sessionID string, maxSteps int) (*Status, error) {
	var (
		status *Status
		runErr error
	)
	err := s.manager.Update(ctx, sessionID, func(ctx context.Context, snap *domain.Snapshot) (*domain.Snapshot, error) {
		sess, err := s.resume(snap)
		if err != nil {
			return nil, err
		}
		var res domain.Result
		res, runErr = sess.RunToCompletion(ctx, maxSteps)
		if runErr != nil && !errors.Is(runErr, domain.ErrStepLimit) {
			return nil, runErr
		}
		status = statusOf(sess, res)
		return sess.Snapshot(), nil
	})
	if err != nil {
		return nil, err
	}
	return status, runErr
}

// Get returns the status of a stored session without changing it.
func (s *Service) Get(ctx context.Context, sessionID string) (*Status, error) {
	snap, err := s.manager.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess, err := s.resume(snap)
	if err != nil {
		return nil, err
	}

	return statusOf(sess, sess.Peek()), nil
}

// Snapshot returns the stored snapshot.
func (s *Service) Snapshot(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	return s.manager.Load(ctx, sessionID)
}

// Trace returns the step records of a stored session.
func (s *Service) Trace(ctx context.Context, sessionID string) ([]domain.StepRecord, error) {
	snap, err := s.manager.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return snap.Records, nil
}

// Delete removes a stored session.
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.manager.Load(ctx, sessionID); err != nil {
		return err
	}
	return s.manager.Delete(ctx, sessionID)
}

// List returns the IDs of stored sessions.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.manager.List(ctx)
}

func (s *Service) resume(snap *domain.Snapshot) (*automata.Session, error) {
	def, err := s.registry.Get(snap.Automaton)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", snap.SessionID, err)
	}
	return automata.Resume(def, snap, s.sessionOptions(snap.SessionID)...)
}

func statusOf(sess *automata.Session, res domain.Result) *Status {
	def := sess.Definition()
	input, cyclic := sess.Input()
	return &Status{
		SessionID: sess.ID(),
		Automaton: def.Name,
		Kind:      def.Kind,
		Input:     input,
		Cyclic:    cyclic,
		Result:    res,
		Steps:     len(sess.Trace()),
		Verdict:   sess.Verdict(),
	}
}
