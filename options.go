package automata

import (
	"log/slog"
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// Option defines a functional option for configuring a Session.
type Option func(*Session)

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithSessionID labels events and log lines with an external session id.
func WithSessionID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithClock overrides the time source used for event timestamps and snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}
