package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Step directions used as the "direction" label.
const (
	DirectionForward  = "forward"
	DirectionBackward = "backward"
	DirectionReplay   = "replay"
)

// Metrics holds the Prometheus collectors fed by session events.
type Metrics struct {
	SessionsStarted *prometheus.CounterVec
	Steps           *prometheus.CounterVec
	Verdicts        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		SessionsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_sessions_started_total",
				Help: "Total number of simulations started",
			},
			[]string{"kind"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_steps_total",
				Help: "Total number of steps, by direction",
			},
			[]string{"kind", "direction"},
		),
		Verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_verdicts_total",
				Help: "Total number of finished simulations, by outcome",
			},
			[]string{"kind", "outcome", "reason"},
		),
	}

	for _, c := range []prometheus.Collector{m.SessionsStarted, m.Steps, m.Verdicts} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStart: func(ctx context.Context, e *domain.StepEvent) {
			m.SessionsStarted.WithLabelValues(string(e.Kind)).Inc()
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			direction := DirectionForward
			if e.Replayed {
				direction = DirectionReplay
			}
			m.Steps.WithLabelValues(string(e.Kind), direction).Inc()
		},
		OnRetreat: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(string(e.Kind), DirectionBackward).Inc()
		},
		OnVerdict: func(ctx context.Context, e *domain.StepEvent) {
			m.Verdicts.WithLabelValues(string(e.Kind), string(e.Outcome), string(e.Reason)).Inc()
		},
	}
}
