package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// Chain merges hook sets; each event is delivered to every set, in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	pick := func(get func(domain.LifecycleHooks) func(context.Context, *domain.StepEvent)) func(context.Context, *domain.StepEvent) {
		var fns []func(context.Context, *domain.StepEvent)
		for _, s := range sets {
			if fn := get(s); fn != nil {
				fns = append(fns, fn)
			}
		}
		switch len(fns) {
		case 0:
			return nil
		case 1:
			return fns[0]
		}
		return func(ctx context.Context, e *domain.StepEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}

	return domain.LifecycleHooks{
		OnStart:   pick(func(h domain.LifecycleHooks) func(context.Context, *domain.StepEvent) { return h.OnStart }),
		OnStep:    pick(func(h domain.LifecycleHooks) func(context.Context, *domain.StepEvent) { return h.OnStep }),
		OnRetreat: pick(func(h domain.LifecycleHooks) func(context.Context, *domain.StepEvent) { return h.OnRetreat }),
		OnVerdict: pick(func(h domain.LifecycleHooks) func(context.Context, *domain.StepEvent) { return h.OnVerdict }),
		OnReset:   pick(func(h domain.LifecycleHooks) func(context.Context, *domain.StepEvent) { return h.OnReset }),
	}
}

// LoggingHooks logs every event at debug level and verdicts at info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(level slog.Level) func(context.Context, *domain.StepEvent) {
		return func(ctx context.Context, e *domain.StepEvent) {
			attrs := []any{
				"session_id", e.SessionID,
				"automaton", e.Automaton,
				"kind", e.Kind,
				"index", e.Index,
				"outcome", e.Outcome,
			}
			if e.Symbol != "" {
				attrs = append(attrs, "symbol", e.Symbol)
			}
			if e.Reason != domain.ReasonNone {
				attrs = append(attrs, "reason", e.Reason)
			}
			if e.Replayed {
				attrs = append(attrs, "replayed", true)
			}
			logger.Log(ctx, level, string(e.Type), attrs...)
		}
	}
	return domain.LifecycleHooks{
		OnStart:   log(slog.LevelDebug),
		OnStep:    log(slog.LevelDebug),
		OnRetreat: log(slog.LevelDebug),
		OnVerdict: log(slog.LevelInfo),
		OnReset:   log(slog.LevelDebug),
	}
}
