package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// ComposeHooks returns hooks that call every non-nil callback of each set,
// in the order given.
func ComposeHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var built, trapped []func(context.Context, *domain.MachineEvent)
	var matched []func(context.Context, *domain.MatchEvent)

	for _, s := range sets {
		if s.OnMachineBuilt != nil {
			built = append(built, s.OnMachineBuilt)
		}
		if s.OnStringEvaluated != nil {
			matched = append(matched, s.OnStringEvaluated)
		}
		if s.OnTrapDiscovered != nil {
			trapped = append(trapped, s.OnTrapDiscovered)
		}
	}

	var out domain.LifecycleHooks
	if len(built) > 0 {
		out.OnMachineBuilt = func(ctx context.Context, e *domain.MachineEvent) {
			for _, fn := range built {
				fn(ctx, e)
			}
		}
	}
	if len(matched) > 0 {
		out.OnStringEvaluated = func(ctx context.Context, e *domain.MatchEvent) {
			for _, fn := range matched {
				fn(ctx, e)
			}
		}
	}
	if len(trapped) > 0 {
		out.OnTrapDiscovered = func(ctx context.Context, e *domain.MachineEvent) {
			for _, fn := range trapped {
				fn(ctx, e)
			}
		}
	}
	return out
}

// LoggingHooks logs every lifecycle event through logger.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMachineBuilt: func(ctx context.Context, e *domain.MachineEvent) {
			if e.Kind == domain.KindInvalid {
				logger.WarnContext(ctx, "machine_built", "machine", e.Machine, "kind", e.Kind, "reason", e.Reason)
				return
			}
			logger.InfoContext(ctx, "machine_built", "machine", e.Machine, "kind", e.Kind, "states", e.StateCount)
		},
		OnStringEvaluated: func(ctx context.Context, e *domain.MatchEvent) {
			logger.DebugContext(ctx, "string_matched", "machine", e.Machine, "input", e.Input, "outcome", e.Outcome)
		},
		OnTrapDiscovered: func(ctx context.Context, e *domain.MachineEvent) {
			logger.InfoContext(ctx, "trap_discovered", "machine", e.Machine, "states", e.StateCount)
		},
	}
}
