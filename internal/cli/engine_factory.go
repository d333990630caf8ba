package cli

import (
	"log/slog"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
)

// createEngine initializes an engine with standard CLI conventions: every
// lifecycle event is logged, and recorded into metrics when given.
func createEngine(logger *slog.Logger, metrics *observability.Metrics) *automata.Engine {
	sets := []domain.LifecycleHooks{observability.LoggingHooks(logger)}
	if metrics != nil {
		sets = append(sets, metrics.Hooks())
	}

	return automata.New(
		automata.WithLogger(logger),
		automata.WithLifecycleHooks(observability.ComposeHooks(sets...)),
	)
}

// NewEngine builds the engine served by long-running commands.
func NewEngine(cfg config.Config, metrics *observability.Metrics) (*automata.Engine, *slog.Logger, error) {
	logger, err := createLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return createEngine(logger, metrics), logger, nil
}
