package automata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/sanitizer"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/report"
)

// Version is the release of the automata module. Overridden at build time with
// -ldflags "-X github.com/aretw0/automata.Version=...".
var Version = "0.3.0"

// Engine is the high-level entry point for the Automata library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime  *runtime.Engine
	registry *registry.Registry
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry shares a machine registry between engines.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// New initializes a new Automata Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.registry == nil {
		eng.registry = registry.NewRegistry()
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithRegistry(eng.registry),
	)
	return eng
}

// Upload builds the description text and registers it under name.
// The returned machine is INVALID when err is a *domain.BuildError.
func (e *Engine) Upload(ctx context.Context, name, text string) (*domain.Machine, error) {
	return e.runtime.Upload(ctx, name, text)
}

// UploadFile reads a description file and registers it under the file's base
// name without extension. Read failures and unusable names are returned
// without registering.
func (e *Engine) UploadFile(ctx context.Context, path string) (*domain.Machine, error) {
	name := MachineName(path)
	if err := sanitizer.ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine description: %w", err)
	}
	return e.Upload(ctx, name, string(data))
}

// Evaluate runs a batch text (one candidate per line) against one machine.
func (e *Engine) Evaluate(ctx context.Context, name, batch string) (*domain.BatchResult, error) {
	return e.runtime.Evaluate(ctx, name, compiler.SplitLines(batch))
}

// EvaluateAll runs a batch text against every valid machine.
func (e *Engine) EvaluateAll(ctx context.Context, batch string) ([]*domain.BatchResult, error) {
	return e.runtime.EvaluateAll(ctx, compiler.SplitLines(batch))
}

// Machine returns a registered machine.
func (e *Engine) Machine(name string) (*domain.Machine, error) {
	return e.runtime.Machine(name)
}

// Machines lists every registered machine in upload order.
func (e *Engine) Machines() []*domain.Machine {
	return e.registry.List()
}

// Record returns a snapshot of one machine's counters.
func (e *Engine) Record(name string) (report.Record, error) {
	return e.runtime.Record(name)
}

// Report returns one record per machine in upload order.
func (e *Engine) Report() []report.Record {
	return e.runtime.Report()
}

// MachineName derives a machine name from a file path.
func MachineName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
