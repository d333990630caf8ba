package runtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/report"
)

// Engine orchestrates machine uploads and string batches over a registry.
type Engine struct {
	registry *registry.Registry
	builder  *Builder
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	// mu serializes evaluation so machine counters are never updated concurrently.
	mu sync.Mutex
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRegistry makes the engine share an existing registry.
func WithRegistry(r *registry.Registry) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// NewEngine creates a new engine with its own registry unless one is given.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		registry: registry.NewRegistry(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.builder = NewBuilder(e.logger)
	return e
}

// Registry exposes the machines known to the engine.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Upload builds a description and registers it under name, replacing any
// machine with the same name. The machine is registered even when it is
// INVALID; the build error is returned alongside it.
func (e *Engine) Upload(ctx context.Context, name, text string) (*domain.Machine, error) {
	m, err := e.builder.Build(name, text)

	// Counters may move as soon as m is registered, so read them first.
	built := &domain.MachineEvent{
		EventBase:  newEventBase(domain.EventMachineBuilt, name),
		Kind:       m.Kind,
		StateCount: m.StateCount,
		Reason:     m.InvalidReason,
	}

	e.mu.Lock()
	e.registry.Register(m)
	e.mu.Unlock()

	if err == nil {
		e.logger.Info("machine uploaded", "machine", name, "kind", built.Kind, "states", built.StateCount)
	}
	if e.hooks.OnMachineBuilt != nil {
		e.hooks.OnMachineBuilt(ctx, built)
	}
	return m, err
}

// Evaluate runs every line against the named machine.
// A failing string never aborts the batch.
func (e *Engine) Evaluate(ctx context.Context, name string, lines []string) (*domain.BatchResult, error) {
	m, err := e.registry.Get(name)
	if err != nil {
		return nil, err
	}
	if !m.Valid() {
		return nil, domain.ErrMachineInvalid
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.evaluate(ctx, m, lines)
}

// EvaluateAll runs every line against every valid machine, in registration
// order. INVALID machines are skipped.
func (e *Engine) EvaluateAll(ctx context.Context, lines []string) ([]*domain.BatchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var results []*domain.BatchResult
	for _, m := range e.registry.List() {
		if !m.Valid() {
			e.logger.Debug("skipping invalid machine", "machine", m.Name)
			continue
		}
		res, err := e.evaluate(ctx, m, lines)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Engine) evaluate(ctx context.Context, m *domain.Machine, lines []string) (*domain.BatchResult, error) {
	res := &domain.BatchResult{
		Machine:  m.Name,
		Accepted: []string{},
		Results:  make([]domain.StringResult, 0, len(lines)),
	}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		sr := domain.StringResult{Input: line}
		ok, err := Matches(m, line)
		switch {
		case err == nil && ok:
			sr.Outcome = domain.OutcomeAccepted
			m.AcceptedCount++
			res.Accepted = append(res.Accepted, line)
		case err == nil:
			sr.Outcome = domain.OutcomeRejected
		case errors.Is(err, domain.ErrTrapState):
			sr.Outcome = domain.OutcomeTrap
			sr.Error = err.Error()
			res.TrapHit = true
			e.discoverTrap(ctx, m)
		case errors.Is(err, domain.ErrInvalidSymbol):
			sr.Outcome = domain.OutcomeInvalidSymbol
			sr.Error = err.Error()
		default:
			return res, err
		}

		e.logger.Debug("string evaluated", "machine", m.Name, "input", line, "outcome", sr.Outcome)
		if e.hooks.OnStringEvaluated != nil {
			e.hooks.OnStringEvaluated(ctx, &domain.MatchEvent{
				EventBase: newEventBase(domain.EventStringMatched, m.Name),
				Input:     line,
				Outcome:   sr.Outcome,
			})
		}
		res.Results = append(res.Results, sr)
	}
	return res, nil
}

func (e *Engine) discoverTrap(ctx context.Context, m *domain.Machine) {
	if !m.DiscoverTrap() {
		return
	}
	e.logger.Warn("implicit trap state hit", "machine", m.Name, "states", m.StateCount)
	if e.hooks.OnTrapDiscovered != nil {
		e.hooks.OnTrapDiscovered(ctx, &domain.MachineEvent{
			EventBase:  newEventBase(domain.EventTrapDiscovered, m.Name),
			Kind:       m.Kind,
			StateCount: m.StateCount,
		})
	}
}

// Report captures every machine's counters in registration order.
func (e *Engine) Report() []report.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return report.FromMachines(e.registry.List())
}

// Record captures one machine's counters. Use it instead of reading the
// machine's fields while batches may be running.
func (e *Engine) Record(name string) (report.Record, error) {
	m, err := e.registry.Get(name)
	if err != nil {
		return report.Record{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return report.FromMachine(m), nil
}

// Machine looks up a registered machine by name.
func (e *Engine) Machine(name string) (*domain.Machine, error) {
	return e.registry.Get(name)
}

func newEventBase(t domain.EventType, machine string) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Machine:   machine,
	}
}
