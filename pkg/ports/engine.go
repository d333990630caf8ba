package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/report"
)

// Engine is the interface adapters (HTTP, MCP, CLI) use to drive the automata
// core. *automata.Engine satisfies it.
type Engine interface {
	// Upload builds a description and registers it under name.
	Upload(ctx context.Context, name, text string) (*domain.Machine, error)

	// Evaluate runs a newline-separated batch against one machine.
	Evaluate(ctx context.Context, name, batch string) (*domain.BatchResult, error)

	// EvaluateAll runs a batch against every valid machine.
	EvaluateAll(ctx context.Context, batch string) ([]*domain.BatchResult, error)

	// Machine returns a registered machine.
	Machine(name string) (*domain.Machine, error)

	// Record returns a snapshot of one machine's counters, consistent with
	// batches running concurrently.
	Record(name string) (report.Record, error)

	// Report returns one record per machine.
	Report() []report.Record
}
