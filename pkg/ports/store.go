package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/report"
)

// ReportStore defines the interface for persisting evaluation reports.
// It backs the summary log written at the end of a run.
type ReportStore interface {
	// Save persists the run under its ID, overwriting any previous run.
	Save(ctx context.Context, run *report.Run) error

	// Load retrieves a run by ID.
	// Returns domain.ErrReportNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*report.Run, error)

	// Delete removes a run. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of the stored runs.
	List(ctx context.Context) ([]string, error)
}
