package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/automata/internal/sanitizer"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/report"
)

const logExt = ".log"

// Store implements ports.ReportStore using the local filesystem.
// Each run is a summary log: a header line followed by one comma-joined
// record per machine.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".automata/reports".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".automata", "reports")
	}
	return &Store{BasePath: basePath}
}

// Path returns the summary log location for a run.
func (s *Store) Path(runID string) string {
	return filepath.Join(s.BasePath, runID+logExt)
}

// Save writes the summary log atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, run *report.Run) error {
	if err := sanitizer.ValidateName(run.ID); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure report directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# run %s %s\n", run.ID, run.CreatedAt.UTC().Format(time.RFC3339)))
	if len(run.Records) > 0 {
		sb.WriteString(report.Format(run.Records))
		sb.WriteString("\n")
	}

	// Same directory so the rename stays on one filesystem
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+run.ID+"-*"+logExt)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.Path(run.ID)
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing report for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to report: %w", err)
	}
	return nil
}

// Load reads a summary log back into a run.
func (s *Store) Load(ctx context.Context, runID string) (*report.Run, error) {
	if err := sanitizer.ValidateName(runID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	text := string(data)
	run := &report.Run{ID: runID}

	header, _, _ := strings.Cut(text, "\n")
	if fields := strings.Fields(header); len(fields) >= 4 && fields[0] == "#" && fields[1] == "run" {
		if ts, err := time.Parse(time.RFC3339, fields[len(fields)-1]); err == nil {
			run.CreatedAt = ts
		}
	}

	records, err := report.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", runID, err)
	}
	run.Records = records
	return run, nil
}

// Delete removes the summary log.
func (s *Store) Delete(ctx context.Context, runID string) error {
	if err := sanitizer.ValidateName(runID); err != nil {
		return err
	}
	if err := os.Remove(s.Path(runID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete report file: %w", err)
	}
	return nil
}

// List returns the stored run IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, logExt) || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, logExt))
	}
	slices.Sort(ids)
	return ids, nil
}
