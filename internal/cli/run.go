package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/report"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	MachinePaths []string
	StringsPath  string
	SaveID       string
	Plain        bool
	Config       config.Config
	Out          io.Writer
}

// Execute handles the 'run' command: build every machine, evaluate the batch
// against each valid one, print the summary and optionally persist it.
func Execute(ctx context.Context, opts RunOptions) error {
	if len(opts.MachinePaths) == 0 {
		return fmt.Errorf("at least one machine description is required")
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	rich := !opts.Plain && isTerminal(opts.Out)

	logger, err := createLogger(opts.Config.LogLevel)
	if err != nil {
		return err
	}
	engine := createEngine(logger, nil)
	printer := tui.NewPrinter(opts.Out, !rich)

	for _, path := range opts.MachinePaths {
		m, err := engine.UploadFile(ctx, path)
		if m == nil {
			return err
		}
		printer.Machine(m)
	}

	if opts.StringsPath != "" {
		data, err := os.ReadFile(opts.StringsPath)
		if err != nil {
			return fmt.Errorf("failed to read strings: %w", err)
		}
		results, err := engine.EvaluateAll(ctx, string(data))
		if err != nil {
			return err
		}
		fmt.Fprintln(opts.Out)
		for _, res := range results {
			printer.Batch(res)
		}
	}

	records := engine.Report()
	fmt.Fprintln(opts.Out)
	if err := printReport(opts.Out, records, rich); err != nil {
		return err
	}

	if opts.SaveID != "" {
		return saveRun(ctx, opts, records)
	}
	return nil
}

func printReport(w io.Writer, records []report.Record, rich bool) error {
	if rich {
		out, err := tui.RenderReport(records)
		if err == nil {
			_, err = io.WriteString(w, out)
			return err
		}
	}
	_, err := fmt.Fprintln(w, report.Format(records))
	return err
}

func saveRun(ctx context.Context, opts RunOptions, records []report.Record) error {
	store, closeStore, err := OpenStore(opts.Config)
	if err != nil {
		return err
	}
	defer closeStore()

	run := &report.Run{
		ID:        opts.SaveID,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Records:   records,
	}
	if err := store.Save(ctx, run); err != nil {
		return fmt.Errorf("failed to save run %q: %w", opts.SaveID, err)
	}
	fmt.Fprintf(opts.Out, "Saved run '%s' (%s store).\n", opts.SaveID, opts.Config.Store.Kind)
	return nil
}
