package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/internal/validator"
)

// ValidateOptions contains the configuration for the Validate command.
type ValidateOptions struct {
	Paths  []string
	Strict bool
	Config config.Config
	Out    io.Writer
}

// Validate builds every description and reports its kind along with lint
// warnings. It returns an error when any machine is INVALID or unreadable,
// or, in strict mode, when any warning was raised.
func Validate(ctx context.Context, opts ValidateOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	logger, err := createLogger(opts.Config.LogLevel)
	if err != nil {
		return err
	}
	engine := createEngine(logger, nil)
	printer := tui.NewPrinter(opts.Out, !isTerminal(opts.Out))

	invalid, warned := 0, 0
	for _, path := range opts.Paths {
		m, err := engine.UploadFile(ctx, path)
		if m == nil {
			return err
		}
		printer.Machine(m)
		if !m.Valid() {
			invalid++
			continue
		}
		if err := validator.ValidateMachine(m); err != nil {
			warned++
			fmt.Fprintf(opts.Out, "  warning: %v\n", err)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d machines are INVALID", invalid, len(opts.Paths))
	}
	if opts.Strict && warned > 0 {
		return fmt.Errorf("%d of %d machines have warnings", warned, len(opts.Paths))
	}
	return nil
}
