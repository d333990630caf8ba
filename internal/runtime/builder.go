package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
)

// Builder turns machine descriptions into linked state graphs.
type Builder struct {
	parser *compiler.Parser
	logger *slog.Logger
}

// NewBuilder creates a builder. A nil logger discards output.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Builder{
		parser: compiler.NewParser(),
		logger: logger,
	}
}

// Build parses a line-based description and constructs the machine.
//
// The first non-blank line is the accept-state declaration, every following
// non-blank line a transition. On failure the machine is returned INVALID with
// whatever states were created before the failing line, together with a
// *domain.BuildError.
func (b *Builder) Build(name, text string) (*domain.Machine, error) {
	lines := compiler.SplitLines(text)

	header := -1
	for i, line := range lines {
		if !compiler.IsBlank(line) {
			header = i
			break
		}
	}
	if header < 0 {
		m := domain.NewMachine(name, nil)
		return m, b.fail(m, &domain.BuildError{
			Err:    domain.ErrInvalidDescription,
			Detail: "missing accept-state declaration",
		})
	}

	accept, err := b.parser.ParseAcceptStates(lines[header])
	if err != nil {
		m := domain.NewMachine(name, nil)
		return m, b.fail(m, &domain.BuildError{Line: header + 1, Err: err})
	}

	m := domain.NewMachine(name, accept)
	for i := header + 1; i < len(lines); i++ {
		if compiler.IsBlank(lines[i]) {
			continue
		}

		t, err := b.parser.ParseTransition(lines[i])
		if err != nil {
			return m, b.fail(m, &domain.BuildError{Line: i + 1, Err: err})
		}
		if err := b.register(m, t); err != nil {
			return m, b.fail(m, &domain.BuildError{Line: i + 1, Err: err})
		}
	}

	b.logger.Debug("machine built", "machine", name, "kind", m.Kind, "states", m.StateCount)
	return m, nil
}

// BuildFrom constructs a machine from already parsed parts.
func (b *Builder) BuildFrom(name string, accept []domain.StateID, transitions []compiler.Transition) (*domain.Machine, error) {
	m := domain.NewMachine(name, accept)
	for i, t := range transitions {
		if err := b.register(m, t); err != nil {
			return m, b.fail(m, &domain.BuildError{
				Err:    err,
				Detail: fmt.Sprintf("transition #%d", i+1),
			})
		}
	}
	return m, nil
}

func (b *Builder) register(m *domain.Machine, t compiler.Transition) error {
	res, err := m.RegisterTransition(t.From, t.Symbol, t.To)
	if err != nil {
		return err
	}
	m.Kind = m.Kind.Upgrade(res)
	return nil
}

func (b *Builder) fail(m *domain.Machine, err *domain.BuildError) error {
	m.Invalidate(err)
	b.logger.Warn("machine invalid", "machine", m.Name, "err", err)
	return err
}
