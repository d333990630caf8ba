package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
)

// Printer writes evaluation results, colored when the output is a terminal.
type Printer struct {
	out     *termenv.Output
	profile termenv.Profile
}

// NewPrinter creates a printer for w. With plain set, no escape codes are
// emitted.
func NewPrinter(w io.Writer, plain bool) *Printer {
	out := termenv.NewOutput(w)
	profile := out.EnvColorProfile()
	if plain {
		profile = termenv.Ascii
	}
	return &Printer{out: out, profile: profile}
}

// Verdict returns the outcome label with its color.
func (p *Printer) Verdict(o domain.Outcome) string {
	s := p.profile.String(string(o))
	switch o {
	case domain.OutcomeAccepted:
		return s.Foreground(p.profile.Color("#22c55e")).Bold().String()
	case domain.OutcomeRejected:
		return s.Foreground(p.profile.Color("#94a3b8")).String()
	case domain.OutcomeTrap:
		return s.Foreground(p.profile.Color("#f59e0b")).String()
	default:
		return s.Foreground(p.profile.Color("#ef4444")).String()
	}
}

// Kind returns the machine kind label with its color.
func (p *Printer) Kind(k domain.Kind) string {
	s := p.profile.String(k.String())
	switch k {
	case domain.KindDFA:
		return s.Foreground(p.profile.Color("#818cf8")).String()
	case domain.KindNFA:
		return s.Foreground(p.profile.Color("#c084fc")).String()
	default:
		return s.Foreground(p.profile.Color("#ef4444")).Bold().String()
	}
}

// Batch prints each string with its verdict, then the accepted list.
func (p *Printer) Batch(res *domain.BatchResult) {
	fmt.Fprintf(p.out, "%s\n", p.profile.String(res.Machine).Bold())
	for _, r := range res.Results {
		label := r.Input
		if label == "" {
			label = `""`
		}
		fmt.Fprintf(p.out, "  %-24s %s\n", label, p.Verdict(r.Outcome))
	}
}

// Machine prints one line describing a machine.
func (p *Printer) Machine(m *domain.Machine) {
	fmt.Fprintf(p.out, "%s: %s (%d states)", m.Name, p.Kind(m.Kind), m.StateCount)
	if m.InvalidReason != "" {
		fmt.Fprintf(p.out, " %s", m.InvalidReason)
	}
	fmt.Fprintln(p.out)
}
