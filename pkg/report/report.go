// Package report turns machines into summary records and renders them for the
// reporting sinks (plain text log, markdown table, YAML).
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Record is the summary of one machine.
type Record struct {
	Name          string      `json:"name" yaml:"name"`
	Kind          domain.Kind `json:"kind" yaml:"kind"`
	StateCount    int         `json:"state_count" yaml:"state_count"`
	AcceptedCount int         `json:"accepted_count" yaml:"accepted_count"`
	Reason        string      `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Run is a persisted set of records produced by one evaluation session.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Records   []Record  `json:"records" yaml:"records"`
}

// FromMachine captures the current counters of m.
func FromMachine(m *domain.Machine) Record {
	r := Record{
		Name:          m.Name,
		Kind:          m.Kind,
		StateCount:    m.StateCount,
		AcceptedCount: m.AcceptedCount,
	}
	if m.Kind == domain.KindInvalid {
		r.Reason = m.InvalidReason
	}
	return r
}

// FromMachines captures every machine in order.
func FromMachines(machines []*domain.Machine) []Record {
	out := make([]Record, 0, len(machines))
	for _, m := range machines {
		out = append(out, FromMachine(m))
	}
	return out
}

// String renders the record as `name,kind,states,accepted[,reason]`.
// Commas and backslashes in the name, and a leading '#', are escaped with a
// backslash so Parse can read the line back.
func (r Record) String() string {
	fields := []string{
		escapeName(r.Name),
		r.Kind.String(),
		strconv.Itoa(r.StateCount),
		strconv.Itoa(r.AcceptedCount),
	}
	if r.Kind == domain.KindInvalid {
		fields = append(fields, r.Reason)
	}
	return strings.Join(fields, ",")
}

// Format renders one comma-joined record per machine, newline separated.
func Format(records []Record) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}

// Markdown renders the records as a markdown table.
func Markdown(records []Record) string {
	var sb strings.Builder
	sb.WriteString("| Machine | Kind | States | Accepted | Reason |\n")
	sb.WriteString("|---|---|---:|---:|---|\n")
	for _, r := range records {
		reason := strings.ReplaceAll(r.Reason, "|", `\|`)
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %s |\n",
			r.Name, r.Kind, r.StateCount, r.AcceptedCount, reason))
	}
	return sb.String()
}

// YAML renders the records as a YAML sequence.
func YAML(records []Record) ([]byte, error) {
	data, err := yaml.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// Parse reads records written by Format. Blank lines and lines starting with
// '#' are ignored.
func Parse(text string) ([]Record, error) {
	var records []Record
	for i, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, rest, ok := splitName(line)
		var fields []string
		if ok {
			fields = strings.SplitN(rest, ",", 4)
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected name,kind,states,accepted, got %q", i+1, line)
		}

		r := Record{Name: name}
		if err := r.Kind.UnmarshalText([]byte(fields[0])); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		states, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: state count: %w", i+1, err)
		}
		accepted, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: accepted count: %w", i+1, err)
		}
		r.StateCount, r.AcceptedCount = states, accepted
		if len(fields) == 4 {
			r.Reason = fields[3]
		}
		records = append(records, r)
	}
	return records, nil
}

func escapeName(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)
	name = strings.ReplaceAll(name, ",", `\,`)
	if strings.HasPrefix(name, "#") {
		name = `\` + name
	}
	return name
}

// splitName unescapes the leading name field and returns the text after the
// comma that ends it.
func splitName(line string) (name, rest string, ok bool) {
	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case '\\':
			if i+1 < len(line) {
				i++
				c = line[i]
			}
			sb.WriteByte(c)
		case ',':
			return sb.String(), line[i+1:], true
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), "", false
}
