package compiler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// Transition is one parsed `start_id,symbol,next_id` line.
type Transition struct {
	From   domain.StateID
	Symbol domain.Symbol
	To     domain.StateID
}

// Parser converts the lines of a machine description into typed values.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// SplitLines splits text on "\r\n", "\r" or "\n".
// A trailing separator does not produce a final empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// IsBlank reports whether a description line carries no content.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// ParseAcceptStates parses the `{id(,id)*}` declaration. An empty set `{}` is
// allowed; spaces are not.
func (p *Parser) ParseAcceptStates(line string) ([]domain.StateID, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.ContainsAny(line, " \t") {
		return nil, fmt.Errorf("%w: spaces are not allowed in the accept states, got %q", domain.ErrInvalidDescription, line)
	}
	if len(line) < 2 || line[0] != '{' || line[len(line)-1] != '}' {
		return nil, fmt.Errorf("%w: accept states must be enclosed in braces, got %q", domain.ErrInvalidDescription, line)
	}

	inner := line[1 : len(line)-1]
	if inner == "" {
		return nil, nil
	}
	if strings.ContainsAny(inner, "{}") {
		return nil, fmt.Errorf("%w: nested braces in %q", domain.ErrInvalidDescription, line)
	}

	parts := strings.Split(inner, ",")
	ids := make([]domain.StateID, 0, len(parts))
	for _, part := range parts {
		id, err := parseStateID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseTransition parses a `start_id,symbol,next_id` line. The symbol is the
// text between the first and the last comma, so "0,,,1" is a transition on ','.
func (p *Parser) ParseTransition(line string) (Transition, error) {
	first := strings.IndexByte(line, ',')
	last := strings.LastIndexByte(line, ',')
	if first < 0 || first == last {
		return Transition{}, fmt.Errorf("%w: expected start_id,symbol,next_id, got %q", domain.ErrInvalidDescription, line)
	}

	from, err := parseStateID(line[:first])
	if err != nil {
		return Transition{}, err
	}
	to, err := parseStateID(line[last+1:])
	if err != nil {
		return Transition{}, err
	}

	sym := line[first+1 : last]
	switch {
	case len(sym) == 1:
		return Transition{From: from, Symbol: sym[0], To: to}, nil
	case utf8.RuneCountInString(sym) == 1:
		return Transition{}, fmt.Errorf("%w %q", domain.ErrInvalidSymbol, sym)
	default:
		return Transition{}, fmt.Errorf("%w: symbol must be a single character, got %q", domain.ErrInvalidDescription, sym)
	}
}

func parseStateID(field string) (domain.StateID, error) {
	v, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s exceeds %d", domain.ErrStateOverflow, field, domain.MaxStateID)
		}
		return 0, fmt.Errorf("%w: state id %q is not a non-negative integer", domain.ErrInvalidDescription, field)
	}
	if v > domain.MaxStateID {
		return 0, fmt.Errorf("%w: %d exceeds %d", domain.ErrStateOverflow, v, domain.MaxStateID)
	}
	return domain.StateID(v), nil
}
