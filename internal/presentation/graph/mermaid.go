package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart for a machine.
// It applies semantic styling:
// - Accept state: (((Double circle)))
// - Other states: ((Circle))
// - Start: an entry arrow from a "start" marker
// - Epsilon alias: dotted arrow labelled ε
// The implicit space self-loop every state carries is omitted.
func GenerateMermaid(m *domain.Machine) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	if !m.Valid() {
		sb.WriteString(fmt.Sprintf("    %%%% INVALID: %s\n", m.InvalidReason))
	}

	states := m.States()
	for _, s := range states {
		opener, closer := "((", "))"
		if s.Accept {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%d\"%s\n", nodeID(s.ID), opener, s.ID, closer))
	}

	if start, ok := m.Start(); ok {
		sb.WriteString(fmt.Sprintf("    entry([\"start\"]) --> %s\n", nodeID(start)))
	}

	for _, s := range states {
		if target, ok := s.Alias(); ok {
			sb.WriteString(fmt.Sprintf("    %s -. \"ε\" .-> %s\n", nodeID(s.ID), nodeID(target)))
			continue
		}

		table := s.Transitions()
		for _, sym := range s.Symbols() {
			for _, target := range table[sym] {
				if sym == domain.SymbolStay && target == s.ID {
					continue
				}
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(s.ID), symbolLabel(sym), nodeID(target)))
			}
		}
	}

	return sb.String()
}

func nodeID(id domain.StateID) string {
	return fmt.Sprintf("s%d", id)
}

func symbolLabel(sym domain.Symbol) string {
	switch sym {
	case '"':
		return "#quot;"
	case domain.SymbolStay:
		return "space"
	}
	return string(sym)
}
