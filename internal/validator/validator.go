// Package validator lints built machines for structural problems that do not
// make them INVALID but usually indicate a mistake in the description.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// ValidateMachine crawls the machine from its start state and reports
// unreachable states, epsilon cycles, accept states that are never
// referenced, and machines that cannot accept any string.
func ValidateMachine(m *domain.Machine) error {
	if !m.Valid() {
		return fmt.Errorf("machine is INVALID: %s", m.InvalidReason)
	}

	start, ok := m.Start()
	if !ok {
		return fmt.Errorf("machine has no transitions and accepts nothing")
	}

	// Crawler
	visited := make(map[domain.StateID]bool)
	queue := []domain.StateID{start}
	acceptReachable := false

	var errors []string

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		s, ok := m.State(currentID)
		if !ok {
			errors = append(errors, fmt.Sprintf("Missing state: '%d'", currentID))
			continue
		}
		if m.IsAccepting(currentID) {
			acceptReachable = true
		}

		if target, aliased := s.Alias(); aliased {
			if _, err := m.Follow(currentID, domain.SymbolStay); err != nil {
				errors = append(errors, fmt.Sprintf("Epsilon cycle through state '%d'", currentID))
			}
			if !visited[target] {
				queue = append(queue, target)
			}
			continue
		}

		for _, targets := range s.Transitions() {
			for _, target := range targets {
				if !visited[target] {
					queue = append(queue, target)
				}
			}
		}
	}

	for _, s := range m.States() {
		if !visited[s.ID] {
			errors = append(errors, fmt.Sprintf("Unreachable state: '%d'", s.ID))
		}
	}
	for _, id := range m.AcceptStates() {
		if _, ok := m.State(id); !ok {
			errors = append(errors, fmt.Sprintf("Accept state never referenced: '%d'", id))
		}
	}
	if !acceptReachable {
		errors = append(errors, "No accept state is reachable from the start state")
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
