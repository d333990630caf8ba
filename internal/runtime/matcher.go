package runtime

import (
	"errors"

	"github.com/aretw0/automata/pkg/domain"
)

// Matches reports whether input is accepted by m, starting at its start state.
//
// Nondeterministic branches are explored depth-first in registration order and
// the first accepting branch wins. Each step consumes exactly one symbol, so the
// recursion depth is bounded by len(input).
//
// Errors:
//   - a *domain.SymbolError (ErrInvalidSymbol) for a character outside the
//     alphabet, fatal for this input only;
//   - ErrTrapState when no branch accepts and at least one ran into a missing
//     transition. Callers treat it as a rejection.
func Matches(m *domain.Machine, input string) (bool, error) {
	if !m.Valid() {
		return false, domain.ErrMachineInvalid
	}
	start, ok := m.Start()
	if !ok {
		if input == "" {
			return false, nil
		}
		return false, domain.ErrTrapState
	}
	return walk(m, input, 0, []domain.StateID{start})
}

func walk(m *domain.Machine, input string, pos int, frontier []domain.StateID) (bool, error) {
	if pos == len(input) {
		for _, id := range frontier {
			if m.IsAccepting(id) {
				return true, nil
			}
		}
		return false, nil
	}

	sym := input[pos]
	if !domain.IsValidSymbol(sym) {
		return false, &domain.SymbolError{Symbol: sym, Position: pos}
	}

	var trap error
	for _, id := range frontier {
		next, err := m.Follow(id, sym)
		if err == nil {
			var ok bool
			ok, err = walk(m, input, pos+1, next)
			if ok {
				return true, nil
			}
		}
		if err != nil {
			if !errors.Is(err, domain.ErrTrapState) {
				return false, err
			}
			if trap == nil {
				trap = err
			}
		}
	}
	return false, trap
}
