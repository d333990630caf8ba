package domain

import "slices"

// StateID identifies a State within one Machine.
type StateID uint8

// MaxStateID is the largest identity a machine description may use.
const MaxStateID = 255

// State is a node of the automaton.
//
// A State either owns a direct transition table or, once an epsilon transition
// has been registered out of it, aliases the table of another State. Targets
// are referenced by identity and resolved through the owning Machine.
type State struct {
	ID     StateID
	Accept bool

	// Epsilon is true once the state aliases another state's table.
	Epsilon bool

	table map[Symbol][]StateID
	alias StateID
}

func newState(id StateID, accept bool) *State {
	return &State{
		ID:     id,
		Accept: accept,
		table: map[Symbol][]StateID{
			SymbolStay: {id},
		},
	}
}

// Alias returns the identity whose table this state uses, if any.
func (s *State) Alias() (StateID, bool) {
	return s.alias, s.Epsilon
}

// Transitions returns a copy of the state's own table.
// It is nil for an aliased state.
func (s *State) Transitions() map[Symbol][]StateID {
	if s.table == nil {
		return nil
	}
	out := make(map[Symbol][]StateID, len(s.table))
	for sym, targets := range s.table {
		out[sym] = slices.Clone(targets)
	}
	return out
}

// Symbols returns the symbols of the state's own table in ascending order.
func (s *State) Symbols() []Symbol {
	syms := make([]Symbol, 0, len(s.table))
	for sym := range s.table {
		syms = append(syms, sym)
	}
	slices.Sort(syms)
	return syms
}

// add appends target to the entry for sym, keeping registration order.
func (s *State) add(sym Symbol, target StateID) TransitionResult {
	targets, ok := s.table[sym]
	s.table[sym] = append(targets, target)
	if !ok {
		return Deterministic
	}
	return Nondeterministic
}

// aliasTo drops the state's own table in favor of target's.
func (s *State) aliasTo(target StateID) {
	s.Epsilon = true
	s.alias = target
	s.table = nil
}

func (s *State) lookup(sym Symbol) ([]StateID, bool) {
	targets, ok := s.table[sym]
	return targets, ok
}
