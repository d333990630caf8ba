package domain

import (
	"fmt"
	"slices"
)

// Machine owns every State built from one description.
type Machine struct {
	Name          string
	Kind          Kind
	StateCount    int
	AcceptedCount int

	// InvalidReason is set only when Kind is KindInvalid.
	InvalidReason string

	states    map[StateID]*State
	order     []StateID
	accept    map[StateID]bool
	entry     StateID
	hasEntry  bool
	trapFound bool
}

// NewMachine creates an empty DFA with the given accept-state set.
func NewMachine(name string, accept []StateID) *Machine {
	m := &Machine{
		Name:   name,
		Kind:   KindDFA,
		states: make(map[StateID]*State),
		accept: make(map[StateID]bool, len(accept)),
	}
	for _, id := range accept {
		m.accept[id] = true
	}
	return m
}

// AcceptStates returns the declared accept identities in ascending order.
func (m *Machine) AcceptStates() []StateID {
	ids := make([]StateID, 0, len(m.accept))
	for id := range m.accept {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// State returns the state with the given identity.
func (m *Machine) State(id StateID) (*State, bool) {
	s, ok := m.states[id]
	return s, ok
}

// States returns every state in creation order.
func (m *Machine) States() []*State {
	out := make([]*State, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.states[id])
	}
	return out
}

// Start returns the entry state: identity 0 when present, otherwise the
// source of the first registered transition.
func (m *Machine) Start() (StateID, bool) {
	if _, ok := m.states[0]; ok {
		return 0, true
	}
	return m.entry, m.hasEntry
}

// Valid reports whether construction succeeded.
func (m *Machine) Valid() bool {
	return m.Kind != KindInvalid
}

// Invalidate marks the machine INVALID with err as the reason.
func (m *Machine) Invalidate(err error) {
	m.Kind = KindInvalid
	m.InvalidReason = err.Error()
}

// ensure returns the state for id, creating it on first reference.
func (m *Machine) ensure(id StateID) *State {
	if s, ok := m.states[id]; ok {
		return s
	}
	s := newState(id, m.accept[id])
	m.states[id] = s
	m.order = append(m.order, id)
	m.StateCount++
	return s
}

// RegisterTransition links from to to on sym, creating both states if needed.
//
// An epsilon symbol makes from alias to's table. Any other symbol is added to
// the table from currently resolves to, so transitions added to an aliased
// state land in the shared table.
func (m *Machine) RegisterTransition(from StateID, sym Symbol, to StateID) (TransitionResult, error) {
	src := m.ensure(from)
	m.ensure(to)
	if !m.hasEntry {
		m.entry, m.hasEntry = from, true
	}

	if !IsValidSymbol(sym) {
		return 0, fmt.Errorf("%w %q", ErrInvalidSymbol, sym)
	}

	if sym == SymbolEpsilon {
		src.aliasTo(to)
		return Epsilon, nil
	}

	owner, err := m.resolve(from)
	if err != nil {
		// from sits on an epsilon cycle: no state owns a table to extend.
		return 0, fmt.Errorf("%w: state %d is on an epsilon cycle and cannot take transitions", ErrInvalidDescription, from)
	}
	return owner.add(sym, to), nil
}

// resolve follows epsilon aliases until it reaches a state with its own table.
func (m *Machine) resolve(id StateID) (*State, error) {
	s, ok := m.states[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown state %d", ErrTrapState, id)
	}

	var seen map[StateID]bool
	for s.Epsilon {
		if seen == nil {
			seen = make(map[StateID]bool)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("%w: epsilon cycle through state %d", ErrTrapState, s.ID)
		}
		seen[s.ID] = true

		next, ok := m.states[s.alias]
		if !ok {
			return nil, fmt.Errorf("%w: unknown state %d", ErrTrapState, s.alias)
		}
		s = next
	}
	return s, nil
}

// Follow returns the successors of id on sym in registration order.
// It fails with ErrTrapState when no transition is registered for sym.
func (m *Machine) Follow(id StateID, sym Symbol) ([]StateID, error) {
	owner, err := m.resolve(id)
	if err != nil {
		return nil, err
	}
	targets, ok := owner.lookup(sym)
	if !ok {
		return nil, fmt.Errorf("%w: no transition from %d on %q", ErrTrapState, id, sym)
	}
	return targets, nil
}

// IsAccepting reports whether input may end in id. For an aliased state the
// flag of the state owning the resolved table governs.
func (m *Machine) IsAccepting(id StateID) bool {
	owner, err := m.resolve(id)
	if err != nil {
		return false
	}
	return owner.Accept
}

// DiscoverTrap records the implicit trap state. It bumps StateCount on the
// first call only and reports whether it did.
func (m *Machine) DiscoverTrap() bool {
	if m.trapFound {
		return false
	}
	m.trapFound = true
	m.StateCount++
	return true
}

// TrapDiscovered reports whether a trap state has been hit.
func (m *Machine) TrapDiscovered() bool {
	return m.trapFound
}
