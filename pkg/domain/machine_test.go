package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_RegisterTransition(t *testing.T) {
	m := NewMachine("m", []StateID{1})

	res, err := m.RegisterTransition(0, 'a', 1)
	require.NoError(t, err)
	assert.Equal(t, Deterministic, res)
	assert.Equal(t, 2, m.StateCount)

	res, err = m.RegisterTransition(0, 'a', 2)
	require.NoError(t, err)
	assert.Equal(t, Nondeterministic, res)
	assert.Equal(t, 3, m.StateCount)

	next, err := m.Follow(0, 'a')
	require.NoError(t, err)
	assert.Equal(t, []StateID{1, 2}, next, "branches keep registration order")

	s1, ok := m.State(1)
	require.True(t, ok)
	assert.True(t, s1.Accept)
}

func TestMachine_StateReuse(t *testing.T) {
	m := NewMachine("m", nil)
	_, err := m.RegisterTransition(0, 'a', 1)
	require.NoError(t, err)
	_, err = m.RegisterTransition(1, 'b', 0)
	require.NoError(t, err)

	assert.Equal(t, 2, m.StateCount)
	assert.Len(t, m.States(), 2)
}

func TestMachine_StaySymbol(t *testing.T) {
	m := NewMachine("m", nil)
	_, err := m.RegisterTransition(3, 'x', 4)
	require.NoError(t, err)

	next, err := m.Follow(3, SymbolStay)
	require.NoError(t, err)
	assert.Equal(t, []StateID{3}, next)
}

func TestMachine_InvalidSymbol(t *testing.T) {
	m := NewMachine("m", nil)
	_, err := m.RegisterTransition(0, '\t', 1)
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestMachine_FollowTrap(t *testing.T) {
	m := NewMachine("m", []StateID{1})
	_, err := m.RegisterTransition(0, 'a', 1)
	require.NoError(t, err)

	_, err = m.Follow(0, 'b')
	assert.ErrorIs(t, err, ErrTrapState)

	_, err = m.Follow(0, SymbolEpsilon)
	assert.ErrorIs(t, err, ErrTrapState, "backtick is never matchable")
}

func TestMachine_EpsilonAlias(t *testing.T) {
	m := NewMachine("m", []StateID{2})

	_, err := m.RegisterTransition(0, 'z', 5)
	require.NoError(t, err)

	res, err := m.RegisterTransition(0, SymbolEpsilon, 1)
	require.NoError(t, err)
	assert.Equal(t, Epsilon, res)

	s0, _ := m.State(0)
	assert.True(t, s0.Epsilon)
	alias, ok := s0.Alias()
	assert.True(t, ok)
	assert.Equal(t, StateID(1), alias)

	t.Run("Earlier Transitions Discarded", func(t *testing.T) {
		_, err := m.Follow(0, 'z')
		assert.ErrorIs(t, err, ErrTrapState)
	})

	t.Run("Later Target Transitions Visible", func(t *testing.T) {
		_, err := m.RegisterTransition(1, 'a', 2)
		require.NoError(t, err)

		next, err := m.Follow(0, 'a')
		require.NoError(t, err)
		assert.Equal(t, []StateID{2}, next)
	})

	t.Run("Acceptance Resolves Through Alias", func(t *testing.T) {
		assert.False(t, m.IsAccepting(0))
		_, err := m.RegisterTransition(1, SymbolEpsilon, 2)
		require.NoError(t, err)
		assert.True(t, m.IsAccepting(0), "chain 0 -> 1 -> 2 ends on the accept state")
	})
}

func TestMachine_EpsilonCycle(t *testing.T) {
	m := NewMachine("m", []StateID{0})
	_, err := m.RegisterTransition(0, SymbolEpsilon, 1)
	require.NoError(t, err)
	_, err = m.RegisterTransition(1, SymbolEpsilon, 0)
	require.NoError(t, err)

	_, err = m.Follow(0, 'a')
	assert.ErrorIs(t, err, ErrTrapState)
	assert.False(t, m.IsAccepting(0))
}

func TestMachine_TransitionOnEpsilonCycle(t *testing.T) {
	m := NewMachine("m", []StateID{2})
	_, err := m.RegisterTransition(0, SymbolEpsilon, 1)
	require.NoError(t, err)
	_, err = m.RegisterTransition(1, SymbolEpsilon, 0)
	require.NoError(t, err)

	_, err = m.RegisterTransition(0, 'a', 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDescription)
	assert.NotErrorIs(t, err, ErrTrapState, "trap states only arise while matching")
}

func TestMachine_Start(t *testing.T) {
	m := NewMachine("m", nil)
	_, ok := m.Start()
	assert.False(t, ok)

	_, err := m.RegisterTransition(7, 'a', 0)
	require.NoError(t, err)
	start, ok := m.Start()
	assert.True(t, ok)
	assert.Equal(t, StateID(0), start, "identity 0 wins when present")

	m = NewMachine("m", nil)
	_, err = m.RegisterTransition(7, 'a', 8)
	require.NoError(t, err)
	start, _ = m.Start()
	assert.Equal(t, StateID(7), start)
}

func TestMachine_DiscoverTrap(t *testing.T) {
	m := NewMachine("m", nil)
	_, err := m.RegisterTransition(0, 'a', 1)
	require.NoError(t, err)

	assert.True(t, m.DiscoverTrap())
	assert.False(t, m.DiscoverTrap())
	assert.Equal(t, 3, m.StateCount)
	assert.True(t, m.TrapDiscovered())
}

func TestBuildError(t *testing.T) {
	err := &BuildError{Line: 3, Err: ErrStateOverflow, Detail: "256"}
	assert.ErrorIs(t, err, ErrStateOverflow)
	assert.Equal(t, "line 3: state id out of range: 256", err.Error())
}
