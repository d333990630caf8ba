package runtime_test

import (
	"testing"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Classification(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantKind   domain.Kind
		wantStates int
	}{
		{
			name:       "Single Transition DFA",
			text:       "{1}\n0,a,1",
			wantKind:   domain.KindDFA,
			wantStates: 2,
		},
		{
			name:       "Distinct Symbols Stay DFA",
			text:       "{2}\n0,a,1\n0,b,2\n1,a,2\n2,b,0",
			wantKind:   domain.KindDFA,
			wantStates: 3,
		},
		{
			name:       "Repeated Symbol Is NFA",
			text:       "{1}\n0,a,1\n0,a,2",
			wantKind:   domain.KindNFA,
			wantStates: 3,
		},
		{
			name:       "Epsilon Is NFA",
			text:       "{0}\n0,`,1",
			wantKind:   domain.KindNFA,
			wantStates: 2,
		},
		{
			name:       "Stays NFA After Later DFA Lines",
			text:       "{1}\n0,`,1\n1,a,2\n2,b,3",
			wantKind:   domain.KindNFA,
			wantStates: 4,
		},
		{
			name:       "Blank Lines Skipped",
			text:       "\n{1}\r\n\r\n0,a,1\r\n   \r\n1,b,0\r\n",
			wantKind:   domain.KindDFA,
			wantStates: 2,
		},
		{
			name:       "Accept Line Only",
			text:       "{}",
			wantKind:   domain.KindDFA,
			wantStates: 0,
		},
	}

	b := runtime.NewBuilder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := b.Build("m", tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, m.Kind)
			assert.Equal(t, tt.wantStates, m.StateCount)
			assert.Empty(t, m.InvalidReason)
		})
	}
}

func TestBuilder_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantErr    error
		wantLine   int
		wantStates int
	}{
		{"Empty Description", "", domain.ErrInvalidDescription, 0, 0},
		{"Missing Braces", "1,2\n0,a,1", domain.ErrInvalidDescription, 1, 0},
		{"Non Numeric Accept", "{x}\n0,a,1", domain.ErrInvalidDescription, 1, 0},
		{"State Overflow", "{1}\n0,a,1\n1,b,256\n2,c,3", domain.ErrStateOverflow, 3, 2},
		{"Invalid Transition Symbol", "{1}\n0,a,1\n1,\t,2", domain.ErrInvalidSymbol, 3, 3},
		{"Malformed Transition", "{1}\n0,a,1\n0-a-1", domain.ErrInvalidDescription, 3, 2},
		{"Transition On Epsilon Cycle", "{2}\n0,`,1\n1,`,0\n0,a,2", domain.ErrInvalidDescription, 4, 3},
	}

	b := runtime.NewBuilder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := b.Build("bad", tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var buildErr *domain.BuildError
			require.ErrorAs(t, err, &buildErr)
			assert.Equal(t, tt.wantLine, buildErr.Line)

			require.NotNil(t, m, "partial machine is returned")
			assert.Equal(t, domain.KindInvalid, m.Kind)
			assert.NotEmpty(t, m.InvalidReason)
			assert.Equal(t, err.Error(), m.InvalidReason)
			assert.Equal(t, tt.wantStates, m.StateCount, "states created before the failure are kept")
		})
	}
}

func TestBuilder_BuildFrom(t *testing.T) {
	b := runtime.NewBuilder(nil)

	m, err := b.BuildFrom("m", []domain.StateID{1}, []compiler.Transition{
		{From: 0, Symbol: 'a', To: 1},
		{From: 0, Symbol: 'a', To: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.KindNFA, m.Kind)

	m, err = b.BuildFrom("m", nil, []compiler.Transition{{From: 0, Symbol: 0x7f, To: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidSymbol)
	assert.Equal(t, domain.KindInvalid, m.Kind)
}
