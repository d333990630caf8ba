package registry_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := registry.NewRegistry()
	r.Register(domain.NewMachine("b", nil))
	r.Register(domain.NewMachine("a", nil))

	names := func() []string {
		var out []string
		for _, m := range r.List() {
			out = append(out, m.Name)
		}
		return out
	}
	assert.Equal(t, []string{"b", "a"}, names())

	t.Run("Replace Keeps Position", func(t *testing.T) {
		replacement := domain.NewMachine("b", []domain.StateID{1})
		r.Register(replacement)
		assert.Equal(t, []string{"b", "a"}, names())

		got, err := r.Get("b")
		require.NoError(t, err)
		assert.Same(t, replacement, got)
	})

	t.Run("Get Unknown", func(t *testing.T) {
		_, err := r.Get("missing")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("Remove", func(t *testing.T) {
		r.Remove("b")
		r.Remove("missing")
		assert.Equal(t, []string{"a"}, names())
		assert.Equal(t, 1, r.Len())
	})
}
