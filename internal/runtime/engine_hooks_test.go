package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var built []*domain.MachineEvent
	var matched []*domain.MatchEvent
	var traps []*domain.MachineEvent

	hooks := domain.LifecycleHooks{
		OnMachineBuilt: func(ctx context.Context, e *domain.MachineEvent) {
			built = append(built, e)
		},
		OnStringEvaluated: func(ctx context.Context, e *domain.MatchEvent) {
			matched = append(matched, e)
		},
		OnTrapDiscovered: func(ctx context.Context, e *domain.MachineEvent) {
			traps = append(traps, e)
		},
	}

	engine := runtime.NewEngine(runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	_, err := engine.Upload(ctx, "ok", "{1}\n0,a,1")
	require.NoError(t, err)
	_, err = engine.Upload(ctx, "bad", "1}")
	require.Error(t, err)

	require.Len(t, built, 2)
	assert.Equal(t, domain.EventMachineBuilt, built[0].Type)
	assert.Equal(t, domain.KindDFA, built[0].Kind)
	assert.Equal(t, domain.KindInvalid, built[1].Kind)
	assert.NotEmpty(t, built[1].Reason)

	_, err = engine.Evaluate(ctx, "ok", []string{"a", "x", "y"})
	require.NoError(t, err)

	require.Len(t, matched, 3)
	assert.Equal(t, domain.OutcomeAccepted, matched[0].Outcome)
	assert.Equal(t, domain.OutcomeTrap, matched[1].Outcome)

	require.Len(t, traps, 1, "trap discovery fires once per machine")
	assert.Equal(t, "ok", traps[0].Machine)
	assert.Equal(t, 3, traps[0].StateCount)
}
