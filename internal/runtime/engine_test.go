package runtime_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Evaluate(t *testing.T) {
	ctx := context.Background()
	engine := runtime.NewEngine()

	m, err := engine.Upload(ctx, "ab", "{1}\n0,a,1")
	require.NoError(t, err)
	assert.Equal(t, 2, m.StateCount)

	res, err := engine.Evaluate(ctx, "ab", []string{"a", "b", "", "c", "a", "a\x02"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a"}, res.Accepted)
	assert.True(t, res.TrapHit)

	outcomes := make([]domain.Outcome, 0, len(res.Results))
	for _, r := range res.Results {
		outcomes = append(outcomes, r.Outcome)
	}
	assert.Equal(t, []domain.Outcome{
		domain.OutcomeAccepted,
		domain.OutcomeTrap,
		domain.OutcomeRejected,
		domain.OutcomeTrap,
		domain.OutcomeAccepted,
		domain.OutcomeInvalidSymbol,
	}, outcomes)

	assert.Equal(t, 2, m.AcceptedCount)
	assert.Equal(t, 3, m.StateCount, "two traps in one batch add a single implicit state")

	t.Run("Second Batch", func(t *testing.T) {
		res, err := engine.Evaluate(ctx, "ab", []string{"a", "b"})
		require.NoError(t, err)
		assert.True(t, res.TrapHit)
		assert.Equal(t, 3, m.AcceptedCount, "accepted count grows by one per accepted string")
		assert.Equal(t, 3, m.StateCount)
	})
}

func TestEngine_EvaluateErrors(t *testing.T) {
	ctx := context.Background()
	engine := runtime.NewEngine()

	_, err := engine.Evaluate(ctx, "missing", []string{"a"})
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	m, err := engine.Upload(ctx, "broken", "{1\n0,a,1")
	assert.ErrorIs(t, err, domain.ErrInvalidDescription)
	assert.Equal(t, domain.KindInvalid, m.Kind)

	_, err = engine.Evaluate(ctx, "broken", []string{"a"})
	assert.ErrorIs(t, err, domain.ErrMachineInvalid)
}

func TestEngine_EvaluateAll(t *testing.T) {
	ctx := context.Background()
	engine := runtime.NewEngine()

	_, err := engine.Upload(ctx, "dfa", "{1}\n0,a,1")
	require.NoError(t, err)
	_, err = engine.Upload(ctx, "bad", "{1}\n0,a,999")
	require.Error(t, err)
	_, err = engine.Upload(ctx, "nfa", "{1}\n0,a,1\n0,a,2\n0,b,2\n2,b,1")
	require.NoError(t, err)

	results, err := engine.EvaluateAll(ctx, []string{"a", "bb", "ab"})
	require.NoError(t, err)
	require.Len(t, results, 2, "invalid machines are skipped")
	assert.Equal(t, "dfa", results[0].Machine)
	assert.Equal(t, []string{"a"}, results[0].Accepted)
	assert.Equal(t, "nfa", results[1].Machine)
	assert.Equal(t, []string{"a", "bb", "ab"}, results[1].Accepted)

	records := engine.Report()
	assert.Equal(t, []report.Record{
		{Name: "dfa", Kind: domain.KindDFA, StateCount: 3, AcceptedCount: 1},
		{Name: "bad", Kind: domain.KindInvalid, StateCount: 0, Reason: records[1].Reason},
		{Name: "nfa", Kind: domain.KindNFA, StateCount: 3, AcceptedCount: 3},
	}, records)
	assert.Contains(t, records[1].Reason, "state id out of range")
}

func TestEngine_UploadReplaces(t *testing.T) {
	ctx := context.Background()
	engine := runtime.NewEngine()

	_, err := engine.Upload(ctx, "m", "{1}\n0,a,1")
	require.NoError(t, err)
	m, err := engine.Upload(ctx, "m", "{1}\n0,a,1\n0,a,2")
	require.NoError(t, err)

	got, err := engine.Machine("m")
	require.NoError(t, err)
	assert.Same(t, m, got)
	assert.Equal(t, 1, engine.Registry().Len())
}

func TestEngine_RecordDuringBatches(t *testing.T) {
	ctx := context.Background()
	engine := runtime.NewEngine()
	_, err := engine.Upload(ctx, "m", "{1}\n0,a,1")
	require.NoError(t, err)

	_, err = engine.Record("missing")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	const batches = 20
	var wg sync.WaitGroup
	for i := 0; i < batches; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := engine.Evaluate(ctx, "m", []string{"a", "b"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			rec, err := engine.Record("m")
			assert.NoError(t, err)
			assert.LessOrEqual(t, rec.AcceptedCount, batches)
		}()
	}
	wg.Wait()

	rec, err := engine.Record("m")
	require.NoError(t, err)
	assert.Equal(t, batches, rec.AcceptedCount)
	assert.Equal(t, 3, rec.StateCount, "trap counted once")
}

func TestEngine_Canceled(t *testing.T) {
	engine := runtime.NewEngine()
	_, err := engine.Upload(context.Background(), "m", "{1}\n0,a,1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Evaluate(ctx, "m", []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}
