package report_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleRecords() []report.Record {
	return []report.Record{
		{Name: "even", Kind: domain.KindDFA, StateCount: 2, AcceptedCount: 3},
		{Name: "branchy", Kind: domain.KindNFA, StateCount: 4, AcceptedCount: 1},
		{Name: "broken", Kind: domain.KindInvalid, StateCount: 0, Reason: "line 1: invalid machine description"},
	}
}

func TestFormat(t *testing.T) {
	want := "even,DFA,2,3\n" +
		"branchy,NFA,4,1\n" +
		"broken,INVALID,0,0,line 1: invalid machine description"
	assert.Equal(t, want, report.Format(sampleRecords()))
	assert.Empty(t, report.Format(nil))
}

func TestFromMachine(t *testing.T) {
	m := domain.NewMachine("m", []domain.StateID{1})
	_, err := m.RegisterTransition(0, 'a', 1)
	require.NoError(t, err)
	m.AcceptedCount = 2

	assert.Equal(t, report.Record{Name: "m", Kind: domain.KindDFA, StateCount: 2, AcceptedCount: 2}, report.FromMachine(m))

	m.Invalidate(domain.ErrStateOverflow)
	r := report.FromMachine(m)
	assert.Equal(t, domain.KindInvalid, r.Kind)
	assert.Equal(t, domain.ErrStateOverflow.Error(), r.Reason)
}

func TestMarkdown(t *testing.T) {
	md := report.Markdown(sampleRecords())
	assert.Contains(t, md, "| Machine | Kind | States | Accepted | Reason |")
	assert.Contains(t, md, "| even | DFA | 2 | 3 |  |")
	assert.Contains(t, md, "| broken | INVALID | 0 | 0 | line 1: invalid machine description |")
}

func TestYAML(t *testing.T) {
	data, err := report.YAML(sampleRecords())
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: NFA")

	var decoded []report.Record
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, sampleRecords(), decoded)
}

func TestParse(t *testing.T) {
	records, err := report.Parse("# header\n" + report.Format(sampleRecords()) + "\n")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), records)

	t.Run("Reason With Commas", func(t *testing.T) {
		records, err := report.Parse("m,INVALID,1,0,line 2: a, b, c")
		require.NoError(t, err)
		assert.Equal(t, "line 2: a, b, c", records[0].Reason)
	})

	t.Run("Escaped Names Round Trip", func(t *testing.T) {
		records := []report.Record{
			{Name: "a,b", Kind: domain.KindNFA, StateCount: 3, AcceptedCount: 1},
			{Name: "#hash", Kind: domain.KindDFA, StateCount: 1},
			{Name: `back\slash,`, Kind: domain.KindInvalid, Reason: "line 1: x, y"},
		}
		text := report.Format(records)
		assert.Equal(t, `a\,b,NFA,3,1`, strings.Split(text, "\n")[0])

		parsed, err := report.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, records, parsed)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := report.Parse("m,DFA,2")
		assert.Error(t, err)
		_, err = report.Parse("m,DFA,two,1")
		assert.Error(t, err)
	})
}
