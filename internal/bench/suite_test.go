package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridFlowShop/internal/flowshop"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadSuite(t *testing.T) {
	p := writeFile(t, "suite.yaml", `
base_seed: 7
machine_kind: identical
cases:
  - name: tiny
    jobs: 4
    machines: [1, 2]
    count: 2
  - name: wide
    jobs: 6
    machines: [3, 3, 3]
    count: 1
`)
	s, err := LoadSuite(p)
	require.NoError(t, err)

	assert.Equal(t, int64(7), s.BaseSeed)
	assert.Equal(t, flowshop.MachinesIdentical, s.MachineKind)
	// defaults
	assert.Equal(t, flowshop.DefaultDueDate, s.DueDate)
	assert.Equal(t, 10, s.TimeMin)
	assert.Equal(t, 50, s.TimeMax)
	require.Len(t, s.Cases, 2)

	cases, err := s.Expand()
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, 1, cases[0].ID)
	assert.Equal(t, "I3", cases[2].Name())
	assert.Equal(t, "wide", cases[2].Group)
	assert.Equal(t, int64(10), cases[2].Seed)
	assert.Equal(t, 3, cases[2].Instance.Stages())
	for _, c := range cases {
		require.NoError(t, flowshop.ValidatePermutation(c.Initial, c.Instance.Jobs()))
	}
}

func TestLoadSuite_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown field": "cases:\n  - name: a\n    jobs: 2\n    machines: [1]\n    count: 1\n    speed: 3\n",
		"no cases":      "base_seed: 1\n",
		"zero count":    "cases:\n  - name: a\n    jobs: 2\n    machines: [1]\n    count: 0\n",
		"zero jobs":     "cases:\n  - name: a\n    jobs: 0\n    machines: [1]\n    count: 1\n",
		"bad kind":      "machine_kind: fancy\ncases:\n  - name: a\n    jobs: 2\n    machines: [1]\n    count: 1\n",
		"bad times":     "time_min: 9\ntime_max: 3\ncases:\n  - name: a\n    jobs: 2\n    machines: [1]\n    count: 1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSuite(writeFile(t, "suite.yaml", body))
			assert.Error(t, err)
		})
	}

	_, err := LoadSuite(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSuiteExpand_Reproducible(t *testing.T) {
	s := DefaultSuite()
	s.Cases = s.Cases[:3]

	a, err := s.Expand()
	require.NoError(t, err)
	b, err := s.Expand()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	total := 0
	for _, c := range s.Cases {
		total += c.Count
	}
	assert.Len(t, a, total)
}

func TestDefaultSuiteIsValid(t *testing.T) {
	require.NoError(t, DefaultSuite().Validate())
}
