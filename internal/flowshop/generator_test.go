package flowshop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Reproducible(t *testing.T) {
	spec := GenSpec{
		Jobs: 20, Stages: 4, Machines: []int{1, 2, 3, 4},
		MinTime: 10, MaxTime: 50, Kind: MachinesUnrelated, DueDate: DefaultDueDate,
	}

	run := func(seed int64) (*Instance, []int) {
		g, err := NewGenerator(RandomSeed(seed))
		require.NoError(t, err)
		inst, err := g.Instance(spec)
		require.NoError(t, err)
		return inst, g.Permutation(spec.Jobs)
	}

	a, pa := run(43)
	b, pb := run(43)
	c, _ := run(44)

	assert.Equal(t, a, b)
	assert.Equal(t, pa, pb)
	assert.NotEqual(t, a, c)
	require.NoError(t, ValidatePermutation(pa, spec.Jobs))
}

func TestGenerator_MachineKinds(t *testing.T) {
	g, err := NewGenerator(RandomSeed(1))
	require.NoError(t, err)

	base := GenSpec{Jobs: 30, Stages: 2, Machines: []int{3, 2}, MinTime: 10, MaxTime: 50, DueDate: 0}

	t.Run("identical", func(t *testing.T) {
		spec := base
		spec.Kind = MachinesIdentical
		inst, err := g.Instance(spec)
		require.NoError(t, err)
		for s := 0; s < inst.Stages(); s++ {
			for j := 0; j < inst.Jobs(); j++ {
				v := inst.Time(s, j, 0)
				assert.GreaterOrEqual(t, v, 10)
				assert.LessOrEqual(t, v, 50)
				for m := 1; m < inst.Machines(s); m++ {
					assert.Equal(t, v, inst.Time(s, j, m))
				}
			}
		}
	})

	t.Run("uniform", func(t *testing.T) {
		spec := base
		spec.Kind = MachinesUniform
		inst, err := g.Instance(spec)
		require.NoError(t, err)
		for s := 0; s < inst.Stages(); s++ {
			for j := 0; j < inst.Jobs(); j++ {
				for m := 0; m < inst.Machines(s); m++ {
					v := inst.Time(s, j, m)
					// base in [10,50], speed in [0.5,2.0)
					assert.GreaterOrEqual(t, v, 5)
					assert.LessOrEqual(t, v, 100)
				}
			}
		}
	})

	t.Run("unrelated", func(t *testing.T) {
		spec := base
		spec.Kind = MachinesUnrelated
		inst, err := g.Instance(spec)
		require.NoError(t, err)
		for s := 0; s < inst.Stages(); s++ {
			for j := 0; j < inst.Jobs(); j++ {
				for m := 0; m < inst.Machines(s); m++ {
					v := inst.Time(s, j, m)
					assert.GreaterOrEqual(t, v, 10)
					assert.LessOrEqual(t, v, 50)
				}
			}
		}
	})
}

func TestGenerator_Errors(t *testing.T) {
	_, err := NewGenerator(nil)
	assert.Error(t, err)

	g, err := NewGenerator(RandomSeed(1))
	require.NoError(t, err)

	bad := []GenSpec{
		{Jobs: 0, Stages: 1, Machines: []int{1}, MaxTime: 1, Kind: MachinesUnrelated},
		{Jobs: 1, Stages: 2, Machines: []int{1}, MaxTime: 1, Kind: MachinesUnrelated},
		{Jobs: 1, Stages: 1, Machines: []int{1}, MinTime: 5, MaxTime: 1, Kind: MachinesUnrelated},
		{Jobs: 1, Stages: 1, Machines: []int{1}, MaxTime: 1, Kind: "random"},
		{Jobs: 1, Stages: 1, Machines: []int{0}, MaxTime: 1, Kind: MachinesIdentical},
	}
	for _, spec := range bad {
		_, err := g.Instance(spec)
		assert.ErrorIs(t, err, ErrInvalidInstance)
	}
}
