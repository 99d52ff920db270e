package pso

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridFlowShop/internal/flowshop"
)

func testInstance(t *testing.T) *flowshop.Instance {
	t.Helper()
	gen, err := flowshop.NewGenerator(flowshop.RandomSeed(11))
	require.NoError(t, err)
	inst, err := gen.Instance(flowshop.GenSpec{
		Jobs: 12, Stages: 3, Machines: []int{1, 2, 3},
		MinTime: 10, MaxTime: 50, Kind: flowshop.MachinesUnrelated, DueDate: flowshop.DefaultDueDate,
	})
	require.NoError(t, err)
	return inst
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Particles = 15
	cfg.Iterations = 25
	return cfg
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	mutate := []func(*Config){
		func(c *Config) { c.Iterations, c.IterationsPerJob = 0, 0 },
		func(c *Config) { c.Particles = 0 },
		func(c *Config) { c.W = -1 },
		func(c *Config) { c.C2 = -0.5 },
		func(c *Config) { c.PosMin, c.PosMax = 1, 1 },
		func(c *Config) { c.Mutation = 2 },
		func(c *Config) { c.Objective = "" },
	}
	for _, m := range mutate {
		cfg := DefaultConfig()
		m(&cfg)
		assert.Error(t, cfg.Validate())
	}

	cfg := DefaultConfig()
	cfg.Iterations, cfg.IterationsPerJob = 0, 4
	assert.Equal(t, 40, cfg.iterations(10))
}

func TestSolve(t *testing.T) {
	inst := testInstance(t)
	cfg := smallConfig()
	s, err := New(cfg, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)
	require.NoError(t, flowshop.ValidatePermutation(res.Permutation, inst.Jobs()))

	m, err := flowshop.Simulate(inst, res.Permutation)
	require.NoError(t, err)
	assert.Equal(t, m.TotalTardiness, res.Cost)
	assert.Equal(t, m.Makespan, res.Makespan)

	assert.Equal(t, cfg.Particles*(cfg.Iterations+1), res.Evaluations)
	require.Len(t, res.History, cfg.Iterations+1)
	for _, h := range res.History {
		assert.GreaterOrEqual(t, h.Best, res.Cost)
	}
	assert.LessOrEqual(t, res.Cost, res.InitialCost)
}

func TestSolve_Deterministic(t *testing.T) {
	inst := testInstance(t)
	run := func() []int {
		s, err := New(smallConfig(), rand.New(rand.NewSource(8)))
		require.NoError(t, err)
		res, err := s.Solve(context.Background(), inst)
		require.NoError(t, err)
		return res.Permutation
	}
	assert.Equal(t, run(), run())
}

func TestSolve_Cancelled(t *testing.T) {
	inst := testInstance(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(smallConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	res, err := s.Solve(ctx, inst)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Iterations)
	assert.NoError(t, flowshop.ValidatePermutation(res.Permutation, inst.Jobs()))
}

func TestDecodeRandomKeys(t *testing.T) {
	out := make([]int, 4)
	idx := make([]int, 4)
	decodeRandomKeys([]float64{0.7, 0.1, 0.7, 0.3}, out, idx)
	assert.Equal(t, []int{1, 3, 0, 2}, out)
}
