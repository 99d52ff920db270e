package opt

import (
	"context"
	"time"

	"hybridFlowShop/internal/flowshop"
)

// Optimizer searches permutations, scoring each one with the flowshop simulator.
type Optimizer interface {
	Solve(ctx context.Context, inst *flowshop.Instance) (Result, error)
}

// IterStats summarizes the population costs after one iteration.
type IterStats struct {
	Best  int
	Mean  float64
	Worst int
}

type Result struct {
	Permutation    []int
	Objective      flowshop.Objective
	Cost           int
	Makespan       int
	TotalTardiness int
	InitialCost    int
	Evaluations    int
	Iterations     int
	Duration       time.Duration
	History        []IterStats
	Meta           map[string]any
}

// NewResult copies perm and fills in both metrics of the schedule it induces.
func NewResult(eval *flowshop.Evaluator, obj flowshop.Objective, perm []int) (Result, error) {
	m, err := eval.Evaluate(perm)
	if err != nil {
		return Result{}, err
	}
	cost, err := m.Value(obj)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Permutation:    append([]int(nil), perm...),
		Objective:      obj,
		Cost:           cost,
		Makespan:       m.Makespan,
		TotalTardiness: m.TotalTardiness,
	}, nil
}

// ConvergenceIter returns the last iteration at which the best cost improved.
func (r Result) ConvergenceIter() int {
	last := 0
	for i := 1; i < len(r.History); i++ {
		if r.History[i].Best != r.History[i-1].Best {
			last = i
		}
	}
	return last
}

// Summarize computes best, mean and worst of costs.
func Summarize(costs []int) IterStats {
	if len(costs) == 0 {
		return IterStats{}
	}
	st := IterStats{Best: costs[0], Worst: costs[0]}
	sum := 0
	for _, c := range costs {
		if c < st.Best {
			st.Best = c
		}
		if c > st.Worst {
			st.Worst = c
		}
		sum += c
	}
	st.Mean = float64(sum) / float64(len(costs))
	return st
}
