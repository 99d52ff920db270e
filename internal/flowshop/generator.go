package flowshop

import (
	"fmt"
	"math/rand"
)

// MachineKind controls how processing times relate across the machines of a stage.
type MachineKind string

const (
	MachinesIdentical MachineKind = "identical"
	// base time divided by a per-machine speed in [0.5, 2.0)
	MachinesUniform   MachineKind = "uniform"
	MachinesUnrelated MachineKind = "unrelated"
)

type GenSpec struct {
	Jobs     int
	Stages   int
	Machines []int
	MinTime  int
	MaxTime  int
	Kind     MachineKind
	DueDate  int
}

func (g GenSpec) Validate() error {
	if g.Jobs <= 0 || g.Stages <= 0 {
		return fmt.Errorf("%w: jobs and stages must be > 0 (got %d, %d)", ErrInvalidInstance, g.Jobs, g.Stages)
	}
	if len(g.Machines) != g.Stages {
		return fmt.Errorf("%w: machines per stage must have %d entries (got %d)", ErrInvalidInstance, g.Stages, len(g.Machines))
	}
	if g.MinTime < 0 || g.MaxTime < g.MinTime {
		return fmt.Errorf("%w: invalid time bounds [%d, %d]", ErrInvalidInstance, g.MinTime, g.MaxTime)
	}
	switch g.Kind {
	case MachinesIdentical, MachinesUniform, MachinesUnrelated:
	default:
		return fmt.Errorf("%w: unknown machine kind %q", ErrInvalidInstance, g.Kind)
	}
	return nil
}

type Generator struct {
	rng *rand.Rand
}

func RandomSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func NewGenerator(rng *rand.Rand) (*Generator, error) {
	if rng == nil {
		return nil, fmt.Errorf("nil random source")
	}
	return &Generator{rng: rng}, nil
}

func (g *Generator) Instance(spec GenSpec) (*Instance, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	pt := make([][][]int, spec.Stages)
	for s := range pt {
		m := spec.Machines[s]
		pt[s] = make([][]int, spec.Jobs)
		for j := range pt[s] {
			row := make([]int, m)
			switch spec.Kind {
			case MachinesIdentical:
				base := g.draw(spec.MinTime, spec.MaxTime)
				for k := range row {
					row[k] = base
				}
			case MachinesUniform:
				base := g.draw(spec.MinTime, spec.MaxTime)
				for k := range row {
					speed := 0.5 + g.rng.Float64()*1.5
					row[k] = int(float64(base) / speed)
				}
			default:
				for k := range row {
					row[k] = g.draw(spec.MinTime, spec.MaxTime)
				}
			}
			pt[s][j] = row
		}
	}
	return NewInstance(spec.Jobs, spec.Stages, spec.Machines, pt, UniformDueDates(spec.Jobs, spec.DueDate))
}

func (g *Generator) Permutation(n int) []int {
	p := IdentityPermutation(n)
	Shuffle(p, g.rng)
	return p
}

func (g *Generator) draw(lo, hi int) int {
	if hi == lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}
