package flowshop

import (
	"fmt"
)

const DefaultDueDate = 100

// Instance describes a hybrid flow-shop problem. It is read-only once built
// and may be shared between goroutines.
type Instance struct {
	jobs     int
	stages   int
	machines []int
	// procTimes[stage][job][machine]
	procTimes [][][]int
	dueDates  []int
}

func NewInstance(jobs, stages int, machines []int, procTimes [][][]int, dueDates []int) (*Instance, error) {
	inst := &Instance{
		jobs:      jobs,
		stages:    stages,
		machines:  append([]int(nil), machines...),
		procTimes: cloneTimes(procTimes),
		dueDates:  append([]int(nil), dueDates...),
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func UniformDueDates(n, d int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = d
	}
	return out
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return fmt.Errorf("%w: instance is nil", ErrIncompleteInstance)
	}
	if inst.jobs <= 0 {
		return fmt.Errorf("%w: jobs must be > 0 (got %d)", ErrInvalidInstance, inst.jobs)
	}
	if inst.stages <= 0 {
		return fmt.Errorf("%w: stages must be > 0 (got %d)", ErrInvalidInstance, inst.stages)
	}
	if len(inst.machines) != inst.stages {
		return fmt.Errorf("%w: machines per stage must have %d entries (got %d)", ErrInvalidInstance, inst.stages, len(inst.machines))
	}
	for s, m := range inst.machines {
		if m < 1 {
			return fmt.Errorf("%w: stage %d must have >= 1 machine (got %d)", ErrInvalidInstance, s, m)
		}
	}
	if len(inst.dueDates) != inst.jobs {
		return fmt.Errorf("%w: due dates must have %d entries (got %d)", ErrInvalidInstance, inst.jobs, len(inst.dueDates))
	}
	for j, d := range inst.dueDates {
		if d < 0 {
			return fmt.Errorf("%w: dueDate[%d] must be >= 0 (got %d)", ErrInvalidInstance, j, d)
		}
	}
	if err := inst.checkComplete(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstance, err)
	}
	for s, stage := range inst.procTimes {
		for j, row := range stage {
			for m, v := range row {
				if v < 0 {
					return fmt.Errorf("%w: procTimes[%d][%d][%d] must be >= 0 (got %d)", ErrInvalidInstance, s, j, m, v)
				}
			}
		}
	}
	return nil
}

func (inst *Instance) checkComplete() error {
	if inst == nil || inst.stages <= 0 || len(inst.machines) != inst.stages {
		return fmt.Errorf("%w: instance has no stage layout", ErrIncompleteInstance)
	}
	if len(inst.procTimes) != inst.stages {
		return fmt.Errorf("%w: processing times cover %d of %d stages", ErrIncompleteInstance, len(inst.procTimes), inst.stages)
	}
	for s, stage := range inst.procTimes {
		if len(stage) != inst.jobs {
			return fmt.Errorf("%w: stage %d lists %d of %d jobs", ErrIncompleteInstance, s, len(stage), inst.jobs)
		}
		for j, row := range stage {
			if len(row) != inst.machines[s] {
				return fmt.Errorf("%w: stage %d job %d lists %d of %d machines", ErrIncompleteInstance, s, j, len(row), inst.machines[s])
			}
		}
	}
	return nil
}

func (inst *Instance) Jobs() int   { return inst.jobs }
func (inst *Instance) Stages() int { return inst.stages }

func (inst *Instance) Machines(stage int) int { return inst.machines[stage] }

func (inst *Instance) MachinesPerStage() []int {
	return append([]int(nil), inst.machines...)
}

func (inst *Instance) MaxMachines() int {
	best := 0
	for _, m := range inst.machines {
		if m > best {
			best = m
		}
	}
	return best
}

func (inst *Instance) Time(stage, job, machine int) int {
	return inst.procTimes[stage][job][machine]
}

func (inst *Instance) DueDate(job int) int { return inst.dueDates[job] }

func (inst *Instance) DueDates() []int {
	return append([]int(nil), inst.dueDates...)
}

func (inst *Instance) WithDueDates(dueDates []int) (*Instance, error) {
	if inst == nil {
		return nil, fmt.Errorf("%w: instance is nil", ErrIncompleteInstance)
	}
	return NewInstance(inst.jobs, inst.stages, inst.machines, inst.procTimes, dueDates)
}

func cloneTimes(src [][][]int) [][][]int {
	if src == nil {
		return nil
	}
	out := make([][][]int, len(src))
	for s, stage := range src {
		if stage == nil {
			continue
		}
		out[s] = make([][]int, len(stage))
		for j, row := range stage {
			out[s][j] = append([]int(nil), row...)
		}
	}
	return out
}
