package flowshop

import "fmt"

// Evaluator owns scratch buffers: one per goroutine, the Instance is shared.
type Evaluator struct {
	inst  *Instance
	avail []int // machines of the current stage
	ready []int // per job
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{
		inst:  inst,
		avail: make([]int, inst.MaxMachines()),
		ready: make([]int, inst.jobs),
	}, nil
}

func Simulate(inst *Instance, perm []int) (Schedule, error) {
	e, err := NewEvaluator(inst)
	if err != nil {
		return Schedule{}, err
	}
	return e.Schedule(perm)
}

func (e *Evaluator) Instance() *Instance { return e.inst }

func (e *Evaluator) Schedule(perm []int) (Schedule, error) {
	if err := e.check(perm); err != nil {
		return Schedule{}, err
	}
	events := make([]Event, 0, e.inst.jobs*e.inst.stages)
	e.run(perm, &events)
	return Schedule{Events: events, Metrics: e.metrics()}, nil
}

func (e *Evaluator) Evaluate(perm []int) (Metrics, error) {
	if err := e.check(perm); err != nil {
		return Metrics{}, err
	}
	e.run(perm, nil)
	return e.metrics(), nil
}

// Cost returns the objective value of perm without allocating.
func (e *Evaluator) Cost(perm []int, obj Objective) (int, error) {
	if obj != ObjectiveMakespan && obj != ObjectiveTardiness {
		_, err := ParseObjective(string(obj))
		return 0, err
	}
	if err := e.check(perm); err != nil {
		return 0, err
	}
	e.run(perm, nil)
	makespan, total := 0, 0
	for j, c := range e.ready {
		if c > makespan {
			makespan = c
		}
		if late := c - e.inst.dueDates[j]; late > 0 {
			total += late
		}
	}
	if obj == ObjectiveMakespan {
		return makespan, nil
	}
	return total, nil
}

func (e *Evaluator) MustCost(perm []int, obj Objective) int {
	v, err := e.Cost(perm, obj)
	if err != nil {
		panic(err)
	}
	return v
}

func (e *Evaluator) check(perm []int) error {
	if e == nil || e.inst == nil {
		return fmt.Errorf("%w: nil evaluator", ErrIncompleteInstance)
	}
	if err := e.inst.checkComplete(); err != nil {
		return err
	}
	return ValidatePermutation(perm, e.inst.jobs)
}

// run performs the list scheduling pass. Within a stage jobs are taken in
// permutation order and each goes to the machine that finishes it first;
// ties go to the lowest machine index.
func (e *Evaluator) run(perm []int, events *[]Event) {
	inst := e.inst
	for j := range e.ready {
		e.ready[j] = 0
	}

	for s := 0; s < inst.stages; s++ {
		avail := e.avail[:inst.machines[s]]
		for m := range avail {
			avail[m] = 0
		}
		times := inst.procTimes[s]

		for _, job := range perm {
			ready := e.ready[job]
			row := times[job]

			best := 0
			bestStart := max(ready, avail[0])
			bestEnd := bestStart + row[0]
			for m := 1; m < len(avail); m++ {
				start := max(ready, avail[m])
				if end := start + row[m]; end < bestEnd {
					best, bestStart, bestEnd = m, start, end
				}
			}

			avail[best] = bestEnd
			e.ready[job] = bestEnd
			if events != nil {
				*events = append(*events, Event{
					Job:     job,
					Stage:   s,
					Machine: best,
					Start:   bestStart,
					End:     bestEnd,
				})
			}
		}
	}
}

func (e *Evaluator) metrics() Metrics {
	n := e.inst.jobs
	m := Metrics{
		Completion: make([]int, n),
		Tardiness:  make([]int, n),
	}
	copy(m.Completion, e.ready)
	for j, c := range m.Completion {
		if c > m.Makespan {
			m.Makespan = c
		}
		if late := c - e.inst.dueDates[j]; late > 0 {
			m.Tardiness[j] = late
			m.TotalTardiness += late
		}
	}
	return m
}
