package flowshop

import "sort"

// Event is one (job, stage) assignment. End-Start equals the processing time
// of the job on Machine at Stage.
type Event struct {
	Job     int
	Stage   int
	Machine int
	Start   int
	End     int
}

type Metrics struct {
	// Completion holds each job's end time at the last stage.
	Completion     []int
	Tardiness      []int
	Makespan       int
	TotalTardiness int
}

func (m Metrics) LateJobs() int {
	n := 0
	for _, t := range m.Tardiness {
		if t > 0 {
			n++
		}
	}
	return n
}

func (m Metrics) MaxTardiness() int {
	best := 0
	for _, t := range m.Tardiness {
		if t > best {
			best = t
		}
	}
	return best
}

// Schedule lists events stage by stage, in permutation order inside a stage.
type Schedule struct {
	Events []Event
	Metrics
}

func (s Schedule) OnMachine(stage, machine int) []Event {
	var out []Event
	for _, ev := range s.Events {
		if ev.Stage == stage && ev.Machine == machine {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
