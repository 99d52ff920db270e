package flowshop

import "fmt"

type Objective string

const (
	ObjectiveMakespan  Objective = "makespan"
	ObjectiveTardiness Objective = "tardiness"
)

func ParseObjective(s string) (Objective, error) {
	switch o := Objective(s); o {
	case ObjectiveMakespan, ObjectiveTardiness:
		return o, nil
	default:
		return "", fmt.Errorf("%w %q (want %q or %q)", ErrUnknownObjective, s, ObjectiveMakespan, ObjectiveTardiness)
	}
}

func (m Metrics) Value(obj Objective) (int, error) {
	switch obj {
	case ObjectiveMakespan:
		return m.Makespan, nil
	case ObjectiveTardiness:
		return m.TotalTardiness, nil
	default:
		_, err := ParseObjective(string(obj))
		return 0, err
	}
}
