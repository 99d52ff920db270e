package bench

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hybridFlowShop/internal/flowshop"
)

// permSeedOffset сдвигает сид стартовой перестановки относительно сида экземпляра.
const permSeedOffset = 10_000

// Suite описывает набор тестовых экземпляров (YAML-файл бенчмарка).
type Suite struct {
	BaseSeed    int64                `yaml:"base_seed"`
	DueDate     int                  `yaml:"due_date"`
	TimeMin     int                  `yaml:"time_min"`
	TimeMax     int                  `yaml:"time_max"`
	MachineKind flowshop.MachineKind `yaml:"machine_kind"`
	Cases       []CaseSpec           `yaml:"cases"`
}

// CaseSpec — группа однотипных экземпляров.
type CaseSpec struct {
	Name     string `yaml:"name"`
	Jobs     int    `yaml:"jobs"`
	Machines []int  `yaml:"machines"`
	Count    int    `yaml:"count"`
}

// Case — один сгенерированный экземпляр вместе со стартовой перестановкой.
type Case struct {
	ID       int
	Group    string
	Seed     int64
	Instance *flowshop.Instance
	Initial  []int
}

func (c Case) Name() string { return fmt.Sprintf("I%d", c.ID) }

// DefaultSuite — конфигурации исходного набора экземпляров (малые, средние, большие).
func DefaultSuite() Suite {
	return Suite{
		BaseSeed:    42,
		DueDate:     flowshop.DefaultDueDate,
		TimeMin:     10,
		TimeMax:     50,
		MachineKind: flowshop.MachinesUnrelated,
		Cases: []CaseSpec{
			{Name: "S", Jobs: 15, Machines: []int{1, 2}, Count: 2},
			{Name: "S", Jobs: 15, Machines: []int{2, 3}, Count: 2},
			{Name: "S", Jobs: 15, Machines: []int{1, 2, 1}, Count: 3},
			{Name: "S", Jobs: 15, Machines: []int{2, 2, 2}, Count: 2},
			{Name: "S", Jobs: 15, Machines: []int{3, 3, 3}, Count: 2},
			{Name: "S", Jobs: 15, Machines: []int{1, 2, 2, 1}, Count: 2},
			{Name: "S", Jobs: 15, Machines: []int{2, 3, 2, 3}, Count: 2},
			{Name: "S", Jobs: 15, Machines: []int{4, 4, 4, 4}, Count: 1},

			{Name: "M", Jobs: 20, Machines: []int{1, 3}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{3, 1}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{2, 4}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{1, 2, 3}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{3, 2, 1}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{2, 2, 2}, Count: 3},
			{Name: "M", Jobs: 20, Machines: []int{3, 3, 3}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{4, 4, 4}, Count: 1},
			{Name: "M", Jobs: 20, Machines: []int{1, 2, 3, 4}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{4, 3, 2, 1}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{2, 2, 2, 2}, Count: 3},
			{Name: "M", Jobs: 20, Machines: []int{3, 3, 3, 3}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{1, 2, 2, 2, 1}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{2, 3, 4, 3, 2}, Count: 2},
			{Name: "M", Jobs: 20, Machines: []int{2, 2, 2, 2, 2}, Count: 2},

			{Name: "L", Jobs: 30, Machines: []int{1, 4, 3}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{2, 3, 4}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{4, 3, 2}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{3, 3, 3}, Count: 3},
			{Name: "L", Jobs: 30, Machines: []int{1, 3, 3, 1}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{2, 4, 4, 2}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{1, 2, 3, 4}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{4, 3, 2, 1}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{2, 3, 3, 2}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{3, 3, 3, 3}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{1, 2, 3, 2, 1}, Count: 2},
			{Name: "L", Jobs: 30, Machines: []int{2, 3, 4, 3, 2}, Count: 2},
		},
	}
}

// LoadSuite читает YAML-файл набора. Незаданные общие параметры берутся из DefaultSuite.
func LoadSuite(path string) (Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return Suite{}, err
	}
	defer f.Close()

	s := DefaultSuite()
	s.Cases = nil
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Suite{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Suite{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s Suite) Validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("набор не содержит ни одной конфигурации")
	}
	if s.DueDate < 0 {
		return fmt.Errorf("due_date должно быть >= 0 (получено %d)", s.DueDate)
	}
	for i, c := range s.Cases {
		if c.Count <= 0 {
			return fmt.Errorf("cases[%d]: count должно быть > 0 (получено %d)", i, c.Count)
		}
		if err := s.genSpec(c).Validate(); err != nil {
			return fmt.Errorf("cases[%d]: %w", i, err)
		}
	}
	return nil
}

func (s Suite) genSpec(c CaseSpec) flowshop.GenSpec {
	return flowshop.GenSpec{
		Jobs:     c.Jobs,
		Stages:   len(c.Machines),
		Machines: c.Machines,
		MinTime:  s.TimeMin,
		MaxTime:  s.TimeMax,
		Kind:     s.MachineKind,
		DueDate:  s.DueDate,
	}
}

// Expand разворачивает набор в конкретные экземпляры.
// Экземпляр k получает сид BaseSeed+k, его стартовая перестановка — сид BaseSeed+k+10000.
func (s Suite) Expand() ([]Case, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var out []Case
	k := 0
	for _, cs := range s.Cases {
		for i := 0; i < cs.Count; i++ {
			k++
			seed := s.BaseSeed + int64(k)

			gen, err := flowshop.NewGenerator(flowshop.RandomSeed(seed))
			if err != nil {
				return nil, err
			}
			inst, err := gen.Instance(s.genSpec(cs))
			if err != nil {
				return nil, fmt.Errorf("экземпляр %d: %w", k, err)
			}
			permGen, err := flowshop.NewGenerator(flowshop.RandomSeed(seed + permSeedOffset))
			if err != nil {
				return nil, err
			}

			out = append(out, Case{
				ID:       k,
				Group:    cs.Name,
				Seed:     seed,
				Instance: inst,
				Initial:  permGen.Permutation(cs.Jobs),
			})
		}
	}
	return out, nil
}
