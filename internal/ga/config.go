package ga

import (
	"fmt"

	"hybridFlowShop/internal/flowshop"
)

type Config struct {
	Population     int
	Generations    int
	Elite          int
	TournamentSize int
	CrossoverRate  float64
	MutationRate   float64
	Objective      flowshop.Objective
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf(
			"размер популяции должен быть > 1 (получено %d)",
			c.Population,
		)
	}
	if c.Generations <= 0 {
		return fmt.Errorf(
			"количество поколений должно быть > 0 (получено %d)",
			c.Generations,
		)
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		return fmt.Errorf(
			"число элитных особей должно быть в диапазоне [0, population) (получено %d)",
			c.Elite,
		)
	}
	if c.TournamentSize <= 0 || c.TournamentSize > c.Population {
		return fmt.Errorf(
			"размер турнира должен быть в диапазоне [1, population] (получено %d)",
			c.TournamentSize,
		)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			c.CrossoverRate,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			c.MutationRate,
		)
	}
	if _, err := flowshop.ParseObjective(string(c.Objective)); err != nil {
		return err
	}
	return nil
}

// DefaultConfig соответствует параметрам исходных экспериментов
// (популяция 100, 500 поколений, минимизация суммарного запаздывания).
func DefaultConfig() Config {
	return Config{
		Population:     100,
		Generations:    500,
		Elite:          2,
		TournamentSize: 3,
		CrossoverRate:  0.90,
		MutationRate:   0.20,
		Objective:      flowshop.ObjectiveTardiness,
	}
}
