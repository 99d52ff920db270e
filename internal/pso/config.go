package pso

import (
	"fmt"

	"hybridFlowShop/internal/flowshop"
)

type Config struct {
	Iterations       int
	IterationsPerJob int

	Particles int

	W  float64
	C1 float64
	C2 float64

	VMax float64

	PosMin float64
	PosMax float64

	// Mutation — вероятность перегенерировать один случайный ключ частицы на итерации.
	Mutation float64

	Objective flowshop.Objective
}

// DefaultConfig повторяет параметры исходных экспериментов PSO
// (100 частиц, 500 итераций, w=0.5, c1=c2=0.2).
func DefaultConfig() Config {
	return Config{
		Iterations:       500,
		IterationsPerJob: 0,

		Particles: 100,

		W:  0.5,
		C1: 0.2,
		C2: 0.2,

		VMax:   0.25,
		PosMin: 0.0,
		PosMax: 1.0,

		Mutation: 0.1,

		Objective: flowshop.ObjectiveTardiness,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerJob <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerJob > 0",
		)
	}
	if c.Particles <= 0 {
		return fmt.Errorf(
			"Particles должно быть > 0 (получено %d)",
			c.Particles,
		)
	}
	if c.W < 0 {
		return fmt.Errorf(
			"W должно быть >= 0 (получено %f)",
			c.W,
		)
	}
	if c.C1 < 0 || c.C2 < 0 {
		return fmt.Errorf(
			"C1 и C2 должны быть >= 0 (получено %f, %f)",
			c.C1,
			c.C2,
		)
	}
	if c.PosMin >= c.PosMax {
		return fmt.Errorf(
			"PosMin должно быть < PosMax (получено %f >= %f)",
			c.PosMin,
			c.PosMax,
		)
	}
	if c.Mutation < 0 || c.Mutation > 1 {
		return fmt.Errorf(
			"вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			c.Mutation,
		)
	}
	if _, err := flowshop.ParseObjective(string(c.Objective)); err != nil {
		return err
	}
	return nil
}

// iterations возвращает число итераций для задачи из n работ.
func (c Config) iterations(n int) int {
	if c.Iterations > 0 {
		return c.Iterations
	}
	return c.IterationsPerJob * n
}
