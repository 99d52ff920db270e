package ga

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"hybridFlowShop/internal/flowshop"
	"hybridFlowShop/internal/opt"
)

// Solver — генетический алгоритм для гибридного flow-shop.
// Особь — перестановка работ, приспособленность — значение целевой
// функции, полученное симулятором расписания.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
	// Initial — необязательная стартовая перестановка (например, из файла P<k>.txt).
	// Если задана, она помещается в начальную популяцию.
	Initial []int
}

// New возвращает GA-солвер с проверенной конфигурацией.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// population хранит перестановки в одном непрерывном буфере.
type population struct {
	perms [][]int
	costs []int
}

func newPopulation(size, jobs int) *population {
	backing := make([]int, size*jobs)
	p := &population{perms: make([][]int, size), costs: make([]int, size)}
	for i := range p.perms {
		p.perms[i] = backing[i*jobs : (i+1)*jobs]
	}
	return p
}

func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	if s.Initial != nil {
		if err := flowshop.ValidatePermutation(s.Initial, inst.Jobs()); err != nil {
			return opt.Result{}, err
		}
	}

	obj := s.Cfg.Objective
	jobs := inst.Jobs()
	size := s.Cfg.Population

	cur := newPopulation(size, jobs)
	next := newPopulation(size, jobs)

	// Начальная популяция: стартовая перестановка (если есть) и случайные
	for i, p := range cur.perms {
		if i == 0 && s.Initial != nil {
			copy(p, s.Initial)
		} else {
			copy(p, flowshop.IdentityPermutation(jobs))
			flowshop.Shuffle(p, s.Rng)
		}
		cur.costs[i] = eval.MustCost(p, obj)
	}
	evaluations := size
	initialCost := cur.costs[0]

	best := make([]int, jobs)
	bestCost := cur.costs[0]
	copy(best, cur.perms[0])
	for i := 1; i < size; i++ {
		if cur.costs[i] < bestCost {
			bestCost = cur.costs[i]
			copy(best, cur.perms[i])
		}
	}

	history := make([]opt.IterStats, 0, s.Cfg.Generations+1)
	history = append(history, opt.Summarize(cur.costs))

	mark := make([]int, jobs)
	stamp := 0
	spare := make([]int, jobs)
	order := make([]int, size)

	finish := func(gens int, meta map[string]any) (opt.Result, error) {
		res, err := opt.NewResult(eval, obj, best)
		if err != nil {
			return opt.Result{}, err
		}
		res.InitialCost = initialCost
		res.Evaluations = evaluations
		res.Iterations = gens
		res.History = history
		res.Meta = meta
		res.Duration = time.Since(start)
		return res, nil
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Поддержка отмены через context
		if err := ctx.Err(); err != nil {
			res, ferr := finish(gen, map[string]any{"stopped": "context"})
			if ferr != nil {
				return opt.Result{}, ferr
			}
			return res, err
		}

		// Элитизм: лучшие особи переходят без изменений
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return cur.costs[order[i]] < cur.costs[order[j]]
		})
		w := 0
		for ; w < s.Cfg.Elite; w++ {
			copy(next.perms[w], cur.perms[order[w]])
			next.costs[w] = cur.costs[order[w]]
		}

		for w < size {
			p1 := tournament(cur.costs, s.Cfg.TournamentSize, s.Rng)
			p2 := secondParent(cur.costs, s.Cfg.TournamentSize, p1, s.Rng)

			c1 := next.perms[w]
			twin := w+1 < size
			c2 := spare
			if twin {
				c2 = next.perms[w+1]
			}

			if s.Rng.Float64() < s.Cfg.CrossoverRate {
				a, b := cutPoints(jobs, s.Rng)
				stamp++
				oxChild(cur.perms[p1], cur.perms[p2], c1, a, b, mark, stamp)
				stamp++
				oxChild(cur.perms[p2], cur.perms[p1], c2, a, b, mark, stamp)
			} else {
				copy(c1, cur.perms[p1])
				copy(c2, cur.perms[p2])
			}

			children := [][]int{c1}
			if twin {
				children = append(children, c2)
			}
			for _, child := range children {
				if s.Rng.Float64() < s.Cfg.MutationRate {
					mutateSwap(child, s.Rng)
				}
				cost := eval.MustCost(child, obj)
				evaluations++
				next.costs[w] = cost
				if cost < bestCost {
					bestCost = cost
					copy(best, child)
				}
				w++
			}
		}

		cur, next = next, cur
		history = append(history, opt.Summarize(cur.costs))
	}

	return finish(s.Cfg.Generations, map[string]any{
		"population":  s.Cfg.Population,
		"generations": s.Cfg.Generations,
		"elite":       s.Cfg.Elite,
		"objective":   string(obj),
	})
}
