package pso

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"hybridFlowShop/internal/flowshop"
	"hybridFlowShop/internal/opt"
)

// Solver — рой частиц с кодированием random-keys: позиция частицы
// декодируется в перестановку сортировкой ключей.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает PSO-солвер с проверенной конфигурацией.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

type particle struct {
	pos []float64
	vel []float64

	bestPos  []float64
	bestCost int

	perm []int
}

// swarm — общее состояние роя на время одного запуска Solve.
type swarm struct {
	cfg  Config
	rng  *rand.Rand
	eval *flowshop.Evaluator

	ps    []particle
	costs []int
	idx   []int

	gPos  []float64
	gPerm []int
	gCost int

	evals int
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

	n := inst.Jobs()
	iters := s.Cfg.iterations(n)

	sw := newSwarm(s.Cfg, s.Rng, eval, n)
	initialCost := sw.ps[0].bestCost
	history := make([]opt.IterStats, 0, iters+1)
	history = append(history, opt.Summarize(sw.costs))

	finish := func(done int, meta map[string]any) (opt.Result, error) {
		res, err := opt.NewResult(eval, s.Cfg.Objective, sw.gPerm)
		if err != nil {
			return opt.Result{}, err
		}
		res.InitialCost = initialCost
		res.Evaluations = sw.evals
		res.Iterations = done
		res.History = history
		res.Meta = meta
		res.Duration = time.Since(start)
		return res, nil
	}

	for it := 0; it < iters; it++ {
		// Поддержка отмены через context
		if err := ctx.Err(); err != nil {
			res, ferr := finish(it, map[string]any{"stopped": "context"})
			if ferr != nil {
				return opt.Result{}, ferr
			}
			return res, err
		}
		sw.step()
		history = append(history, opt.Summarize(sw.costs))
	}

	return finish(iters, map[string]any{
		"particles": s.Cfg.Particles,
		"w":         s.Cfg.W,
		"c1":        s.Cfg.C1,
		"c2":        s.Cfg.C2,
		"vmax":      s.Cfg.VMax,
		"mutation":  s.Cfg.Mutation,
		"objective": string(s.Cfg.Objective),
	})
}

func newSwarm(cfg Config, rng *rand.Rand, eval *flowshop.Evaluator, n int) *swarm {
	sw := &swarm{
		cfg:   cfg,
		rng:   rng,
		eval:  eval,
		ps:    make([]particle, cfg.Particles),
		costs: make([]int, cfg.Particles),
		idx:   make([]int, n),
		gPos:  make([]float64, n),
		gPerm: make([]int, n),
		gCost: math.MaxInt,
	}

	// Случайная инициализация позиций и скоростей
	for i := range sw.ps {
		p := &sw.ps[i]
		p.pos = make([]float64, n)
		p.vel = make([]float64, n)
		p.bestPos = make([]float64, n)
		p.perm = make([]int, n)
		for d := 0; d < n; d++ {
			p.pos[d] = sw.randKey()
			p.vel[d] = (rng.Float64()*2 - 1) * sw.velScale()
		}
		cost := sw.score(p)
		p.bestCost = cost
		copy(p.bestPos, p.pos)
		sw.costs[i] = cost
		sw.offerGlobal(p, cost)
	}
	return sw
}

// step выполняет одну итерацию: обновление скоростей и позиций всех частиц.
func (sw *swarm) step() {
	w, c1, c2 := sw.cfg.W, sw.cfg.C1, sw.cfg.C2
	vMax := sw.cfg.VMax

	for i := range sw.ps {
		p := &sw.ps[i]
		for d := range p.pos {
			r1, r2 := sw.rng.Float64(), sw.rng.Float64()
			v := w*p.vel[d] +
				c1*r1*(p.bestPos[d]-p.pos[d]) +
				c2*r2*(sw.gPos[d]-p.pos[d])
			if vMax > 0 {
				v = math.Max(-vMax, math.Min(vMax, v))
			}
			p.vel[d] = v

			x := p.pos[d] + v
			// Частица, вышедшая за границу, останавливается на ней
			if x < sw.cfg.PosMin {
				x, p.vel[d] = sw.cfg.PosMin, 0
			} else if x > sw.cfg.PosMax {
				x, p.vel[d] = sw.cfg.PosMax, 0
			}
			p.pos[d] = x
		}

		// Мутация: перегенерация одного ключа
		if sw.rng.Float64() < sw.cfg.Mutation {
			p.pos[sw.rng.Intn(len(p.pos))] = sw.randKey()
		}

		cost := sw.score(p)
		sw.costs[i] = cost
		if cost < p.bestCost {
			p.bestCost = cost
			copy(p.bestPos, p.pos)
		}
		sw.offerGlobal(p, cost)
	}
}

// score декодирует позицию частицы в p.perm и оценивает её симулятором.
func (sw *swarm) score(p *particle) int {
	decodeRandomKeys(p.pos, p.perm, sw.idx)
	sw.evals++
	return sw.eval.MustCost(p.perm, sw.cfg.Objective)
}

func (sw *swarm) offerGlobal(p *particle, cost int) {
	if cost < sw.gCost {
		sw.gCost = cost
		copy(sw.gPos, p.pos)
		copy(sw.gPerm, p.perm)
	}
}

func (sw *swarm) randKey() float64 {
	return sw.cfg.PosMin + sw.rng.Float64()*(sw.cfg.PosMax-sw.cfg.PosMin)
}

func (sw *swarm) velScale() float64 {
	if sw.cfg.VMax > 0 {
		return sw.cfg.VMax
	}
	return 0.1
}

// decodeRandomKeys упорядочивает работы по возрастанию ключей;
// при равных ключах раньше идёт работа с меньшим номером.
func decodeRandomKeys(keys []float64, out []int, idx []int) {
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		a, b := idx[i], idx[j]
		if keys[a] == keys[b] {
			return a < b
		}
		return keys[a] < keys[b]
	})
	copy(out, idx)
}
