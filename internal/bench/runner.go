package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"hybridFlowShop/internal/flowshop"
	"hybridFlowShop/internal/opt"
)

// Algorithm — именованная фабрика оптимизаторов.
// initial — стартовая перестановка экземпляра; алгоритм может её не использовать.
type Algorithm struct {
	Name    string
	Factory func(seed int64, initial []int) (opt.Optimizer, error)
}

type Record struct {
	Algo      string
	Instance  string
	Group     string
	Jobs      int
	Stages    int
	Machines  string
	Objective flowshop.Objective
	Runs      int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	CostBest int
	CostMean float64
	CostStd  float64

	BestMakespan  int
	BestTardiness int

	InitialCost    int
	ImprovementPct float64
	ConvergenceAvg float64

	BestPermutation []int
	// History лучшего запуска, по одной записи на итерацию.
	History []opt.IterStats
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = без ограничения
	// Workers — число параллельных запусков; <= 0 означает 1.
	Workers   int
	Objective flowshop.Objective
	Logger    *slog.Logger
}

func (r Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// RunCase выполняет r.Runs независимых запусков алгоритма на одном экземпляре.
// Запуск i использует сид BaseSeed+i, поэтому результат не зависит от числа воркеров.
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	if r.Runs <= 0 {
		return Record{}, fmt.Errorf("количество запусков должно быть > 0 (получено %d)", r.Runs)
	}
	obj, err := flowshop.ParseObjective(string(r.Objective))
	if err != nil {
		return Record{}, err
	}
	inst := c.Instance
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return Record{}, err
	}
	initialCost, err := eval.Cost(c.Initial, obj)
	if err != nil {
		return Record{}, fmt.Errorf("%s: стартовая перестановка: %w", c.Name(), err)
	}

	log := r.logger().With("algo", algo.Name, "instance", c.Name())
	results := make([]opt.Result, r.Runs)
	timesMs := make([]float64, r.Runs)

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < r.Runs; i++ {
		g.Go(func() error {
			op, err := algo.Factory(r.BaseSeed+int64(i), c.Initial)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}

			runCtx := gctx
			cancel := func() {}
			if r.PerRunTimeout > 0 {
				runCtx, cancel = context.WithTimeout(gctx, r.PerRunTimeout)
			}
			start := time.Now()
			res, err := op.Solve(runCtx, inst)
			dur := time.Since(start)
			cancel()

			if err != nil && runCtx.Err() != nil {
				return fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
			}
			if err != nil {
				return fmt.Errorf("run %d: solve error: %w", i, err)
			}
			if err := flowshop.ValidatePermutation(res.Permutation, inst.Jobs()); err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			if res.Objective != obj {
				return fmt.Errorf("run %d: алгоритм минимизирует %q, а набор сравнивается по %q", i, res.Objective, obj)
			}

			results[i] = res
			timesMs[i] = float64(dur.Microseconds()) / 1000.0
			log.Debug("run finished", "run", i, "cost", res.Cost, "evals", res.Evaluations, "ms", timesMs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Record{}, err
	}

	return r.summarize(c, algo, initialCost, results, timesMs), nil
}

func (r Runner) summarize(c Case, algo Algorithm, initialCost int, results []opt.Result, timesMs []float64) Record {
	costs := make([]int, len(results))
	conv := make([]int, len(results))
	best := 0
	for i, res := range results {
		costs[i] = res.Cost
		conv[i] = res.ConvergenceIter()
		if res.Cost < results[best].Cost {
			best = i
		}
	}

	cs := CalcStats(costs)
	ts := CalcStats(timesMs)

	improvement := 0.0
	if initialCost > 0 {
		improvement = float64(initialCost-results[best].Cost) / float64(initialCost) * 100
	}

	inst := c.Instance
	return Record{
		Algo:      algo.Name,
		Instance:  c.Name(),
		Group:     c.Group,
		Jobs:      inst.Jobs(),
		Stages:    inst.Stages(),
		Machines:  joinInts(inst.MachinesPerStage(), "-"),
		Objective: r.Objective,
		Runs:      len(results),

		TimeBestMs: ts.Best,
		TimeMeanMs: ts.Mean,
		TimeStdMs:  ts.Std,

		CostBest: results[best].Cost,
		CostMean: cs.Mean,
		CostStd:  cs.Std,

		BestMakespan:  results[best].Makespan,
		BestTardiness: results[best].TotalTardiness,

		InitialCost:    initialCost,
		ImprovementPct: improvement,
		ConvergenceAvg: CalcStats(conv).Mean,

		BestPermutation: append([]int(nil), results[best].Permutation...),
		History:         results[best].History,
	}
}

var csvHeader = []string{
	"algo", "instance", "group", "jobs", "stages", "machines", "objective", "runs",
	"time_best_ms", "time_mean_ms", "time_std_ms",
	"cost_best", "cost_mean", "cost_std",
	"best_makespan", "best_tardiness",
	"initial_cost", "improvement_pct", "convergence_avg",
	"best_permutation",
}

func WriteCSV(path string, records []Record) error {
	return createFile(path, func(w io.Writer) error { return EncodeCSV(w, records) })
}

// WriteHistory сохраняет историю сходимости в generations_<algo>_<instance>.csv
// внутри dir и возвращает путь к файлу.
func WriteHistory(dir string, rec Record) (string, error) {
	path := filepath.Join(dir, "generations_"+rec.Algo+"_"+rec.Instance+".csv")
	err := createFile(path, func(w io.Writer) error { return EncodeHistory(w, rec.History) })
	return path, err
}

func EncodeHistory(out io.Writer, history []opt.IterStats) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"iteration", "best", "mean", "worst"}); err != nil {
		return err
	}
	for i, h := range history {
		if err := w.Write([]string{itoa(i), itoa(h.Best), ftoa(h.Mean), itoa(h.Worst)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func createFile(path string, encode func(io.Writer) error) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func EncodeCSV(out io.Writer, records []Record) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Algo,
			r.Instance,
			r.Group,
			itoa(r.Jobs),
			itoa(r.Stages),
			r.Machines,
			string(r.Objective),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.CostBest),
			ftoa(r.CostMean),
			ftoa(r.CostStd),

			itoa(r.BestMakespan),
			itoa(r.BestTardiness),

			itoa(r.InitialCost),
			ftoa(r.ImprovementPct),
			ftoa(r.ConvergenceAvg),

			joinInts(r.BestPermutation, " "),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
