package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"strings"

	"hybridFlowShop/internal/bench"
	"hybridFlowShop/internal/flowshop"
	"hybridFlowShop/internal/ga"
	"hybridFlowShop/internal/opt"
	"hybridFlowShop/internal/pso"
)

// Фабрики

func newGAFactory(cfg ga.Config) func(seed int64, initial []int) (opt.Optimizer, error) {
	return func(seed int64, initial []int) (opt.Optimizer, error) {
		solver, err := ga.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		solver.Initial = initial
		return solver, nil
	}
}

func newPSOFactory(cfg pso.Config) func(seed int64, initial []int) (opt.Optimizer, error) {
	return func(seed int64, _ []int) (opt.Optimizer, error) {
		solver, err := pso.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

// errUsage помечает ошибки конфигурации запуска (код выхода 2).
var errUsage = errors.New("некорректная конфигурация")

// logLevel переключается флагом -v после разбора аргументов.
var logLevel = new(slog.LevelVar)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := run(context.Background(), logger, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		if errors.Is(err, errUsage) {
			fail(2, "Конфликт:", err)
		}
		fail(1, "Ошибка:", err)
	}
}

func run(ctx context.Context, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	// CLI флаги для настройки параметров алгоритмов и политики запуска
	var (
		out        = fs.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		historyDir = fs.String("history_dir", "", "каталог для generations_<algo>_<instance>.csv; пусто — не сохранять")
		suitePath  = fs.String("suite", "", "YAML-файл набора экземпляров; пусто — встроенный набор")
		limit      = fs.Int("limit", 0, "обработать только первые N экземпляров набора (0 — все)")
		algos      = fs.String("algos", "GA,PSO", "список алгоритмов: GA, PSO (через запятую)")
		objective  = fs.String("objective", string(flowshop.ObjectiveTardiness), "целевая функция: tardiness | makespan")
		runs       = fs.Int("runs", 10, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed   = fs.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		workers    = fs.Int("workers", runtime.NumCPU(), "число параллельных запусков")
		perRunTO   = fs.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		verbose    = fs.Bool("v", false, "подробный лог (уровень debug)")

		// --- Генетический алгоритм ---
		gaPop   = fs.Int("ga_pop", 100, "размер популяции")
		gaGen   = fs.Int("ga_gen", 500, "количество поколений")
		gaElite = fs.Int("ga_elite", 2, "размер элиты (количество лучших особей)")
		gaTour  = fs.Int("ga_tour", 3, "размер турнирной выборки")
		gaCx    = fs.Float64("ga_cx", 0.90, "вероятность применения кроссовера")
		gaMut   = fs.Float64("ga_mut", 0.20, "вероятность мутации")

		// --- Рой частиц ---
		psoIter      = fs.Int("pso_iter", 500, "общее количество итераций (0 => pso_iter_per_job × nJobs)")
		psoIterPerJb = fs.Int("pso_iter_per_job", 0, "количество итераций на одну работу (используется, если pso_iter == 0)")
		psoParticles = fs.Int("pso_particles", 100, "количество частиц")
		psoW         = fs.Float64("pso_w", 0.5, "коэффициент W (инерция)")
		psoC1        = fs.Float64("pso_c1", 0.2, "коэффициент C1 (когнитивный)")
		psoC2        = fs.Float64("pso_c2", 0.2, "коэффициент C2 (социальный)")
		psoVMax      = fs.Float64("pso_vmax", 0.25, "ограничение скорости частицы (<=0 — без ограничения)")
		psoMut       = fs.Float64("pso_mut", 0.1, "вероятность перегенерации ключа частицы")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *verbose {
		logLevel.Set(slog.LevelDebug)
	}

	obj, err := flowshop.ParseObjective(*objective)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	suite := bench.DefaultSuite()
	if *suitePath != "" {
		if suite, err = bench.LoadSuite(*suitePath); err != nil {
			return fmt.Errorf("%w: набор экземпляров: %w", errUsage, err)
		}
	}
	cases, err := suite.Expand()
	if err != nil {
		return fmt.Errorf("%w: набор экземпляров: %w", errUsage, err)
	}
	if *limit > 0 && *limit < len(cases) {
		cases = cases[:*limit]
	}

	gaCfg := ga.Config{
		Population:     *gaPop,
		Generations:    *gaGen,
		Elite:          *gaElite,
		TournamentSize: *gaTour,
		CrossoverRate:  *gaCx,
		MutationRate:   *gaMut,
		Objective:      obj,
	}
	if err := gaCfg.Validate(); err != nil {
		return fmt.Errorf("%w: генетический алгоритм: %w", errUsage, err)
	}

	psoCfg := pso.DefaultConfig()
	psoCfg.Iterations = *psoIter
	psoCfg.IterationsPerJob = *psoIterPerJb
	psoCfg.Particles = *psoParticles
	psoCfg.W, psoCfg.C1, psoCfg.C2 = *psoW, *psoC1, *psoC2
	psoCfg.VMax = *psoVMax
	psoCfg.Mutation = *psoMut
	psoCfg.Objective = obj
	if err := psoCfg.Validate(); err != nil {
		return fmt.Errorf("%w: рой частиц: %w", errUsage, err)
	}

	available := map[string]bench.Algorithm{
		"GA":  {Name: "GA", Factory: newGAFactory(gaCfg)},
		"PSO": {Name: "PSO", Factory: newPSOFactory(psoCfg)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[strings.ToUpper(a)]
		if !ok {
			return fmt.Errorf("%w: алгоритм не предоставлен в программе %q; доступные: %v", errUsage, a, keys(available))
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
		Workers:       *workers,
		Objective:     obj,
		Logger:        logger,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			logger.Info("запуск",
				"algo", a.Name, "instance", c.Name(), "group", c.Group,
				"jobs", c.Instance.Jobs(), "stages", c.Instance.Stages(), "runs", runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				return err
			}
			records = append(records, rec)

			logger.Info("результат",
				"algo", a.Name, "instance", c.Name(),
				"objective", string(obj),
				"best", rec.CostBest, "mean", fmt.Sprintf("%.2f", rec.CostMean), "std", fmt.Sprintf("%.2f", rec.CostStd),
				"initial", rec.InitialCost, "improvement_pct", fmt.Sprintf("%.2f", rec.ImprovementPct),
				"time_mean_ms", fmt.Sprintf("%.2f", rec.TimeMeanMs))

			if *historyDir != "" {
				path, err := bench.WriteHistory(*historyDir, rec)
				if err != nil {
					return fmt.Errorf("запись истории: %w", err)
				}
				logger.Debug("история сохранена", "path", path)
			}
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		return fmt.Errorf("запись CSV: %w", err)
	}
	logger.Info("сохранено", "path", *out, "records", len(records))
	return nil
}

// helpers

func fail(code int, args ...any) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(code)
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
