package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"hybridFlowShop/internal/bench"
	"hybridFlowShop/internal/flowshop"
)

func main() {
	var (
		suitePath = flag.String("suite", "", "YAML-файл набора экземпляров; пусто — встроенный набор")
		outDir    = flag.String("out", "instances", "каталог для файлов I<k>.txt, P<k>.txt и индекса")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger, *suitePath, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, suitePath, outDir string) error {
	suite := bench.DefaultSuite()
	if suitePath != "" {
		var err error
		if suite, err = bench.LoadSuite(suitePath); err != nil {
			return err
		}
	}
	cases, err := suite.Expand()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for _, c := range cases {
		ip := filepath.Join(outDir, fmt.Sprintf("I%d.txt", c.ID))
		pp := filepath.Join(outDir, fmt.Sprintf("P%d.txt", c.ID))
		if err := flowshop.SaveInstance(ip, c.Instance); err != nil {
			return err
		}
		if err := flowshop.SavePermutation(pp, c.Initial); err != nil {
			return err
		}
		logger.Debug("экземпляр записан", "id", c.ID, "group", c.Group, "seed", c.Seed)
	}

	f, err := os.Create(filepath.Join(outDir, "benchmark_index.txt"))
	if err != nil {
		return err
	}
	if err := bench.WriteIndex(f, cases); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("готово", "instances", len(cases), "dir", outDir)
	return nil
}
