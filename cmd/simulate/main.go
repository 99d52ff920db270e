package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"hybridFlowShop/internal/flowshop"
	"hybridFlowShop/internal/report"
)

func main() {
	var (
		instPath = flag.String("instance", "", "файл экземпляра (формат I<k>.txt)")
		permPath = flag.String("perm", "", "файл перестановки (формат P<k>.txt); пусто — 0..n-1")
		due      = flag.Int("due", flowshop.DefaultDueDate, "единый срок выполнения для всех работ")
	)
	flag.Parse()

	if err := run(os.Stdout, *instPath, *permPath, *due); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		if errors.Is(err, flowshop.ErrInvalidInstance) || errors.Is(err, flowshop.ErrMalformedPermutation) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(w io.Writer, instPath, permPath string, due int) error {
	if instPath == "" {
		return fmt.Errorf("не задан -instance")
	}
	inst, err := flowshop.LoadInstance(instPath, due)
	if err != nil {
		return err
	}

	perm := flowshop.IdentityPermutation(inst.Jobs())
	if permPath != "" {
		if perm, err = flowshop.LoadPermutation(permPath, inst.Jobs()); err != nil {
			return err
		}
	}

	sched, err := flowshop.Simulate(inst, perm)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, report.Render(inst, sched))
	return err
}
