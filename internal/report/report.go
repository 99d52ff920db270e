// Package report renders a simulated schedule for the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"hybridFlowShop/internal/flowshop"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	lateStyle   = cellStyle.Foreground(lipgloss.Color("9"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Render lists every stage's assignments machine by machine, followed by
// per-job completion and tardiness and the aggregate metrics.
func Render(inst *flowshop.Instance, sched flowshop.Schedule) string {
	var b strings.Builder

	for s := 0; s < inst.Stages(); s++ {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Stage %d (%d machines)", s+1, inst.Machines(s))))
		b.WriteByte('\n')

		t := newTable("machine", "job", "start", "end", "duration")
		for m := 0; m < inst.Machines(s); m++ {
			for _, ev := range sched.OnMachine(s, m) {
				t.Row(itoa(m), itoa(ev.Job), itoa(ev.Start), itoa(ev.End), itoa(ev.End-ev.Start))
			}
		}
		b.WriteString(t.String())
		b.WriteString("\n\n")
	}

	b.WriteString(titleStyle.Render("Jobs"))
	b.WriteByte('\n')
	jt := newTable("job", "completion", "due", "tardiness").
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(sched.Tardiness) && sched.Tardiness[row] > 0:
				return lateStyle
			default:
				return cellStyle
			}
		})
	for j := range sched.Completion {
		jt.Row(itoa(j), itoa(sched.Completion[j]), itoa(inst.DueDate(j)), itoa(sched.Tardiness[j]))
	}
	b.WriteString(jt.String())
	b.WriteByte('\n')

	b.WriteString(Summary(sched.Metrics))
	b.WriteByte('\n')
	return b.String()
}

func Summary(m flowshop.Metrics) string {
	return fmt.Sprintf("makespan: %d  total tardiness: %d  late jobs: %d/%d  max tardiness: %d",
		m.Makespan, m.TotalTardiness, m.LateJobs(), len(m.Completion), m.MaxTardiness())
}

func itoa(v int) string { return strconv.Itoa(v) }
