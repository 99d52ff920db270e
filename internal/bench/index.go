package bench

import (
	"bufio"
	"fmt"
	"io"
)

// WriteIndex пишет индекс набора: по строке на экземпляр с именами файлов,
// размерами и сидом, сгруппированные по конфигурации.
func WriteIndex(w io.Writer, cases []Case) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# BENCHMARK INDEX - HYBRID FLOWSHOP")
	fmt.Fprintln(bw, "# Format: ID instance_file permutation_file n_jobs n_stages machines seed")

	group := ""
	for i, c := range cases {
		if i == 0 || c.Group != group {
			group = c.Group
			fmt.Fprintf(bw, "\n# %s\n", group)
		}
		inst := c.Instance
		fmt.Fprintf(bw, "%d I%d.txt P%d.txt %d %d [%s] %d\n",
			c.ID, c.ID, c.ID, inst.Jobs(), inst.Stages(), joinInts(inst.MachinesPerStage(), ","), c.Seed)
	}
	return bw.Flush()
}
