// Package report renders sweep results as text tables, CSV files and
// self-contained HTML chart pages.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/choice-sim/choice-sim/sim"
	"github.com/choice-sim/choice-sim/sim/bins"
)

// WriteLoadTable renders the load sweep as an aligned text table. The last
// column is the signed change of the expected load relative to k=1.
func WriteLoadTable(w io.Writer, t *sim.LoadTable) {
	if len(t.Rows) == 0 {
		return
	}
	fmt.Fprintf(w, "expected load of the chosen server, %d trials per subset size\n", t.Trials)

	base := t.Rows[0].ExpectedLoad
	rows := make([][]string, 0, len(t.Rows))
	for i, r := range t.Rows {
		delta := "-"
		if i > 0 && base > 0 {
			delta = fmt.Sprintf("%+.1f%%", (r.ExpectedLoad-base)/base*100)
		}
		rows = append(rows, []string{
			strconv.Itoa(r.K),
			fmt.Sprintf("%.4f", r.ExpectedLoad),
			fmt.Sprintf("%.4f", r.P50),
			fmt.Sprintf("%.4f", r.P95),
			fmt.Sprintf("%.4f", r.P99),
			delta,
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"k", "expected load", "p50", "p95", "p99", "vs k=1"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(rows)
	table.Render()
}

// WriteBinsTable renders the balls-into-bins sweep, one row per strategy.
func WriteBinsTable(w io.Writer, r *bins.Result) {
	if len(r.Strategies) == 0 {
		return
	}
	cfg := r.Config
	fmt.Fprintf(w, "maximum bin occupancy, %d balls into %d bins, %d trials per strategy\n",
		cfg.Balls, cfg.Bins, cfg.Trials)

	base := r.Strategies[0].AvgMaxLoad
	rows := make([][]string, 0, len(r.Strategies))
	for i, s := range r.Strategies {
		delta := "-"
		if i > 0 && base > 0 {
			delta = fmt.Sprintf("%+.1f%%", (s.AvgMaxLoad-base)/base*100)
		}
		rows = append(rows, []string{
			strconv.Itoa(s.K),
			fmt.Sprintf("%.2f", s.AvgMaxLoad),
			fmt.Sprintf("%.2f", s.StdMaxLoad),
			delta,
			strconv.FormatInt(s.OccP50, 10),
			strconv.FormatInt(s.OccP99, 10),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"k", "avg max load", "std", "vs k=1", "occ p50", "occ p99"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(rows)
	table.Render()
}
