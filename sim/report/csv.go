package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/choice-sim/choice-sim/sim"
)

var loadCSVColumns = []string{"k", "expected_load", "p50", "p95", "p99"}

// WriteLoadCSV writes the sweep table to path, one row per subset size.
func WriteLoadCSV(path string, t *sim.LoadTable) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(loadCSVColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range t.Rows {
		record := []string{
			strconv.Itoa(row.K),
			strconv.FormatFloat(row.ExpectedLoad, 'f', -1, 64),
			strconv.FormatFloat(row.P50, 'f', -1, 64),
			strconv.FormatFloat(row.P95, 'f', -1, 64),
			strconv.FormatFloat(row.P99, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing CSV row k=%d: %w", row.K, err)
		}
	}
	return nil
}
