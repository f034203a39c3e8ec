package sim

import (
	"fmt"
	"testing"

	"github.com/choice-sim/choice-sim/sim/density"
	"github.com/choice-sim/choice-sim/sim/internal/testutil"
)

// TestGoldenStudies pins end-to-end sweep results against the analytic
// expectations recorded in testdata/goldenstudies.json.
func TestGoldenStudies(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, study := range dataset.Studies {
		t.Run(study.Name, func(t *testing.T) {
			cfg := Config{
				Servers: study.Servers,
				MaxK:    study.MaxK,
				Trials:  study.Trials,
				Workers: study.Workers,
				Seed:    study.Seed,
			}
			spec := density.Spec{Type: study.Density, Coefficients: study.Coefficients}

			s, err := NewSimulator(cfg, spec)
			if err != nil {
				t.Fatalf("NewSimulator() error = %v", err)
			}
			table, err := s.Run()
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if len(table.Rows) != len(study.ExpectedLoads) {
				t.Fatalf("got %d rows, want %d", len(table.Rows), len(study.ExpectedLoads))
			}
			for i, row := range table.Rows {
				testutil.AssertFloat64Equal(t, fmt.Sprintf("expected load k=%d", row.K),
					study.ExpectedLoads[i], row.ExpectedLoad, study.RelTol)
			}
		})
	}
}
