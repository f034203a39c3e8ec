// Package testutil provides shared test infrastructure for the sweep
// simulator. It consolidates the golden study dataset and assertion helpers
// used by sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldenstudies.json.
type GoldenDataset struct {
	Studies []GoldenStudy `json:"studies"`
}

// GoldenStudy pins the outcome of one end-to-end sweep. ExpectedLoads holds
// the analytic expected load of the chosen server for k = 1..MaxK; runs are
// compared against it with the per-study relative tolerance.
type GoldenStudy struct {
	Name          string    `json:"name"`
	Seed          int64     `json:"seed"`
	Servers       int       `json:"servers"`
	MaxK          int       `json:"max_k"`
	Trials        int       `json:"trials"`
	Workers       int       `json:"workers"`
	Density       string    `json:"density"`
	Coefficients  []float64 `json:"coefficients,omitempty"`
	ExpectedLoads []float64 `json:"expected_loads"`
	RelTol        float64   `json:"rel_tol"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldenstudies.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
