package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/choice-sim/choice-sim/sim"
	"github.com/choice-sim/choice-sim/sim/bins"
)

func sampleTable() *sim.LoadTable {
	return &sim.LoadTable{
		Trials: 100,
		Rows: []sim.LoadRow{
			{K: 1, ExpectedLoad: 0.5, P50: 0.5, P95: 0.95, P99: 0.99},
			{K: 2, ExpectedLoad: 1.0 / 3.0, P50: 0.29, P95: 0.78, P99: 0.9},
		},
	}
}

func TestWriteLoadTable_FormatsRows(t *testing.T) {
	var buf bytes.Buffer
	WriteLoadTable(&buf, sampleTable())

	out := buf.String()
	for _, want := range []string{
		"100 trials",
		"EXPECTED LOAD",
		"0.5000",
		"0.3333",
		"-33.3%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteLoadTable_BaselineRowHasNoDelta(t *testing.T) {
	var buf bytes.Buffer
	WriteLoadTable(&buf, sampleTable())

	lines := strings.Split(buf.String(), "\n")
	var k1 string
	for _, l := range lines {
		if strings.Contains(l, "0.5000") {
			k1 = l
			break
		}
	}
	if k1 == "" {
		t.Fatalf("no k=1 row in output:\n%s", buf.String())
	}
	if strings.Contains(k1, "%") {
		t.Errorf("baseline row should not carry a delta: %q", k1)
	}
}

func TestWriteLoadTable_EmptyTableWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	WriteLoadTable(&buf, &sim.LoadTable{})
	if buf.Len() != 0 {
		t.Errorf("empty table produced output: %q", buf.String())
	}
}

func TestWriteBinsTable_FormatsRows(t *testing.T) {
	res, err := bins.Run(bins.Config{Bins: 10, Balls: 200, Trials: 2, MaxK: 2, Seed: 42})
	if err != nil {
		t.Fatalf("bins.Run() error = %v", err)
	}

	var buf bytes.Buffer
	WriteBinsTable(&buf, res)

	out := buf.String()
	for _, want := range []string{
		"200 balls into 10 bins",
		"AVG MAX LOAD",
		"OCC P99",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
