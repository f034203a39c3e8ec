package sim

import (
	"errors"
	"testing"
)

func TestConfigValidate_AcceptsSaneGeometry(t *testing.T) {
	cfg := Config{Servers: 10000, MaxK: 10, Trials: 100, Workers: 4, Seed: 42}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestConfigValidate_RejectsImpossibleGeometry(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero servers", Config{Servers: 0, MaxK: 1, Trials: 1}},
		{"negative servers", Config{Servers: -5, MaxK: 1, Trials: 1}},
		{"zero max_k", Config{Servers: 10, MaxK: 0, Trials: 1}},
		{"max_k beyond servers", Config{Servers: 10, MaxK: 11, Trials: 1}},
		{"zero trials", Config{Servers: 10, MaxK: 2, Trials: 0}},
		{"negative workers", Config{Servers: 10, MaxK: 2, Trials: 1, Workers: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Validate() = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestConfig_WorkerCountClamps(t *testing.T) {
	cases := []struct {
		workers, trials, want int
	}{
		{0, 100, 1},
		{1, 100, 1},
		{8, 100, 8},
		{8, 3, 3},
	}
	for _, tc := range cases {
		cfg := Config{Servers: 10, MaxK: 2, Trials: tc.trials, Workers: tc.workers}
		if got := cfg.workerCount(); got != tc.want {
			t.Errorf("workerCount(workers=%d, trials=%d) = %d, want %d", tc.workers, tc.trials, got, tc.want)
		}
	}
}
