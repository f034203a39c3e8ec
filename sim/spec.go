package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/choice-sim/choice-sim/sim/density"
)

// StudySpec is the top-level YAML form of one study run.
// Loaded via LoadStudySpec(path).
type StudySpec struct {
	Seed    int64        `yaml:"seed"`
	Servers int          `yaml:"servers"`
	MaxK    int          `yaml:"max_k"`
	Trials  int          `yaml:"trials"`
	Workers int          `yaml:"workers,omitempty"`
	Density density.Spec `yaml:"density"`
	Output  OutputSpec   `yaml:"output,omitempty"`
}

// OutputSpec names optional report artifacts of a study run. Empty paths
// disable the artifact.
type OutputSpec struct {
	CSV  string `yaml:"csv,omitempty"`
	HTML string `yaml:"html,omitempty"`
}

// LoadStudySpec reads and parses a YAML study specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadStudySpec(path string) (*StudySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading study spec: %w", err)
	}
	var spec StudySpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing study spec: %w", err)
	}
	return &spec, nil
}

// Config extracts the simulation geometry of the spec.
func (s *StudySpec) Config() Config {
	return Config{
		Servers: s.Servers,
		MaxK:    s.MaxK,
		Trials:  s.Trials,
		Workers: s.Workers,
		Seed:    s.Seed,
	}
}

// Validate checks the geometry and the density spec together.
func (s *StudySpec) Validate() error {
	if err := s.Config().Validate(); err != nil {
		return err
	}
	if err := s.Density.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}
