package instance

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jabaum/bosy/solution"
)

// Raw YAML structures for unmarshaling.

type rawFile struct {
	Instance rawInstance `yaml:"instance"`
}

type rawInstance struct {
	Name        string   `yaml:"name"`
	Semantics   string   `yaml:"semantics"`
	Inputs      []string `yaml:"inputs"`
	Outputs     []string `yaml:"outputs"`
	Assumptions []string `yaml:"assumptions"`
	Guarantees  []string `yaml:"guarantees"`
}

// LoadFile parses an instance YAML file.
func LoadFile(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses instance YAML bytes.
func Parse(data []byte) (*Instance, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	r := &raw.Instance

	sem := solution.Mealy
	if r.Semantics != "" {
		var err error
		if sem, err = solution.ParseSemantics(r.Semantics); err != nil {
			return nil, err
		}
	}
	if len(r.Outputs) == 0 {
		return nil, fmt.Errorf("instance must declare at least one output")
	}
	if err := checkSignals(r.Inputs, r.Outputs); err != nil {
		return nil, err
	}
	for _, f := range append(append([]string(nil), r.Assumptions...), r.Guarantees...) {
		if strings.TrimSpace(f) == "" {
			return nil, fmt.Errorf("empty LTL formula")
		}
	}

	return &Instance{
		Name:        r.Name,
		Semantics:   sem,
		Inputs:      r.Inputs,
		Outputs:     r.Outputs,
		Assumptions: r.Assumptions,
		Guarantees:  r.Guarantees,
	}, nil
}

// checkSignals rejects empty and repeated signal names.
func checkSignals(inputs, outputs []string) error {
	seen := make(map[string]bool, len(inputs)+len(outputs))
	for _, name := range append(append([]string(nil), inputs...), outputs...) {
		if name == "" {
			return fmt.Errorf("empty signal name")
		}
		if seen[name] {
			return fmt.Errorf("signal %q declared twice", name)
		}
		seen[name] = true
	}
	return nil
}
