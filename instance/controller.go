package instance

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jabaum/bosy/expr"
	"github.com/jabaum/bosy/solution"
)

type rawControllerFile struct {
	Controller rawController `yaml:"controller"`
}

type rawController struct {
	Semantics    string          `yaml:"semantics"`
	Bound        int             `yaml:"bound"`
	Initial      int             `yaml:"initial"`
	Inputs       []string        `yaml:"inputs"`
	Outputs      []string        `yaml:"outputs"`
	Transitions  []rawTransition `yaml:"transitions"`
	OutputGuards []rawOutput     `yaml:"output_guards"`
}

type rawTransition struct {
	From  int    `yaml:"from"`
	To    int    `yaml:"to"`
	Guard string `yaml:"guard"`
}

type rawOutput struct {
	State  int    `yaml:"state"`
	Output string `yaml:"output"`
	Guard  string `yaml:"guard"`
}

// LoadControllerFile parses a controller YAML file.
func LoadControllerFile(path string) (*solution.Controller, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseController(data)
}

// ParseController builds an explicit controller from YAML bytes. Entries
// repeating a transition or an output guard accumulate by disjunction. A
// missing guard means true.
func ParseController(data []byte) (*solution.Controller, error) {
	var raw rawControllerFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	r := &raw.Controller

	sem := solution.Mealy
	if r.Semantics != "" {
		var err error
		if sem, err = solution.ParseSemantics(r.Semantics); err != nil {
			return nil, err
		}
	}
	if r.Bound <= 0 {
		return nil, fmt.Errorf("controller bound must be positive, got %d", r.Bound)
	}
	if err := checkSignals(r.Inputs, r.Outputs); err != nil {
		return nil, err
	}

	c := solution.New(r.Bound, r.Inputs, r.Outputs, sem)
	c.Initial = r.Initial

	for i, t := range r.Transitions {
		g, err := parseGuard(t.Guard)
		if err != nil {
			return nil, fmt.Errorf("transition %d (%d -> %d): %w", i, t.From, t.To, err)
		}
		if err := c.AddTransition(t.From, t.To, g); err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
	}
	for i, o := range r.OutputGuards {
		g, err := parseGuard(o.Guard)
		if err != nil {
			return nil, fmt.Errorf("output guard %d (%s in %d): %w", i, o.Output, o.State, err)
		}
		if err := c.AddOutput(o.Output, o.State, g); err != nil {
			return nil, fmt.Errorf("output guard %d: %w", i, err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid controller: %w", err)
	}
	return c, nil
}

func parseGuard(s string) (*expr.Node, error) {
	if strings.TrimSpace(s) == "" {
		return expr.True(), nil
	}
	return expr.Parse(s)
}
