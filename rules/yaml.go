// Package rules loads match-tree rules from a YAML rule file into the
// engine package's Rule type.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/helix90/matchtree/engine"
)

// fileCondition is the YAML shape of one ConditionalOutputList gate: at
// most one of Equals/NotEmpty is set, tested against the named variable.
// Omitting When entirely makes the output unconditional.
type fileCondition struct {
	Var      string  `yaml:"var"`
	Equals   *string `yaml:"equals,omitempty"`
	NotEmpty bool    `yaml:"not_empty,omitempty"`
}

type fileOutput struct {
	When     *fileCondition `yaml:"when,omitempty"`
	Template string         `yaml:"template"`
}

type fileRule struct {
	ID      int          `yaml:"id"`
	Inputs  []string     `yaml:"inputs"`
	Outputs []fileOutput `yaml:"outputs"`
}

// fileConfig is the top-level shape of a rule file.
type fileConfig struct {
	Rules []fileRule `yaml:"rules"`
}

// LoadFile reads a YAML rule file and returns the engine Rules it describes.
func LoadFile(path string) ([]engine.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML rule data into engine Rules without touching the
// filesystem, so callers can load rules embedded or received over the wire.
func Parse(data []byte) ([]engine.Rule, error) {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing rules YAML: %w", err)
	}

	out := make([]engine.Rule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		list, err := buildOutputList(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", r.ID, err)
		}
		out = append(out, engine.Rule{
			ID:     r.ID,
			Inputs: r.Inputs,
			Output: list,
		})
	}
	return out, nil
}

func buildOutputList(r fileRule) (*engine.ConditionalOutputList, error) {
	if len(r.Outputs) == 0 {
		return nil, fmt.Errorf("no outputs declared")
	}
	if len(r.Outputs) == 1 && r.Outputs[0].When == nil {
		return engine.Unconditional(r.Outputs[0].Template), nil
	}

	pairs := make([]engine.OutputPair, 0, len(r.Outputs))
	for _, o := range r.Outputs {
		pairs = append(pairs, engine.Pair(toCondition(o.When), o.Template))
	}
	return engine.NewConditionalOutputList(pairs...), nil
}

// toCondition maps a file-level condition onto the engine's Condition
// implementations; a nil When is treated as unconditional.
func toCondition(c *fileCondition) engine.Condition {
	switch {
	case c == nil:
		return engine.Always{}
	case c.Equals != nil:
		return engine.VarEquals{Name: c.Var, Value: *c.Equals}
	case c.NotEmpty:
		return engine.VarNotEmpty{Name: c.Var}
	default:
		return engine.Always{}
	}
}
