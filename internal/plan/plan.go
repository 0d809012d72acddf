// Package plan runs YAML-described query pipelines against a record source.
//
// A plan names a source and a list of steps applied in order:
//
//	name: adults_by_age
//	description: Adults, oldest first
//	source: people.yaml
//	steps:
//	  - filter: {age__gte: 18}
//	  - order_by: [-age]
//
// Each step sets exactly one of filter, exclude, order_by, get, count or
// exists. get, count and exists end the pipeline and must come last.
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/filterator/internal/constraint"
)

// Plan is a parsed plan file.
type Plan struct {
	// Name identifies the plan and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the plan selects.
	Description string `yaml:"description"`

	// Source is the record file, relative to the plan file.
	Source string `yaml:"source"`

	// Table is the table read from SQLite sources.
	Table string `yaml:"table,omitempty"`

	// Path selects a nested list in YAML, JSON and CUE sources.
	Path string `yaml:"path,omitempty"`

	Steps []Step `yaml:"steps"`

	// dir is the directory Source is resolved against.
	dir string
}

// Step is one operation of a plan.
type Step struct {
	Filter  *Lookups `yaml:"filter,omitempty"`
	Exclude *Lookups `yaml:"exclude,omitempty"`
	OrderBy []string `yaml:"order_by,omitempty"`

	// Get with an empty mapping ("get: {}") requires exactly one record.
	Get    *Lookups `yaml:"get,omitempty"`
	Count  bool     `yaml:"count,omitempty"`
	Exists bool     `yaml:"exists,omitempty"`
}

// Op names the operation a step sets.
func (s Step) Op() string {
	switch {
	case s.Filter != nil:
		return "filter"
	case s.Exclude != nil:
		return "exclude"
	case s.OrderBy != nil:
		return "order_by"
	case s.Get != nil:
		return "get"
	case s.Count:
		return "count"
	case s.Exists:
		return "exists"
	}
	return ""
}

func (s Step) set() int {
	n := 0
	for _, ok := range []bool{s.Filter != nil, s.Exclude != nil, s.OrderBy != nil, s.Get != nil, s.Count, s.Exists} {
		if ok {
			n++
		}
	}
	return n
}

func (s Step) terminal() bool {
	return s.Get != nil || s.Count || s.Exists
}

// Lookups decodes a YAML mapping into ordered keyword filters.
// Key order in the file is kept.
type Lookups constraint.Lookups

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Lookups) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: lookups must be a mapping", node.Line)
	}
	out := make(Lookups, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var v any
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %s: %w", value.Line, key.Value, err)
		}
		out = append(out, constraint.Lookup{Key: key.Value, Value: v})
	}
	*l = out
	return nil
}

// Load reads and validates a plan file. Unknown fields are rejected.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	p.dir = filepath.Dir(path)
	return p, nil
}

// Parse decodes and validates a plan document. Relative sources resolve
// against the working directory.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &p, nil
}

func validate(p *Plan) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Source == "" {
		return errors.New("source is required")
	}
	for i, step := range p.Steps {
		switch n := step.set(); {
		case n == 0:
			return fmt.Errorf("steps[%d]: one of filter, exclude, order_by, get, count, exists is required", i)
		case n > 1:
			return fmt.Errorf("steps[%d]: only one operation per step", i)
		}
		if step.terminal() && i != len(p.Steps)-1 {
			return fmt.Errorf("steps[%d]: %s must be the last step", i, step.Op())
		}
		if step.OrderBy != nil && len(step.OrderBy) == 0 {
			return fmt.Errorf("steps[%d]: order_by needs at least one key", i)
		}
	}
	return nil
}

// SourcePath returns Source resolved against the plan file's directory.
func (p *Plan) SourcePath() string {
	if filepath.IsAbs(p.Source) || p.dir == "" {
		return p.Source
	}
	return filepath.Join(p.dir, p.Source)
}
