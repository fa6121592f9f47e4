// Package formats provides pluggable scenario file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLScenario represents the YAML structure for a scenario file.
type YAMLScenario struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Order    int               `yaml:"order,omitempty"`
	Layout   yaml.Node         `yaml:"layout"` // List of rows or a block string
	Hint     string            `yaml:"hint,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Scenario represents a parsed scenario ready for use.
type Scenario struct {
	ID       string
	Name     string
	Order    int
	Layout   []string
	Hint     string
	Metadata map[string]string
}

// ParseYAML parses a YAML scenario file.
// The layout may also be given as a single block string.
func ParseYAML(data []byte) (Scenario, error) {
	var raw YAMLScenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	layout, err := decodeLayout(&raw.Layout)
	if err != nil {
		return Scenario{}, err
	}

	if raw.ID == "" {
		return Scenario{}, fmt.Errorf("scenario has no id")
	}
	if len(layout) == 0 {
		return Scenario{}, fmt.Errorf("scenario %s has an empty layout", raw.ID)
	}

	name := raw.Name
	if name == "" {
		name = raw.ID
	}

	return Scenario{
		ID:       raw.ID,
		Name:     name,
		Order:    raw.Order,
		Layout:   layout,
		Hint:     raw.Hint,
		Metadata: raw.Metadata,
	}, nil
}

// decodeLayout accepts either a sequence of rows or a literal block.
func decodeLayout(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		var rows []string
		for _, row := range strings.Split(node.Value, "\n") {
			row = strings.TrimSpace(row)
			if row != "" {
				rows = append(rows, row)
			}
		}
		return rows, nil
	case yaml.SequenceNode:
		var rows []string
		if err := node.Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode layout rows: %w", err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("layout must be a list of rows or a block string")
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
