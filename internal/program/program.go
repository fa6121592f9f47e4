// Package program parses block programs and runs them against a controller.
package program

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/grid-quest/internal/registry"
)

// MaxCalls bounds the number of block calls a program expands to.
const MaxCalls = 10000

// ErrTooManyCalls is returned when repeats expand past MaxCalls.
var ErrTooManyCalls = errors.New("program expands to too many calls")

// Step is one entry of a program: a block call or a repeat group.
type Step struct {
	Block  string
	Arg    string
	Repeat int
	Steps  []Step
}

// IsRepeat reports whether the step is a repeat group.
func (s Step) IsRepeat() bool {
	return s.Repeat != 0 || len(s.Steps) > 0
}

type rawStep struct {
	Block  string `yaml:"block"`
	Arg    string `yaml:"arg"`
	Repeat int    `yaml:"repeat"`
	Steps  []Step `yaml:"steps"`
}

// UnmarshalYAML accepts a bare block ID, a {block, arg} mapping or a
// {repeat, steps} mapping.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = Step{Block: strings.TrimSpace(node.Value)}
		return nil
	}

	var raw rawStep
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Block != "" && (raw.Repeat != 0 || len(raw.Steps) > 0) {
		return fmt.Errorf("line %d: step has both block and repeat", node.Line)
	}
	*s = Step(raw)
	return nil
}

// Program is a named list of steps.
type Program struct {
	Name       string `yaml:"name"`
	Scenario   string `yaml:"scenario,omitempty"`
	Appearance string `yaml:"appearance,omitempty"`
	Steps      []Step `yaml:"steps"`
}

// Call is a single block invocation after repeats are expanded.
type Call struct {
	Block string
	Arg   string
}

// String renders the call the way it is written in a program.
func (c Call) String() string {
	if c.Arg == "" {
		return c.Block
	}
	return c.Block + "(" + c.Arg + ")"
}

// Parse decodes and validates a program.
func Parse(data []byte) (*Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("program: yaml unmarshal: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses a program file.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: reading %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		base := filepath.Base(path)
		p.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return p, nil
}

// Validate checks every block ID against the registry and bounds the
// expanded call count.
func (p *Program) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("program: no steps")
	}
	if err := validateSteps(p.Steps, "steps"); err != nil {
		return err
	}
	if n := countCalls(p.Steps, MaxCalls); n > MaxCalls {
		return fmt.Errorf("program: more than %d calls: %w", MaxCalls, ErrTooManyCalls)
	}
	return nil
}

// countCalls returns the expanded call count, or limit+1 once it passes limit.
// Steps must already be validated so every repeat has a body.
func countCalls(steps []Step, limit int) int {
	n := 0
	for _, s := range steps {
		if !s.IsRepeat() {
			n++
		} else {
			inner := countCalls(s.Steps, limit)
			if inner > limit || s.Repeat > (limit-n)/inner {
				return limit + 1
			}
			n += s.Repeat * inner
		}
		if n > limit {
			return limit + 1
		}
	}
	return n
}

func validateSteps(steps []Step, path string) error {
	for i, s := range steps {
		where := fmt.Sprintf("%s[%d]", path, i)

		if s.IsRepeat() {
			if s.Repeat < 1 {
				return fmt.Errorf("program: %s: repeat count %d must be at least 1", where, s.Repeat)
			}
			if len(s.Steps) == 0 {
				return fmt.Errorf("program: %s: repeat has no steps", where)
			}
			if err := validateSteps(s.Steps, where+".steps"); err != nil {
				return err
			}
			continue
		}

		b, ok := registry.Lookup(s.Block)
		if !ok {
			return fmt.Errorf("program: %s: %q: %w", where, s.Block, registry.ErrUnknownBlock)
		}
		if b.TakesArg() && s.Arg == "" {
			return fmt.Errorf("program: %s: %s needs %s: %w", where, s.Block, b.Arg, registry.ErrMissingArg)
		}
	}
	return nil
}

// Calls expands repeats into the flat sequence of block calls.
func (p *Program) Calls() []Call {
	return flatten(nil, p.Steps)
}

func flatten(dst []Call, steps []Step) []Call {
	for _, s := range steps {
		if s.IsRepeat() {
			for range s.Repeat {
				dst = flatten(dst, s.Steps)
			}
			continue
		}
		dst = append(dst, Call{Block: s.Block, Arg: s.Arg})
	}
	return dst
}
