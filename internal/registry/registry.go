// Package registry provides a global registry of program blocks.
// Blocks register themselves in init() functions, allowing programs, the
// CLI and the TUI to discover and run them without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
	"github.com/vovakirdan/grid-quest/internal/quest"
)

// Sentinel errors returned by Execute.
var (
	ErrUnknownBlock = errors.New("unknown block")
	ErrMissingArg   = errors.New("missing block argument")
)

// Group is the palette a block is shown under.
type Group string

const (
	GroupMovement  Group = "movement"
	GroupActions   Group = "actions"
	GroupCharacter Group = "character"
	GroupScenario  Group = "scenario"
)

// Weight orders groups the way the palette shows them. Unknown groups sort last.
func (g Group) Weight() int {
	switch g {
	case GroupMovement:
		return 0
	case GroupActions:
		return 1
	case GroupCharacter:
		return 2
	case GroupScenario:
		return 3
	default:
		return 4
	}
}

// Resolver turns block arguments into the values the controller takes.
type Resolver interface {
	Image(name string) (core.Image, error)
	Scenario(id string) (*grid.Tilemap, error)
}

// RunFunc executes a block against a controller.
type RunFunc func(ctx context.Context, c *quest.Controller, r Resolver, arg string) error

// Block describes a single program block.
type Block struct {
	ID    string // Program identifier, e.g. "moveRight"
	Label string // Palette label, e.g. "→"
	Group Group
	Arg   string // Name of the required argument, empty if none
	Run   RunFunc
}

// TakesArg reports whether the block needs an argument.
func (b Block) TakesArg() bool {
	return b.Arg != ""
}

var (
	blocks = make(map[string]Block)
	mu     sync.RWMutex
)

// Register adds a block to the registry.
// Typically called from an init() function.
// Panics if a block with the same ID is already registered or Run is nil.
func Register(b Block) {
	mu.Lock()
	defer mu.Unlock()

	if b.Run == nil {
		panic(fmt.Sprintf("registry: block %q has no run function", b.ID))
	}
	if _, exists := blocks[b.ID]; exists {
		panic(fmt.Sprintf("registry: block %q already registered", b.ID))
	}

	blocks[b.ID] = b
}

// List returns all registered blocks, sorted by group and then ID.
func List() []Block {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, b)
	}

	sort.Slice(result, func(i, j int) bool {
		wi, wj := result[i].Group.Weight(), result[j].Group.Weight()
		if wi != wj {
			return wi < wj
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the block registered under id.
func Lookup(id string) (Block, bool) {
	mu.RLock()
	defer mu.RUnlock()

	b, ok := blocks[id]
	return b, ok
}

// Exists checks if a block with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Execute looks up a block and runs it.
func Execute(ctx context.Context, id string, c *quest.Controller, r Resolver, arg string) error {
	b, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("registry: %q: %w", id, ErrUnknownBlock)
	}
	if b.TakesArg() && arg == "" {
		return fmt.Errorf("registry: %s needs %s: %w", id, b.Arg, ErrMissingArg)
	}
	return b.Run(ctx, c, r, arg)
}
