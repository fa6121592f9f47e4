// Package scenario provides the tilemaps the character can be sent to:
// a YAML file format, a directory loader and the embedded default set.
package scenario

import (
	"errors"

	"github.com/vovakirdan/grid-quest/internal/grid"
)

// ErrNotFound is returned when no scenario has the requested ID.
var ErrNotFound = errors.New("scenario not found")

// DefaultID is the background scenario loaded before any scenario block runs.
const DefaultID = "level1"

// Scenario is a complete scenario definition.
type Scenario struct {
	ID       string
	Name     string
	Order    int
	Hint     string
	Layout   []string
	Metadata map[string]string
	FilePath string // Empty for embedded scenarios
}

// Tilemap builds the tilemap described by the layout.
func (s Scenario) Tilemap() *grid.Tilemap {
	return grid.ParseLayout(s.ID, s.Layout)
}

// Size returns the layout dimensions.
func (s Scenario) Size() (w, h int) {
	m := s.Tilemap()
	return m.W, m.H
}
