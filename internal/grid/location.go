// Package grid provides the tile-map model the controller reasons about:
// grid locations, tile kinds and the tilemap that classifies each cell.
package grid

import "fmt"

// Location identifies a cell on the active tilemap.
// Col increases to the right, Row increases downward (screen coordinates).
type Location struct {
	Col int
	Row int
}

// L is a convenience constructor for Location.
func L(col, row int) Location {
	return Location{Col: col, Row: row}
}

// String returns a string representation of the location.
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Col, l.Row)
}

// Add returns a new Location offset by (dx, dy).
func (l Location) Add(dx, dy int) Location {
	return Location{Col: l.Col + dx, Row: l.Row + dy}
}

// Equal returns true if two locations address the same cell.
func (l Location) Equal(other Location) bool {
	return l.Col == other.Col && l.Row == other.Row
}
