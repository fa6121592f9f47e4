package grid

import "strings"

// TileKind classifies the content of a cell.
type TileKind int

const (
	TileFloor TileKind = iota // Unclassified; the character simply rests here
	TileStart
	TileLava
	TileArrival
	TilePortal
)

// String returns the lowercase name used in scenario files and logs.
func (k TileKind) String() string {
	switch k {
	case TileStart:
		return "start"
	case TileLava:
		return "lava"
	case TileArrival:
		return "arrival"
	case TilePortal:
		return "portal"
	default:
		return "floor"
	}
}

// Rune returns the layout character for the tile kind.
func (k TileKind) Rune() rune {
	switch k {
	case TileStart:
		return 'S'
	case TileLava:
		return 'L'
	case TileArrival:
		return 'A'
	case TilePortal:
		return 'P'
	default:
		return '.'
	}
}

// KindFromRune parses a layout character. Unknown runes are floor.
func KindFromRune(r rune) TileKind {
	switch r {
	case 'S', 's':
		return TileStart
	case 'L', 'l':
		return TileLava
	case 'A', 'a':
		return TileArrival
	case 'P', 'p':
		return TilePortal
	default:
		return TileFloor
	}
}

// ParseTileKind parses a tile kind name such as "lava".
func ParseTileKind(name string) (TileKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "floor":
		return TileFloor, true
	case "start":
		return TileStart, true
	case "lava":
		return TileLava, true
	case "arrival":
		return TileArrival, true
	case "portal":
		return TilePortal, true
	default:
		return TileFloor, false
	}
}
