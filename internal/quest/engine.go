// Package quest implements the grid movement controller: one character on a
// tile grid, moved by block calls, with start, lava, arrival and portal tiles
// resolved after every move.
//
// The controller never draws or sleeps itself. Everything observable goes
// through an Engine supplied by the host.
package quest

import (
	"time"

	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
)

// Handle identifies a sprite created by the engine.
type Handle int

// Engine is the host collaborator the controller drives.
//
// Implementations must enumerate LocationsOfKind in a deterministic order;
// the controller always takes the first suitable entry.
type Engine interface {
	// CreateSprite creates the character's visual representation at an
	// engine-chosen default position.
	CreateSprite(img core.Image) Handle

	// SetImage replaces the sprite's image without moving it.
	SetImage(h Handle, img core.Image)

	// LoadTilemap installs a new active tilemap.
	LoadTilemap(m *grid.Tilemap)

	// PlaceAt puts the sprite on a location unconditionally.
	PlaceAt(h Handle, loc grid.Location)

	// MoveBy moves the sprite by a tile delta in one discrete step.
	MoveBy(h Handle, dx, dy int)

	// LocationOf returns the sprite's current location.
	LocationOf(h Handle) grid.Location

	// TileKindAt classifies the cell at a location.
	TileKindAt(loc grid.Location) grid.TileKind

	// LocationsOfKind enumerates every location of the given kind.
	LocationsOfKind(kind grid.TileKind) []grid.Location

	// EndGame signals the end of the game.
	EndGame(won bool)

	// Suspend blocks the calling operation for d. It is never cancelled.
	Suspend(d time.Duration)
}
