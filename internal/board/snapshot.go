package board

import (
	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
)

// Snapshot is an immutable view of the board for rendering and tests.
type Snapshot struct {
	Tilemap      *grid.Tilemap
	HasCharacter bool
	Location     grid.Location
	Image        core.Image
	Outcome      Outcome
}

// Snapshot copies the current board state.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{
		Tilemap:      b.tilemap.Clone(),
		HasCharacter: b.hasChar,
		Location:     b.loc,
		Image:        b.image,
		Outcome:      b.outcome,
	}
}
