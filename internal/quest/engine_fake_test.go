package quest

import (
	"fmt"
	"time"

	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
)

// fakeEngine records every call the controller makes. Moves are not
// clamped so tests can reason about raw deltas.
type fakeEngine struct {
	tilemap  *grid.Tilemap
	loc      grid.Location
	image    core.Image
	sprites  int
	calls    []string
	pauses   []time.Duration
	outcomes []bool

	// onTileQuery runs before TileKindAt answers.
	onTileQuery func()
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{}
}

func (f *fakeEngine) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeEngine) CreateSprite(img core.Image) Handle {
	f.sprites++
	f.image = img
	f.record("create %s", img.Name)
	return Handle(f.sprites)
}

func (f *fakeEngine) SetImage(_ Handle, img core.Image) {
	f.image = img
	f.record("image %s", img.Name)
}

func (f *fakeEngine) LoadTilemap(m *grid.Tilemap) {
	f.tilemap = m
	f.record("load %s", m.ID)
}

func (f *fakeEngine) PlaceAt(_ Handle, loc grid.Location) {
	f.loc = loc
	f.record("place %v", loc)
}

func (f *fakeEngine) MoveBy(_ Handle, dx, dy int) {
	f.loc = f.loc.Add(dx, dy)
	f.record("move %d,%d", dx, dy)
}

func (f *fakeEngine) LocationOf(Handle) grid.Location {
	return f.loc
}

func (f *fakeEngine) TileKindAt(loc grid.Location) grid.TileKind {
	if f.onTileQuery != nil {
		f.onTileQuery()
	}
	f.record("query %v", loc)
	return f.tilemap.KindAt(loc)
}

func (f *fakeEngine) LocationsOfKind(kind grid.TileKind) []grid.Location {
	return f.tilemap.LocationsOf(kind)
}

func (f *fakeEngine) EndGame(won bool) {
	f.outcomes = append(f.outcomes, won)
	f.record("end %v", won)
}

func (f *fakeEngine) Suspend(d time.Duration) {
	f.pauses = append(f.pauses, d)
	f.record("pause %s", d)
}

func (f *fakeEngine) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
