package grid

import "strings"

// Tilemap is a rectangular grid of tile kinds.
// Cells are stored in row-major order: index = row*W + col.
type Tilemap struct {
	ID    string
	W     int
	H     int
	Kinds []TileKind
}

// NewTilemap creates a tilemap of the given size with every cell set to floor.
func NewTilemap(id string, w, h int) *Tilemap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Tilemap{
		ID:    id,
		W:     w,
		H:     h,
		Kinds: make([]TileKind, w*h),
	}
}

// ParseLayout builds a tilemap from rows of layout characters.
// The width is the longest row; short rows are padded with floor.
func ParseLayout(id string, rows []string) *Tilemap {
	w := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}

	m := NewTilemap(id, w, len(rows))
	for y, row := range rows {
		for x, r := range []rune(row) {
			m.Set(L(x, y), KindFromRune(r))
		}
	}
	return m
}

func (m *Tilemap) index(loc Location) int {
	return loc.Row*m.W + loc.Col
}

// InBounds returns true if the location is within the tilemap.
func (m *Tilemap) InBounds(loc Location) bool {
	return loc.Col >= 0 && loc.Col < m.W && loc.Row >= 0 && loc.Row < m.H
}

// KindAt returns the tile kind at a location. Out-of-bounds cells are floor.
func (m *Tilemap) KindAt(loc Location) TileKind {
	if !m.InBounds(loc) {
		return TileFloor
	}
	return m.Kinds[m.index(loc)]
}

// Set assigns a tile kind to a location. Out-of-bounds writes are ignored.
func (m *Tilemap) Set(loc Location, kind TileKind) {
	if m.InBounds(loc) {
		m.Kinds[m.index(loc)] = kind
	}
}

// LocationsOf returns every location holding the given kind.
// The order is row-major (top row first, left to right), which makes
// "first found" deterministic for start tiles and portal pairing.
func (m *Tilemap) LocationsOf(kind TileKind) []Location {
	var locs []Location
	for i, k := range m.Kinds {
		if k == kind {
			locs = append(locs, L(i%m.W, i/m.W))
		}
	}
	return locs
}

// Clone returns a deep copy of the tilemap.
func (m *Tilemap) Clone() *Tilemap {
	kinds := make([]TileKind, len(m.Kinds))
	copy(kinds, m.Kinds)
	return &Tilemap{ID: m.ID, W: m.W, H: m.H, Kinds: kinds}
}

// Layout renders the tilemap back into layout rows.
func (m *Tilemap) Layout() []string {
	rows := make([]string, m.H)
	for y := 0; y < m.H; y++ {
		var sb strings.Builder
		for x := 0; x < m.W; x++ {
			sb.WriteRune(m.KindAt(L(x, y)).Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}
