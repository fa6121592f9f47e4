package board

import (
	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/grid"
)

// CellWidth is the number of screen columns per tile; two keeps tiles
// roughly square in a terminal.
const CellWidth = 2

var tileStyles = map[grid.TileKind]core.Cell{
	grid.TileFloor:   {Rune: '·', Color: core.ColorGray},
	grid.TileStart:   {Rune: 'S', Color: core.ColorGreen},
	grid.TileLava:    {Rune: '~', Color: core.ColorBrightRed},
	grid.TileArrival: {Rune: 'A', Color: core.ColorBrightGreen},
	grid.TilePortal:  {Rune: 'O', Color: core.ColorMagenta},
}

// FrameSize returns the screen size needed to draw a w×h tilemap with a border.
func FrameSize(w, h int) (int, int) {
	return w*CellWidth + 3, h + 2
}

// Render draws the snapshot with its top-left border corner at (x, y).
func (s Snapshot) Render(dst *core.Screen, x, y int) {
	m := s.Tilemap
	fw, fh := FrameSize(m.W, m.H)
	dst.DrawBox(core.NewRect(x, y, fw, fh), core.ColorGray)

	// Scenario ID on the top border, when it fits between the corners.
	if label := " " + m.ID + " "; m.ID != "" && len([]rune(label))+2 <= fw {
		dst.DrawText(x+1, y, label)
	}

	for row := 0; row < m.H; row++ {
		for col := 0; col < m.W; col++ {
			cell := tileStyles[m.KindAt(grid.L(col, row))]
			dst.SetCell(x+2+col*CellWidth, y+1+row, cell)
		}
	}

	if s.HasCharacter && m.InBounds(s.Location) {
		color := s.Image.Color
		if s.Outcome == OutcomeLost {
			color = core.ColorRed
		}
		dst.SetColor(x+2+s.Location.Col*CellWidth, y+1+s.Location.Row, s.Image.Glyph, color)
	}
}

// Render draws the current board state at (x, y).
func (b *Board) Render(dst *core.Screen, x, y int) {
	b.Snapshot().Render(dst, x, y)
}
