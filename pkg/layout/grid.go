package layout

import (
	"math"

	"github.com/matzehuels/auteur/pkg/board"
)

// Default grid constants.
const (
	DefaultColWidth  = 380.0
	DefaultRowHeight = 120.0
	DefaultGap       = 24.0
	DefaultColumns   = 3
	DefaultMaxW      = 3
	DefaultMaxH      = 10
	DefaultMinCanvas = 300.0

	// DefaultW and DefaultH are the span given to newly placed boards.
	DefaultW = 1
	DefaultH = 2
)

// Grid holds the fixed layout constants of a workspace canvas.
type Grid struct {
	ColWidth  float64 `toml:"col_width" json:"colWidth" validate:"gt=0"`
	RowHeight float64 `toml:"row_height" json:"rowHeight" validate:"gt=0"`
	Gap       float64 `toml:"gap" json:"gap" validate:"gte=0"`
	Columns   int     `toml:"columns" json:"columns" validate:"gte=1"`
	MaxW      int     `toml:"max_w" json:"maxW" validate:"gte=1"`
	MaxH      int     `toml:"max_h" json:"maxH" validate:"gte=1"`
	MinCanvas float64 `toml:"min_canvas" json:"minCanvas" validate:"gte=0"`
}

// DefaultGrid returns the standard three-column grid.
func DefaultGrid() Grid {
	return Grid{
		ColWidth:  DefaultColWidth,
		RowHeight: DefaultRowHeight,
		Gap:       DefaultGap,
		Columns:   DefaultColumns,
		MaxW:      DefaultMaxW,
		MaxH:      DefaultMaxH,
		MinCanvas: DefaultMinCanvas,
	}
}

// CellWidth is the horizontal pitch of one column including the gap.
func (g Grid) CellWidth() float64 { return g.ColWidth + g.Gap }

// CellHeight is the vertical pitch of one row including the gap.
func (g Grid) CellHeight() float64 { return g.RowHeight + g.Gap }

// Rect converts a grid placement into pixel geometry.
func (g Grid) Rect(x, y, w, h int) Rect {
	left := float64(x) * g.CellWidth()
	top := float64(y) * g.CellHeight()
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + float64(w)*g.ColWidth + float64(w-1)*g.Gap,
		Bottom: top + float64(h)*g.RowHeight + float64(h-1)*g.Gap,
	}
}

// BoardRect converts a board's placement into pixel geometry.
func (g Grid) BoardRect(b board.Board) Rect { return g.Rect(b.X, b.Y, b.W, b.H) }

// Cells is the inverse of [Grid.Rect]: it maps a pixel rectangle back onto
// the grid by dividing by the cell pitch and rounding.
func (g Grid) Cells(r Rect) (x, y, w, h int) {
	x = int(math.Round(r.Left / g.CellWidth()))
	y = int(math.Round(r.Top / g.CellHeight()))
	w = int(math.Round((r.Width() + g.Gap) / g.CellWidth()))
	h = int(math.Round((r.Height() + g.Gap) / g.CellHeight()))
	return x, y, w, h
}

// CanvasHeight returns the scrollable height needed to show every board.
// An empty collection yields MinCanvas.
func (g Grid) CanvasHeight(boards []board.Board) float64 {
	if len(boards) == 0 {
		return g.MinCanvas
	}
	maxY := 0
	for _, b := range boards {
		maxY = max(maxY, b.Y+b.H)
	}
	return float64(maxY) * g.CellHeight()
}

// CanvasWidth returns the width needed to show every board, never less than
// the configured number of columns.
func (g Grid) CanvasWidth(boards []board.Board) float64 {
	cols := g.Columns
	for _, b := range boards {
		cols = max(cols, b.X+b.W)
	}
	return float64(cols)*g.CellWidth() - g.Gap
}

// Place picks the top-left cell for a new board using the shortest-column
// heuristic. For every board and every column it covers, that column's next
// free row is raised to at least y+h. The column with the smallest value wins;
// ties go to the lowest index. Columns beyond the grid are ignored.
func (g Grid) Place(boards []board.Board) (x, y int) {
	cols := max(g.Columns, 1)
	next := make([]int, cols)
	for _, b := range boards {
		for i := range b.W {
			col := b.X + i
			if col >= 0 && col < cols {
				next[col] = max(next[col], b.Y+b.H)
			}
		}
	}

	best := 0
	for i := 1; i < cols; i++ {
		if next[i] < next[best] {
			best = i
		}
	}
	return best, next[best]
}

// Clamp forces a board's placement into the grid bounds. Loaders use it to
// repair data written by other tools instead of rejecting it.
func (g Grid) Clamp(b board.Board) board.Board {
	b.X = max(b.X, 0)
	b.Y = max(b.Y, 0)
	b.W = clampInt(b.W, 1, g.MaxW)
	b.H = clampInt(b.H, 1, g.MaxH)
	return b
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
