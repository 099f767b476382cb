package layout

import "github.com/matzehuels/auteur/pkg/board"

// Paint order for boards on the canvas.
const (
	ZResting = 1
	ZActive  = 10
)

// Placed is one board with its computed geometry and visual state.
type Placed struct {
	Board   board.Board
	Rect    Rect
	Z       int
	Animate bool // false while the board tracks the pointer
}

// Layout is the computed geometry of a whole canvas.
type Layout struct {
	Grid   Grid
	Width  float64
	Height float64
	Boards []Placed
	Active string // id of the board under interaction, if any
}

// Compute places every board. The board with id active is the target of an
// ongoing drag or resize: its transition is suppressed and it is raised above
// its siblings. Boards keep their input order.
func (g Grid) Compute(boards []board.Board, active string) Layout {
	l := Layout{
		Grid:   g,
		Width:  g.CanvasWidth(boards),
		Height: g.CanvasHeight(boards),
		Boards: make([]Placed, len(boards)),
		Active: active,
	}
	for i, b := range boards {
		isActive := active != "" && b.ID == active
		p := Placed{Board: b, Rect: g.BoardRect(b), Z: ZResting, Animate: !isActive}
		if isActive {
			p.Z = ZActive
		}
		l.Boards[i] = p
	}
	return l
}

// PaintOrder returns the boards sorted for painting: resting boards first in
// input order, then raised boards.
func (l Layout) PaintOrder() []Placed {
	out := make([]Placed, 0, len(l.Boards))
	var raised []Placed
	for _, p := range l.Boards {
		if p.Z > ZResting {
			raised = append(raised, p)
			continue
		}
		out = append(out, p)
	}
	return append(out, raised...)
}

// Find returns the placement of the board with the given id.
func (l Layout) Find(id string) (Placed, bool) {
	for _, p := range l.Boards {
		if p.Board.ID == id {
			return p, true
		}
	}
	return Placed{}, false
}

// Overlap is a pair of boards whose rectangles intersect.
type Overlap struct {
	A, B string
}

// Overlaps lists every pair of intersecting boards. It is purely diagnostic:
// overlap is a valid state and nothing in the engine corrects it.
func (l Layout) Overlaps() []Overlap {
	var out []Overlap
	for i := range l.Boards {
		for j := i + 1; j < len(l.Boards); j++ {
			if l.Boards[i].Rect.Intersects(l.Boards[j].Rect) {
				out = append(out, Overlap{A: l.Boards[i].Board.ID, B: l.Boards[j].Board.ID})
			}
		}
	}
	return out
}
