package interaction

import (
	"testing"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/layout"
)

type boardsTarget struct {
	boards  board.Boards
	updates int
}

func (t *boardsTarget) Board(id string) (board.Board, bool) { return t.boards.Find(id) }

func (t *boardsTarget) UpdateBoard(id string, p board.Patch) bool {
	next, ok := t.boards.Update(id, p)
	if ok {
		t.boards = next
		t.updates++
	}
	return ok
}

func (t *boardsTarget) remove(id string) { t.boards, _ = t.boards.Remove(id) }

type recordingHooks struct {
	starts, changes, ends int
	lastChanges           int
}

func (h *recordingHooks) OnGestureStart(string, string)  { h.starts++ }
func (h *recordingHooks) OnGestureChange(string, string) { h.changes++ }
func (h *recordingHooks) OnGestureEnd(_, _ string, n int) {
	h.ends++
	h.lastChanges = n
}

func newTarget() *boardsTarget {
	return &boardsTarget{boards: board.Boards{
		{ID: "a", Type: "IDEABOARD", X: 0, Y: 0, W: 1, H: 2},
		{ID: "b", Type: "MOODBOARD", X: 1, Y: 0, W: 1, H: 2},
	}}
}

func TestDrag(t *testing.T) {
	g := layout.DefaultGrid()
	tgt := newTarget()
	e := New(g, tgt)
	a, _ := tgt.Board("a")

	if !e.PointerDown(Drag, a, 100, 100) {
		t.Fatal("PointerDown rejected on idle engine")
	}
	if e.State() != Dragging {
		t.Fatalf("State() = %v, want dragging", e.State())
	}

	// Less than half a cell: no change emitted.
	if _, ok := e.PointerMove(100+g.CellWidth()*0.4, 100); ok {
		t.Error("sub-half-cell move should not emit")
	}

	c, ok := e.PointerMove(100+g.CellWidth()*1.6, 100+g.CellHeight()*2.5)
	if !ok || c.X != 2 || c.Y != 3 {
		t.Fatalf("PointerMove = %+v, %v; want x=2 y=3", c, ok)
	}
	if got, _ := tgt.Board("a"); got.X != 2 || got.Y != 3 || got.W != 1 || got.H != 2 {
		t.Errorf("stored board = %+v", got)
	}

	// Same cell again: nothing to emit.
	if _, ok := e.PointerMove(100+g.CellWidth()*1.7, 100+g.CellHeight()*2.6); ok {
		t.Error("unchanged placement should not emit")
	}
	if tgt.updates != 1 {
		t.Errorf("updates = %d, want 1", tgt.updates)
	}
}

func TestDragClampsAtOrigin(t *testing.T) {
	g := layout.DefaultGrid()
	tgt := newTarget()
	e := New(g, tgt)
	b, _ := tgt.Board("b")

	e.PointerDown(Drag, b, 500, 500)
	c, ok := e.PointerMove(500-g.CellWidth()*5, 500-g.CellHeight()*5)
	if !ok || c.X != 0 || c.Y != 0 {
		t.Errorf("PointerMove = %+v, %v; want clamped to 0,0", c, ok)
	}
}

func TestResizeClamps(t *testing.T) {
	g := layout.DefaultGrid()
	tests := []struct {
		name         string
		dx, dy       float64
		wantW, wantH int
	}{
		{"grow past max", 10, 20, g.MaxW, g.MaxH},
		{"shrink past min", -10, -20, 1, 1},
		{"grow one column", 1, 0, 2, 2},
		{"half rounds up", 0.5, 0.5, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tgt := newTarget()
			e := New(g, tgt)
			a, _ := tgt.Board("a")
			e.PointerDown(Resize, a, 0, 0)
			if e.State() != Resizing {
				t.Fatalf("State() = %v", e.State())
			}
			c, ok := e.PointerMove(tt.dx*g.CellWidth(), tt.dy*g.CellHeight())
			if !ok || c.W != tt.wantW || c.H != tt.wantH {
				t.Errorf("PointerMove = %+v, %v; want w=%d h=%d", c, ok, tt.wantW, tt.wantH)
			}
			if got, _ := tgt.Board("a"); got.X != 0 || got.Y != 0 {
				t.Errorf("resize moved the board: %+v", got)
			}
		})
	}
}

func TestSingleGesture(t *testing.T) {
	tgt := newTarget()
	e := New(layout.DefaultGrid(), tgt)
	a, _ := tgt.Board("a")
	b, _ := tgt.Board("b")

	e.PointerDown(Drag, a, 0, 0)
	if e.PointerDown(Resize, b, 0, 0) {
		t.Error("second PointerDown should be ignored")
	}
	if id, ok := e.Active(); !ok || id != "a" {
		t.Errorf("Active() = %q, %v; want a", id, ok)
	}
	e.PointerLeave()
	if e.State() != Idle {
		t.Errorf("State() after leave = %v", e.State())
	}
	if _, ok := e.Active(); ok {
		t.Error("Active() should be empty after leave")
	}
}

func TestMoveWhileIdle(t *testing.T) {
	e := New(layout.DefaultGrid(), newTarget())
	if _, ok := e.PointerMove(1000, 1000); ok {
		t.Error("PointerMove while idle should not emit")
	}
	e.PointerUp()
}

func TestIsolationFromOtherRemovals(t *testing.T) {
	g := layout.DefaultGrid()
	tgt := newTarget()
	e := New(g, tgt)
	a, _ := tgt.Board("a")

	e.PointerDown(Drag, a, 0, 0)
	tgt.remove("b")

	c, ok := e.PointerMove(g.CellWidth(), 0)
	if !ok || c.BoardID != "a" || c.X != 1 {
		t.Fatalf("drag after unrelated removal = %+v, %v", c, ok)
	}
	if len(tgt.boards) != 1 {
		t.Errorf("boards = %d, want 1", len(tgt.boards))
	}
}

func TestActiveBoardRemoved(t *testing.T) {
	g := layout.DefaultGrid()
	tgt := newTarget()
	e := New(g, tgt)
	a, _ := tgt.Board("a")

	e.PointerDown(Drag, a, 0, 0)
	tgt.remove("a")
	if _, ok := e.PointerMove(g.CellWidth()*2, 0); ok {
		t.Error("move of a removed board should be a no-op")
	}
	if b, _ := tgt.Board("b"); b.X != 1 || b.Y != 0 {
		t.Errorf("sibling changed: %+v", b)
	}
	e.PointerUp()
	if e.State() != Idle {
		t.Error("PointerUp should return to idle")
	}
}

func TestHooks(t *testing.T) {
	g := layout.DefaultGrid()
	h := &recordingHooks{}
	tgt := newTarget()
	e := New(g, tgt, WithHooks(h))
	a, _ := tgt.Board("a")

	e.PointerDown(Drag, a, 0, 0)
	e.PointerMove(g.CellWidth(), 0)
	e.PointerMove(g.CellWidth()*2, 0)
	e.PointerUp()
	e.PointerUp()

	if h.starts != 1 || h.changes != 2 || h.ends != 1 || h.lastChanges != 2 {
		t.Errorf("hooks = %+v", h)
	}
}
