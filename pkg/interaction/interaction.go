// Package interaction turns raw pointer events into grid placement changes.
//
// An [Engine] is a small state machine: idle, dragging one board, or resizing
// one board. On pointer down it captures a reference frame (the pointer
// position and the board's placement at that instant). Every pointer move is
// translated into cells relative to that frame and, when the result differs
// from the board's stored placement, emitted to the [Target]. Pointer up or
// leave returns to idle.
//
// The engine is not safe for concurrent use; callers serialize events.
package interaction

import (
	"math"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/layout"
)

// Kind selects what a gesture does to its board.
type Kind int

const (
	Drag Kind = iota
	Resize
)

func (k Kind) String() string {
	if k == Resize {
		return "resize"
	}
	return "drag"
}

// ParseKind maps "drag" and "resize" to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "drag", "move":
		return Drag, true
	case "resize":
		return Resize, true
	}
	return Drag, false
}

// State is the engine's current mode.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Target is the board store the engine reads from and writes to.
type Target interface {
	Board(id string) (board.Board, bool)
	UpdateBoard(id string, patch board.Patch) bool
}

// Hooks receives gesture notifications.
type Hooks interface {
	OnGestureStart(kind, boardID string)
	OnGestureChange(kind, boardID string)
	OnGestureEnd(kind, boardID string, changes int)
}

// Change is one emitted placement update.
type Change struct {
	BoardID    string
	Kind       Kind
	X, Y, W, H int
}

// Patch returns the board patch for the change.
func (c Change) Patch() board.Patch {
	if c.Kind == Resize {
		return board.ResizePatch(c.W, c.H)
	}
	return board.MovePatch(c.X, c.Y)
}

type frame struct {
	boardID        string
	kind           Kind
	startX, startY float64
	initial        board.Board
	changes        int
}

// Engine tracks at most one gesture at a time.
type Engine struct {
	grid   layout.Grid
	target Target
	hooks  Hooks
	active *frame
}

// Option configures an [Engine].
type Option func(*Engine)

// WithHooks sets the gesture hooks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// New returns an idle engine for the given grid and target.
func New(grid layout.Grid, target Target, opts ...Option) *Engine {
	e := &Engine{grid: grid, target: target}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PointerDown starts a gesture on b at pointer position (px, py). It is
// ignored and returns false while another gesture is in progress.
func (e *Engine) PointerDown(kind Kind, b board.Board, px, py float64) bool {
	if e.active != nil {
		return false
	}
	e.active = &frame{boardID: b.ID, kind: kind, startX: px, startY: py, initial: b}
	if e.hooks != nil {
		e.hooks.OnGestureStart(kind.String(), b.ID)
	}
	return true
}

// PointerMove translates the pointer position into a new placement for the
// active board. It reports false when idle, when the board no longer exists
// or when the placement is unchanged.
func (e *Engine) PointerMove(px, py float64) (Change, bool) {
	f := e.active
	if f == nil {
		return Change{}, false
	}
	current, ok := e.target.Board(f.boardID)
	if !ok {
		return Change{}, false
	}

	dx := (px - f.startX) / e.grid.CellWidth()
	dy := (py - f.startY) / e.grid.CellHeight()

	c := Change{BoardID: f.boardID, Kind: f.kind, X: current.X, Y: current.Y, W: current.W, H: current.H}
	switch f.kind {
	case Drag:
		c.X = max(0, round(float64(f.initial.X)+dx))
		c.Y = max(0, round(float64(f.initial.Y)+dy))
		if c.X == current.X && c.Y == current.Y {
			return Change{}, false
		}
	case Resize:
		c.W = clamp(round(float64(f.initial.W)+dx), 1, e.grid.MaxW)
		c.H = clamp(round(float64(f.initial.H)+dy), 1, e.grid.MaxH)
		if c.W == current.W && c.H == current.H {
			return Change{}, false
		}
	}

	if !e.target.UpdateBoard(f.boardID, c.Patch()) {
		return Change{}, false
	}
	f.changes++
	if e.hooks != nil {
		e.hooks.OnGestureChange(f.kind.String(), f.boardID)
	}
	return c, true
}

// PointerUp ends the current gesture.
func (e *Engine) PointerUp() { e.end() }

// PointerLeave ends the current gesture when the pointer leaves the canvas.
func (e *Engine) PointerLeave() { e.end() }

func (e *Engine) end() {
	f := e.active
	if f == nil {
		return
	}
	e.active = nil
	if e.hooks != nil {
		e.hooks.OnGestureEnd(f.kind.String(), f.boardID, f.changes)
	}
}

// State returns the current mode.
func (e *Engine) State() State {
	switch {
	case e.active == nil:
		return Idle
	case e.active.kind == Resize:
		return Resizing
	default:
		return Dragging
	}
}

// Active returns the id of the board under interaction.
func (e *Engine) Active() (string, bool) {
	if e.active == nil {
		return "", false
	}
	return e.active.boardID, true
}

// round rounds to the nearest cell, halves up. math.Round differs only on
// negative halves, and callers clamp those to the same cell.
func round(v float64) int { return int(math.Round(v)) }

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
