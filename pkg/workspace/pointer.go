package workspace

import (
	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/interaction"
	"github.com/matzehuels/auteur/pkg/observability"
)

// PointerDown starts a drag or resize of the board with the given id at
// canvas position (px, py). It reports false for an unknown board or while
// another gesture is in progress.
func (w *Workspace) PointerDown(kind interaction.Kind, id string, px, py float64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.project.Boards.Find(id)
	if !ok {
		return false
	}
	return w.engine.PointerDown(kind, b, px, py)
}

// PointerMove feeds a pointer position to the active gesture.
func (w *Workspace) PointerMove(px, py float64) (interaction.Change, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.PointerMove(px, py)
}

// PointerUp ends the active gesture.
func (w *Workspace) PointerUp() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.engine.PointerUp()
}

// PointerLeave ends the active gesture when the pointer leaves the canvas.
func (w *Workspace) PointerLeave() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.engine.PointerLeave()
}

// Interaction returns the engine state and the id of the board under
// interaction.
func (w *Workspace) Interaction() (interaction.State, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id, _ := w.engine.Active()
	return w.engine.State(), id
}

// target gives the engine access to the boards. The engine only runs inside
// workspace methods that already hold mu.
type target struct{ w *Workspace }

func (t target) Board(id string) (board.Board, bool) {
	return t.w.project.Boards.Find(id)
}

func (t target) UpdateBoard(id string, patch board.Patch) bool {
	return t.w.updateBoard(id, patch)
}

// gestureHooks resolves the global hooks on every call so hooks installed
// after the workspace was opened still receive events.
type gestureHooks struct{}

func (gestureHooks) OnGestureStart(kind, id string) {
	observability.Workspace().OnGestureStart(kind, id)
}

func (gestureHooks) OnGestureChange(kind, id string) {
	observability.Workspace().OnGestureChange(kind, id)
}

func (gestureHooks) OnGestureEnd(kind, id string, changes int) {
	observability.Workspace().OnGestureEnd(kind, id, changes)
}
