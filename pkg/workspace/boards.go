package workspace

import (
	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/layout"
	"github.com/matzehuels/auteur/pkg/observability"
	"github.com/matzehuels/auteur/pkg/plugin"
)

var _ plugin.Mutations = (*Workspace)(nil)

// AddBoard creates a board of the given kind in the shortest column. The
// title comes from the kind's metadata and the initial notes or content from
// its seeder. Kinds hidden from the add-board menu are rejected.
func (w *Workspace) AddBoard(typ string) (board.Board, error) {
	d, ok := w.registry.Lookup(typ)
	if !ok {
		return board.Board{}, errors.New(errors.ErrCodeUnknownKind, "no plugin registered for board type %q", typ)
	}
	if plugin.IsHidden(d) {
		return board.Board{}, errors.New(errors.ErrCodeInvalidInput, "board type %q cannot be added manually", typ)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	x, y := w.grid.Place(w.project.Boards)
	b := plugin.Seed(d, board.Board{
		ID:    board.NewID(),
		Type:  typ,
		Title: d.Meta().Title,
		X:     x,
		Y:     y,
		W:     layout.DefaultW,
		H:     layout.DefaultH,
	})
	w.setBoards(w.project.Boards.Append(b))
	w.logger.Debug("board added", "type", typ, "id", b.ID, "x", x, "y", y)
	observability.Workspace().OnBoardAdded(typ, b.ID)
	return b.Clone(), nil
}

// RemoveBoard deletes a board and its transient image state.
func (w *Workspace) RemoveBoard(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.project.Boards.Find(id)
	if !ok {
		return false
	}
	out, _ := w.project.Boards.Remove(id)
	w.setBoards(out)
	delete(w.images, id)
	if w.fullscreen == id {
		w.fullscreen = ""
	}
	if w.upload == id {
		w.upload = ""
	}
	observability.Workspace().OnBoardRemoved(b.Type, id)
	return true
}

// UpdateBoard applies a partial update. Placement is clamped to the grid
// bounds; id and type never change. A notes replacement is refused when the
// board's kind keeps no notes or any note breaks the variant invariant.
func (w *Workspace) UpdateBoard(id string, patch board.Patch) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updateBoard(id, patch)
}

func (w *Workspace) updateBoard(id string, patch board.Patch) bool {
	if patch.Notes != nil {
		b, ok := w.project.Boards.Find(id)
		if !ok || !w.acceptsNotes(b, *patch.Notes) {
			return false
		}
	}
	out, ok := w.project.Boards.Replace(id, func(b board.Board) board.Board {
		return w.grid.Clamp(patch.Apply(b))
	})
	if !ok {
		return false
	}
	w.setBoards(out)
	observability.Workspace().OnBoardUpdated(id)
	return true
}

// AddNote appends an empty text note to a board whose kind takes notes.
func (w *Workspace) AddNote(id string) bool {
	_, ok := w.AddTextNote(id, "")
	return ok
}

// AddTextNote appends a text note and returns it.
func (w *Workspace) AddTextNote(id, text string) (board.Note, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.project.Boards.Find(id)
	if !ok || !w.takes(b, plugin.TakesNotes) {
		return board.Note{}, false
	}
	n := board.NewTextNote(text)
	out, _ := w.project.Boards.AppendNote(id, n)
	w.setBoards(out)
	observability.Workspace().OnBoardUpdated(id)
	return n, true
}

// RemoveNote deletes one note.
func (w *Workspace) RemoveNote(boardID, noteID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	out, ok := w.project.Boards.RemoveNote(boardID, noteID)
	if !ok {
		return false
	}
	w.setBoards(out)
	observability.Workspace().OnBoardUpdated(boardID)
	return true
}

// UpdateNote patches one note. A patch that would mix the text and image
// variants is refused.
func (w *Workspace) UpdateNote(boardID, noteID string, patch board.NotePatch) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	out, ok := w.project.Boards.UpdateNote(boardID, noteID, patch)
	if !ok {
		return false
	}
	w.setBoards(out)
	observability.Workspace().OnBoardUpdated(boardID)
	return true
}

// RequestImageUpload marks a board as waiting for an image. The outer layer
// fulfills the request with [Workspace.AttachImage].
func (w *Workspace) RequestImageUpload(boardID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.project.Boards.Find(boardID)
	if !ok || !w.takes(b, plugin.TakesImages) {
		return false
	}
	w.upload = boardID
	return true
}

// PendingUpload returns the board waiting for an image, if any.
func (w *Workspace) PendingUpload() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.upload, w.upload != ""
}

// RequestGearEditor asks the outer layer to open the equipment editor.
func (w *Workspace) RequestGearEditor() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gearEditor = true
}

// GearEditorRequested reports whether a plugin asked for the equipment
// editor since the gear was last saved.
func (w *Workspace) GearEditorRequested() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gearEditor
}

// takes reports whether the kind of b has the capability. Boards of
// unregistered kinds have none.
// acceptsNotes reports whether notes may replace the notes of b.
func (w *Workspace) acceptsNotes(b board.Board, notes []board.Note) bool {
	if !w.takes(b, plugin.TakesNotes) && !w.takes(b, plugin.TakesImages) {
		return false
	}
	for _, n := range notes {
		if n.Validate() != nil {
			return false
		}
	}
	return true
}

func (w *Workspace) takes(b board.Board, capability func(plugin.Descriptor) bool) bool {
	d, ok := w.registry.Lookup(b.Type)
	return ok && capability(d)
}
