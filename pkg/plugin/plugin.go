package plugin

import (
	"io"
	"strings"

	"github.com/matzehuels/auteur/pkg/board"
)

// Meta is the presentation metadata shown in menus and board headers.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Descriptor is the mandatory part of a board kind.
type Descriptor interface {
	// Type is the board type string this plugin handles.
	Type() string
	Meta() Meta
	// Content writes the board body. It must tolerate malformed Content by
	// falling back to a default rendering.
	Content(w io.Writer, p Props) error
}

// FullscreenRenderer is implemented by kinds with an expanded view.
type FullscreenRenderer interface {
	Fullscreen(w io.Writer, p Props) error
}

// FooterRenderer is implemented by kinds that render below their content.
type FooterRenderer interface {
	Footer(w io.Writer, p Props) error
}

// HeaderActionsRenderer is implemented by kinds with header buttons.
type HeaderActionsRenderer interface {
	HeaderActions(w io.Writer, p HeaderProps) error
}

// Seeder shapes the initial state of a freshly created board of its kind.
// The board passed in already has its identity, title and placement.
type Seeder interface {
	Seed(b board.Board) board.Board
}

// NoteTaker marks kinds that accept typed text notes.
type NoteTaker interface {
	TakesNotes() bool
}

// ImageTaker marks kinds that accept uploaded or generated images.
type ImageTaker interface {
	TakesImages() bool
}

// Hidden marks kinds that are created by the system, never by the user.
type Hidden interface {
	Hidden() bool
}

// ImageState is the transient image-generation state of one board.
type ImageState struct {
	Prompt  string `json:"prompt"`
	Loading bool   `json:"isLoading"`
	Err     string `json:"error,omitempty"`
}

// Props is everything a plugin receives when rendering a board.
type Props struct {
	Board     board.Board
	Shared    board.Shared
	Mutations Mutations
	Image     ImageState
}

// HeaderProps is the reduced input for header actions.
type HeaderProps struct {
	Board     board.Board
	Mutations Mutations
}

// Mutations are the callbacks a plugin may use to change workspace state.
// Every method reports false when its target no longer exists; a stale id is
// not an error.
type Mutations interface {
	UpdateBoard(id string, patch board.Patch) bool
	AddNote(id string) bool
	RemoveNote(boardID, noteID string) bool
	UpdateNote(boardID, noteID string, patch board.NotePatch) bool
	RequestImageUpload(boardID string) bool
	RequestGearEditor()
}

// NopMutations ignores every request. It is used for read-only renders.
type NopMutations struct{}

func (NopMutations) UpdateBoard(string, board.Patch) bool            { return false }
func (NopMutations) AddNote(string) bool                             { return false }
func (NopMutations) RemoveNote(string, string) bool                  { return false }
func (NopMutations) UpdateNote(string, string, board.NotePatch) bool { return false }
func (NopMutations) RequestImageUpload(string) bool                  { return false }
func (NopMutations) RequestGearEditor()                              {}

// FullscreenOf returns the fullscreen renderer of d, if it has one.
func FullscreenOf(d Descriptor) (FullscreenRenderer, bool) {
	f, ok := d.(FullscreenRenderer)
	return f, ok
}

// FooterOf returns the footer renderer of d, if it has one.
func FooterOf(d Descriptor) (FooterRenderer, bool) {
	f, ok := d.(FooterRenderer)
	return f, ok
}

// HeaderActionsOf returns the header actions renderer of d, if it has one.
func HeaderActionsOf(d Descriptor) (HeaderActionsRenderer, bool) {
	h, ok := d.(HeaderActionsRenderer)
	return h, ok
}

// TakesNotes reports whether boards of kind d accept text notes.
func TakesNotes(d Descriptor) bool {
	n, ok := d.(NoteTaker)
	return ok && n.TakesNotes()
}

// TakesImages reports whether boards of kind d accept images.
func TakesImages(d Descriptor) bool {
	n, ok := d.(ImageTaker)
	return ok && n.TakesImages()
}

// IsHidden reports whether d is excluded from the add-board menu.
func IsHidden(d Descriptor) bool {
	h, ok := d.(Hidden)
	return ok && h.Hidden()
}

// Note-collection board types seeded with an empty note list when the
// plugin does not provide its own [Seeder].
var noteKinds = map[string]bool{
	"IDEABOARD":  true,
	"MOODBOARD":  true,
	"STORYBOARD": true,
}

// Seed shapes a new board. Plugins implementing [Seeder] decide for
// themselves; otherwise note kinds start with no notes, DOCUMENT_ and PLUGIN_
// kinds start with empty content and DOCUMENT_ kinds record their document
// type. d may be nil.
func Seed(d Descriptor, b board.Board) board.Board {
	if s, ok := d.(Seeder); ok {
		return s.Seed(b)
	}
	return SeedByType(b)
}

// SeedByType applies the default shape for b.Type.
func SeedByType(b board.Board) board.Board {
	switch {
	case noteKinds[b.Type]:
		b.Notes = []board.Note{}
	case strings.HasPrefix(b.Type, "DOCUMENT_"):
		empty := ""
		b.Content = &empty
		b.DocumentType = DocumentType(b.Type)
	case strings.HasPrefix(b.Type, "PLUGIN_"):
		empty := ""
		b.Content = &empty
	}
	return b
}

// DocumentType returns the document category of a DOCUMENT_ kind, the type
// without its prefix ("DOCUMENT_BUDGET" becomes "BUDGET").
func DocumentType(typ string) string {
	if !strings.HasPrefix(typ, "DOCUMENT_") {
		return ""
	}
	return strings.TrimPrefix(typ, "DOCUMENT_")
}
