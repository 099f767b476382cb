package board

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/auteur/pkg/errors"
)

// Board is the central entity: a positioned, typed unit of project content.
//
// X and Y are the grid column and row of the top-left cell; W and H are the
// span in columns and rows. Notes is only used by note-collection kinds and
// Content only by document kinds. Content is plugin-private and never
// interpreted outside the plugin that owns the Type.
type Board struct {
	ID           string  `json:"id" yaml:"id" bson:"id"`
	Type         string  `json:"type" yaml:"type" bson:"type"`
	Title        string  `json:"title" yaml:"title" bson:"title"`
	Notes        []Note  `json:"notes,omitempty" yaml:"notes,omitempty" bson:"notes,omitempty"`
	Content      *string `json:"content,omitempty" yaml:"content,omitempty" bson:"content,omitempty"`
	DocumentType string  `json:"documentType,omitempty" yaml:"documentType,omitempty" bson:"documentType,omitempty"`
	X            int     `json:"x" yaml:"x" bson:"x"`
	Y            int     `json:"y" yaml:"y" bson:"y"`
	W            int     `json:"w" yaml:"w" bson:"w"`
	H            int     `json:"h" yaml:"h" bson:"h"`
}

// NewID returns a fresh opaque identifier.
func NewID() string { return uuid.NewString() }

// ContentString returns the content, or "" when the board has none.
func (b Board) ContentString() string {
	if b.Content == nil {
		return ""
	}
	return *b.Content
}

// HasContent reports whether the board carries a content string at all.
func (b Board) HasContent() bool { return b.Content != nil }

// Clone returns a copy that shares no mutable state with b.
func (b Board) Clone() Board {
	b.Notes = slices.Clone(b.Notes)
	if b.Content != nil {
		c := *b.Content
		b.Content = &c
	}
	return b
}

// Validate checks identity and placement invariants against the grid bounds.
func (b Board) Validate(maxW, maxH int) error {
	if b.ID == "" {
		return errors.New(errors.ErrCodeInvalidBoard, "board id cannot be empty")
	}
	if b.Type == "" {
		return errors.New(errors.ErrCodeInvalidBoard, "board %s has no type", b.ID)
	}
	if b.X < 0 || b.Y < 0 {
		return errors.New(errors.ErrCodeInvalidBoard, "board %s at negative cell (%d,%d)", b.ID, b.X, b.Y)
	}
	if b.W < 1 || (maxW > 0 && b.W > maxW) {
		return errors.New(errors.ErrCodeInvalidBoard, "board %s width %d out of range [1,%d]", b.ID, b.W, maxW)
	}
	if b.H < 1 || (maxH > 0 && b.H > maxH) {
		return errors.New(errors.ErrCodeInvalidBoard, "board %s height %d out of range [1,%d]", b.ID, b.H, maxH)
	}
	for _, n := range b.Notes {
		if err := n.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidBoard, err, "board %s", b.ID)
		}
	}
	return nil
}

// Patch is a partial update of a board. Nil fields are left untouched.
// Patches never change ID or Type.
type Patch struct {
	Title   *string `json:"title,omitempty"`
	Notes   *[]Note `json:"notes,omitempty"`
	Content *string `json:"content,omitempty"`
	X       *int    `json:"x,omitempty"`
	Y       *int    `json:"y,omitempty"`
	W       *int    `json:"w,omitempty"`
	H       *int    `json:"h,omitempty"`
}

// Apply returns a copy of b with the patch applied.
func (p Patch) Apply(b Board) Board {
	b = b.Clone()
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Notes != nil {
		b.Notes = slices.Clone(*p.Notes)
		if b.Notes == nil {
			b.Notes = []Note{}
		}
	}
	if p.Content != nil {
		c := *p.Content
		b.Content = &c
	}
	if p.X != nil {
		b.X = *p.X
	}
	if p.Y != nil {
		b.Y = *p.Y
	}
	if p.W != nil {
		b.W = *p.W
	}
	if p.H != nil {
		b.H = *p.H
	}
	return b
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Notes == nil && p.Content == nil &&
		p.X == nil && p.Y == nil && p.W == nil && p.H == nil
}

// MovePatch builds a patch that sets the board's top-left cell.
func MovePatch(x, y int) Patch { return Patch{X: &x, Y: &y} }

// ResizePatch builds a patch that sets the board's span.
func ResizePatch(w, h int) Patch { return Patch{W: &w, H: &h} }

// ContentPatch builds a patch that replaces the board's content.
func ContentPatch(content string) Patch { return Patch{Content: &content} }

// TitlePatch builds a patch that renames the board.
func TitlePatch(title string) Patch { return Patch{Title: &title} }

// NotesPatch builds a patch that replaces the board's notes.
func NotesPatch(notes []Note) Patch { return Patch{Notes: &notes} }
