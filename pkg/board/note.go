package board

import (
	"github.com/matzehuels/auteur/pkg/errors"
)

// NoteKind tags the variant held by a [Note].
type NoteKind string

// Note variants.
const (
	NoteText  NoteKind = "text"
	NoteImage NoteKind = "image"
)

// Note is a single idea or image item owned by a note-collection board.
// The Kind tag decides which fields are populated: text notes carry only
// Text, image notes carry only ImageRef and Caption.
type Note struct {
	ID       string   `json:"id" yaml:"id" bson:"id"`
	Kind     NoteKind `json:"type" yaml:"type" bson:"type"`
	Text     string   `json:"content,omitempty" yaml:"content,omitempty" bson:"content,omitempty"`
	ImageRef string   `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Caption  string   `json:"caption,omitempty" yaml:"caption,omitempty" bson:"caption,omitempty"`
}

// NewTextNote creates a text note with a fresh id.
func NewTextNote(text string) Note {
	return Note{ID: NewID(), Kind: NoteText, Text: text}
}

// NewImageNote creates an image note with a fresh id. ref is an opaque image
// reference such as a data URL.
func NewImageNote(ref, caption string) Note {
	return Note{ID: NewID(), Kind: NoteImage, ImageRef: ref, Caption: caption}
}

// IsText reports whether n is the text variant.
func (n Note) IsText() bool { return n.Kind == NoteText }

// IsImage reports whether n is the image variant.
func (n Note) IsImage() bool { return n.Kind == NoteImage }

// Validate checks the variant invariant.
func (n Note) Validate() error {
	if n.ID == "" {
		return errors.New(errors.ErrCodeInvalidNote, "note id cannot be empty")
	}
	switch n.Kind {
	case NoteText:
		if n.ImageRef != "" || n.Caption != "" {
			return errors.New(errors.ErrCodeInvalidNote, "text note %s carries image fields", n.ID)
		}
	case NoteImage:
		if n.Text != "" {
			return errors.New(errors.ErrCodeInvalidNote, "image note %s carries text content", n.ID)
		}
		if n.ImageRef == "" {
			return errors.New(errors.ErrCodeInvalidNote, "image note %s has no image reference", n.ID)
		}
	default:
		return errors.New(errors.ErrCodeInvalidNote, "note %s has unknown type %q", n.ID, n.Kind)
	}
	return nil
}

// NotePatch is a partial update of a note. Nil fields are left untouched.
type NotePatch struct {
	Text     *string `json:"content,omitempty"`
	ImageRef *string `json:"imageUrl,omitempty"`
	Caption  *string `json:"caption,omitempty"`
}

// Apply returns n with the patch applied. It reports false, leaving n
// unchanged, when the patch would mix variants (for example setting a caption
// on a text note) or clear the reference of an image note.
func (p NotePatch) Apply(n Note) (Note, bool) {
	switch n.Kind {
	case NoteText:
		if p.ImageRef != nil || p.Caption != nil {
			return n, false
		}
		if p.Text != nil {
			n.Text = *p.Text
		}
	case NoteImage:
		if p.Text != nil {
			return n, false
		}
		if p.ImageRef != nil {
			if *p.ImageRef == "" {
				return n, false
			}
			n.ImageRef = *p.ImageRef
		}
		if p.Caption != nil {
			n.Caption = *p.Caption
		}
	default:
		return n, false
	}
	return n, true
}

// FilterNotes returns the notes of the given kind, preserving order.
func FilterNotes(notes []Note, kind NoteKind) []Note {
	var out []Note
	for _, n := range notes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
