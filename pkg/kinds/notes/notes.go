// Package notes implements the note-collection board kinds: the idea board
// holding typed text notes, and the mood and story boards holding images.
package notes

import (
	"io"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/kinds/internal/frag"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Board types handled by this package.
const (
	TypeIdeaboard  = "IDEABOARD"
	TypeMoodboard  = "MOODBOARD"
	TypeStoryboard = "STORYBOARD"
)

const (
	moodboardHelp = "A mood board is a collection of visual elements like images, colors, and textures " +
		"that establish the overall aesthetic, mood, and feel of a project. Storyboards plan the sequence " +
		"of events; mood boards define the look."
	storyboardHelp = "A storyboard is a sequential panel-by-panel plan of a story, focusing on action, " +
		"camera angles, and narrative flow."
)

// Ideaboard collects short text notes.
type Ideaboard struct{}

// Plugins returns every kind implemented by this package.
func Plugins() []plugin.Descriptor {
	return []plugin.Descriptor{Ideaboard{}, Moodboard{}, Storyboard{}}
}

func (Ideaboard) Type() string { return TypeIdeaboard }

func (Ideaboard) Meta() plugin.Meta {
	return plugin.Meta{Title: "Ideaboard", Description: "Jot down loose ideas as notes.", Icon: "lightbulb"}
}

func (Ideaboard) Seed(b board.Board) board.Board {
	b.Notes = []board.Note{}
	return b
}

func (Ideaboard) TakesNotes() bool { return true }

func (Ideaboard) Content(w io.Writer, p plugin.Props) error {
	fw := frag.New(w)
	texts := board.FilterNotes(p.Board.Notes, board.NoteText)
	if len(texts) == 0 {
		fw.Empty("No ideas yet. Add a note to get started.")
		return fw.Err()
	}
	fw.Raw(`<div class="notes notes-text">`)
	for _, n := range texts {
		fw.Printf(`<div class="note" data-note="%s"><textarea placeholder="Type an idea...">%s</textarea></div>`,
			frag.Esc(n.ID), frag.Esc(n.Text))
	}
	fw.Raw(`</div>`)
	return fw.Err()
}

func (Ideaboard) HeaderActions(w io.Writer, p plugin.HeaderProps) error {
	fw := frag.New(w)
	fw.Printf(`<button class="action" data-action="add-note" data-board="%s">Add note</button>`, frag.Esc(p.Board.ID))
	return fw.Err()
}

// Moodboard collects reference images.
type Moodboard struct{}

func (Moodboard) Type() string { return TypeMoodboard }

func (Moodboard) Meta() plugin.Meta {
	return plugin.Meta{Title: "Moodboard", Description: "Collect images that define the look and feel.", Icon: "photo"}
}

func (Moodboard) Seed(b board.Board) board.Board {
	b.Notes = []board.Note{}
	return b
}

func (Moodboard) TakesImages() bool { return true }

func (Moodboard) Content(w io.Writer, p plugin.Props) error {
	return renderImages(w, p.Board, moodboardHelp)
}

func (Moodboard) HeaderActions(w io.Writer, p plugin.HeaderProps) error {
	return renderUploadAction(w, p.Board)
}

// Storyboard holds a sequence of shots, uploaded or generated.
type Storyboard struct{}

func (Storyboard) Type() string { return TypeStoryboard }

func (Storyboard) Meta() plugin.Meta {
	return plugin.Meta{Title: "Storyboard", Description: "Plan shots panel by panel, or generate them.", Icon: "film"}
}

func (Storyboard) Seed(b board.Board) board.Board {
	b.Notes = []board.Note{}
	return b
}

func (Storyboard) TakesImages() bool { return true }

func (Storyboard) Content(w io.Writer, p plugin.Props) error {
	return renderImages(w, p.Board, storyboardHelp)
}

func (Storyboard) HeaderActions(w io.Writer, p plugin.HeaderProps) error {
	return renderUploadAction(w, p.Board)
}

// Footer renders the shot prompt with its loading and error state.
func (Storyboard) Footer(w io.Writer, p plugin.Props) error {
	fw := frag.New(w)
	disabled := ""
	if p.Image.Loading {
		disabled = " disabled"
	}
	fw.Printf(`<form class="prompt" data-action="generate-image" data-board="%s">`, frag.Esc(p.Board.ID))
	fw.Printf(`<input type="text" name="prompt" value="%s" placeholder="Describe a shot to generate..."%s>`,
		frag.Esc(p.Image.Prompt), disabled)
	label := "Generate"
	if p.Image.Loading {
		label = "Generating..."
	}
	fw.Printf(`<button type="submit"%s>%s</button></form>`, disabled, label)
	if p.Image.Err != "" {
		fw.Printf(`<p class="error">%s</p>`, frag.Esc(p.Image.Err))
	}
	return fw.Err()
}

func renderImages(w io.Writer, b board.Board, help string) error {
	fw := frag.New(w)
	images := board.FilterNotes(b.Notes, board.NoteImage)
	if len(images) == 0 {
		fw.Empty(help)
		return fw.Err()
	}
	fw.Raw(`<div class="notes notes-image">`)
	for _, n := range images {
		fw.Printf(`<figure class="note" data-note="%s"><img src="%s" alt="%s"><figcaption>%s</figcaption></figure>`,
			frag.Esc(n.ID), frag.Esc(n.ImageRef), frag.Esc(n.Caption), frag.Esc(n.Caption))
	}
	fw.Raw(`</div>`)
	return fw.Err()
}

func renderUploadAction(w io.Writer, b board.Board) error {
	fw := frag.New(w)
	fw.Printf(`<button class="action" data-action="upload-image" data-board="%s">Upload image</button>`, frag.Esc(b.ID))
	return fw.Err()
}
