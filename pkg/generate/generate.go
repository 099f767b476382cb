package generate

import (
	"context"
	"strings"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Generator is the external AI collaborator.
type Generator interface {
	// Script returns markdown containing the script, visual style and
	// cinematography sections, separated by "---" lines.
	Script(ctx context.Context, req Request) (string, error)

	// Image returns an opaque image reference (typically a data URL) for
	// the prompt.
	Image(ctx context.Context, prompt string) (string, error)
}

// Request is everything the generator is told about a project.
type Request struct {
	Notes    []board.Note   `json:"notes"`
	Style    string         `json:"style"`
	Gear     board.Gear     `json:"gear"`
	Settings board.Settings `json:"settings"`
}

// NewRequest builds a request from the project state. Notes are collected
// from every board whose kind accepts notes or images.
func NewRequest(p *board.Project, reg *plugin.Registry) Request {
	return Request{
		Notes:    CollectNotes(p.Boards, reg),
		Style:    p.Settings.Style,
		Gear:     p.Gear,
		Settings: p.Settings,
	}
}

// CollectNotes flattens the notes of note-collection boards in board order.
// Boards of unregistered kinds contribute nothing.
func CollectNotes(boards board.Boards, reg *plugin.Registry) []board.Note {
	return boards.Notes(func(b board.Board) bool {
		d, ok := reg.Lookup(b.Type)
		return ok && (plugin.TakesNotes(d) || plugin.TakesImages(d))
	})
}

// Section headings the generator is asked to emit.
const (
	HeadingScript         = "# 🎬 SCRIPT"
	HeadingVisualStyle    = "# 🎨 VISUAL STYLE"
	HeadingCinematography = "# 🎥 CINEMATOGRAPHY & GEAR"
)

// Titles of the generated boards, one per section.
const (
	TitleScript         = "Script"
	TitleVisualStyle    = "Visual Style"
	TitleCinematography = "Cinematography & Gear"
)

// Sections is the parsed generator reply. Missing sections are empty.
type Sections struct {
	Script         string `json:"script,omitempty"`
	VisualStyle    string `json:"visualStyle,omitempty"`
	Cinematography string `json:"cinematography,omitempty"`
}

// Empty reports whether no section was found.
func (s Sections) Empty() bool {
	return s.Script == "" && s.VisualStyle == "" && s.Cinematography == ""
}

// ParseSections splits text on "---" and picks the first chunk containing
// each heading. The heading stays part of the section. Headings are matched
// independently, so one chunk can fill several sections.
func ParseSections(text string) Sections {
	var s Sections
	for _, chunk := range strings.Split(text, "---") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if s.Script == "" && strings.Contains(chunk, HeadingScript) {
			s.Script = chunk
		}
		if s.VisualStyle == "" && strings.Contains(chunk, HeadingVisualStyle) {
			s.VisualStyle = chunk
		}
		if s.Cinematography == "" && strings.Contains(chunk, HeadingCinematography) {
			s.Cinematography = chunk
		}
	}
	return s
}

// Placement of generated boards. Row 999 parks them below everything else
// until the user moves them.
const (
	GeneratedType = "GENERATED_CONTENT"
	GeneratedX    = 0
	GeneratedY    = 999
	GeneratedW    = 1
	GeneratedH    = 3
)

// Apply folds the sections into the board collection. A generated board with
// a matching title gets its content replaced; otherwise a new one is
// appended. Empty sections leave the collection alone.
func Apply(boards board.Boards, s Sections) board.Boards {
	for _, sec := range []struct{ title, content string }{
		{TitleScript, s.Script},
		{TitleVisualStyle, s.VisualStyle},
		{TitleCinematography, s.Cinematography},
	} {
		if sec.content == "" {
			continue
		}
		boards = upsert(boards, sec.title, sec.content)
	}
	return boards
}

func upsert(boards board.Boards, title, content string) board.Boards {
	for _, b := range boards {
		if b.Type == GeneratedType && b.Title == title {
			out, _ := boards.Update(b.ID, board.ContentPatch(content))
			return out
		}
	}
	c := content
	return boards.Append(board.Board{
		ID:      board.NewID(),
		Type:    GeneratedType,
		Title:   title,
		Content: &c,
		X:       GeneratedX,
		Y:       GeneratedY,
		W:       GeneratedW,
		H:       GeneratedH,
	})
}
