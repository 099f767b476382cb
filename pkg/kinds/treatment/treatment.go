// Package treatment implements the story treatment board. Content is a JSON
// object with one field per treatment section.
package treatment

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/kinds/internal/frag"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Type is the board type handled by this package.
const Type = "DOCUMENT_TREATMENT"

// Treatment is the decoded content of a treatment board.
type Treatment struct {
	Title                 string `json:"title"`
	Logline               string `json:"logline"`
	StorySummary          string `json:"storySummary"`
	CharacterDescriptions string `json:"characterDescriptions"`
	ToneAndTheme          string `json:"toneAndTheme"`
}

// Parse decodes board content. Content that is malformed or lacks a string
// title yields an empty treatment.
func Parse(content string) Treatment {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Treatment{}
	}
	var title string
	if err := json.Unmarshal(raw["title"], &title); err != nil {
		return Treatment{}
	}
	var t Treatment
	if err := json.Unmarshal([]byte(content), &t); err != nil {
		return Treatment{}
	}
	return t
}

// Encode serializes t as board content.
func (t Treatment) Encode() string {
	data, err := json.Marshal(t)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// With returns a copy of t with the named section replaced. Unknown section
// names report false.
func (t Treatment) With(section, value string) (Treatment, bool) {
	switch section {
	case "title":
		t.Title = value
	case "logline":
		t.Logline = value
	case "storySummary":
		t.StorySummary = value
	case "characterDescriptions":
		t.CharacterDescriptions = value
	case "toneAndTheme":
		t.ToneAndTheme = value
	default:
		return t, false
	}
	return t, true
}

// Plugin renders treatment boards.
type Plugin struct{}

func (Plugin) Type() string { return Type }

func (Plugin) Meta() plugin.Meta {
	return plugin.Meta{Title: "Story Treatment", Description: "Shape the story before the script.", Icon: "book-open"}
}

func (Plugin) Seed(b board.Board) board.Board {
	content := Treatment{}.Encode()
	b.Content = &content
	b.DocumentType = plugin.DocumentType(Type)
	return b
}

func (Plugin) Content(w io.Writer, p plugin.Props) error {
	t := Parse(p.Board.ContentString())
	fw := frag.New(w)
	fw.Raw(`<div class="treatment">`)
	fw.Printf(`<label class="field title"><span>Title</span><input type="text" name="title" value="%s" placeholder="The working title of your project."></label>`,
		frag.Esc(t.Title))
	fw.Field("logline", "Logline", t.Logline, "A one-sentence summary of the premise, protagonist, goal, and conflict.")
	fw.Field("storySummary", "Story Summary", t.StorySummary, "A narrative description of the plot, told in the present tense.")
	fw.Field("characterDescriptions", "Character Descriptions", t.CharacterDescriptions,
		"An overview of the key characters, their motivations, and development.")
	fw.Field("toneAndTheme", "Tone and Theme", t.ToneAndTheme,
		"An explanation of the film's style, atmosphere, and underlying message.")
	fw.Raw(`</div>`)
	return fw.Err()
}
