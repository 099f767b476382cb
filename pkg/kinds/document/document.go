// Package document implements the free-text board kinds: the generic
// document and the read-only generated content board.
package document

import (
	"io"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/kinds/internal/frag"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Board types handled by this package.
const (
	TypeGeneric   = "DOCUMENT_GENERIC"
	TypeGenerated = "GENERATED_CONTENT"
)

// Plugins returns every kind implemented by this package.
func Plugins() []plugin.Descriptor {
	return []plugin.Descriptor{Generic{}, Generated{}}
}

// Generic is a plain text document.
type Generic struct{}

func (Generic) Type() string { return TypeGeneric }

func (Generic) Meta() plugin.Meta {
	return plugin.Meta{Title: "Document", Description: "A blank page for anything else.", Icon: "document"}
}

func (Generic) Content(w io.Writer, p plugin.Props) error {
	fw := frag.New(w)
	fw.Printf(`<textarea class="document" placeholder="Start writing your %s...">%s</textarea>`,
		frag.Esc(p.Board.Title), frag.Esc(p.Board.ContentString()))
	return fw.Err()
}

// Generated shows markdown produced by the script generator. Boards of this
// kind are created by the system and never offered in the add-board menu.
type Generated struct{}

func (Generated) Type() string { return TypeGenerated }

func (Generated) Meta() plugin.Meta {
	return plugin.Meta{Title: "Generated Content", Description: "Output of the script generator.", Icon: "sparkles"}
}

func (Generated) Hidden() bool { return true }

func (Generated) Seed(b board.Board) board.Board {
	empty := ""
	b.Content = &empty
	return b
}

func (Generated) Content(w io.Writer, p plugin.Props) error {
	fw := frag.New(w)
	fw.Raw(`<div class="markdown">`)
	fw.Raw(Markdown(p.Board.ContentString()))
	fw.Raw(`</div>`)
	return fw.Err()
}
