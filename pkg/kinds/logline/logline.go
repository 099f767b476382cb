// Package logline implements the logline tester, a scratch pad for drafting
// loglines alongside a checklist of what a logline needs.
package logline

import (
	"io"
	"strings"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/kinds/internal/frag"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Type is the board type handled by this package.
const Type = "PLUGIN_LOGLINE_TESTER"

const placeholder = `Examples:
- "A young FBI cadet must receive the help of an incarcerated and manipulative cannibal killer to help catch another serial killer, a madman who skins his victims." (The Silence of the Lambs)
- "A greedy theme park owner clones dinosaurs for his remote island resort, but the creatures escape and terrorize the opening-day visitors." (Jurassic Park)`

// Guide lists the parts every logline should answer.
var Guide = []struct{ Title, Question string }{
	{"Protagonist", "Who is your main character?"},
	{"Goal", "What do they want to achieve?"},
	{"Antagonist/Obstacle", "What stands in their way?"},
	{"Stakes", "What happens if they fail?"},
}

// Plugin renders logline boards.
type Plugin struct{}

func (Plugin) Type() string { return Type }

func (Plugin) Meta() plugin.Meta {
	return plugin.Meta{Title: "Logline Tester", Description: "Draft and refine your loglines.", Icon: "document-text"}
}

func (Plugin) Seed(b board.Board) board.Board {
	empty := ""
	b.Content = &empty
	return b
}

func (Plugin) Content(w io.Writer, p plugin.Props) error {
	fw := frag.New(w)
	fw.Printf(`<div class="logline"><textarea placeholder="%s">%s</textarea>`,
		frag.Esc(placeholder), frag.Esc(p.Board.ContentString()))
	fw.Raw(`<aside><h4>Logline Checklist</h4><ul>`)
	for _, g := range Guide {
		fw.Printf(`<li><strong>%s</strong> %s</li>`, frag.Esc(g.Title), frag.Esc(g.Question))
	}
	fw.Raw(`</ul>`)
	if n := Words(p.Board.ContentString()); n > 0 {
		fw.Printf(`<p class="count">%d words</p>`, n)
	}
	fw.Raw(`</aside></div>`)
	return fw.Err()
}

// Words counts the words of the first non-empty line, the logline draft
// under test.
func Words(content string) int {
	for _, line := range strings.Split(content, "\n") {
		if f := strings.Fields(line); len(f) > 0 {
			return len(f)
		}
	}
	return 0
}
