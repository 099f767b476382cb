// Package checklist implements the equipment checklist board. The board
// lists the project's shared gear inventory; its content is the JSON list of
// checked gear ids.
package checklist

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/kinds/internal/frag"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Type is the board type handled by this package.
const Type = "DOCUMENT_CHECKLIST"

// Checked is the set of checked gear ids.
type Checked map[string]bool

// Parse decodes board content. Malformed content yields an empty set.
func Parse(content string) Checked {
	var ids []string
	out := Checked{}
	if err := json.Unmarshal([]byte(content), &ids); err != nil {
		return out
	}
	for _, id := range ids {
		out[id] = true
	}
	return out
}

// Encode serializes c as a sorted JSON list of ids.
func (c Checked) Encode() string {
	ids := make([]string, 0, len(c))
	for id, ok := range c {
		if ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	data, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Toggle flips the checked state of id and returns the new board content.
func Toggle(content, id string) string {
	c := Parse(content)
	if c[id] {
		delete(c, id)
	} else {
		c[id] = true
	}
	return c.Encode()
}

// Plugin renders checklist boards.
type Plugin struct{}

func (Plugin) Type() string { return Type }

func (Plugin) Meta() plugin.Meta {
	return plugin.Meta{Title: "Equipment Checklist", Description: "Tick off gear from your inventory.", Icon: "clipboard-check"}
}

func (Plugin) Seed(b board.Board) board.Board {
	content := "[]"
	b.Content = &content
	b.DocumentType = plugin.DocumentType(Type)
	return b
}

// Content renders the inventory grouped by category. Ids of gear that has
// since been removed from the inventory are kept in content but not shown.
func (Plugin) Content(w io.Writer, p plugin.Props) error {
	fw := frag.New(w)
	if len(p.Shared.Gear.Items) == 0 {
		fw.Printf(`<div class="empty"><p>You haven't added any gear yet.</p>`+
			`<button class="action" data-action="open-gear" data-board="%s">Add Gear to Inventory</button></div>`,
			frag.Esc(p.Board.ID))
		return fw.Err()
	}
	checked := Parse(p.Board.ContentString())
	for _, group := range p.Shared.Gear.ByType() {
		fw.Printf(`<h3>%ss</h3><ul class="checklist">`, frag.Esc(string(group.Type)))
		for _, item := range group.Items {
			mark := ""
			if checked[item.ID] {
				mark = " checked"
			}
			fw.Printf(`<li><label><input type="checkbox" data-gear="%s"%s> %s</label></li>`,
				frag.Esc(item.ID), mark, frag.Esc(item.Name))
		}
		fw.Raw(`</ul>`)
	}
	return fw.Err()
}
