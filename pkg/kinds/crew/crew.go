// Package crew implements the crew contact list board. Content is a JSON
// list of contacts.
package crew

import (
	"encoding/json"
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/kinds/internal/frag"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Type is the board type handled by this package.
const Type = "DOCUMENT_CREW"

// Member is one crew contact.
type Member struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Handle is the lowercase, space-free name shown on contact cards.
func (m Member) Handle() string {
	return strings.ToLower(strings.Join(strings.Fields(m.Name), ""))
}

// Members is the decoded content of a crew board.
type Members []Member

// Parse decodes board content. Malformed content yields an empty list.
func Parse(content string) Members {
	var out Members
	if err := json.Unmarshal([]byte(content), &out); err != nil || out == nil {
		return Members{}
	}
	return out
}

// Encode serializes ms as board content.
func (ms Members) Encode() string {
	if ms == nil {
		ms = Members{}
	}
	data, err := json.Marshal(ms)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Add appends a contact and returns it with its new id.
func (ms Members) Add(m Member) (Members, Member) {
	m.ID = "crew-" + board.NewID()
	return append(slices.Clone(ms), m), m
}

// Remove drops the contact with the given id.
func (ms Members) Remove(id string) (Members, bool) {
	i := slices.IndexFunc(ms, func(m Member) bool { return m.ID == id })
	if i < 0 {
		return ms, false
	}
	return slices.Delete(slices.Clone(ms), i, i+1), true
}

// Plugin renders crew boards.
type Plugin struct{}

func (Plugin) Type() string { return Type }

func (Plugin) Meta() plugin.Meta {
	return plugin.Meta{Title: "Crew Contacts", Description: "Keep everyone's role and number in one place.", Icon: "identification"}
}

func (Plugin) Seed(b board.Board) board.Board {
	content := "[]"
	b.Content = &content
	b.DocumentType = plugin.DocumentType(Type)
	return b
}

func (Plugin) Content(w io.Writer, p plugin.Props) error {
	members := Parse(p.Board.ContentString())
	fw := frag.New(w)
	if len(members) == 0 {
		fw.Empty("No crew members yet.")
		return fw.Err()
	}
	fw.Raw(`<table class="crew"><thead><tr><th>Name</th><th>Role</th><th>Email</th><th>Phone</th></tr></thead><tbody>`)
	for _, m := range members {
		fw.Printf(`<tr data-member="%s"><td>%s</td><td>%s</td><td><a href="mailto:%s">%s</a></td><td>%s</td></tr>`,
			frag.Esc(m.ID), frag.Esc(m.Name), frag.Esc(m.Role),
			frag.Esc(m.Email), frag.Esc(m.Email), frag.Esc(m.Phone))
	}
	fw.Raw(`</tbody></table>`)
	return fw.Err()
}

// Fullscreen renders the crew as contact cards.
func (Plugin) Fullscreen(w io.Writer, p plugin.Props) error {
	fw := frag.New(w)
	fw.Raw(`<div class="cards">`)
	for _, m := range Parse(p.Board.ContentString()) {
		fw.Printf(`<article class="card" data-member="%s">`, frag.Esc(m.ID))
		if m.ImageURL != "" {
			fw.Printf(`<img src="%s" alt="%s">`, frag.Esc(m.ImageURL), frag.Esc(m.Name))
		}
		fw.Printf(`<h3>%s</h3><p class="handle">%s</p><p class="role">%s</p><p>%s</p><p>%s</p></article>`,
			frag.Esc(frag.Or(m.Name, "Unnamed")), frag.Esc(m.Handle()), frag.Esc(m.Role),
			frag.Esc(m.Email), frag.Esc(m.Phone))
	}
	fw.Raw(`</div>`)
	return fw.Err()
}
