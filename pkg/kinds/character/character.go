// Package character implements the character profile board. Content is a
// JSON list of profiles, each with core traits and development notes.
package character

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/matzehuels/auteur/pkg/board"
)

// Type is the board type handled by this package.
const Type = "DOCUMENT_CHARACTERS"

// Core holds who the character is.
type Core struct {
	Role             string `json:"role"`
	Goals            string `json:"goals"`
	Fears            string `json:"fears"`
	Backstory        string `json:"backstory"`
	InternalConflict string `json:"internalConflict"`
}

// Development holds how the character changes and presents.
type Development struct {
	Arc                  string `json:"arc"`
	Quirks               string `json:"quirks"`
	DialogueStyle        string `json:"dialogueStyle"`
	PsychologicalProfile string `json:"psychologicalProfile"`
	VisualCues           string `json:"visualCues"`
}

// Profile is one character.
type Profile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Core        Core        `json:"core"`
	Development Development `json:"development"`
}

// Handle is the social-style handle shown on character cards.
func (p Profile) Handle() string {
	return "@" + strings.ToLower(strings.Join(strings.Fields(p.Name), ""))
}

// Profiles is the decoded content of a character board.
type Profiles []Profile

// Parse decodes board content. Malformed content yields no profiles.
func Parse(content string) Profiles {
	var out Profiles
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return Profiles{}
	}
	if out == nil {
		return Profiles{}
	}
	return out
}

// Encode serializes ps as board content.
func (ps Profiles) Encode() string {
	if ps == nil {
		ps = Profiles{}
	}
	data, err := json.Marshal(ps)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Add appends an empty profile with the given name.
func (ps Profiles) Add(name string) (Profiles, Profile) {
	p := Profile{ID: "char-" + board.NewID(), Name: name}
	return append(slices.Clone(ps), p), p
}

// Remove drops the profile with the given id.
func (ps Profiles) Remove(id string) (Profiles, bool) {
	i := slices.IndexFunc(ps, func(p Profile) bool { return p.ID == id })
	if i < 0 {
		return ps, false
	}
	return slices.Delete(slices.Clone(ps), i, i+1), true
}

// Update applies fn to the profile with the given id.
func (ps Profiles) Update(id string, fn func(Profile) Profile) (Profiles, bool) {
	i := slices.IndexFunc(ps, func(p Profile) bool { return p.ID == id })
	if i < 0 {
		return ps, false
	}
	out := slices.Clone(ps)
	updated := fn(out[i])
	updated.ID = id
	out[i] = updated
	return out, true
}
