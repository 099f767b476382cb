package character

import (
	"io"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/kinds/internal/frag"
	"github.com/matzehuels/auteur/pkg/plugin"
)

type field struct {
	name, label          string
	prompt, seriesPrompt string
	get                  func(Profile) string
}

var coreFields = []field{
	{"role", "Role in the Story", "e.g., Protagonist, Antagonist, Mentor", "", func(p Profile) string { return p.Core.Role }},
	{"goals", "Goals & Motivation",
		"What does the character want? What happens if they fail?",
		"What are their short-term and long-term goals across the series?",
		func(p Profile) string { return p.Core.Goals }},
	{"fears", "Fears & Weaknesses",
		"What are their flaws, fears, and vulnerabilities?",
		"How do these weaknesses evolve or get challenged over time?",
		func(p Profile) string { return p.Core.Fears }},
	{"backstory", "Backstory",
		"Outline key formative events that explain their behavior.",
		"Detail the key past events. A character bible can track this over seasons.",
		func(p Profile) string { return p.Core.Backstory }},
	{"internalConflict", "Internal Conflict (Core Misbelief)",
		"What core misbelief do they hold that the story will challenge?",
		"How does this misbelief manifest in different storylines or episodes?",
		func(p Profile) string { return p.Core.InternalConflict }},
}

var developmentFields = []field{
	{"arc", "Character Arc",
		"How will the character change emotionally over the story?",
		"Map out the character's journey across the entire series.",
		func(p Profile) string { return p.Development.Arc }},
	{"quirks", "Quirks & Mannerisms",
		"A unique speaking tic, hobby, or nervous habit.",
		"How do these quirks make them distinct and memorable in various situations?",
		func(p Profile) string { return p.Development.Quirks }},
	{"dialogueStyle", "Dialogue Style",
		"Vocabulary, accent, rhythm, and what they hold back.",
		"How do their speech patterns change depending on who they are talking to?",
		func(p Profile) string { return p.Development.DialogueStyle }},
	{"psychologicalProfile", "Psychological Profile",
		"Emotional triggers, what excites them, their ideas about happiness.",
		"Explore their deeper emotional landscape to inform their actions authentically.",
		func(p Profile) string { return p.Development.PsychologicalProfile }},
	{"visualCues", "Visual Cues",
		"A signature piece of clothing, posture, or physical detail.",
		"Concise, visually informative details that hint at their character type.",
		func(p Profile) string { return p.Development.VisualCues }},
}

// Plugin renders character boards.
type Plugin struct{}

func (Plugin) Type() string { return Type }

func (Plugin) Meta() plugin.Meta {
	return plugin.Meta{Title: "Character Profiles", Description: "Build out your cast, inside and out.", Icon: "users"}
}

func (Plugin) Seed(b board.Board) board.Board {
	content := "[]"
	b.Content = &content
	b.DocumentType = plugin.DocumentType(Type)
	return b
}

// Content renders the profile editors. Placeholders follow the project type.
func (Plugin) Content(w io.Writer, p plugin.Props) error {
	profiles := Parse(p.Board.ContentString())
	series := p.Shared.Settings.ProjectType == board.ProjectSeries
	fw := frag.New(w)
	if len(profiles) == 0 {
		fw.Empty("No characters yet.")
		return fw.Err()
	}
	for _, pr := range profiles {
		fw.Printf(`<section class="character" data-character="%s"><h3>%s</h3>`,
			frag.Esc(pr.ID), frag.Esc(frag.Or(pr.Name, "Unnamed character")))
		writeSection(fw, "Core Identity", coreFields, pr, series)
		writeSection(fw, "Development", developmentFields, pr, series)
		fw.Raw(`</section>`)
	}
	return fw.Err()
}

// Fullscreen renders the cast as a grid of cards.
func (Plugin) Fullscreen(w io.Writer, p plugin.Props) error {
	profiles := Parse(p.Board.ContentString())
	fw := frag.New(w)
	fw.Raw(`<div class="cards">`)
	for _, pr := range profiles {
		fw.Printf(`<article class="card" data-character="%s">`, frag.Esc(pr.ID))
		if pr.ImageURL != "" {
			fw.Printf(`<img src="%s" alt="%s">`, frag.Esc(pr.ImageURL), frag.Esc(pr.Name))
		}
		fw.Printf(`<h3>%s</h3><p class="handle">%s</p><p class="role">%s</p><p>%s</p></article>`,
			frag.Esc(frag.Or(pr.Name, "Unnamed character")), frag.Esc(pr.Handle()),
			frag.Esc(pr.Core.Role), frag.Lines(pr.Development.VisualCues))
	}
	fw.Raw(`</div>`)
	return fw.Err()
}

func writeSection(fw *frag.Writer, title string, fields []field, pr Profile, series bool) {
	fw.Printf(`<fieldset><legend>%s</legend>`, frag.Esc(title))
	for _, f := range fields {
		prompt := f.prompt
		if series && f.seriesPrompt != "" {
			prompt = f.seriesPrompt
		}
		fw.Field(f.name, f.label, f.get(pr), prompt)
	}
	fw.Raw(`</fieldset>`)
}
