package notes

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/plugin"
)

func TestIdeaboardRendersOnlyTextNotes(t *testing.T) {
	b := board.Board{ID: "b1", Type: TypeIdeaboard, Notes: []board.Note{
		board.NewTextNote("chase <scene>"),
		board.NewImageNote("data:image/png;base64,AAAA", "stray"),
	}}
	var buf bytes.Buffer
	if err := (Ideaboard{}).Content(&buf, plugin.Props{Board: b}); err != nil {
		t.Fatalf("Content: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "chase &lt;scene&gt;") {
		t.Errorf("text note missing or unescaped: %s", out)
	}
	if strings.Contains(out, "<img") {
		t.Error("idea board rendered an image note")
	}
}

func TestImageBoardsEmptyState(t *testing.T) {
	for _, d := range []plugin.Descriptor{Moodboard{}, Storyboard{}} {
		var buf bytes.Buffer
		b := board.Board{ID: "b", Type: d.Type(), Notes: []board.Note{board.NewTextNote("ignored")}}
		if err := d.Content(&buf, plugin.Props{Board: b}); err != nil {
			t.Fatalf("%s Content: %v", d.Type(), err)
		}
		if !strings.Contains(buf.String(), `class="empty"`) {
			t.Errorf("%s: expected empty state, got %s", d.Type(), buf.String())
		}
	}
}

func TestStoryboardFooterState(t *testing.T) {
	var buf bytes.Buffer
	p := plugin.Props{
		Board: board.Board{ID: "s1", Type: TypeStoryboard},
		Image: plugin.ImageState{Prompt: "wide shot", Loading: true, Err: "quota exceeded"},
	}
	if err := (Storyboard{}).Footer(&buf, p); err != nil {
		t.Fatalf("Footer: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`value="wide shot"`, "disabled", "Generating...", "quota exceeded"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q: %s", want, out)
		}
	}
}

func TestCapabilities(t *testing.T) {
	if !plugin.TakesNotes(Ideaboard{}) || plugin.TakesImages(Ideaboard{}) {
		t.Error("idea board should take notes only")
	}
	if plugin.TakesNotes(Moodboard{}) || !plugin.TakesImages(Moodboard{}) {
		t.Error("mood board should take images only")
	}
	if _, ok := plugin.FooterOf(Moodboard{}); ok {
		t.Error("mood board has no footer")
	}
	if _, ok := plugin.FooterOf(Storyboard{}); !ok {
		t.Error("storyboard should have a footer")
	}
}
