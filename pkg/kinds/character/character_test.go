package character

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/plugin"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"malformed", "{", 0},
		{"object instead of list", `{"name":"x"}`, 0},
		{"null", "null", 0},
		{"one profile", `[{"id":"c1","name":"Mara","core":{"role":"Protagonist"}}]`, 1},
		{"legacy field ignored", `[{"id":"c1","name":"Mara","projectType":"Series"}]`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.content)
			if got == nil || len(got) != tt.want {
				t.Errorf("Parse(%q) = %v, want %d profiles", tt.content, got, tt.want)
			}
		})
	}
}

func TestProfilesEdits(t *testing.T) {
	ps, mara := Profiles{}.Add("Mara Quinn")
	ps, _ = ps.Add("Theo")
	if len(ps) != 2 {
		t.Fatalf("len = %d, want 2", len(ps))
	}

	next, ok := ps.Update(mara.ID, func(p Profile) Profile {
		p.Core.Role = "Protagonist"
		p.ID = "hijack"
		return p
	})
	if !ok || next[0].Core.Role != "Protagonist" || next[0].ID != mara.ID {
		t.Errorf("Update = %+v", next[0])
	}
	if ps[0].Core.Role != "" {
		t.Error("Update mutated the original list")
	}

	next, ok = next.Remove(mara.ID)
	if !ok || len(next) != 1 || next[0].Name != "Theo" {
		t.Errorf("Remove = %+v, %v", next, ok)
	}
	if _, ok := next.Remove("missing"); ok {
		t.Error("Remove(missing) should report false")
	}
}

func TestHandle(t *testing.T) {
	if got := (Profile{Name: "Mara  Quinn"}).Handle(); got != "@maraquinn" {
		t.Errorf("Handle() = %q", got)
	}
}

func TestSeriesPlaceholders(t *testing.T) {
	ps, _ := Profiles{}.Add("Mara")
	content := ps.Encode()
	b := board.Board{ID: "c", Type: Type, Content: &content}

	render := func(projectType string) string {
		var buf bytes.Buffer
		props := plugin.Props{Board: b, Shared: board.Shared{Settings: board.Settings{ProjectType: projectType}}}
		if err := (Plugin{}).Content(&buf, props); err != nil {
			t.Fatal(err)
		}
		return buf.String()
	}

	if out := render(board.ProjectShortVideo); !strings.Contains(out, "change emotionally over the story") {
		t.Error("short project should use story placeholders")
	}
	if out := render(board.ProjectSeries); !strings.Contains(out, "across the entire series") {
		t.Error("series project should use series placeholders")
	}
}
