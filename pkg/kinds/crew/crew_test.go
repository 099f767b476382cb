package crew

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/plugin"
)

func TestParseMalformed(t *testing.T) {
	for _, content := range []string{"", "{}", "oops", "null"} {
		if got := Parse(content); got == nil || len(got) != 0 {
			t.Errorf("Parse(%q) = %v, want empty list", content, got)
		}
	}
}

func TestAddRemove(t *testing.T) {
	ms, dp := Members{}.Add(Member{Name: "Ana Ruiz", Role: "DP"})
	ms, _ = ms.Add(Member{Name: "Sam", Role: "Gaffer"})

	if !strings.HasPrefix(dp.ID, "crew-") {
		t.Errorf("id %q should carry the crew- prefix", dp.ID)
	}
	got := Parse(ms.Encode())
	if len(got) != 2 || got[0].Handle() != "anaruiz" {
		t.Errorf("round trip = %+v", got)
	}
	ms, ok := ms.Remove(dp.ID)
	if !ok || len(ms) != 1 {
		t.Errorf("Remove = %v, %v", ms, ok)
	}
}

func TestContentEscapes(t *testing.T) {
	ms, _ := Members{}.Add(Member{Name: "<b>Eve</b>", Email: "eve@example.com"})
	content := ms.Encode()
	var buf bytes.Buffer
	if err := (Plugin{}).Content(&buf, plugin.Props{Board: board.Board{ID: "c", Type: Type, Content: &content}}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<b>Eve") {
		t.Error("member name was not escaped")
	}
	if !strings.Contains(buf.String(), "mailto:eve@example.com") {
		t.Error("missing mail link")
	}
}
