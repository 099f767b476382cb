package checklist

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/plugin"
)

func TestToggle(t *testing.T) {
	content := Toggle("", "cam-1")
	if content != `["cam-1"]` {
		t.Fatalf("Toggle on = %s", content)
	}
	content = Toggle(content, "lens-1")
	if content != `["cam-1","lens-1"]` {
		t.Fatalf("Toggle second = %s", content)
	}
	if content = Toggle(content, "cam-1"); content != `["lens-1"]` {
		t.Errorf("Toggle off = %s", content)
	}
	if got := Toggle("garbage", "x"); got != `["x"]` {
		t.Errorf("Toggle on malformed content = %s", got)
	}
}

func TestContentUsesSharedGear(t *testing.T) {
	gear, cam, err := board.Gear{}.Add("Sony FX3", board.GearCamera)
	if err != nil {
		t.Fatal(err)
	}
	gear, _, _ = gear.Add("Aputure 600d", board.GearLight)
	content := Toggle("", cam.ID)

	var buf bytes.Buffer
	props := plugin.Props{
		Board:  board.Board{ID: "c", Type: Type, Content: &content},
		Shared: board.Shared{Gear: gear},
	}
	if err := (Plugin{}).Content(&buf, props); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<h3>Cameras</h3>") || !strings.Contains(out, "<h3>Lights</h3>") {
		t.Errorf("missing category headings: %s", out)
	}
	if strings.Count(out, " checked>") != 1 {
		t.Errorf("expected exactly one checked item: %s", out)
	}
}

func TestContentWithoutGear(t *testing.T) {
	var buf bytes.Buffer
	if err := (Plugin{}).Content(&buf, plugin.Props{Board: board.Board{ID: "c", Type: Type}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `data-action="open-gear"`) {
		t.Error("empty inventory should offer the gear editor")
	}
}
