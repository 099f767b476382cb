package sink

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/layout"
)

func sampleLayout(active string) layout.Layout {
	boards := []board.Board{
		{ID: "a", Type: "IDEABOARD", Title: "Ideas", X: 0, Y: 0, W: 1, H: 2},
		{ID: "b", Type: "MOODBOARD", Title: "Mood & Tone", X: 1, Y: 0, W: 1, H: 2},
		{ID: "c", Type: "DOCUMENT_BUDGET", Title: "Budget", X: 1, Y: 1, W: 2, H: 2},
	}
	return layout.DefaultGrid().Compute(boards, active)
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleLayout("a"), WithFrames(map[string]string{"b": "<p>frame b</p>"})))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("output is not an SVG document")
	}
	if !strings.Contains(svg, `<text class="title" x="12" y="24">Ideas</text>`) {
		t.Error("board without frame should fall back to its title")
	}
	if !strings.Contains(svg, "<p>frame b</p>") {
		t.Error("frame HTML not embedded")
	}
	// Active board is painted last.
	if strings.LastIndex(svg, `id="board-a"`) < strings.LastIndex(svg, `id="board-c"`) {
		t.Error("active board should be painted after its siblings")
	}
	if !strings.Contains(svg, "z-index: 10; transition: none;") {
		t.Error("active board should have no transition")
	}
	if !strings.Contains(svg, "z-index: 1; transition: left 0.2s ease") {
		t.Error("resting boards should animate")
	}
}

func TestRenderHTML(t *testing.T) {
	page := string(RenderHTML(sampleLayout(""), WithTitle("Night Shift")))
	for _, want := range []string{
		"<title>Night Shift</title>",
		`data-board="c" data-cell="1,1,2,2"`,
		"left: 404px; top: 144px; width: 784px; height: 264px;",
		"<h2>Mood &amp; Tone</h2>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "transition: none") {
		t.Error("no board is active, nothing should suppress transitions")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleLayout("b"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Active != "b" {
		t.Errorf("Active = %q, want b", out.Active)
	}
	if len(out.Boards) != 3 {
		t.Fatalf("Boards count = %d, want 3", len(out.Boards))
	}
	if c := out.Boards[2]; c.Cell != (jsonXYWH{X: 1, Y: 1, W: 2, H: 2}) || c.Left != 404 || c.Width != 784 {
		t.Errorf("board c = %+v", c)
	}
	if len(out.Overlap) != 1 || out.Overlap[0] != [2]string{"b", "c"} {
		t.Errorf("Overlap = %v, want [[b c]]", out.Overlap)
	}
	if out.Height != 3*144 {
		t.Errorf("Height = %v, want %v", out.Height, 3*144)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleLayout("a"), DOTOptions{Detailed: true})
	for _, want := range []string{
		"graph Workspace {",
		"layout=neato;",
		`"a" [label="Ideas\nIDEABOARD\n(0,0) 1x2"`,
		`penwidth=2`,
		`"b" -- "c" [style=dashed, color=red];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestRenderDOTSVG(t *testing.T) {
	svg, err := RenderDOTSVG(context.Background(), ToDOT(sampleLayout(""), DOTOptions{}))
	if err != nil {
		t.Fatalf("RenderDOTSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderDOTSVG() output missing <svg> tag")
	}
}

func TestRenderDOTSVGInvalid(t *testing.T) {
	if _, err := RenderDOTSVG(context.Background(), "not valid DOT {{{"); err == nil {
		t.Error("RenderDOTSVG() should return error for invalid DOT")
	}
}
