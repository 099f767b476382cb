package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/plugin"
)

type textPlugin struct{ typ, body string }

func (p textPlugin) Type() string      { return p.typ }
func (p textPlugin) Meta() plugin.Meta { return plugin.Meta{Title: p.typ, Icon: "doc"} }
func (p textPlugin) Content(w io.Writer, _ plugin.Props) error {
	_, err := io.WriteString(w, p.body)
	return err
}

type fullPlugin struct{ textPlugin }

func (fullPlugin) Fullscreen(w io.Writer, _ plugin.Props) error {
	_, err := io.WriteString(w, "FULL")
	return err
}
func (fullPlugin) Footer(w io.Writer, _ plugin.Props) error {
	_, err := io.WriteString(w, "FOOT")
	return err
}
func (fullPlugin) HeaderActions(w io.Writer, _ plugin.HeaderProps) error {
	_, err := io.WriteString(w, "ACT")
	return err
}

type panicPlugin struct{}

func (panicPlugin) Type() string      { return "BROKEN" }
func (panicPlugin) Meta() plugin.Meta { return plugin.Meta{Title: "Broken"} }
func (panicPlugin) Content(w io.Writer, _ plugin.Props) error {
	io.WriteString(w, "half a fragm")
	panic("nil map")
}

type failingPlugin struct{}

func (failingPlugin) Type() string      { return "FAILING" }
func (failingPlugin) Meta() plugin.Meta { return plugin.Meta{Title: "Failing"} }
func (failingPlugin) Content(w io.Writer, _ plugin.Props) error {
	io.WriteString(w, "partial")
	return errors.New("decode failed")
}

func newDispatcher() *Dispatcher {
	r := plugin.NewRegistry()
	r.Register(textPlugin{typ: "IDEABOARD", body: "ideas"})
	r.Register(fullPlugin{textPlugin{typ: "DOCUMENT_BUDGET", body: "budget"}})
	r.Register(panicPlugin{})
	r.Register(failingPlugin{})
	return NewDispatcher(r)
}

func props(id, typ string) plugin.Props {
	return plugin.Props{Board: board.Board{ID: id, Type: typ, Title: "Title " + id}, Mutations: plugin.NopMutations{}}
}

func TestRenderContentUnknownType(t *testing.T) {
	d := newDispatcher()
	var buf bytes.Buffer
	out := d.RenderContent(context.Background(), &buf, props("x", "WHITEBOARD"))
	if !out.Missing || out.OK() {
		t.Errorf("Outcome = %+v, want Missing", out)
	}
	want := "Error: Board type &#39;WHITEBOARD&#39; has no registered plugin."
	if !strings.Contains(buf.String(), want) {
		t.Errorf("output = %q, want fragment %q", buf.String(), want)
	}
}

func TestMissingMessage(t *testing.T) {
	if got := MissingMessage("WHITEBOARD"); got != "Error: Board type 'WHITEBOARD' has no registered plugin." {
		t.Errorf("MissingMessage = %q", got)
	}
}

func TestRenderContentContainsPanics(t *testing.T) {
	d := newDispatcher()
	var buf bytes.Buffer
	out := d.RenderContent(context.Background(), &buf, props("p", "BROKEN"))

	var pe *PanicError
	if !errors.As(out.Err, &pe) {
		t.Fatalf("Outcome.Err = %v, want PanicError", out.Err)
	}
	if strings.Contains(buf.String(), "half a fragm") {
		t.Error("partial output of a panicking plugin leaked")
	}
	if !strings.Contains(buf.String(), "board-error") {
		t.Error("missing error fragment")
	}
}

func TestRenderContentPluginError(t *testing.T) {
	d := newDispatcher()
	var buf bytes.Buffer
	out := d.RenderContent(context.Background(), &buf, props("f", "FAILING"))
	if out.Err == nil || strings.Contains(buf.String(), "partial") {
		t.Errorf("Outcome = %+v, output = %q", out, buf.String())
	}
}

func TestRenderFullscreenFallsBack(t *testing.T) {
	d := newDispatcher()
	ctx := context.Background()

	var buf bytes.Buffer
	d.RenderFullscreen(ctx, &buf, props("b", "DOCUMENT_BUDGET"))
	if buf.String() != "FULL" {
		t.Errorf("fullscreen = %q, want FULL", buf.String())
	}

	buf.Reset()
	d.RenderFullscreen(ctx, &buf, props("i", "IDEABOARD"))
	if buf.String() != "ideas" {
		t.Errorf("fullscreen fallback = %q, want content", buf.String())
	}
}

func TestRenderFrame(t *testing.T) {
	d := newDispatcher()
	var buf bytes.Buffer
	out := d.RenderFrame(context.Background(), &buf, props("b", "DOCUMENT_BUDGET"), false)
	if !out.OK() {
		t.Fatalf("Outcome = %+v", out)
	}
	s := buf.String()
	for _, want := range []string{"<h2>Title b</h2>", "ACT", "budget", "<footer>FOOT</footer>"} {
		if !strings.Contains(s, want) {
			t.Errorf("frame missing %q: %s", want, s)
		}
	}
	if strings.Index(s, "ACT") > strings.Index(s, "budget") {
		t.Error("header actions should precede the body")
	}

	buf.Reset()
	d.RenderFrame(context.Background(), &buf, props("i", "IDEABOARD"), false)
	if strings.Contains(buf.String(), "<footer>") || strings.Contains(buf.String(), `class="actions"`) {
		t.Error("plugin without footer or actions rendered them")
	}
}

func TestFramesIsolateFailures(t *testing.T) {
	d := newDispatcher()
	frames := d.Frames(context.Background(), Input{
		Boards: []board.Board{
			{ID: "1", Type: "IDEABOARD", Title: "One"},
			{ID: "2", Type: "BROKEN", Title: "Two"},
			{ID: "3", Type: "WHITEBOARD", Title: "Three"},
			{ID: "4", Type: "DOCUMENT_BUDGET", Title: "Four"},
		},
		Fullscreen: "4",
	})
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	if !frames["1"].Outcome.OK() || !strings.Contains(frames["1"].HTML, "ideas") {
		t.Errorf("frame 1 = %+v", frames["1"])
	}
	if frames["2"].Outcome.Err == nil {
		t.Error("frame 2 should report the panic")
	}
	if !frames["3"].Outcome.Missing {
		t.Error("frame 3 should report a missing plugin")
	}
	if !strings.Contains(frames["4"].HTML, "FULL") {
		t.Error("frame 4 should render fullscreen")
	}
}
