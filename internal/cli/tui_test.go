package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/interaction"
	"github.com/matzehuels/auteur/pkg/session"
	"github.com/matzehuels/auteur/pkg/workspace"
)

type discardSaver struct{ saves int }

func (d *discardSaver) Save(context.Context, *board.Project) error {
	d.saves++
	return nil
}

func newTestCanvas(t *testing.T) (canvasModel, *workspace.Workspace, *discardSaver) {
	t.Helper()
	ws := workspace.New(board.NewProject("Night Shoot"))
	if _, err := ws.AddBoard("DOCUMENT_TREATMENT"); err != nil {
		t.Fatal(err)
	}
	saver := &discardSaver{}
	return newCanvasModel(session.New(ws, saver)), ws, saver
}

func press(t *testing.T, m canvasModel, keys ...tea.KeyMsg) canvasModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(canvasModel)
	}
	return m
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestCanvasSelection(t *testing.T) {
	m, ws, _ := newTestCanvas(t)
	ids := []string{ws.Boards()[0].ID, ws.Boards()[1].ID}

	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{key(tea.KeyTab), ids[1]},
		{key(tea.KeyTab), ids[0]},
		{key(tea.KeyShiftTab), ids[1]},
	}
	for i, tt := range tests {
		m = press(t, m, tt.key)
		if b, _ := m.selected(); b.ID != tt.want {
			t.Errorf("step %d: selected %s, want %s", i, b.ID, tt.want)
		}
	}
}

func TestCanvasNudge(t *testing.T) {
	m, ws, _ := newTestCanvas(t)
	id := ws.Boards()[0].ID

	m = press(t, m, key(tea.KeyRight), key(tea.KeyDown))
	b, _ := ws.Board(id)
	if b.X != 1 || b.Y != 1 {
		t.Errorf("after move: (%d,%d), want (1,1)", b.X, b.Y)
	}

	m = press(t, m, key(tea.KeyLeft), key(tea.KeyLeft))
	b, _ = ws.Board(id)
	if b.X != 0 {
		t.Errorf("x = %d, want clamped to 0", b.X)
	}

	m = press(t, m, key(tea.KeyShiftRight), key(tea.KeyShiftRight), key(tea.KeyShiftRight))
	b, _ = ws.Board(id)
	if b.W != 3 {
		t.Errorf("w = %d, want clamped to 3", b.W)
	}
	if st, _ := ws.Interaction(); st != interaction.Idle {
		t.Errorf("state = %v after nudges, want idle", st)
	}
	if !strings.Contains(m.status, "resize") && !strings.Contains(m.status, "edge") {
		t.Errorf("status = %q", m.status)
	}
}

func TestCanvasGrab(t *testing.T) {
	m, ws, _ := newTestCanvas(t)
	id := ws.Boards()[0].ID

	m = press(t, m, key(tea.KeySpace))
	if !m.grab {
		t.Fatal("space did not grab")
	}
	if st, active := ws.Interaction(); st != interaction.Dragging || active != id {
		t.Fatalf("Interaction() = %v, %s", st, active)
	}

	m = press(t, m, key(tea.KeyRight), key(tea.KeyRight), key(tea.KeyDown))
	b, _ := ws.Board(id)
	if b.X != 2 || b.Y != 1 {
		t.Errorf("while grabbed: (%d,%d), want (2,1)", b.X, b.Y)
	}
	if !strings.Contains(m.View(), "dragging") {
		t.Error("view does not show the gesture state")
	}

	m = press(t, m, key(tea.KeyEnter))
	if m.grab {
		t.Error("enter did not drop")
	}
	if st, _ := ws.Interaction(); st != interaction.Idle {
		t.Errorf("state = %v after drop", st)
	}

	m = press(t, m, runes("r"), key(tea.KeyDown), key(tea.KeyEsc))
	b, _ = ws.Board(id)
	if b.H != 3 {
		t.Errorf("h = %d after grab-resize, want 3", b.H)
	}
	if m.grab {
		t.Error("esc did not release")
	}
}

func TestCanvasSave(t *testing.T) {
	m, _, saver := newTestCanvas(t)
	m = press(t, m, key(tea.KeyRight))
	if !strings.Contains(m.View(), "unsaved") {
		t.Error("view does not flag unsaved changes")
	}

	_, cmd := m.Update(runes("s"))
	if cmd == nil {
		t.Fatal("s returned no command")
	}
	next, _ := m.Update(cmd())
	m = next.(canvasModel)
	if saver.saves != 1 || m.status != "saved" {
		t.Errorf("saves = %d, status %q", saver.saves, m.status)
	}
}

func TestCanvasView(t *testing.T) {
	m, _, _ := newTestCanvas(t)
	view := m.View()
	for _, want := range []string{"Night Shoot", "Ideaboard", "Story Treat", "╭"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, cmd := m.Update(runes("q"))
	if cmd == nil || next.(canvasModel).View() != "" {
		t.Error("q did not quit")
	}
}

func TestCanvasScrollsToGeneratedBoards(t *testing.T) {
	m, ws, _ := newTestCanvas(t)
	id := ws.Boards()[0].ID
	ws.UpdateBoard(id, board.MovePatch(0, 999))

	m = press(t, m, key(tea.KeyTab), key(tea.KeyShiftTab))
	if m.top == 0 || m.top > 999 {
		t.Errorf("top = %d, want scrolled near row 999", m.top)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Treatment", 20, "Treatment"},
		{"Treatment", 5, "Trea…"},
		{"Treatment", 1, "…"},
		{"Treatment", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
