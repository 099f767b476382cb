package board

import (
	"testing"

	"github.com/matzehuels/auteur/pkg/errors"
)

func sampleBoards() Boards {
	content := "INT. SERVER ROOM"
	return Boards{
		{ID: "a", Type: "IDEABOARD", Title: "Ideas", Notes: []Note{{ID: "n1", Kind: NoteText, Text: "pain"}}, X: 0, Y: 0, W: 1, H: 2},
		{ID: "b", Type: "DOCUMENT_GENERIC", Title: "Doc", Content: &content, X: 1, Y: 0, W: 1, H: 2},
	}
}

func TestBoardValidate(t *testing.T) {
	tests := []struct {
		name    string
		board   Board
		wantErr bool
	}{
		{"valid", Board{ID: "a", Type: "IDEABOARD", W: 1, H: 1}, false},
		{"max span", Board{ID: "a", Type: "IDEABOARD", W: 3, H: 10}, false},
		{"negative x", Board{ID: "a", Type: "IDEABOARD", X: -1, W: 1, H: 1}, true},
		{"zero width", Board{ID: "a", Type: "IDEABOARD", W: 0, H: 1}, true},
		{"too wide", Board{ID: "a", Type: "IDEABOARD", W: 4, H: 1}, true},
		{"too tall", Board{ID: "a", Type: "IDEABOARD", W: 1, H: 11}, true},
		{"no type", Board{ID: "a", W: 1, H: 1}, true},
		{"bad note", Board{ID: "a", Type: "IDEABOARD", W: 1, H: 1, Notes: []Note{{ID: "n", Kind: NoteImage}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.board.Validate(3, 10)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidBoard) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidBoard)
			}
		})
	}
}

func TestBoardsUpdateIsCopyOnWrite(t *testing.T) {
	orig := sampleBoards()

	next, ok := orig.Update("a", MovePatch(2, 3))
	if !ok {
		t.Fatal("Update returned false for existing id")
	}
	if orig[0].X != 0 || orig[0].Y != 0 {
		t.Errorf("original mutated: %+v", orig[0])
	}
	if next[0].X != 2 || next[0].Y != 3 {
		t.Errorf("updated board = %+v", next[0])
	}
	if &next[0] == &orig[0] {
		t.Error("Update returned the same backing array")
	}

	next, _ = orig.Update("b", ContentPatch("EXT. ROOFTOP"))
	if orig[1].ContentString() != "INT. SERVER ROOM" {
		t.Errorf("original content mutated: %q", orig[1].ContentString())
	}
	if next[1].ContentString() != "EXT. ROOFTOP" {
		t.Errorf("content = %q", next[1].ContentString())
	}
}

func TestBoardsStaleIDIsNoop(t *testing.T) {
	orig := sampleBoards()

	if _, ok := orig.Update("missing", MovePatch(1, 1)); ok {
		t.Error("Update on missing id should report false")
	}
	if _, ok := orig.Remove("missing"); ok {
		t.Error("Remove on missing id should report false")
	}
	if _, ok := orig.AppendNote("missing", NewTextNote("x")); ok {
		t.Error("AppendNote on missing id should report false")
	}
	if _, ok := orig.RemoveNote("a", "missing"); ok {
		t.Error("RemoveNote on missing note should report false")
	}
}

func TestBoardsReplaceKeepsIdentity(t *testing.T) {
	orig := sampleBoards()
	next, _ := orig.Replace("a", func(b Board) Board {
		b.ID = "hijacked"
		b.Type = "OTHER"
		b.Title = "Renamed"
		return b
	})
	if next[0].ID != "a" || next[0].Type != "IDEABOARD" {
		t.Errorf("identity changed: %+v", next[0])
	}
	if next[0].Title != "Renamed" {
		t.Errorf("Title = %q", next[0].Title)
	}
}

func TestBoardsNoteOps(t *testing.T) {
	bs := sampleBoards()

	bs, ok := bs.AppendNote("a", NewTextNote("visuals"))
	if !ok || len(bs[0].Notes) != 2 {
		t.Fatalf("AppendNote: ok=%v notes=%d", ok, len(bs[0].Notes))
	}

	text := "narration"
	bs, ok = bs.UpdateNote("a", "n1", NotePatch{Text: &text})
	if !ok || bs[0].Notes[0].Text != "narration" {
		t.Fatalf("UpdateNote: ok=%v note=%+v", ok, bs[0].Notes[0])
	}

	bs, ok = bs.RemoveNote("a", "n1")
	if !ok || len(bs[0].Notes) != 1 {
		t.Fatalf("RemoveNote: ok=%v notes=%d", ok, len(bs[0].Notes))
	}

	bs, ok = bs.Remove("a")
	if !ok || len(bs) != 1 || bs[0].ID != "b" {
		t.Fatalf("Remove: ok=%v boards=%v", ok, bs)
	}
}

func TestNewProject(t *testing.T) {
	p := NewProject("Can Machines Feel Pain?")
	if len(p.Boards) != 1 {
		t.Fatalf("boards = %d, want 1", len(p.Boards))
	}
	b := p.Boards[0]
	if b.Type != SeedBoardType || b.X != 0 || b.Y != 0 || b.W != 1 || b.H != 2 {
		t.Errorf("seed board = %+v", b)
	}
	if err := p.Validate(3, 10); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	c := p.Clone()
	c.Boards[0].Title = "changed"
	if p.Boards[0].Title == "changed" {
		t.Error("Clone shares boards")
	}
}

func TestSettingsWith(t *testing.T) {
	s, err := DefaultSettings().With("aspectRatio", "2.39:1 (Scope)")
	if err != nil || s.AspectRatio != "2.39:1 (Scope)" {
		t.Errorf("With(aspectRatio) = %+v, %v", s, err)
	}
	if _, err := DefaultSettings().With("frameRate", "23.976fps"); !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("invalid frame rate error = %v", err)
	}
	if _, err := DefaultSettings().With("iso", "800"); err == nil {
		t.Error("unknown field should fail")
	}
}

func TestGearByType(t *testing.T) {
	var g Gear
	g, _, _ = g.Add("85mm f/1.8", GearLens)
	g, cam, _ := g.Add("Sony A7S III", GearCamera)
	g, _, _ = g.Add("24-70mm f/2.8", GearLens)

	groups := g.ByType()
	if len(groups) != 2 || groups[0].Type != GearCamera || len(groups[1].Items) != 2 {
		t.Errorf("ByType() = %+v", groups)
	}

	g, ok := g.Remove(cam.ID)
	if !ok || len(g.Items) != 2 {
		t.Errorf("Remove: ok=%v items=%d", ok, len(g.Items))
	}
	if _, _, err := g.Add("Drone", "Aerial"); err == nil {
		t.Error("unknown gear type should fail")
	}
}
