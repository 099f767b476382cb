package store

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/layout"
)

func sampleProject() *board.Project {
	p := board.NewProject("Night Shift")
	content := "INT. DINER - NIGHT"
	p.Boards = append(p.Boards,
		board.Board{ID: "doc-1", Type: "DOCUMENT_TREATMENT", Title: "Treatment", Content: &content, X: 1, W: 2, H: 3},
	)
	p.Boards[0].Notes = []board.Note{board.NewTextNote("rain on neon")}
	p.Gear.Items = []board.GearItem{{ID: "g1", Name: "FX3", Type: board.GearCamera}}
	return p
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			ctx := context.Background()
			s, err := NewFileStore(t.TempDir(), format)
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}
			p := sampleProject()
			if err := s.Save(ctx, p); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if got := filepath.Ext(s.Path(p.ID)); got != format.Ext() {
				t.Errorf("file extension = %q, want %q", got, format.Ext())
			}

			got, err := s.Load(ctx, p.ID)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Name != p.Name || len(got.Boards) != 2 {
				t.Fatalf("loaded %q with %d boards", got.Name, len(got.Boards))
			}
			if got.Boards[1].ContentString() != "INT. DINER - NIGHT" {
				t.Errorf("content = %q", got.Boards[1].ContentString())
			}
			if len(got.Boards[0].Notes) != 1 || got.Boards[0].Notes[0].Text != "rain on neon" {
				t.Errorf("notes = %+v", got.Boards[0].Notes)
			}
			if got.Settings != p.Settings {
				t.Errorf("settings = %+v, want %+v", got.Settings, p.Settings)
			}
			if len(got.Gear.Items) != 1 || got.Gear.Items[0].Type != board.GearCamera {
				t.Errorf("gear = %+v", got.Gear.Items)
			}
		})
	}
}

func TestFileStoreNotFound(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Load(context.Background(), "missing")
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if !errors.Is(err, errors.ErrCodeProjectNotFound) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeProjectNotFound)
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, id := range []string{"", "../escape", "a/b"} {
		if _, err := s.Load(ctx, id); !errors.IsInvalid(err) {
			t.Errorf("Load(%q) err = %v, want invalid input", id, err)
		}
	}
	p := sampleProject()
	p.ID = "../escape"
	if err := s.Save(ctx, p); !errors.IsInvalid(err) {
		t.Errorf("Save err = %v, want invalid input", err)
	}
	if err := s.Save(ctx, nil); !errors.IsInvalid(err) {
		t.Errorf("Save(nil) err = %v, want invalid input", err)
	}
}

func TestFileStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"b", "a"} {
		p := sampleProject()
		p.ID = id
		if err := s.Save(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	// A hand-written YAML project and an unrelated file.
	if err := os.WriteFile(filepath.Join(dir, "c.yml"), []byte("id: c\nname: Hand\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if strings.Join(ids, ",") != "a,b,c" {
		t.Errorf("List = %v, want [a b c]", ids)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	ids, _ = s.List(ctx)
	if strings.Join(ids, ",") != "b,c" {
		t.Errorf("List after delete = %v", ids)
	}
}

func TestLoadClampsPlacement(t *testing.T) {
	dir := t.TempDir()
	raw := `{"id":"p","name":"Bad","boards":[
		{"id":"x","type":"IDEABOARD","title":"Wide","x":-2,"y":-1,"w":9,"h":0}
	]}`
	if err := os.WriteFile(filepath.Join(dir, "p.json"), []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(dir, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	p, err := s.Load(context.Background(), "p")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b := p.Boards[0]
	if b.X != 0 || b.Y != 0 || b.W != layout.DefaultMaxW || b.H != 1 {
		t.Errorf("clamped board = (%d,%d,%d,%d), want (0,0,%d,1)", b.X, b.Y, b.W, b.H, layout.DefaultMaxW)
	}
	if p.Settings != board.DefaultSettings() {
		t.Errorf("missing settings should default, got %+v", p.Settings)
	}
	if err := p.Validate(layout.DefaultMaxW, layout.DefaultMaxH); err != nil {
		t.Errorf("loaded project should validate: %v", err)
	}
}

func TestLoadCustomGrid(t *testing.T) {
	dir := t.TempDir()
	g := layout.DefaultGrid()
	g.MaxH = 4
	s, err := NewFileStore(dir, FormatYAML, WithGrid(g))
	if err != nil {
		t.Fatal(err)
	}
	p := sampleProject()
	p.Boards[0].H = 8
	if err := WriteFile(filepath.Join(dir, p.ID+".yaml"), p); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(context.Background(), p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Boards[0].H != 4 {
		t.Errorf("H = %d, want 4", got.Boards[0].H)
	}
}

func TestReadFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(path, layout.DefaultGrid())
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"toml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFileStoreWatch(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	p := sampleProject()
	if err := s.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, p.ID, func(got *board.Project, err error) {
			if err == nil {
				changed <- got.Name
			}
		})
	}()

	// Keep editing until the watcher is up and reports the change.
	edited := p.Clone()
	edited.Name = "Day Shift"
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for got := ""; got != "Day Shift"; {
		select {
		case got = <-changed:
		case <-tick.C:
			if err := WriteFile(s.Path(p.ID), edited); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}
