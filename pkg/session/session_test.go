package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/workspace"
)

type memSaver struct {
	mu    sync.Mutex
	saves []*board.Project
	err   error
}

func (m *memSaver) Save(_ context.Context, p *board.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves = append(m.saves, p.Clone())
	return nil
}

func (m *memSaver) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

func (m *memSaver) last() *board.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[len(m.saves)-1]
}

func TestFlush(t *testing.T) {
	ctx := context.Background()
	ws := workspace.New(board.NewProject("Short"))
	saver := &memSaver{}
	s := New(ws, saver)

	if s.Dirty() {
		t.Error("new session is dirty")
	}
	if wrote, err := s.Flush(ctx); err != nil || wrote {
		t.Errorf("Flush() = %v, %v on a clean session", wrote, err)
	}

	ws.Rename("Feature")
	if !s.Dirty() {
		t.Error("rename did not dirty the session")
	}
	if wrote, err := s.Flush(ctx); err != nil || !wrote {
		t.Fatalf("Flush() = %v, %v", wrote, err)
	}
	if saver.count() != 1 || saver.last().Name != "Feature" {
		t.Errorf("saves = %d, last name %q", saver.count(), saver.last().Name)
	}
	if s.Dirty() {
		t.Error("session dirty after flush")
	}
}

func TestFlushError(t *testing.T) {
	ws := workspace.New(board.NewProject("Short"))
	saver := &memSaver{err: fmt.Errorf("disk full")}
	s := New(ws, saver)

	ws.Rename("Feature")
	if _, err := s.Flush(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if !s.Dirty() {
		t.Error("failed save cleared the dirty flag")
	}
}

func TestReloadIgnoresOwnWrites(t *testing.T) {
	ws := workspace.New(board.NewProject("Short"))
	saver := &memSaver{}
	s := New(ws, saver)

	ws.Rename("Feature")
	if err := s.Save(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Reload(saver.last()) {
		t.Error("reload of the session's own write replaced the workspace")
	}

	external := saver.last().Clone()
	external.Name = "Edited elsewhere"
	if !s.Reload(external) {
		t.Fatal("external edit was ignored")
	}
	if ws.Snapshot().Name != "Edited elsewhere" {
		t.Errorf("name = %q", ws.Snapshot().Name)
	}
	if s.Dirty() {
		t.Error("reloaded session is dirty")
	}
}

func TestAutosave(t *testing.T) {
	ws := workspace.New(board.NewProject("Short"))
	saver := &memSaver{}
	s := New(ws, saver)

	if _, err := s.Autosave(context.Background(), "every now and then"); err == nil {
		t.Error("expected error for an invalid schedule")
	}

	stop, err := s.Autosave(context.Background(), "@every 1s")
	if err != nil {
		t.Fatal(err)
	}
	ws.Rename("Feature")

	deadline := time.Now().Add(5 * time.Second)
	for saver.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if saver.count() == 0 {
		t.Fatal("autosave never ran")
	}

	ws.Rename("Final cut")
	stop()
	if got := saver.last().Name; got != "Final cut" {
		t.Errorf("stop did not flush: last saved name %q", got)
	}
}
