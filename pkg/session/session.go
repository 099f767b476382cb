// Package session keeps an open workspace in step with the place its project
// is stored.
//
// A Session remembers which workspace revision was last persisted. Flush
// writes the project only when it changed since then, Autosave runs Flush on
// a cron schedule, and Reload applies edits made to the stored copy by
// someone else while ignoring the echo of the session's own writes.
//
//	sess := session.New(ws, store)
//	stop, err := sess.Autosave(ctx, "@every 30s")
//	if err != nil {
//	    return err
//	}
//	defer stop()
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/cache"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/workspace"
)

// Saver persists a project. Every store.Store is a Saver.
type Saver interface {
	Save(ctx context.Context, p *board.Project) error
}

// Session ties a workspace to its Saver.
type Session struct {
	mu     sync.Mutex
	ws     *workspace.Workspace
	saver  Saver
	logger *log.Logger

	saved uint64 // workspace revision last persisted or loaded
	hash  string // content hash of the last persisted snapshot
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for autosave and reload messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New starts a session for ws. The workspace's current state counts as
// saved.
func New(ws *workspace.Workspace, saver Saver, opts ...Option) *Session {
	s := &Session{ws: ws, saver: saver, logger: log.Default(), saved: ws.Revision()}
	for _, opt := range opts {
		opt(s)
	}
	s.hash, _ = hash(ws.Snapshot())
	return s
}

// Workspace returns the workspace this session persists.
func (s *Session) Workspace() *workspace.Workspace { return s.ws }

// Dirty reports whether the workspace changed since it was last persisted.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.Revision() != s.saved
}

// Save persists the current project unconditionally.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

// Flush persists the project if it changed since the last save. It reports
// whether anything was written.
func (s *Session) Flush(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ws.Revision() == s.saved {
		return false, nil
	}
	if err := s.save(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) save(ctx context.Context) error {
	rev := s.ws.Revision()
	p := s.ws.Snapshot()
	h, err := hash(p)
	if err != nil {
		return err
	}
	if err := s.saver.Save(ctx, p); err != nil {
		return err
	}
	s.saved, s.hash = rev, h
	s.logger.Debug("project saved", "id", p.ID, "revision", rev)
	return nil
}

// Reload applies a project loaded from storage after an external edit. A
// project identical to the last one this session wrote is the echo of its
// own save and is ignored. Unsaved local edits are discarded in favour of
// the stored copy. It reports whether the workspace was replaced.
func (s *Session) Reload(p *board.Project) bool {
	h, err := hash(p)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if h == s.hash {
		return false
	}
	if s.ws.Revision() != s.saved {
		s.logger.Warn("project changed on disk, discarding unsaved edits", "id", p.ID)
	}
	s.saved = s.ws.Reload(p)
	s.hash = h
	s.logger.Info("project reloaded", "id", p.ID, "boards", len(p.Boards))
	return true
}

// Autosave calls Flush on the cron schedule spec (standard five fields or
// descriptors such as "@every 30s"). The returned stop function halts the
// schedule, waits for a running flush and flushes one last time.
func (s *Session) Autosave(ctx context.Context, spec string) (stop func(), err error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if _, err := s.Flush(ctx); err != nil {
			s.logger.Warn("autosave failed", "err", err)
		}
	}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid autosave schedule %q", spec)
	}
	c.Start()
	return func() {
		<-c.Stop().Done()
		if _, err := s.Flush(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("final save failed", "err", err)
		}
	}, nil
}

func hash(p *board.Project) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize project")
	}
	return cache.Hash(data), nil
}
