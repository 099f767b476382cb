package store

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
)

// watchDebounce collapses the burst of events produced by one save.
const watchDebounce = 50 * time.Millisecond

// ChangeFunc receives a project reloaded after an external edit, or the
// error that prevented reloading it.
type ChangeFunc func(p *board.Project, err error)

// Watch calls fn whenever the file of project id changes on disk. It blocks
// until ctx is cancelled and returns nil in that case.
//
// The directory is watched rather than the file so that atomic
// replace-by-rename saves (including this store's own) are seen.
func (s *FileStore) Watch(ctx context.Context, id string, fn ChangeFunc) error {
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "watch %s", s.dir)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	reload := func() {
		if ctx.Err() != nil {
			return
		}
		fn(s.Load(ctx, id))
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.isProjectFile(ev.Name, id) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			s.opts.logger.Debug("project file changed", "path", ev.Name, "op", ev.Op.String())
			mu.Lock()
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, reload)
			} else {
				timer.Reset(watchDebounce)
			}
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.opts.logger.Error("watch error", "err", err)
		}
	}
}

func (s *FileStore) isProjectFile(name, id string) bool {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if strings.TrimSuffix(base, ext) != id {
		return false
	}
	switch strings.ToLower(ext) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
