package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/layout"
)

const backendFile = "file"

// projectGlob matches every project file in a store directory.
const projectGlob = "*.{json,yaml,yml}"

// FileStore keeps one file per project in a directory. New projects are
// written in the store's format; existing files keep their own encoding.
type FileStore struct {
	mu     sync.RWMutex
	dir    string
	format Format
	opts   options
}

// DefaultDir returns the default project directory (~/.config/auteur/projects).
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "auteur", "projects"), nil
}

// NewFileStore creates a file store rooted at dir, creating the directory if
// needed. An empty dir selects [DefaultDir].
func NewFileStore(dir string, format Format, opts ...Option) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "resolve project directory")
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create project directory")
	}
	if format == "" {
		format = FormatJSON
	}
	return &FileStore{dir: dir, format: format, opts: newOptions(opts)}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file a project is (or would be) stored in.
func (s *FileStore) Path(id string) string {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		p := filepath.Join(s.dir, id+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(s.dir, id+s.format.Ext())
}

// Load reads a project.
func (s *FileStore) Load(ctx context.Context, id string) (p *board.Project, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, backendFile, id, start, err) }()

	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err = ReadFile(s.Path(id), s.opts.grid)
	if errors.Is(err, errors.ErrCodeProjectNotFound) {
		return nil, notFound(id)
	}
	return p, err
}

// Save writes a project atomically.
func (s *FileStore) Save(ctx context.Context, p *board.Project) (err error) {
	if err := checkSave(p); err != nil {
		return err
	}
	start := time.Now()
	defer func() { observeSave(ctx, backendFile, p.ID, start, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteFile(s.Path(p.ID), p)
}

// Delete removes every file stored for a project.
func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		if err := os.Remove(filepath.Join(s.dir, id+ext)); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeStorage, err, "delete project %s", id)
		}
	}
	return nil
}

// List returns the ids of all project files.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches, err := doublestar.Glob(os.DirFS(s.dir), projectGlob)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list projects")
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(m, filepath.Ext(m)))
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

// ReadFile loads a single project file, choosing the decoder by extension.
// Placements are clamped into g.
func ReadFile(path string, g layout.Grid) (*board.Project, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeProjectNotFound, ErrNotFound, "no project at %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read %s", path)
	}
	p, err := Unmarshal(data, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	return normalize(p, g), nil
}

// WriteFile saves a project to path, choosing the encoder by extension.
// The file is written to a temporary sibling first and renamed into place.
func WriteFile(path string, p *board.Project) error {
	data, err := Marshal(p, FormatFromPath(path))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "encode project %s", p.ID)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".auteur-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	return nil
}
