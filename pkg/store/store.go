package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/layout"
	"github.com/matzehuels/auteur/pkg/observability"
)

// ErrNotFound is the cause of every error returned for a missing project.
var ErrNotFound = stderrors.New("project not found")

// Store is a project persistence backend.
type Store interface {
	// Load returns the project with the given id. A missing project yields
	// an error wrapping ErrNotFound with code PROJECT_NOT_FOUND.
	Load(ctx context.Context, id string) (*board.Project, error)

	// Save writes p, replacing any previous version.
	Save(ctx context.Context, p *board.Project) error

	// Delete removes a project. Deleting a missing project is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored projects in ascending order.
	List(ctx context.Context) ([]string, error)

	Close() error
}

// Option configures a backend.
type Option func(*options)

type options struct {
	grid   layout.Grid
	logger *log.Logger
}

// WithGrid sets the grid used to clamp placements on load.
func WithGrid(g layout.Grid) Option {
	return func(o *options) { o.grid = g }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{grid: layout.DefaultGrid()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	return o
}

func notFound(id string) error {
	return errors.Wrap(errors.ErrCodeProjectNotFound, ErrNotFound, "project %s", id)
}

// normalize repairs a decoded project in place. Placements are clamped into
// the grid, nil slices become empty ones and zero settings get defaults.
func normalize(p *board.Project, g layout.Grid) *board.Project {
	if p.Boards == nil {
		p.Boards = board.Boards{}
	}
	for i, b := range p.Boards {
		p.Boards[i] = g.Clamp(b)
	}
	if p.Settings == (board.Settings{}) {
		p.Settings = board.DefaultSettings()
	}
	return p
}

func checkSave(p *board.Project) error {
	if p == nil {
		return errors.New(errors.ErrCodeInvalidInput, "project is nil")
	}
	return errors.ValidateID(p.ID)
}

// observeLoad and observeSave report a finished operation to the store hooks.
func observeLoad(ctx context.Context, backend, id string, start time.Time, err error) {
	observability.Store().OnLoad(ctx, backend, id, time.Since(start), err)
}

func observeSave(ctx context.Context, backend, id string, start time.Time, err error) {
	observability.Store().OnSave(ctx, backend, id, time.Since(start), err)
}
