package workspace

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/generate"
	"github.com/matzehuels/auteur/pkg/interaction"
	"github.com/matzehuels/auteur/pkg/kinds/builtin"
	"github.com/matzehuels/auteur/pkg/layout"
	"github.com/matzehuels/auteur/pkg/plugin"
	"github.com/matzehuels/auteur/pkg/render"
)

// Workspace is the state of one open project.
type Workspace struct {
	mu sync.Mutex

	project    *board.Project
	registry   *plugin.Registry
	dispatcher *render.Dispatcher
	grid       layout.Grid
	engine     *interaction.Engine
	generator  generate.Generator
	logger     *log.Logger

	images     map[string]plugin.ImageState
	fullscreen string
	upload     string // board awaiting an image upload
	gearEditor bool
	generating bool
	revision   uint64
}

// Option configures a [Workspace].
type Option func(*Workspace)

// WithRegistry sets the plugin registry. The default is the process-wide
// registry with the built-in kinds installed.
func WithRegistry(r *plugin.Registry) Option {
	return func(w *Workspace) { w.registry = r }
}

// WithGrid overrides the layout grid.
func WithGrid(g layout.Grid) Option {
	return func(w *Workspace) { w.grid = g }
}

// WithGenerator sets the AI collaborator used by [Workspace.Generate] and
// [Workspace.GenerateImage].
func WithGenerator(g generate.Generator) Option {
	return func(w *Workspace) { w.generator = g }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Workspace) { w.logger = l }
}

// New opens p. The workspace takes a private copy; later changes to p are
// not observed.
func New(p *board.Project, opts ...Option) *Workspace {
	w := &Workspace{
		project: p.Clone(),
		grid:    layout.DefaultGrid(),
		images:  make(map[string]plugin.ImageState),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.registry == nil {
		w.registry = builtin.Default()
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	w.dispatcher = render.NewDispatcher(w.registry, render.WithLogger(w.logger))
	w.engine = interaction.New(w.grid, target{w}, interaction.WithHooks(gestureHooks{}))
	return w
}

// Registry returns the plugin registry.
func (w *Workspace) Registry() *plugin.Registry { return w.registry }

// Grid returns the layout grid.
func (w *Workspace) Grid() layout.Grid { return w.grid }

// Snapshot returns a deep copy of the project.
func (w *Workspace) Snapshot() *board.Project {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.project.Clone()
}

// Revision increases with every successful change. Callers persisting the
// project compare it to decide whether a save is due.
func (w *Workspace) Revision() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.revision
}

// Board returns the board with the given id.
func (w *Workspace) Board(id string) (board.Board, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.project.Boards.Find(id)
	return b.Clone(), ok
}

// Boards returns a copy of the board collection.
func (w *Workspace) Boards() board.Boards {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.project.Clone().Boards
}

// Rename changes the project name.
func (w *Workspace) Rename(name string) error {
	if err := errors.ValidateTitle(name); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.project.Name = name
	w.revision++
	return nil
}

// UpdateSettings replaces the project settings after validating them.
func (w *Workspace) UpdateSettings(s board.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.project.Settings = s
	w.revision++
	return nil
}

// SetSetting changes one setting by its serialized field name.
func (w *Workspace) SetSetting(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, err := w.project.Settings.With(field, value)
	if err != nil {
		return err
	}
	w.project.Settings = s
	w.revision++
	return nil
}

// SetGear replaces the equipment inventory shared by all boards.
func (w *Workspace) SetGear(g board.Gear) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.project.Gear = board.Gear{Items: append([]board.GearItem(nil), g.Items...)}
	w.gearEditor = false
	w.revision++
}

// SetFullscreen selects the board shown in the expanded view. An empty id
// closes it. It reports false for an unknown board.
func (w *Workspace) SetFullscreen(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id == "" {
		w.fullscreen = ""
		return true
	}
	if _, ok := w.project.Boards.Find(id); !ok {
		return false
	}
	w.fullscreen = id
	return true
}

// Fullscreen returns the id of the board in the expanded view.
func (w *Workspace) Fullscreen() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen, w.fullscreen != ""
}

// setBoards commits a new board collection. Callers hold mu.
func (w *Workspace) setBoards(bs board.Boards) {
	w.project.Boards = bs
	w.revision++
}

// Reload replaces the project with p, typically after the stored copy was
// edited elsewhere. An active gesture is cancelled and transient state of
// boards that no longer exist is dropped. It returns the new revision.
func (w *Workspace) Reload(p *board.Project) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.engine.PointerLeave()
	w.project = p.Clone()
	for id := range w.images {
		if _, ok := w.project.Boards.Find(id); !ok {
			delete(w.images, id)
		}
	}
	if _, ok := w.project.Boards.Find(w.fullscreen); !ok {
		w.fullscreen = ""
	}
	if _, ok := w.project.Boards.Find(w.upload); !ok {
		w.upload = ""
	}
	w.revision++
	return w.revision
}
