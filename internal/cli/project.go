package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/store"
	"github.com/matzehuels/auteur/pkg/workspace"
)

// projectHandle locates one project: a file on disk, or an id in the
// configured store.
type projectHandle struct {
	ref   string
	store store.Store // nil for a project file
	c     *CLI
}

// isProjectFile reports whether ref names a file rather than a store id.
func isProjectFile(ref string) bool {
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return strings.ContainsRune(ref, filepath.Separator)
}

func (c *CLI) openHandle(ctx context.Context) (*projectHandle, error) {
	h := &projectHandle{ref: c.project, c: c}
	if isProjectFile(c.project) {
		return h, nil
	}
	s, err := store.Open(ctx, c.config().Store, store.WithGrid(c.config().Grid), store.WithLogger(c.Logger))
	if err != nil {
		return nil, err
	}
	h.store = s
	return h, nil
}

func (h *projectHandle) Load(ctx context.Context) (*board.Project, error) {
	if h.store != nil {
		return h.store.Load(ctx, h.ref)
	}
	return store.ReadFile(h.ref, h.c.config().Grid)
}

func (h *projectHandle) Save(ctx context.Context, p *board.Project) error {
	if h.store != nil {
		return h.store.Save(ctx, p)
	}
	return store.WriteFile(h.ref, p)
}

func (h *projectHandle) Close() error {
	if h.store != nil {
		return h.store.Close()
	}
	return nil
}

func (h *projectHandle) String() string { return h.ref }

// workspaceOptions are the options every command opens a workspace with.
func (c *CLI) workspaceOptions() []workspace.Option {
	return []workspace.Option{
		workspace.WithGrid(c.config().Grid),
		workspace.WithLogger(c.Logger),
	}
}

// openWorkspace loads the selected project. The caller closes the handle.
func (c *CLI) openWorkspace(ctx context.Context, opts ...workspace.Option) (*workspace.Workspace, *projectHandle, error) {
	h, err := c.openHandle(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := h.Load(ctx)
	if err != nil {
		h.Close()
		if errors.IsNotFound(err) {
			return nil, nil, fmt.Errorf("%w (create one with: %s init)", err, appName)
		}
		return nil, nil, err
	}
	ws := workspace.New(p, append(c.workspaceOptions(), opts...)...)
	c.Logger.Debug("opened project", "ref", h, "boards", len(p.Boards))
	return ws, h, nil
}

// edit opens the project, applies fn and saves the result if fn changed
// anything.
func (c *CLI) edit(ctx context.Context, fn func(ws *workspace.Workspace) error, opts ...workspace.Option) error {
	ws, h, err := c.openWorkspace(ctx, opts...)
	if err != nil {
		return err
	}
	defer h.Close()

	before := ws.Revision()
	if err := fn(ws); err != nil {
		return err
	}
	if ws.Revision() == before {
		return nil
	}
	if err := h.Save(ctx, ws.Snapshot()); err != nil {
		return err
	}
	c.Logger.Debug("saved project", "ref", h, "revision", ws.Revision())
	return nil
}

// initCommand creates the "init" command.
func (c *CLI) initCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a new project with an empty idea board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "Untitled Project"
			if len(args) == 1 {
				name = args[0]
			}
			if err := errors.ValidateTitle(name); err != nil {
				return err
			}
			ctx := cmd.Context()
			h, err := c.openHandle(ctx)
			if err != nil {
				return err
			}
			defer h.Close()

			if !force {
				if _, err := h.Load(ctx); err == nil {
					return fmt.Errorf("project %s already exists (use --force to overwrite)", h)
				}
			}
			p := board.NewProject(name)
			if h.store != nil {
				p.ID = h.ref
			}
			if err := h.Save(ctx, p); err != nil {
				return err
			}
			printSuccess("Created %s", StyleValue.Render(name))
			printFile(h.String())
			printNextStep("Add a board", appName+" boards add DOCUMENT_TREATMENT")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing project")
	return cmd
}

// projectsCommand lists the projects in the configured store.
func (c *CLI) projectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects in the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := store.Open(ctx, c.config().Store, store.WithGrid(c.config().Grid), store.WithLogger(c.Logger))
			if err != nil {
				return err
			}
			defer s.Close()

			ids, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				printInfo("No projects in the %s store", c.config().Store.Backend)
				return nil
			}
			for _, id := range ids {
				p, err := s.Load(ctx, id)
				if err != nil {
					printWarning("%s: %s", id, errors.UserMessage(err))
					continue
				}
				printKeyValue(id, fmt.Sprintf("%s %s", p.Name, StyleDim.Render(fmt.Sprintf("(%d boards)", len(p.Boards)))))
			}
			return nil
		},
	}
}

// fileExists reports whether path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
