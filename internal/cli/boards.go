package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/plugin"
	"github.com/matzehuels/auteur/pkg/workspace"
)

// boardsCommand creates the board management command.
func (c *CLI) boardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boards",
		Aliases: []string{"board"},
		Short:   "List and edit the boards of a project",
	}

	cmd.AddCommand(c.boardsListCommand())
	cmd.AddCommand(c.boardsAddCommand())
	cmd.AddCommand(c.boardsRemoveCommand())
	cmd.AddCommand(c.boardsMoveCommand())
	cmd.AddCommand(c.boardsResizeCommand())
	cmd.AddCommand(c.boardsTitleCommand())

	return cmd
}

func (c *CLI) boardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List boards with their grid placement",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, h, err := c.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer h.Close()

			p := ws.Snapshot()
			fmt.Println(StyleTitle.Render(p.Name))
			fmt.Println(boardTable(ws.Registry(), p.Boards))
			return nil
		},
	}
}

// boardTable renders boards as a table. Boards whose type has no plugin
// are shown dimmed.
func boardTable(reg *plugin.Registry, boards board.Boards) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(boards))
	for _, b := range boards {
		rows = append(rows, []string{
			b.ID, b.Title, b.Type,
			fmt.Sprintf("%d,%d", b.X, b.Y),
			fmt.Sprintf("%dx%d", b.W, b.H),
			strconv.Itoa(len(b.Notes)),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Title", "Type", "Pos", "Size", "Notes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(boards) {
				return lipgloss.NewStyle()
			}
			if _, ok := reg.Lookup(boards[row].Type); !ok {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

func (c *CLI) boardsAddCommand() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "add TYPE",
		Short: "Add a board of a registered kind at the next free grid slot",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return menuTypes(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				b, err := ws.AddBoard(args[0])
				if err != nil {
					return err
				}
				if title != "" {
					if err := errors.ValidateTitle(title); err != nil {
						return err
					}
					ws.UpdateBoard(b.ID, board.TitlePatch(title))
					b.Title = title
				}
				printSuccess("Added %s at column %d, row %d", StyleValue.Render(b.Title), b.X, b.Y)
				printDetail("id: %s", b.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "board title (default: the kind's title)")
	return cmd
}

func (c *CLI) boardsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a board",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				if !ws.RemoveBoard(args[0]) {
					return boardNotFound(args[0])
				}
				printSuccess("Removed board %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) boardsMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move ID X Y",
		Short: "Move a board to a grid column and row",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parseCells(args[1], args[2])
			if err != nil {
				return err
			}
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				if !ws.UpdateBoard(args[0], board.MovePatch(x, y)) {
					return boardNotFound(args[0])
				}
				b, _ := ws.Board(args[0])
				printSuccess("Moved %s to column %d, row %d", StyleValue.Render(b.Title), b.X, b.Y)
				return nil
			})
		},
	}
}

func (c *CLI) boardsResizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resize ID W H",
		Short: "Resize a board in grid cells (clamped to the grid limits)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parseCells(args[1], args[2])
			if err != nil {
				return err
			}
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				if !ws.UpdateBoard(args[0], board.ResizePatch(w, h)) {
					return boardNotFound(args[0])
				}
				b, _ := ws.Board(args[0])
				printSuccess("Resized %s to %dx%d", StyleValue.Render(b.Title), b.W, b.H)
				return nil
			})
		},
	}
}

func (c *CLI) boardsTitleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "title ID TITLE",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateTitle(args[1]); err != nil {
				return err
			}
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				if !ws.UpdateBoard(args[0], board.TitlePatch(args[1])) {
					return boardNotFound(args[0])
				}
				printSuccess("Renamed board to %s", StyleValue.Render(args[1]))
				return nil
			})
		},
	}
}

func parseCells(a, b string) (int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "not a number: %q", a)
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "not a number: %q", b)
	}
	return x, y, nil
}

func boardNotFound(id string) error {
	return errors.New(errors.ErrCodeBoardNotFound, "no board with id %s", id)
}
