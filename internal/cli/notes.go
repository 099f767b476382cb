package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/imageref"
	"github.com/matzehuels/auteur/pkg/workspace"
)

// notesCommand creates the note management command for note-collection boards.
func (c *CLI) notesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "Add and remove notes on idea and mood boards",
	}

	cmd.AddCommand(c.notesListCommand())
	cmd.AddCommand(c.notesAddCommand())
	cmd.AddCommand(c.notesImageCommand())
	cmd.AddCommand(c.notesRemoveCommand())

	return cmd
}

func (c *CLI) notesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list BOARD",
		Aliases: []string{"ls"},
		Short:   "List the notes of a board",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, h, err := c.openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer h.Close()

			b, ok := ws.Board(args[0])
			if !ok {
				return boardNotFound(args[0])
			}
			if len(b.Notes) == 0 {
				printInfo("%s has no notes", b.Title)
				return nil
			}
			fmt.Println(StyleTitle.Render(b.Title))
			for _, n := range b.Notes {
				printKeyValue(n.ID[:min(8, len(n.ID))], noteSummary(n))
			}
			return nil
		},
	}
}

// noteSummary is a one-line description of a note.
func noteSummary(n board.Note) string {
	if n.IsImage() {
		s := "[image]"
		if n.Caption != "" {
			s += " " + n.Caption
		}
		return s
	}
	return n.Text
}

func (c *CLI) notesAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add BOARD TEXT",
		Short: "Add a text note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				if _, ok := ws.Board(args[0]); !ok {
					return boardNotFound(args[0])
				}
				n, ok := ws.AddTextNote(args[0], args[1])
				if !ok {
					return fmt.Errorf("board %s does not take notes", args[0])
				}
				printSuccess("Added note %s", StyleDim.Render(n.ID))
				return nil
			})
		},
	}
}

func (c *CLI) notesImageCommand() *cobra.Command {
	var caption string
	var noCache bool
	cmd := &cobra.Command{
		Use:   "image BOARD FILE|URL",
		Short: "Attach an image note from a local file or an http(s) URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cch, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer cch.Close()

			fetcher := imageref.NewFetcher(imageref.WithCache(cch, c.keyer()))
			spinner := newSpinnerWithContext(ctx, "Loading image...")
			spinner.Start()
			ref, err := fetcher.Resolve(ctx, args[1])
			spinner.Stop()
			if err != nil {
				return err
			}

			return c.edit(ctx, func(ws *workspace.Workspace) error {
				n, err := ws.AttachImage(args[0], ref, caption)
				if err != nil {
					return err
				}
				printSuccess("Attached image %s", StyleDim.Render(n.ID))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "image caption")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not use cached downloads")
	return cmd
}

func (c *CLI) notesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove BOARD NOTE",
		Aliases: []string{"rm"},
		Short:   "Remove a note",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ws *workspace.Workspace) error {
				if !ws.RemoveNote(args[0], args[1]) {
					return fmt.Errorf("no note %s on board %s", args[1], args[0])
				}
				printSuccess("Removed note %s", args[1])
				return nil
			})
		},
	}
}
