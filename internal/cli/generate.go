package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/generate"
	"github.com/matzehuels/auteur/pkg/workspace"
)

// generateCommand folds a generator reply into the project's generated
// boards. Auteur does not talk to a model itself: the reply comes from a
// file or stdin, and --request prints what a model would be sent.
func (c *CLI) generateCommand() *cobra.Command {
	var from string
	var request bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Apply generated script, style and cinematography sections",
		Long: `Generate reads a generator reply in markdown and turns its SCRIPT, VISUAL STYLE
and CINEMATOGRAPHY & GEAR sections (separated by "---" lines) into generated
boards. Existing generated boards with the same title are updated in place.

With --request, it prints the JSON request (notes, style, gear and settings)
that a model would receive, so it can be piped into any tool.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if request {
				return c.printRequest(ctx, cmd.OutOrStdout())
			}
			if from == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--from is required (a file, or - for stdin)")
			}
			gen := generate.Funcs{
				ScriptFunc: func(context.Context, generate.Request) (string, error) {
					return readReply(from, cmd.InOrStdin())
				},
			}
			return c.edit(ctx, func(ws *workspace.Workspace) error {
				sections, err := ws.Generate(ctx)
				if err != nil {
					return err
				}
				if sections.Empty() {
					printWarning("No SCRIPT, VISUAL STYLE or CINEMATOGRAPHY & GEAR section found")
					return nil
				}
				for _, s := range []struct{ title, body string }{
					{generate.TitleScript, sections.Script},
					{generate.TitleVisualStyle, sections.VisualStyle},
					{generate.TitleCinematography, sections.Cinematography},
				} {
					if s.body != "" {
						printSuccess("Updated %s", StyleValue.Render(s.title))
					}
				}
				return nil
			}, workspace.WithGenerator(gen))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "generator reply file (- for stdin)")
	cmd.Flags().BoolVar(&request, "request", false, "print the generation request as JSON instead")
	return cmd
}

func readReply(from string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if from == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(from)
	}
	if err != nil {
		return "", fmt.Errorf("read generator reply: %w", err)
	}
	return string(data), nil
}

func (c *CLI) printRequest(ctx context.Context, w io.Writer) error {
	ws, h, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(generate.NewRequest(ws.Snapshot(), ws.Registry()))
}
