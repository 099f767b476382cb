package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/auteur/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	formats    string
	output     string
	scale      float64
	fullscreen string
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command for writing canvas artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the canvas to SVG, HTML, JSON, DOT, PNG or PDF",
		Long: `Render lays out the project's boards on the grid and writes one file per
requested format. The "overview" format is a Graphviz drawing of the grid;
png and pdf need rsvg-convert on PATH.`,
		Example: `  auteur render
  auteur render -f svg,html,json -o out/storyboard
  auteur render -f png --scale 3 --fullscreen 3f1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output formats, comma separated ("+strings.Join(pipeline.Formats, ", ")+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path without extension (default: project name)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.fullscreen, "fullscreen", "", "render this board expanded over the canvas")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return pipeline.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	ws, h, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}
	defer h.Close()

	if opts.fullscreen != "" && !ws.SetFullscreen(opts.fullscreen) {
		return boardNotFound(opts.fullscreen)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(formats, ", ")+"...")
	spinner.Start()
	result, err := runner.Render(ctx, ws, pipeline.Options{
		Formats: formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d formats", len(formats)))

	base := opts.output
	if base == "" {
		base = outputBase(ws.Snapshot().Name)
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	printSuccess("Rendered %s", StyleValue.Render(ws.Snapshot().Name))
	for _, f := range formats {
		path := base + "." + pipeline.Ext(f)
		if f == pipeline.FormatOverview {
			path = base + ".overview." + pipeline.Ext(f)
		}
		if err := os.WriteFile(path, result.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.Boards, len(result.CacheInfo.Hits), result.CacheInfo.AllHit(formats))
	return nil
}

// outputBase derives a file name from a project name.
func outputBase(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '-'
		}
		return -1
	}, name)
	if name == "" {
		return "canvas"
	}
	return name
}
