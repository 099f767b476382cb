// Package pipeline renders a workspace into export artifacts.
//
// This package is the single entry point the CLI and the HTTP server use to
// turn an open project into files: it validates the requested formats,
// renders them concurrently and caches the results keyed by the content of
// the project snapshot, so an unchanged project is never rendered twice.
//
// # Formats
//
//   - svg: the canvas with every board's plugin output embedded
//   - html: a standalone page of the canvas
//   - json: board geometry only
//   - dot: the canvas as a Graphviz graph
//   - overview: the dot graph laid out by Graphviz, as SVG
//   - png, pdf: the svg converted with rsvg-convert
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, ws, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/auteur/pkg/cache"
	"github.com/matzehuels/auteur/pkg/errors"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatOverview = "overview"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
)

// Formats lists every supported output format in display order.
var Formats = []string{FormatSVG, FormatHTML, FormatJSON, FormatDOT, FormatOverview, FormatPNG, FormatPDF}

// extensions maps formats to file extensions where they differ from the name.
var extensions = map[string]string{
	FormatOverview: "svg",
}

// Ext returns the file extension for a format, without the dot.
func Ext(format string) string {
	if ext, ok := extensions[format]; ok {
		return ext
	}
	return format
}

// ValidateFormat checks that a format is supported. Names are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures one render run.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // bypass cached artifacts

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the formats and fills in defaults.
// Duplicate formats are removed.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	seen := make(map[string]bool, len(o.Formats))
	o.Formats = slices.DeleteFunc(slices.Clone(o.Formats), func(f string) bool {
		dup := seen[f]
		seen[f] = true
		return dup
	})
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format, fullscreen string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Fullscreen: fullscreen}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
