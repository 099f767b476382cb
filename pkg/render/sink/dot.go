package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/layout"
)

// Points per inch in Graphviz coordinates.
const dotDPI = 72.0

// DOTOptions configures the overview map.
type DOTOptions struct {
	// Scale shrinks pixel coordinates; 0 means 0.25.
	Scale float64
	// Detailed adds type and cell placement to node labels.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT. Every board becomes a box pinned at
// its canvas position (neato with pos="x,y!"), sized to its rectangle. Boards
// that overlap are joined by a dashed edge so collisions stand out.
func ToDOT(l layout.Layout, opts DOTOptions) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 0.25
	}

	var buf bytes.Buffer
	buf.WriteString("graph Workspace {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=10, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, p := range l.Boards {
		// Graphviz Y grows upwards; flip around the canvas height.
		cx := p.Rect.CenterX() * scale
		cy := (l.Height - p.Rect.CenterY()) * scale
		w := p.Rect.Width() * scale / dotDPI
		h := p.Rect.Height() * scale / dotDPI

		label := p.Board.Title
		if opts.Detailed {
			label += fmt.Sprintf("\n%s\n(%d,%d) %dx%d", p.Board.Type, p.Board.X, p.Board.Y, p.Board.W, p.Board.H)
		}
		attrs := fmt.Sprintf("label=%q, pos=\"%s,%s!\", width=%s, height=%s",
			label, fmtFloat(cx), fmtFloat(cy), fmtFloat(w), fmtFloat(h))
		if !p.Animate {
			attrs += ", penwidth=2, color=\"#6366f1\""
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.Board.ID, attrs)
	}

	overlaps := l.Overlaps()
	if len(overlaps) > 0 {
		buf.WriteString("\n")
	}
	for _, o := range overlaps {
		fmt.Fprintf(&buf, "  %q -- %q [style=dashed, color=red];\n", o.A, o.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's fixed pt dimensions with a plain
// viewBox so the overview scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, h := string(match[3]), string(match[4])
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
