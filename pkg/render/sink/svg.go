package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/auteur/pkg/layout"
)

const svgCSS = `
    .board rect.frame { fill: #ffffff; stroke: #d4d4d8; stroke-width: 1; }
    .board.active rect.frame { stroke: #6366f1; stroke-width: 2; }
    .board text.title { font-family: system-ui, sans-serif; font-size: 14px; font-weight: 600; fill: #18181b; }
    .board .body { font-family: system-ui, sans-serif; font-size: 13px; overflow: hidden; height: 100%; }`

// RenderSVG draws the canvas. Boards are painted in layout paint order so
// the active board ends up on top. Each board is a group holding a frame
// rectangle, its title and a foreignObject with the board HTML; viewers that
// ignore foreignObject still show the titled frames.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)

	for _, p := range l.PaintOrder() {
		renderSVGBoard(&buf, p, r.frames[p.Board.ID])
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGBoard(buf *bytes.Buffer, p layout.Placed, frame string) {
	class := "board"
	if !p.Animate {
		class += " active"
	}
	id := escapeXML(p.Board.ID)
	fmt.Fprintf(buf, `  <g id="board-%s" class="%s" data-type="%s" transform="translate(%.1f,%.1f)" style="%s">`+"\n",
		id, class, escapeXML(p.Board.Type), p.Rect.Left, p.Rect.Top, boardStyle(p, false))
	fmt.Fprintf(buf, `    <rect class="frame" width="%.1f" height="%.1f" rx="8"/>`+"\n", p.Rect.Width(), p.Rect.Height())
	if frame == "" {
		fmt.Fprintf(buf, `    <text class="title" x="12" y="24">%s</text>`+"\n", escapeXML(p.Board.Title))
	} else {
		fmt.Fprintf(buf, `    <foreignObject width="%.1f" height="%.1f">`+"\n", p.Rect.Width(), p.Rect.Height())
		fmt.Fprintf(buf, `      <div xmlns="http://www.w3.org/1999/xhtml" class="body">%s</div>`+"\n", frame)
		buf.WriteString("    </foreignObject>\n")
	}
	buf.WriteString("  </g>\n")
}
