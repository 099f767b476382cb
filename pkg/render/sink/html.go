package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/auteur/pkg/layout"
)

const pageCSS = `
    body { margin: 0; background: #f4f4f5; font-family: system-ui, sans-serif; }
    .canvas { position: relative; margin: 24px; }
    .board-slot > .board { box-sizing: border-box; height: 100%; background: #fff; border: 1px solid #d4d4d8; border-radius: 8px; overflow: auto; }
    .board-slot.active > .board { border-color: #6366f1; box-shadow: 0 8px 24px rgba(0,0,0,.15); }
    .board header { display: flex; align-items: center; gap: 8px; padding: 8px 12px; border-bottom: 1px solid #e4e4e7; }
    .board header h2 { font-size: 14px; margin: 0; flex: 1; }
    .board .body { padding: 12px; font-size: 13px; }
    .board footer { padding: 8px 12px; border-top: 1px solid #e4e4e7; }
    .board-error, .empty { color: #71717a; font-size: 12px; }
    .board-error { color: #b91c1c; }`

// RenderHTML produces a standalone page with every board absolutely
// positioned at its pixel rectangle inside a canvas of the layout's size.
func RenderHTML(l layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n<style>%s\n</style>\n</head>\n<body>\n", escapeXML(r.title), pageCSS)
	fmt.Fprintf(&buf, `<main class="canvas" style="width: %.0fpx; height: %.0fpx;">`+"\n", l.Width, l.Height)

	for _, p := range l.Boards {
		class := "board-slot"
		if !p.Animate {
			class += " active"
		}
		fmt.Fprintf(&buf, `<div class="%s" data-board="%s" data-cell="%d,%d,%d,%d" style="%s">`,
			class, escapeXML(p.Board.ID), p.Board.X, p.Board.Y, p.Board.W, p.Board.H, boardStyle(p, true))
		if frame, ok := r.frames[p.Board.ID]; ok {
			buf.WriteString(frame)
		} else {
			fmt.Fprintf(&buf, `<section class="board"><header><h2>%s</h2></header></section>`, escapeXML(p.Board.Title))
		}
		buf.WriteString("</div>\n")
	}

	buf.WriteString("</main>\n</body>\n</html>\n")
	return buf.Bytes()
}
