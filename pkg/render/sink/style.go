package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/auteur/pkg/layout"
)

// Transition applied to boards that are not under interaction.
const restingTransition = "left 0.2s ease, top 0.2s ease, width 0.2s ease, height 0.2s ease"

// boardStyle returns the inline CSS for a placed board.
func boardStyle(p layout.Placed, positioned bool) string {
	transition := restingTransition
	if !p.Animate {
		transition = "none"
	}
	s := fmt.Sprintf("z-index: %d; transition: %s;", p.Z, transition)
	if positioned {
		s += fmt.Sprintf(" position: absolute; left: %.0fpx; top: %.0fpx; width: %.0fpx; height: %.0fpx;",
			p.Rect.Left, p.Rect.Top, p.Rect.Width(), p.Rect.Height())
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Option configures the SVG and HTML sinks.
type Option func(*renderer)

type renderer struct {
	frames map[string]string
	title  string
}

// WithFrames supplies rendered board HTML keyed by board id.
func WithFrames(frames map[string]string) Option { return func(r *renderer) { r.frames = frames } }

// WithTitle sets the document title.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

func newRenderer(opts ...Option) renderer {
	r := renderer{title: "Workspace"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
