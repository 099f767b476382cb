package render

import (
	"bytes"
	"context"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Frame is the rendered chrome and body of one board.
type Frame struct {
	BoardID string
	HTML    string
	Outcome Outcome
}

// Input is everything needed to render a board collection.
type Input struct {
	Boards     []board.Board
	Shared     board.Shared
	Mutations  plugin.Mutations
	Images     map[string]plugin.ImageState
	Fullscreen string // id of the board shown fullscreen, if any
}

// Frames renders every board independently. A failing board never affects
// its siblings. The result is keyed by board id.
func (d *Dispatcher) Frames(ctx context.Context, in Input) map[string]Frame {
	mut := in.Mutations
	if mut == nil {
		mut = plugin.NopMutations{}
	}
	out := make(map[string]Frame, len(in.Boards))
	for _, b := range in.Boards {
		var buf bytes.Buffer
		p := plugin.Props{Board: b, Shared: in.Shared, Mutations: mut, Image: in.Images[b.ID]}
		o := d.RenderFrame(ctx, &buf, p, b.ID == in.Fullscreen)
		out[b.ID] = Frame{BoardID: b.ID, HTML: buf.String(), Outcome: o}
	}
	return out
}

// HTMLByID flattens frames to their markup.
func HTMLByID(frames map[string]Frame) map[string]string {
	out := make(map[string]string, len(frames))
	for id, f := range frames {
		out[id] = f.HTML
	}
	return out
}
