package workspace

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/layout"
	"github.com/matzehuels/auteur/pkg/observability"
	"github.com/matzehuels/auteur/pkg/plugin"
	"github.com/matzehuels/auteur/pkg/render"
	"github.com/matzehuels/auteur/pkg/render/sink"
)

// Output formats produced by [Workspace.Render].
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Formats lists the formats [Workspace.Render] accepts.
var Formats = []string{FormatSVG, FormatHTML, FormatJSON, FormatDOT}

// Layout computes the canvas geometry, raising the board under interaction.
func (w *Workspace) Layout() layout.Layout {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.layout()
}

func (w *Workspace) layout() layout.Layout {
	active, _ := w.engine.Active()
	return w.grid.Compute(w.project.Clone().Boards, active)
}

// Frames renders every board through its plugin. Plugins receive the
// workspace as their mutation target.
func (w *Workspace) Frames(ctx context.Context) map[string]render.Frame {
	in := w.renderInput()
	return w.dispatcher.Frames(ctx, in)
}

// RenderBoard renders one board's frame. It reports false for an unknown id.
func (w *Workspace) RenderBoard(ctx context.Context, id string, fullscreen bool) (render.Frame, bool) {
	in := w.renderInput()
	b, ok := board.Boards(in.Boards).Find(id)
	if !ok {
		return render.Frame{}, false
	}
	var buf strings.Builder
	p := plugin.Props{Board: b, Shared: in.Shared, Mutations: w, Image: in.Images[id]}
	o := w.dispatcher.RenderFrame(ctx, &buf, p, fullscreen)
	return render.Frame{BoardID: id, HTML: buf.String(), Outcome: o}, true
}

func (w *Workspace) renderInput() render.Input {
	w.mu.Lock()
	defer w.mu.Unlock()
	images := make(map[string]plugin.ImageState, len(w.images))
	for id, st := range w.images {
		images[id] = st
	}
	p := w.project.Clone()
	return render.Input{
		Boards:     p.Boards,
		Shared:     p.Shared(),
		Mutations:  w,
		Images:     images,
		Fullscreen: w.fullscreen,
	}
}

// Render produces the whole canvas in one of [Formats]. Plugins run without
// the workspace lock held.
func (w *Workspace) Render(ctx context.Context, format string) (data []byte, err error) {
	formats := []string{format}
	observability.Render().OnRenderStart(ctx, formats)
	start := time.Now()
	defer func() {
		observability.Render().OnRenderComplete(ctx, formats, time.Since(start), err)
	}()

	w.mu.Lock()
	l := w.layout()
	name := w.project.Name
	w.mu.Unlock()

	switch format {
	case FormatSVG:
		frames := render.HTMLByID(w.Frames(ctx))
		return sink.RenderSVG(l, sink.WithFrames(frames), sink.WithTitle(name)), nil
	case FormatHTML:
		frames := render.HTMLByID(w.Frames(ctx))
		return sink.RenderHTML(l, sink.WithFrames(frames), sink.WithTitle(name)), nil
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatDOT:
		return []byte(sink.ToDOT(l, sink.DOTOptions{Detailed: true})), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
