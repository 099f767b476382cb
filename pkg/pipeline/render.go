package pipeline

import (
	"context"
	"sync"

	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/render"
	"github.com/matzehuels/auteur/pkg/render/sink"
)

// renderer produces formats for one run. The canvas SVG and DOT are shared
// by the formats derived from them and rendered at most once.
type renderer struct {
	src  Source
	opts Options
	svg  func() ([]byte, error)
	dot  func() ([]byte, error)
}

func newRenderer(ctx context.Context, src Source, opts Options) *renderer {
	return &renderer{
		src:  src,
		opts: opts,
		svg:  sync.OnceValues(func() ([]byte, error) { return src.Render(ctx, FormatSVG) }),
		dot:  sync.OnceValues(func() ([]byte, error) { return src.Render(ctx, FormatDOT) }),
	}
}

func (r *renderer) render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return r.svg()
	case FormatDOT:
		return r.dot()
	case FormatHTML, FormatJSON:
		return r.src.Render(ctx, format)
	case FormatOverview:
		dot, err := r.dot()
		if err != nil {
			return nil, err
		}
		return sink.RenderDOTSVG(ctx, string(dot))
	case FormatPNG:
		svg, err := r.svg()
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, svg, r.opts.Scale)
	case FormatPDF:
		svg, err := r.svg()
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}
