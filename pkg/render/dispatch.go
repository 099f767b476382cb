package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/auteur/pkg/observability"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// Outcome reports how a single board rendered.
type Outcome struct {
	// Missing is set when no plugin is registered for the board's type.
	Missing bool
	// Err is set when the plugin failed or panicked.
	Err error
}

// OK reports whether the board rendered through its plugin without failure.
func (o Outcome) OK() bool { return !o.Missing && o.Err == nil }

func (o Outcome) merge(other Outcome) Outcome {
	if other.Missing {
		o.Missing = true
	}
	if o.Err == nil {
		o.Err = other.Err
	}
	return o
}

// MissingMessage is the text shown in place of a board whose type has no
// registered plugin.
func MissingMessage(boardType string) string {
	return fmt.Sprintf("Error: Board type '%s' has no registered plugin.", boardType)
}

// Dispatcher renders boards through a plugin registry.
type Dispatcher struct {
	registry *plugin.Registry
	logger   *log.Logger
}

// Option configures a [Dispatcher].
type Option func(*Dispatcher)

// WithLogger sets the logger used to report plugin failures.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher returns a dispatcher backed by reg.
func NewDispatcher(reg *plugin.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: reg, logger: log.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher renders through.
func (d *Dispatcher) Registry() *plugin.Registry { return d.registry }

// RenderContent writes the board body produced by the plugin's content
// renderer.
func (d *Dispatcher) RenderContent(ctx context.Context, w io.Writer, p plugin.Props) Outcome {
	desc, ok := d.lookup(ctx, w, p)
	if !ok {
		return Outcome{Missing: true}
	}
	return d.run(ctx, w, p, func(buf io.Writer) error { return desc.Content(buf, p) })
}

// RenderFullscreen writes the plugin's fullscreen view, or its content view
// when the plugin has none.
func (d *Dispatcher) RenderFullscreen(ctx context.Context, w io.Writer, p plugin.Props) Outcome {
	desc, ok := d.lookup(ctx, w, p)
	if !ok {
		return Outcome{Missing: true}
	}
	if fs, ok := plugin.FullscreenOf(desc); ok {
		return d.run(ctx, w, p, func(buf io.Writer) error { return fs.Fullscreen(buf, p) })
	}
	return d.run(ctx, w, p, func(buf io.Writer) error { return desc.Content(buf, p) })
}

// RenderFrame writes the board with its chrome. Header actions and footer
// are rendered only when the plugin provides them.
func (d *Dispatcher) RenderFrame(ctx context.Context, w io.Writer, p plugin.Props, fullscreen bool) Outcome {
	b := p.Board
	desc, registered := d.registry.Lookup(b.Type)

	icon := ""
	if registered {
		icon = desc.Meta().Icon
	}
	fmt.Fprintf(w, `<section class="board" id="board-%s" data-board="%s" data-type="%s">`,
		html.EscapeString(b.ID), html.EscapeString(b.ID), html.EscapeString(b.Type))
	fmt.Fprintf(w, `<header><span class="icon" data-icon="%s"></span><h2>%s</h2>`,
		html.EscapeString(icon), html.EscapeString(b.Title))

	var out Outcome
	if registered {
		if ha, ok := plugin.HeaderActionsOf(desc); ok {
			io.WriteString(w, `<div class="actions">`)
			hp := plugin.HeaderProps{Board: b, Mutations: p.Mutations}
			out = out.merge(d.run(ctx, w, p, func(buf io.Writer) error { return ha.HeaderActions(buf, hp) }))
			io.WriteString(w, `</div>`)
		}
	}
	io.WriteString(w, `</header><div class="body">`)
	if fullscreen {
		out = out.merge(d.RenderFullscreen(ctx, w, p))
	} else {
		out = out.merge(d.RenderContent(ctx, w, p))
	}
	io.WriteString(w, `</div>`)

	if registered {
		if f, ok := plugin.FooterOf(desc); ok {
			io.WriteString(w, `<footer>`)
			out = out.merge(d.run(ctx, w, p, func(buf io.Writer) error { return f.Footer(buf, p) }))
			io.WriteString(w, `</footer>`)
		}
	}
	io.WriteString(w, `</section>`)
	return out
}

func (d *Dispatcher) lookup(ctx context.Context, w io.Writer, p plugin.Props) (plugin.Descriptor, bool) {
	desc, ok := d.registry.Lookup(p.Board.Type)
	if !ok {
		observability.Render().OnPluginMissing(ctx, p.Board.Type)
		d.logger.Debug("no plugin for board", "board", p.Board.ID, "type", p.Board.Type)
		fmt.Fprintf(w, `<div class="board-error">%s</div>`, html.EscapeString(MissingMessage(p.Board.Type)))
	}
	return desc, ok
}

// run calls fn against a scratch buffer and copies the result to w only when
// fn succeeds, so a failing plugin never leaves half a fragment behind.
func (d *Dispatcher) run(ctx context.Context, w io.Writer, p plugin.Props, fn func(io.Writer) error) Outcome {
	var buf bytes.Buffer
	err := safely(func() error { return fn(&buf) })
	if err == nil {
		if _, werr := w.Write(buf.Bytes()); werr != nil {
			return Outcome{Err: werr}
		}
		return Outcome{}
	}

	observability.Render().OnPluginFailure(ctx, p.Board.Type, err)
	d.logger.Warn("plugin failed", "board", p.Board.ID, "type", p.Board.Type, "error", err)
	fmt.Fprintf(w, `<div class="board-error">Error: Board '%s' could not be rendered.</div>`, html.EscapeString(p.Board.Title))
	return Outcome{Err: err}
}

// PanicError wraps a value recovered from a panicking plugin.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("plugin panicked: %v", e.Value) }

func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}
