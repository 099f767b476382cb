// Package render turns boards into HTML fragments by dispatching to the
// plugin registered for each board's type.
//
// # Dispatch
//
// A [Dispatcher] looks up the plugin for a board and calls its content,
// fullscreen, header action and footer renderers. Rendering never fails for
// the workspace as a whole:
//
//   - A board whose type has no plugin renders an in-place error fragment.
//   - A plugin that returns an error or panics is contained to its own board.
//
// Each call reports an [Outcome] so callers can log or count failures.
//
// # Frames
//
// [Dispatcher.RenderFrame] wraps a board's content in its chrome: title,
// header actions, body and footer. [Dispatcher.Frames] renders every board of
// a collection; the sinks in [sink] position those frames on the canvas.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
// [sink]: github.com/matzehuels/auteur/pkg/render/sink
package render
