// Package sink provides output format renderers for workspace canvases.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: The canvas with every board at its pixel rectangle
//   - HTML: A standalone page with absolutely positioned boards
//   - JSON: Layout data export for external tools
//   - DOT: A Graphviz overview map of the boards
//
// Board bodies come from [render.Dispatcher.Frames] and are passed in with
// [WithFrames]; without them boards are drawn as titled placeholders.
//
// # Visual Feedback
//
// Both SVG and HTML output follow the interaction contract: the active
// board is painted last with no transition, and every other board carries a
// short ease transition so that placement changes animate.
//
// [render.Dispatcher.Frames]: github.com/matzehuels/auteur/pkg/render.Dispatcher.Frames
package sink
