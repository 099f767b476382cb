// Package workspace coordinates one open project: its boards, the plugin
// registry that renders them, the grid layout and the pointer interaction
// engine.
//
// A [Workspace] serializes every operation behind a single mutex, so callers
// from an HTTP server, a TUI event loop or a CLI command observe the same
// ordering the interactive canvas would. Board edits are copy-on-write: each
// mutation replaces the board with the matching id and leaves every other
// board untouched.
//
// Stale ids are not errors. Mutations targeting a board that no longer
// exists report false and change nothing.
//
//	ws := workspace.New(board.NewProject("Pilot"))
//	b, _ := ws.AddBoard("MOODBOARD")
//	ws.PointerDown(interaction.Drag, b.ID, 10, 10)
//	ws.PointerMove(420, 10)
//	ws.PointerUp()
//	svg, _ := ws.Render(ctx, workspace.FormatSVG)
package workspace
