// Package board defines the entity model shared by every board kind.
//
// A [Board] is a positioned, typed unit of project content on the workspace
// grid. Its Type selects the plugin that renders it; the core never looks
// inside Content and only knows Notes as a tagged union of text and image
// items.
//
// Boards are values. Every mutation goes through a [Patch] or a helper on
// [Boards] that returns a new slice with the matching board replaced, so a
// rendering layer can rely on identity-based change detection:
//
//	boards, ok := project.Boards.Replace(id, func(b board.Board) board.Board {
//	    return board.Patch{Title: ptr("Shot list")}.Apply(b)
//	})
//	if !ok {
//	    // stale id: nothing changed
//	}
package board
