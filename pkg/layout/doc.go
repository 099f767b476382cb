// Package layout maps abstract board placements onto pixel geometry.
//
// Boards live on a grid of fixed-size cells. A board at (x, y) spanning
// (w, h) cells occupies
//
//	left   = x * (colWidth + gap)
//	top    = y * (rowHeight + gap)
//	width  = w * colWidth + (w-1) * gap
//	height = h * rowHeight + (h-1) * gap
//
// The package also picks a cell for newly added boards using a
// shortest-column heuristic: each column tracks the next free row and the new
// board goes to the column with the smallest value. Horizontal gaps left by
// manual moves are never reclaimed, and overlapping boards are a valid state;
// the engine does not repack or separate them.
package layout
