package sink

import (
	"encoding/json"

	"github.com/matzehuels/auteur/pkg/layout"
)

type jsonOutput struct {
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	Grid    jsonGrid    `json:"grid"`
	Active  string      `json:"active,omitempty"`
	Boards  []jsonBoard `json:"boards"`
	Overlap [][2]string `json:"overlaps,omitempty"`
}

type jsonGrid struct {
	ColWidth  float64 `json:"col_width"`
	RowHeight float64 `json:"row_height"`
	Gap       float64 `json:"gap"`
	Columns   int     `json:"columns"`
}

type jsonBoard struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Cell    jsonXYWH `json:"cell"`
	Left    float64  `json:"left"`
	Top     float64  `json:"top"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Z       int      `json:"z"`
	Animate bool     `json:"animate"`
}

type jsonXYWH struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// RenderJSON exports the computed layout as a pretty-printed JSON document:
// canvas extent, grid constants and, per board, its cell placement, pixel
// rectangle and visual state. Overlapping pairs are listed for diagnosis.
func RenderJSON(l layout.Layout) ([]byte, error) {
	out := jsonOutput{
		Width:  l.Width,
		Height: l.Height,
		Active: l.Active,
		Grid: jsonGrid{
			ColWidth:  l.Grid.ColWidth,
			RowHeight: l.Grid.RowHeight,
			Gap:       l.Grid.Gap,
			Columns:   l.Grid.Columns,
		},
		Boards: make([]jsonBoard, 0, len(l.Boards)),
	}
	for _, p := range l.Boards {
		out.Boards = append(out.Boards, jsonBoard{
			ID:      p.Board.ID,
			Type:    p.Board.Type,
			Title:   p.Board.Title,
			Cell:    jsonXYWH{X: p.Board.X, Y: p.Board.Y, W: p.Board.W, H: p.Board.H},
			Left:    p.Rect.Left,
			Top:     p.Rect.Top,
			Width:   p.Rect.Width(),
			Height:  p.Rect.Height(),
			Z:       p.Z,
			Animate: p.Animate,
		})
	}
	for _, o := range l.Overlaps() {
		out.Overlap = append(out.Overlap, [2]string{o.A, o.B})
	}
	return json.MarshalIndent(out, "", "  ")
}
