// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Viewport maps world coordinates of the play field onto a grid of cells.
// World X grows to the right and world Y grows downward, like the screen.
type Viewport struct {
	WorldW, WorldH float64
	Cells          Rect
}

// CellX converts a world X coordinate to a column.
func (v Viewport) CellX(x float64) int {
	if v.WorldW <= 0 {
		return v.Cells.X
	}
	return v.Cells.X + int(x*float64(v.Cells.W)/v.WorldW)
}

// CellY converts a world Y coordinate to a row.
func (v Viewport) CellY(y float64) int {
	if v.WorldH <= 0 {
		return v.Cells.Y
	}
	return v.Cells.Y + int(y*float64(v.Cells.H)/v.WorldH)
}

// CellW converts a world width to a number of columns, never less than one.
func (v Viewport) CellW(w float64) int {
	if v.WorldW <= 0 {
		return 1
	}
	return max(1, int(w*float64(v.Cells.W)/v.WorldW+0.5))
}

// CellH converts a world height to a number of rows, never less than one.
func (v Viewport) CellH(h float64) int {
	if v.WorldH <= 0 {
		return 1
	}
	return max(1, int(h*float64(v.Cells.H)/v.WorldH+0.5))
}
