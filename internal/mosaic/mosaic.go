// Package mosaic carves a screen into grids of rectangles.
package mosaic

import (
	"errors"
	"fmt"
)

var ErrParts = errors.New("parts must be 2, 3, 4 or 6")

type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// String formats the rectangle the way xrandr prints geometry.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Rows for a part count: two rows for quarters and sixths, one otherwise.
func Rows(parts int) int {
	if parts > 3 {
		return 2
	}
	return 1
}

func Columns(parts int) int {
	return parts / Rows(parts)
}

// Partition divides width x height into parts cells and returns them in
// row-major order. Cell sizes round up, so when a dimension does not divide
// evenly the rightmost and bottommost cells overhang the edge by at most
// rows or columns pixels. The overhang is kept; xrandr accepts it.
func Partition(width, height, parts int) ([]Rect, error) {
	switch parts {
	case 2, 3, 4, 6:
	default:
		return nil, ErrParts
	}

	rows := Rows(parts)
	cols := Columns(parts)
	cellWidth := ceilDiv(width*rows, parts)
	cellHeight := ceilDiv(height, rows)

	cells := make([]Rect, 0, parts)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, Rect{
				X: cellWidth * c,
				Y: cellHeight * r,
				W: cellWidth,
				H: cellHeight,
			})
		}
	}

	return cells, nil
}

// Normalize returns the rectangle spanning two corner points regardless of
// the order they were given in (e.g. a drag from bottom-right to top-left).
func Normalize(x1, y1, x2, y2 int) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
