// Package grid maps game cells onto window pixels.
package grid

import (
	"errors"
	"fmt"

	"github.com/tomz197/snake/internal/snake"
)

// ErrTooSmall is returned when a window cannot give every cell a pixel.
var ErrTooSmall = errors.New("window too small for grid")

// Layout splits a window into equal tiles, one per cell.
type Layout struct {
	TileW int32
	TileH int32
}

// New divides a widthPx x heightPx window among cols x rows cells.
func New(widthPx, heightPx int32, cols, rows int) (Layout, error) {
	if cols <= 0 || rows <= 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d cells", ErrTooSmall, cols, rows)
	}
	l := Layout{
		TileW: widthPx / int32(cols),
		TileH: heightPx / int32(rows),
	}
	if l.TileW < 1 || l.TileH < 1 {
		return Layout{}, fmt.Errorf("%w: %dx%d cells in %dx%d pixels", ErrTooSmall, cols, rows, widthPx, heightPx)
	}
	return l, nil
}

// Square returns the top-left corner and side of a square scaled to the
// smaller tile side and centred in the tile at p. The side is at least one
// pixel.
func (l Layout) Square(p snake.Position, scale float64) (x, y, size int32) {
	size = max(1, int32(float64(min(l.TileW, l.TileH))*scale))
	x = int32(p.X)*l.TileW + (l.TileW-size)/2
	y = int32(p.Y)*l.TileH + (l.TileH-size)/2
	return x, y, size
}
