// Package text draws a polygon as a character grid, one cell per lattice
// point, rows running from the smallest y downward.
package text

import (
	"bytes"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/render"
)

// MaxCells bounds the grid width and height.
const MaxCells = 200

// Cell characters.
const (
	Outside  = '.'
	Boundary = '#'
	Interior = 'o'
	Rect     = 'X'
)

// Grid classifies every lattice point in the bounding box of p. The
// rectangle, when given, overrides the polygon classes.
func Grid(p geom.Polygon, rect *geom.Rect) ([][]byte, error) {
	b := p.Bounds()
	w, h := b.Width(), b.Height()
	if w > MaxCells || h > MaxCells {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"polygon spans %dx%d cells, text output is limited to %dx%d; use svg or png", w, h, MaxCells, MaxCells)
	}

	grid := make([][]byte, h)
	for row := range grid {
		line := make([]byte, w)
		y := b.MinY + row
		for col := range line {
			v := geom.Vertex{X: b.MinX + col, Y: y}
			switch {
			case rect != nil && rect.Contains(v):
				line[col] = Rect
			case render.OnBoundary(p, v):
				line[col] = Boundary
			case render.Inside(p, v):
				line[col] = Interior
			default:
				line[col] = Outside
			}
		}
		grid[row] = line
	}
	return grid, nil
}

// Render returns the grid as newline-terminated lines.
func Render(p geom.Polygon, rect *geom.Rect) ([]byte, error) {
	grid, err := Grid(p, rect)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for _, line := range grid {
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
