// Package fixture holds the reference polygons used across tests.
package fixture

import "github.com/matzehuels/inscribe/pkg/geom"

// SampleText is the canonical 8-vertex puzzle sample in input-file form.
const SampleText = `7,1
11,1
11,7
9,7
9,5
2,5
2,3
7,3
`

// Sample is SampleText parsed. Unrestricted area 50, restricted area 24.
func Sample() geom.Polygon {
	return geom.Polygon{
		{X: 7, Y: 1}, {X: 11, Y: 1}, {X: 11, Y: 7}, {X: 9, Y: 7},
		{X: 9, Y: 5}, {X: 2, Y: 5}, {X: 2, Y: 3}, {X: 7, Y: 3},
	}
}

// NotchedText is a 12-vertex polygon with two notches cut into its left side.
const NotchedText = `3,0
3,1
4,1
4,4
1,4
1,7
4,7
4,13
0,13
0,15
6,15
6,0
`

// Notched is NotchedText parsed. Unrestricted area 112, restricted area 45.
func Notched() geom.Polygon {
	return geom.Polygon{
		{X: 3, Y: 0}, {X: 3, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 4},
		{X: 1, Y: 4}, {X: 1, Y: 7}, {X: 4, Y: 7}, {X: 4, Y: 13},
		{X: 0, Y: 13}, {X: 0, Y: 15}, {X: 6, Y: 15}, {X: 6, Y: 0},
	}
}

// Square returns the 4-vertex rectangle with corners (x0,y0) and (x1,y1).
func Square(x0, y0, x1, y1 int) geom.Polygon {
	return geom.Polygon{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// Comb is a block with two arms on its right side. Column 5 carries three
// vertical edges, which exercises the per-column disambiguation order.
// Unrestricted area 90, restricted area 66.
func Comb() geom.Polygon {
	return geom.Polygon{
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 2}, {X: 9, Y: 2},
		{X: 9, Y: 4}, {X: 5, Y: 4}, {X: 5, Y: 6}, {X: 9, Y: 6},
		{X: 9, Y: 8}, {X: 5, Y: 8}, {X: 5, Y: 10}, {X: 0, Y: 10},
	}
}

// Step is two overlapping bars whose horizontal edges are one unit apart.
// Column 4 keeps an odd breakpoint list after disambiguation.
// Unrestricted area 15, restricted area 8.
func Step() geom.Polygon {
	return geom.Polygon{
		{X: 3, Y: 2}, {X: 3, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 0},
		{X: 7, Y: 0}, {X: 7, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 2},
	}
}
