// Package geom defines the lattice geometry shared by the solver stages.
//
// A [Polygon] is an ordered cyclic list of integer [Vertex] values whose
// consecutive pairs, including the implied closing pair from last to first,
// differ in exactly one coordinate. [Polygon.Validate] enforces that
// precondition before any rasterization happens.
//
// A [Rect] uses inclusive grid-cell bounds: the rectangle spanned by (2,3)
// and (9,5) is 8 cells wide and 3 cells tall, so its area is 24.
package geom
