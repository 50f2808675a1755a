// Package render draws a polygon together with its best inscribed rectangle.
//
// Three renderers share the same inputs, a [geom.Polygon] and an optional
// [geom.Rect]:
//
//   - [text]: one character per lattice point, for terminals
//   - [dot]: Graphviz DOT with pinned vertex positions, laid out by neato
//     and rendered to SVG
//   - [png]: an anti-aliased raster image
//
// All renderers draw y growing downward, matching the usual puzzle-grid
// orientation of vertex files.
//
// [text]: github.com/matzehuels/inscribe/pkg/render/text
// [dot]: github.com/matzehuels/inscribe/pkg/render/dot
// [png]: github.com/matzehuels/inscribe/pkg/render/png
package render

import "github.com/matzehuels/inscribe/pkg/geom"

// Format names accepted by the render command and the pipeline.
const (
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// Formats lists the supported formats in display order.
var Formats = []string{FormatText, FormatDOT, FormatSVG, FormatPNG}

// Inside reports whether lattice point v lies inside p or on its boundary.
// Points on an edge count as inside; other points use an even-odd ray cast
// to the right over vertical edges with half-open y extents.
func Inside(p geom.Polygon, v geom.Vertex) bool {
	crossings := 0
	for _, e := range p.Edges() {
		if OnEdge(e, v) {
			return true
		}
		if e.Orientation() != geom.Vertical || e.From.X <= v.X {
			continue
		}
		lo, hi := min(e.From.Y, e.To.Y), max(e.From.Y, e.To.Y)
		if lo <= v.Y && v.Y < hi {
			crossings++
		}
	}
	return crossings%2 == 1
}

// OnBoundary reports whether v lies on an edge of p.
func OnBoundary(p geom.Polygon, v geom.Vertex) bool {
	for _, e := range p.Edges() {
		if OnEdge(e, v) {
			return true
		}
	}
	return false
}

// OnEdge reports whether v lies on the axis-aligned segment e.
func OnEdge(e geom.Edge, v geom.Vertex) bool {
	return geom.RectFrom(e.From, e.To).Contains(v)
}
