package geom

import (
	"fmt"
	"iter"

	"github.com/matzehuels/inscribe/pkg/errors"
)

// MinVertices is the smallest vertex count that can describe a closed
// rectilinear polygon.
const MinVertices = 4

// Vertex is an integer lattice point.
type Vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the vertex the way it appears in input files.
func (v Vertex) String() string {
	return fmt.Sprintf("%d,%d", v.X, v.Y)
}

// Orientation classifies an edge.
type Orientation int

const (
	// Diagonal edges differ in both coordinates and are never valid.
	Diagonal Orientation = iota
	Horizontal
	Vertical
	// Point edges join two equal vertices.
	Point
)

// Edge is a directed boundary segment from one vertex to the next.
type Edge struct {
	From, To Vertex
}

// Orientation reports whether e is horizontal, vertical, a point or diagonal.
func (e Edge) Orientation() Orientation {
	switch {
	case e.From == e.To:
		return Point
	case e.From.Y == e.To.Y:
		return Horizontal
	case e.From.X == e.To.X:
		return Vertical
	default:
		return Diagonal
	}
}

// Polygon is an ordered, cyclic vertex sequence. The closing edge from the
// last vertex back to the first is implied.
type Polygon []Vertex

// Edges yields every boundary edge, starting with the closing edge from the
// last vertex to the first, then each consecutive pair in order.
func (p Polygon) Edges() iter.Seq2[int, Edge] {
	return func(yield func(int, Edge) bool) {
		for i := range p {
			prev := p[(i+len(p)-1)%len(p)]
			if !yield(i, Edge{From: prev, To: p[i]}) {
				return
			}
		}
	}
}

// Bounds returns the smallest rectangle containing every vertex.
// Bounds of an empty polygon is the zero Rect.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{MinX: p[0].X, MinY: p[0].Y, MaxX: p[0].X, MaxY: p[0].Y}
	for _, v := range p[1:] {
		r.MinX = min(r.MinX, v.X)
		r.MinY = min(r.MinY, v.Y)
		r.MaxX = max(r.MaxX, v.X)
		r.MaxY = max(r.MaxY, v.Y)
	}
	return r
}

// DoubleArea returns twice the signed shoelace area. The sign is positive for
// counter-clockwise vertex order in a y-up frame.
func (p Polygon) DoubleArea() int64 {
	var sum int64
	for _, e := range p.Edges() {
		sum += int64(e.From.X)*int64(e.To.Y) - int64(e.To.X)*int64(e.From.Y)
	}
	return sum
}

// Validate checks the structural preconditions of the solver: at least
// [MinVertices] vertices, every edge axis-aligned and of non-zero length, a
// bounding box with extent in both directions and a non-zero enclosed area.
func (p Polygon) Validate() error {
	if len(p) < MinVertices {
		return errors.New(errors.ErrCodeMalformedInput, "polygon needs at least %d vertices, got %d", MinVertices, len(p))
	}
	for i, e := range p.Edges() {
		switch e.Orientation() {
		case Diagonal:
			return errors.New(errors.ErrCodeNonRectilinearEdge, "edge %d from %v to %v is not axis-aligned", i, e.From, e.To)
		case Point:
			return errors.New(errors.ErrCodeDegeneratePolygon, "edge %d has zero length at %v", i, e.From)
		}
	}
	b := p.Bounds()
	if b.MinX == b.MaxX || b.MinY == b.MaxY {
		return errors.New(errors.ErrCodeDegeneratePolygon, "bounding box %v has zero width or height", b)
	}
	if p.DoubleArea() == 0 {
		return errors.New(errors.ErrCodeDegeneratePolygon, "polygon encloses zero area")
	}
	return nil
}

// Rect is an axis-aligned rectangle of lattice points with inclusive bounds.
type Rect struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// RectFrom returns the rectangle spanned by two opposite corners.
func RectFrom(p, q Vertex) Rect {
	return Rect{
		MinX: min(p.X, q.X),
		MinY: min(p.Y, q.Y),
		MaxX: max(p.X, q.X),
		MaxY: max(p.Y, q.Y),
	}
}

// Width is the number of lattice columns covered.
func (r Rect) Width() int64 { return int64(r.MaxX) - int64(r.MinX) + 1 }

// Height is the number of lattice rows covered.
func (r Rect) Height() int64 { return int64(r.MaxY) - int64(r.MinY) + 1 }

// Area is the grid-cell area, counting both boundary rows and columns.
func (r Rect) Area() int64 { return r.Width() * r.Height() }

// Contains reports whether v lies inside r or on its border.
func (r Rect) Contains(v Vertex) bool {
	return v.X >= r.MinX && v.X <= r.MaxX && v.Y >= r.MinY && v.Y <= r.MaxY
}

// String formats r as "(minX,minY)-(maxX,maxY)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}
