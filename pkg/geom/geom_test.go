package geom_test

import (
	"math"
	"testing"

	"github.com/matzehuels/inscribe/internal/fixture"
	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
)

func TestEdgeOrientation(t *testing.T) {
	tests := []struct {
		name string
		edge geom.Edge
		want geom.Orientation
	}{
		{"horizontal", geom.Edge{From: geom.Vertex{X: 1, Y: 2}, To: geom.Vertex{X: 5, Y: 2}}, geom.Horizontal},
		{"vertical", geom.Edge{From: geom.Vertex{X: 1, Y: 2}, To: geom.Vertex{X: 1, Y: -4}}, geom.Vertical},
		{"diagonal", geom.Edge{From: geom.Vertex{X: 1, Y: 2}, To: geom.Vertex{X: 3, Y: 4}}, geom.Diagonal},
		{"point", geom.Edge{From: geom.Vertex{X: 1, Y: 2}, To: geom.Vertex{X: 1, Y: 2}}, geom.Point},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.Orientation(); got != tt.want {
				t.Errorf("Orientation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgesStartWithClosingEdge(t *testing.T) {
	p := fixture.Square(0, 0, 3, 2)

	var edges []geom.Edge
	for _, e := range p.Edges() {
		edges = append(edges, e)
	}

	if len(edges) != len(p) {
		t.Fatalf("got %d edges, want %d", len(edges), len(p))
	}
	if edges[0].From != p[len(p)-1] || edges[0].To != p[0] {
		t.Errorf("first edge = %v, want closing edge %v -> %v", edges[0], p[len(p)-1], p[0])
	}
	for i := 1; i < len(p); i++ {
		if edges[i].From != p[i-1] || edges[i].To != p[i] {
			t.Errorf("edge %d = %v, want %v -> %v", i, edges[i], p[i-1], p[i])
		}
	}
}

func TestBounds(t *testing.T) {
	got := fixture.Sample().Bounds()
	want := geom.Rect{MinX: 2, MinY: 1, MaxX: 11, MaxY: 7}
	if got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestDoubleArea(t *testing.T) {
	// 4x3 square, counter-clockwise in a y-up frame.
	if got := fixture.Square(0, 0, 4, 3).DoubleArea(); got != 24 {
		t.Errorf("DoubleArea() = %d, want 24", got)
	}

	// Reversing the order flips the sign.
	sq := fixture.Square(0, 0, 4, 3)
	rev := geom.Polygon{sq[3], sq[2], sq[1], sq[0]}
	if got := rev.DoubleArea(); got != -24 {
		t.Errorf("reversed DoubleArea() = %d, want -24", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		polygon geom.Polygon
		code    errors.Code
	}{
		{"sample", fixture.Sample(), ""},
		{"notched", fixture.Notched(), ""},
		{"square", fixture.Square(0, 0, 1, 1), ""},
		{"too few vertices", geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, errors.ErrCodeMalformedInput},
		{"diagonal edge", geom.Polygon{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 1, Y: 3}}, errors.ErrCodeNonRectilinearEdge},
		{"diagonal closing edge", geom.Polygon{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 1, Y: 2}}, errors.ErrCodeNonRectilinearEdge},
		{"repeated vertex", geom.Polygon{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, errors.ErrCodeDegeneratePolygon},
		{"flat", geom.Polygon{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}, {X: 1, Y: 0}}, errors.ErrCodeDegeneratePolygon},
		{"zero area", geom.Polygon{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 2}}, errors.ErrCodeDegeneratePolygon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.polygon.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q (%v), want %q", got, err, tt.code)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := geom.RectFrom(geom.Vertex{X: 9, Y: 5}, geom.Vertex{X: 2, Y: 3})
	want := geom.Rect{MinX: 2, MinY: 3, MaxX: 9, MaxY: 5}
	if r != want {
		t.Fatalf("RectFrom() = %v, want %v", r, want)
	}
	if r.Width() != 8 || r.Height() != 3 || r.Area() != 24 {
		t.Errorf("Width/Height/Area = %d/%d/%d, want 8/3/24", r.Width(), r.Height(), r.Area())
	}
	if !r.Contains(geom.Vertex{X: 9, Y: 3}) {
		t.Error("corner should be contained")
	}
	if r.Contains(geom.Vertex{X: 10, Y: 3}) {
		t.Error("point right of rect should not be contained")
	}
	if got := r.String(); got != "(2,3)-(9,5)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRectExtentDoesNotOverflowInt(t *testing.T) {
	r := geom.Rect{MinX: math.MinInt32, MinY: math.MinInt32, MaxX: math.MaxInt32, MaxY: math.MaxInt32}
	const want = int64(1) << 32
	if r.Width() != want || r.Height() != want {
		t.Errorf("Width/Height = %d/%d, want %d", r.Width(), r.Height(), want)
	}
}
