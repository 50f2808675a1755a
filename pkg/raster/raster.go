package raster

import (
	"slices"
	"sort"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
)

// Span is a vertical boundary edge at column X covering YLow..YHigh.
// Rasterize defers spans so that Disambiguate can decide which of their
// endpoints are real interval boundaries.
type Span struct {
	X     int
	YLow  int
	YHigh int
}

// Columns holds one ascending breakpoint list per integer x in [MinX, MaxX].
//
// Breaks[x-MinX] alternates run starts (even index) and run ends (odd index).
// A lattice point (x, y) is inside the polygon, boundary included, when some
// even index i satisfies Breaks[i] <= y <= Breaks[i+1].
type Columns struct {
	MinX   int
	MaxX   int
	Breaks [][]int
}

// Column returns the breakpoints of column x, or nil when x is outside
// [MinX, MaxX]. The returned slice must not be modified.
func (c Columns) Column(x int) []int {
	if x < c.MinX || x > c.MaxX {
		return nil
	}
	return c.Breaks[x-c.MinX]
}

// Width is the number of columns.
func (c Columns) Width() int { return len(c.Breaks) }

// TotalBreaks is the number of breakpoints over all columns.
func (c Columns) TotalBreaks() int {
	n := 0
	for _, col := range c.Breaks {
		n += len(col)
	}
	return n
}

// Validate checks that every column has an even number of strictly
// increasing breakpoints. Disambiguate cannot always reach that form when
// parallel edges are one unit apart; [Columns.Contains] still answers
// correctly for a dangling last breakpoint, so callers treat a failure as a
// diagnostic rather than a fault in the polygon.
func (c Columns) Validate() error {
	for i, col := range c.Breaks {
		if len(col)%2 != 0 {
			return errors.New(errors.ErrCodeInternal, "column %d has %d breakpoints, want an even count", c.MinX+i, len(col))
		}
		for j := 1; j < len(col); j++ {
			if col[j] <= col[j-1] {
				return errors.New(errors.ErrCodeInternal, "column %d breakpoints not strictly increasing at %d", c.MinX+i, col[j])
			}
		}
	}
	return nil
}

// Default limits applied by [Rasterize] and [Build].
const (
	DefaultMaxColumns     = 1 << 20
	DefaultMaxBreakpoints = 1 << 25
)

// Limits bound the memory a rasterization may allocate. Zero fields take the
// defaults.
type Limits struct {
	// MaxColumns caps the bounding box width in columns.
	MaxColumns int
	// MaxBreakpoints caps the breakpoints all horizontal edges contribute.
	MaxBreakpoints int
}

// DefaultLimits returns the limits used by [Rasterize].
func DefaultLimits() Limits {
	return Limits{MaxColumns: DefaultMaxColumns, MaxBreakpoints: DefaultMaxBreakpoints}
}

func (l Limits) withDefaults() Limits {
	if l.MaxColumns <= 0 {
		l.MaxColumns = DefaultMaxColumns
	}
	if l.MaxBreakpoints <= 0 {
		l.MaxBreakpoints = DefaultMaxBreakpoints
	}
	return l
}

// check rejects polygons whose columns would exceed l. Extents are taken as
// uint64 differences of int64 bounds, so extreme coordinates cannot
// overflow; each extent is one less than the count it stands for.
func (l Limits) check(p geom.Polygon, b geom.Rect) error {
	if span(b.MinX, b.MaxX) >= uint64(l.MaxColumns) {
		return errors.New(errors.ErrCodePolygonTooLarge, "polygon spans %d..%d, wider than %d columns", b.MinX, b.MaxX, l.MaxColumns)
	}
	var n uint64
	for _, e := range p.Edges() {
		if e.Orientation() != geom.Horizontal {
			continue
		}
		n += span(min(e.From.X, e.To.X), max(e.From.X, e.To.X)) + 1
		if n > uint64(l.MaxBreakpoints) {
			return errors.New(errors.ErrCodePolygonTooLarge, "polygon needs more than %d column breakpoints", l.MaxBreakpoints)
		}
	}
	return nil
}

// span returns hi-lo for lo <= hi without overflow.
func span(lo, hi int) uint64 {
	return uint64(int64(hi) - int64(lo))
}

// Raster is the intermediate result of Rasterize: columns that only carry
// horizontal-edge crossings, plus the deferred vertical spans.
type Raster struct {
	Columns
	Spans []Span
}

// Rasterize converts the boundary of p into per-column breakpoint lists.
//
// Every horizontal edge appends its y to each column it covers, endpoints
// included. Vertical edges are only recorded as spans. Each column is sorted
// before returning. p is validated first, so a diagonal edge fails with
// NON_RECTILINEAR_EDGE before any work is done, and a polygon too wide for
// [DefaultLimits] fails with POLYGON_TOO_LARGE before anything is allocated.
func Rasterize(p geom.Polygon) (*Raster, error) {
	return RasterizeWithin(p, DefaultLimits())
}

// RasterizeWithin is [Rasterize] with explicit limits.
func RasterizeWithin(p geom.Polygon, lim Limits) (*Raster, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b := p.Bounds()
	if err := lim.withDefaults().check(p, b); err != nil {
		return nil, err
	}
	r := &Raster{
		Columns: Columns{
			MinX:   b.MinX,
			MaxX:   b.MaxX,
			Breaks: make([][]int, b.MaxX-b.MinX+1),
		},
	}

	for _, e := range p.Edges() {
		switch e.Orientation() {
		case geom.Vertical:
			r.Spans = append(r.Spans, Span{
				X:     e.From.X,
				YLow:  min(e.From.Y, e.To.Y),
				YHigh: max(e.From.Y, e.To.Y),
			})
		case geom.Horizontal:
			for x := min(e.From.X, e.To.X); x <= max(e.From.X, e.To.X); x++ {
				i := x - r.MinX
				r.Breaks[i] = append(r.Breaks[i], e.From.Y)
			}
		}
	}

	for _, col := range r.Breaks {
		slices.Sort(col)
	}
	return r, nil
}

// Disambiguate removes the breakpoints that vertical spans introduced but
// that do not end or start an interior run, and returns the finalized
// columns. r is not modified.
//
// For each span at column x:
//   - YLow is dropped when the last breakpoint <= YLow sits at an odd index,
//     meaning the column is already inside a run that the span continues.
//   - YHigh is dropped when it lies inside a run of both neighboring columns
//     (a hill-top or valley-bottom touch). Columns MinX and MaxX have only
//     one neighbor and keep YHigh.
//
// Spans of one column are applied bottom-up against that column's filtered
// list so that an earlier removal shifts the parity seen by later spans.
// Neighbor columns are always read from the rasterized input.
func Disambiguate(r *Raster) Columns {
	out := Columns{
		MinX:   r.MinX,
		MaxX:   r.MaxX,
		Breaks: make([][]int, len(r.Breaks)),
	}

	byColumn := make(map[int][]Span)
	for _, s := range r.Spans {
		byColumn[s.X] = append(byColumn[s.X], s)
	}

	for i, raw := range r.Breaks {
		x := r.MinX + i
		spans := byColumn[x]
		if len(spans) == 0 {
			out.Breaks[i] = slices.Clone(raw)
			continue
		}
		slices.SortFunc(spans, func(a, b Span) int { return a.YLow - b.YLow })

		col := slices.Clone(raw)
		for _, s := range spans {
			if last := countAtMost(col, s.YLow) - 1; last%2 == 1 {
				col = without(col, s.YLow)
			}
			if x == r.MinX || x == r.MaxX {
				continue
			}
			left := countAtMost(r.Column(x-1), s.YHigh)%2 == 1
			right := countAtMost(r.Column(x+1), s.YHigh)%2 == 1
			if left && right {
				col = without(col, s.YHigh)
			}
		}
		out.Breaks[i] = col
	}
	return out
}

// Build runs Rasterize and Disambiguate with [DefaultLimits].
func Build(p geom.Polygon) (Columns, error) {
	return BuildWithin(p, DefaultLimits())
}

// BuildWithin runs RasterizeWithin and Disambiguate.
func BuildWithin(p geom.Polygon, lim Limits) (Columns, error) {
	r, err := RasterizeWithin(p, lim)
	if err != nil {
		return Columns{}, err
	}
	return Disambiguate(r), nil
}

// countAtMost returns how many breakpoints in the sorted col are <= y.
func countAtMost(col []int, y int) int {
	return sort.Search(len(col), func(i int) bool { return col[i] > y })
}

// without returns col with one occurrence of y removed. col is modified.
func without(col []int, y int) []int {
	i, ok := slices.BinarySearch(col, y)
	if !ok {
		return col
	}
	return slices.Delete(col, i, i+1)
}
