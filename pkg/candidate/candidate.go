// Package candidate enumerates and ranks the vertex pairs that may serve as
// opposite corners of an inscribed rectangle.
//
// [Pairs] yields all N·(N−1)/2 unordered pairs lazily. [Rank] materializes
// and orders them by area, largest first, breaking ties by enumeration index
// so that every run visits candidates in the same order. [Top] finds the
// first-ranked candidate without sorting.
package candidate

import (
	"cmp"
	"iter"
	"slices"

	"github.com/matzehuels/inscribe/pkg/geom"
)

// Candidate is an unordered vertex pair with its rectangle measurements.
type Candidate struct {
	// P and Q are the corner vertices; I < J are their input indices.
	P geom.Vertex `json:"p"`
	Q geom.Vertex `json:"q"`
	I int         `json:"i"`
	J int         `json:"j"`

	// Index is the pair's position in enumeration order.
	Index int `json:"index"`

	Width  int64 `json:"width"`
	Height int64 `json:"height"`
	Area   int64 `json:"area"`
}

// Rect returns the rectangle spanned by the two corners.
func (c Candidate) Rect() geom.Rect {
	return geom.RectFrom(c.P, c.Q)
}

// New builds the candidate for vertices p[i] and p[j] at enumeration index idx.
func New(p geom.Polygon, i, j, idx int) Candidate {
	r := geom.RectFrom(p[i], p[j])
	return Candidate{
		P:      p[i],
		Q:      p[j],
		I:      i,
		J:      j,
		Index:  idx,
		Width:  r.Width(),
		Height: r.Height(),
		Area:   r.Area(),
	}
}

// Count returns the number of unordered pairs of n vertices.
func Count(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Pairs yields every unordered pair (i, j) with i < j in row-major order.
func Pairs(p geom.Polygon) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		idx := 0
		for i := 0; i < len(p); i++ {
			for j := i + 1; j < len(p); j++ {
				if !yield(New(p, i, j, idx)) {
					return
				}
				idx++
			}
		}
	}
}

// Compare orders a before b when a has the larger area, or the same area and
// the smaller index.
func Compare(a, b Candidate) int {
	if c := cmp.Compare(b.Area, a.Area); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// Rank collects seq and sorts it with [Compare].
func Rank(seq iter.Seq[Candidate]) []Candidate {
	out := slices.Collect(seq)
	slices.SortFunc(out, Compare)
	return out
}

// Top returns the first candidate in [Compare] order. ok is false when seq
// is empty.
func Top(seq iter.Seq[Candidate]) (best Candidate, ok bool) {
	for c := range seq {
		if !ok || Compare(c, best) < 0 {
			best, ok = c, true
		}
	}
	return best, ok
}
