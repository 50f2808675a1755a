package raster

import (
	"fmt"
	"strings"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
)

// Policy selects which columns of a rectangle Contains inspects.
type Policy int

const (
	// HalfOpen checks columns MinX..MaxX-1. The rightmost column of a
	// candidate is a column through one of its corner vertices.
	HalfOpen Policy = iota
	// Inclusive checks every column MinX..MaxX.
	Inclusive
)

// Policy names used in flags and configuration.
const (
	PolicyHalfOpen  = "half-open"
	PolicyInclusive = "inclusive"
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case HalfOpen:
		return PolicyHalfOpen
	case Inclusive:
		return PolicyInclusive
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name. The empty string selects HalfOpen.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", PolicyHalfOpen:
		return HalfOpen, nil
	case PolicyInclusive:
		return Inclusive, nil
	}
	return HalfOpen, errors.ValidateChoice("policy", s, PolicyHalfOpen, PolicyInclusive)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Contains reports whether every inspected column of r has a single interior
// run covering [r.MinY, r.MaxY].
//
// For each column the last breakpoint <= r.MinY must exist, sit at an even
// index and have a successor; that successor must be >= r.MaxY. Columns
// outside [c.MinX, c.MaxX] have no breakpoints and never contain anything.
func (c Columns) Contains(r geom.Rect, policy Policy) bool {
	end := r.MaxX
	if policy == Inclusive {
		end++
	}
	for x := r.MinX; x < end; x++ {
		col := c.Column(x)
		i := countAtMost(col, r.MinY) - 1
		if i < 0 || i+1 >= len(col) || i%2 != 0 {
			return false
		}
		if r.MaxY > col[i+1] {
			return false
		}
	}
	return true
}

// Region binds finalized columns to a containment policy. It is read-only
// and safe for concurrent use.
type Region struct {
	cols   Columns
	policy Policy
}

// NewRegion returns a Region testing rectangles against cols with policy.
func NewRegion(cols Columns, policy Policy) *Region {
	return &Region{cols: cols, policy: policy}
}

// Contains reports whether rect lies inside the region.
func (r *Region) Contains(rect geom.Rect) bool {
	return r.cols.Contains(rect, r.policy)
}
