// Package pipeline runs the complete load → rasterize → search solve.
//
// The CLI and the HTTP server both go through a [Runner] so that caching,
// logging and observability hooks behave the same for every entry point.
//
// # Stages
//
//  1. Load: read and validate the vertex list
//  2. Rasterize: build the column interval sets (restricted variant only)
//  3. Search: rank vertex pairs and test them largest first
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.SolveFile(ctx, "input.txt", pipeline.Options{
//	    Variant: pipeline.VariantBoth,
//	    Workers: 8,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Restricted.Area, result.Unrestricted.Area)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/raster"
	"github.com/matzehuels/inscribe/pkg/search"
)

// Variants select which rectangles a solve computes.
const (
	// VariantRestricted finds the largest vertex-anchored rectangle inside
	// the polygon.
	VariantRestricted = "restricted"

	// VariantUnrestricted finds the largest rectangle over all vertex pairs
	// without a containment check.
	VariantUnrestricted = "unrestricted"

	// VariantBoth computes both.
	VariantBoth = "both"
)

// DefaultVariant is used when Options.Variant is empty.
const DefaultVariant = VariantRestricted

// =============================================================================
// Options
// =============================================================================

// Options configures a solve. The JSON form is accepted by the HTTP API.
type Options struct {
	Variant string        `json:"variant,omitempty"`
	Policy  raster.Policy `json:"policy"`

	// Search tuning. None of these change the result.
	Workers       int `json:"workers,omitempty"`
	BatchSize     int `json:"batch_size,omitempty"`
	ProgressEvery int `json:"progress_every,omitempty"`

	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool `json:"refresh,omitempty"`

	// MaxVertices rejects larger polygons before any pair is ranked.
	// Zero means no limit.
	MaxVertices int `json:"-"`

	// Limits bound rasterization. Zero fields take the raster defaults.
	Limits raster.Limits `json:"-"`

	// Runtime options (not serialized)
	Logger     *log.Logger           `json:"-"`
	OnProgress func(search.Progress) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Variant = strings.ToLower(strings.TrimSpace(o.Variant))
	if o.Variant == "" {
		o.Variant = DefaultVariant
	}
	if err := errors.ValidateChoice("variant", o.Variant, VariantRestricted, VariantUnrestricted, VariantBoth); err != nil {
		return err
	}
	if err := errors.ValidateWorkers(o.Workers); err != nil {
		return err
	}
	if o.Policy != raster.HalfOpen && o.Policy != raster.Inclusive {
		return errors.New(errors.ErrCodeInvalidOption, "invalid policy: %v", o.Policy)
	}
	if o.MaxVertices < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "max vertices must not be negative, got %d", o.MaxVertices)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// WantsRestricted reports whether the restricted rectangle is computed.
func (o *Options) WantsRestricted() bool {
	return o.Variant != VariantUnrestricted
}

// WantsUnrestricted reports whether the unrestricted rectangle is computed.
func (o *Options) WantsUnrestricted() bool {
	return o.Variant == VariantUnrestricted || o.Variant == VariantBoth
}

// CheckSize rejects polygons with more than MaxVertices vertices.
func (o *Options) CheckSize(p geom.Polygon) error {
	if o.MaxVertices > 0 && len(p) > o.MaxVertices {
		return errors.New(errors.ErrCodePolygonTooLarge, "polygon has %d vertices, limit is %d", len(p), o.MaxVertices)
	}
	return nil
}

// SearchOptions returns the tuning knobs for [search.Largest].
func (o *Options) SearchOptions() search.Options {
	return search.Options{
		Workers:       o.Workers,
		BatchSize:     o.BatchSize,
		ProgressEvery: o.ProgressEvery,
		OnProgress:    o.OnProgress,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result is the outcome of a solve. It is also the JSON document printed by
// "solve --json" and returned by the HTTP API.
type Result struct {
	// Source names where the polygon came from (file path or "request").
	Source string `json:"source,omitempty"`

	Vertices int    `json:"vertices"`
	Variant  string `json:"variant"`
	Policy   string `json:"policy"`

	Restricted   *Answer `json:"restricted,omitempty"`
	Unrestricted *Answer `json:"unrestricted,omitempty"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Answer describes one winning rectangle.
type Answer struct {
	Area    int64          `json:"area"`
	Rect    geom.Rect      `json:"rect"`
	Corners [2]geom.Vertex `json:"corners"`
	// Checked counts candidates tested up to and including the winner.
	Checked int `json:"checked"`
}

// newAnswer converts a search result.
func newAnswer(r search.Result) *Answer {
	return &Answer{
		Area:    r.Area(),
		Rect:    r.Candidate.Rect(),
		Corners: [2]geom.Vertex{r.Candidate.P, r.Candidate.Q},
		Checked: r.Checked,
	}
}

// Stats contains solve statistics.
type Stats struct {
	Columns     int           `json:"columns,omitempty"`
	Breakpoints int           `json:"breakpoints,omitempty"`
	Candidates  int           `json:"candidates"`
	LoadTime    time.Duration `json:"load_ns,omitempty"`
	RasterTime  time.Duration `json:"raster_ns,omitempty"`
	SearchTime  time.Duration `json:"search_ns"`
}

// CacheInfo records whether the result came from the cache.
type CacheInfo struct {
	Hit bool   `json:"hit"`
	Key string `json:"key,omitempty"`
}

// Best returns the primary rectangle of the result: the restricted one when
// computed, otherwise the unrestricted one.
func (r *Result) Best() *Answer {
	if r.Restricted != nil {
		return r.Restricted
	}
	return r.Unrestricted
}
