// Package search finds the largest vertex-anchored rectangle.
//
// [Largest] walks ranked candidates and returns the first one the [Tester]
// accepts. Because candidates arrive largest first, that first success is the
// global maximum. With Options.Workers > 1 candidates are tested in parallel
// batches; a batch only starts after the previous one finished without a
// success, and within a batch the lowest-ranked success wins, so the result
// is identical to the sequential walk.
//
// [LargestUnrestricted] is the companion computation without containment:
// the largest rectangle over all vertex pairs.
package search

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/inscribe/pkg/candidate"
	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/raster"
)

const (
	// DefaultProgressEvery is the number of checked candidates between
	// progress reports.
	DefaultProgressEvery = 5000

	// DefaultBatchSize is the number of candidates tested per parallel batch.
	DefaultBatchSize = 1024

	// ctxCheckEvery bounds how many sequential checks run between context
	// cancellation checks.
	ctxCheckEvery = 256
)

// Tester decides whether a rectangle lies inside the polygon.
// Implementations must be safe for concurrent use when Workers > 1.
type Tester interface {
	Contains(r geom.Rect) bool
}

// Progress is a periodic status report of a running search.
type Progress struct {
	Checked int           // candidates tested so far
	Total   int           // candidates in the ranked list
	Area    int64         // area of the most recently tested candidate
	Elapsed time.Duration // time since the search started
}

// Options configures a search. The zero value runs sequentially and reports
// progress every [DefaultProgressEvery] checks to a nil callback.
type Options struct {
	// Workers is the number of goroutines testing candidates. Values <= 1
	// test sequentially.
	Workers int

	// BatchSize is the number of candidates per parallel batch.
	// Zero selects DefaultBatchSize. Ignored when sequential.
	BatchSize int

	// ProgressEvery sets the report interval. Zero selects
	// DefaultProgressEvery; negative disables reports.
	ProgressEvery int

	// OnProgress receives reports. It is called from the searching
	// goroutine and must not block for long.
	OnProgress func(Progress)
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.ProgressEvery == 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	return o
}

// Result is the outcome of a successful search.
type Result struct {
	Candidate candidate.Candidate `json:"candidate"`
	// Checked counts the candidates tested up to and including the winner.
	Checked int `json:"checked"`
}

// Area is the winning rectangle's grid-cell area.
func (r Result) Area() int64 { return r.Candidate.Area }

// Largest returns the first candidate in ranked that t accepts.
//
// ranked must already be in [candidate.Compare] order. When no candidate is
// accepted the error has code NO_CONTAINED_RECTANGLE. A cancelled ctx stops
// the walk and returns ctx.Err().
func Largest(ctx context.Context, ranked []candidate.Candidate, t Tester, opts Options) (Result, error) {
	opts = opts.withDefaults()
	rep := newReporter(opts, len(ranked))

	if opts.Workers > 1 {
		return largestParallel(ctx, ranked, t, opts, rep)
	}

	for i, c := range ranked {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		if t.Contains(c.Rect()) {
			return Result{Candidate: c, Checked: i + 1}, nil
		}
		rep.advance(i+1, c.Area)
	}
	return Result{}, exhausted(len(ranked))
}

func largestParallel(ctx context.Context, ranked []candidate.Candidate, t Tester, opts Options, rep *reporter) (Result, error) {
	hits := make([]bool, opts.BatchSize)

	for lo := 0; lo < len(ranked); lo += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		hi := min(lo+opts.BatchSize, len(ranked))
		batch := ranked[lo:hi]
		clear(hits)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for k := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				hits[k] = t.Contains(batch[k].Rect())
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}

		for k, c := range batch {
			if hits[k] {
				return Result{Candidate: c, Checked: lo + k + 1}, nil
			}
		}
		rep.advance(hi, batch[len(batch)-1].Area)
	}
	return Result{}, exhausted(len(ranked))
}

func exhausted(n int) error {
	return errors.New(errors.ErrCodeNoContainedRectangle, "none of %d candidate rectangles lies inside the polygon", n)
}

// reporter emits a Progress every opts.ProgressEvery checks.
type reporter struct {
	fn    func(Progress)
	every int
	next  int
	total int
	start time.Time
}

func newReporter(opts Options, total int) *reporter {
	return &reporter{
		fn:    opts.OnProgress,
		every: opts.ProgressEvery,
		next:  opts.ProgressEvery,
		total: total,
		start: time.Now(),
	}
}

// advance records that checked candidates are done. Parallel batches may
// cross several report boundaries at once; one report is sent per crossing.
func (r *reporter) advance(checked int, area int64) {
	if r.fn == nil || r.every <= 0 {
		return
	}
	for checked >= r.next {
		r.fn(Progress{
			Checked: r.next,
			Total:   r.total,
			Area:    area,
			Elapsed: time.Since(r.start),
		})
		r.next += r.every
	}
}

// LargestUnrestricted returns the largest rectangle over all vertex pairs of
// p, ignoring containment. Ties resolve like [candidate.Rank].
func LargestUnrestricted(p geom.Polygon) (Result, error) {
	best, ok := candidate.Top(candidate.Pairs(p))
	if !ok {
		return Result{}, errors.New(errors.ErrCodeMalformedInput, "need at least 2 vertices, got %d", len(p))
	}
	return Result{Candidate: best, Checked: candidate.Count(len(p))}, nil
}

// Restricted builds the interior of p and runs [Largest] over all ranked
// vertex pairs.
func Restricted(ctx context.Context, p geom.Polygon, policy raster.Policy, opts Options) (Result, error) {
	cols, err := raster.Build(p)
	if err != nil {
		return Result{}, err
	}
	ranked := candidate.Rank(candidate.Pairs(p))
	return Largest(ctx, ranked, raster.NewRegion(cols, policy), opts)
}
