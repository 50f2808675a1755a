package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/inscribe/internal/fixture"
	"github.com/matzehuels/inscribe/pkg/candidate"
	inerrors "github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/raster"
)

type testerFunc func(geom.Rect) bool

func (f testerFunc) Contains(r geom.Rect) bool { return f(r) }

var never = testerFunc(func(geom.Rect) bool { return false })

func TestRestrictedFixtures(t *testing.T) {
	tests := []struct {
		name    string
		polygon geom.Polygon
		want    int64
	}{
		{"sample", fixture.Sample(), 24},
		{"notched", fixture.Notched(), 45},
		{"comb", fixture.Comb(), 66},
		{"step", fixture.Step(), 8},
		{"square", fixture.Square(0, 0, 9, 4), 50},
	}

	configs := []struct {
		name string
		opts Options
	}{
		{"sequential", Options{}},
		{"parallel", Options{Workers: 4, BatchSize: 3}},
		{"parallel one batch", Options{Workers: 8, BatchSize: 4096}},
	}

	for _, tt := range tests {
		for _, policy := range []raster.Policy{raster.HalfOpen, raster.Inclusive} {
			for _, cfg := range configs {
				t.Run(tt.name+"/"+policy.String()+"/"+cfg.name, func(t *testing.T) {
					res, err := Restricted(context.Background(), tt.polygon, policy, cfg.opts)
					if err != nil {
						t.Fatalf("Restricted() error = %v", err)
					}
					if res.Area() != tt.want {
						t.Errorf("Restricted() area = %d, want %d", res.Area(), tt.want)
					}
					if res.Checked < 1 || res.Checked > candidate.Count(len(tt.polygon)) {
						t.Errorf("Checked = %d out of range", res.Checked)
					}
				})
			}
		}
	}
}

func TestSampleWinner(t *testing.T) {
	res, err := Restricted(context.Background(), fixture.Sample(), raster.HalfOpen, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := geom.Rect{MinX: 2, MinY: 3, MaxX: 9, MaxY: 5}
	if got := res.Candidate.Rect(); got != want {
		t.Errorf("winner = %v, want %v", got, want)
	}
	if res.Checked != 10 {
		t.Errorf("Checked = %d, want 10", res.Checked)
	}
}

func TestUnrestrictedFixtures(t *testing.T) {
	tests := []struct {
		name    string
		polygon geom.Polygon
		want    int64
	}{
		{"sample", fixture.Sample(), 50},
		{"notched", fixture.Notched(), 112},
		{"comb", fixture.Comb(), 90},
		{"step", fixture.Step(), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := LargestUnrestricted(tt.polygon)
			if err != nil {
				t.Fatalf("LargestUnrestricted() error = %v", err)
			}
			if res.Area() != tt.want {
				t.Errorf("area = %d, want %d", res.Area(), tt.want)
			}

			restricted, err := Restricted(context.Background(), tt.polygon, raster.Inclusive, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if restricted.Area() > res.Area() {
				t.Errorf("restricted %d > unrestricted %d", restricted.Area(), res.Area())
			}
		})
	}

	if _, err := LargestUnrestricted(geom.Polygon{{X: 1, Y: 1}}); !inerrors.Is(err, inerrors.ErrCodeMalformedInput) {
		t.Errorf("LargestUnrestricted(single) error = %v", err)
	}
}

func TestLargestExhausted(t *testing.T) {
	ranked := candidate.Rank(candidate.Pairs(fixture.Sample()))

	for _, opts := range []Options{{}, {Workers: 3, BatchSize: 5}} {
		res, err := Largest(context.Background(), ranked, never, opts)
		if !inerrors.Is(err, inerrors.ErrCodeNoContainedRectangle) {
			t.Fatalf("Largest() error = %v, want %s", err, inerrors.ErrCodeNoContainedRectangle)
		}
		if res != (Result{}) {
			t.Errorf("Largest() result = %+v, want zero value alongside the error", res)
		}
	}

	if _, err := Largest(context.Background(), nil, never, Options{}); !inerrors.Is(err, inerrors.ErrCodeNoContainedRectangle) {
		t.Errorf("Largest(empty) error = %v", err)
	}
}

func TestLargestInvalidPolygon(t *testing.T) {
	p := geom.Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 1, Y: 3}}
	_, err := Restricted(context.Background(), p, raster.HalfOpen, Options{})
	if !inerrors.Is(err, inerrors.ErrCodeNonRectilinearEdge) {
		t.Errorf("Restricted() error = %v, want %s", err, inerrors.ErrCodeNonRectilinearEdge)
	}
}

func TestParallelPicksHighestRankedSuccess(t *testing.T) {
	ranked := candidate.Rank(candidate.Pairs(fixture.Notched()))

	// Accept every fifth candidate from position 13 on. Two vertex pairs can
	// span the same rectangle, so the expected winner is found by a plain walk.
	accept := make(map[geom.Rect]bool)
	for i := 13; i < len(ranked); i += 5 {
		accept[ranked[i].Rect()] = true
	}
	tester := testerFunc(func(r geom.Rect) bool { return accept[r] })

	want := -1
	for i, c := range ranked {
		if accept[c.Rect()] {
			want = i
			break
		}
	}

	seq, err := Largest(context.Background(), ranked, tester, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if seq.Candidate != ranked[want] || seq.Checked != want+1 {
		t.Fatalf("sequential = %+v, want ranked[%d] after %d checks", seq, want, want+1)
	}

	for _, batch := range []int{1, 2, 7, 13, 14, 100} {
		par, err := Largest(context.Background(), ranked, tester, Options{Workers: 4, BatchSize: batch})
		if err != nil {
			t.Fatalf("batch %d: %v", batch, err)
		}
		if par != seq {
			t.Errorf("batch %d: got %+v, want %+v", batch, par, seq)
		}
	}
}

func TestProgressReports(t *testing.T) {
	ranked := candidate.Rank(candidate.Pairs(fixture.Notched())) // 66 candidates

	for _, opts := range []Options{
		{ProgressEvery: 10},
		{ProgressEvery: 10, Workers: 2, BatchSize: 7},
	} {
		var got []Progress
		opts.OnProgress = func(p Progress) { got = append(got, p) }

		if _, err := Largest(context.Background(), ranked, never, opts); err == nil {
			t.Fatal("Largest() should exhaust")
		}

		if len(got) != 6 {
			t.Fatalf("workers=%d: got %d reports, want 6", opts.Workers, len(got))
		}
		for i, p := range got {
			if p.Checked != (i+1)*10 {
				t.Errorf("report %d Checked = %d, want %d", i, p.Checked, (i+1)*10)
			}
			if p.Total != 66 {
				t.Errorf("report %d Total = %d, want 66", i, p.Total)
			}
		}
	}
}

func TestProgressDisabled(t *testing.T) {
	ranked := candidate.Rank(candidate.Pairs(fixture.Notched()))
	var calls atomic.Int32
	opts := Options{ProgressEvery: -1, OnProgress: func(Progress) { calls.Add(1) }}
	_, _ = Largest(context.Background(), ranked, never, opts)
	if calls.Load() != 0 {
		t.Errorf("OnProgress called %d times with reports disabled", calls.Load())
	}
}

func TestLargestCancelled(t *testing.T) {
	ranked := candidate.Rank(candidate.Pairs(fixture.Notched()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, opts := range []Options{{}, {Workers: 2}} {
		_, err := Largest(ctx, ranked, never, opts)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: error = %v, want context.Canceled", opts.Workers, err)
		}
	}
}
