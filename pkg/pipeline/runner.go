package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/candidate"
	"github.com/matzehuels/inscribe/pkg/geom"
	inio "github.com/matzehuels/inscribe/pkg/io"
	"github.com/matzehuels/inscribe/pkg/observability"
	"github.com/matzehuels/inscribe/pkg/raster"
	"github.com/matzehuels/inscribe/pkg/search"
)

// Runner encapsulates solving with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLResult,
	}
}

// SolveFile loads the vertex file at path and solves it.
func (r *Runner) SolveFile(ctx context.Context, path string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	p, err := inio.LoadFile(path)
	observability.Search().OnLoad(ctx, path, len(p), err)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)
	opts.Logger.Info("loaded polygon", "file", path, "vertices", len(p), "duration", loadTime)

	res, err := r.Solve(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	res.Source = path
	res.Stats.LoadTime = loadTime
	return res, nil
}

// Solve runs the requested variants on p, consulting the cache first.
func (r *Runner) Solve(ctx context.Context, p geom.Polygon, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := opts.CheckSize(p); err != nil {
		return nil, err
	}

	var canonical bytes.Buffer
	if err := inio.WriteText(p, &canonical); err != nil {
		return nil, fmt.Errorf("canonicalize polygon: %w", err)
	}
	key := r.Keyer.SolveKey(canonical.Bytes(), cache.SolveKeyOpts{
		Variant: opts.Variant,
		Policy:  opts.Policy.String(),
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.CacheInfo = CacheInfo{Hit: true, Key: key}
				opts.Logger.Info("cache hit", "key", key)
				return &cached, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
	}

	res, err := r.compute(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	res.CacheInfo.Key = key

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		}
	}
	return res, nil
}

// compute runs the stages without the cache.
func (r *Runner) compute(ctx context.Context, p geom.Polygon, opts Options) (*Result, error) {
	res := &Result{
		Vertices: len(p),
		Variant:  opts.Variant,
		Policy:   opts.Policy.String(),
	}
	res.Stats.Candidates = candidate.Count(len(p))

	if opts.WantsUnrestricted() {
		start := time.Now()
		u, err := search.LargestUnrestricted(p)
		if err != nil {
			return nil, err
		}
		res.Unrestricted = newAnswer(u)
		res.Stats.SearchTime += time.Since(start)
		opts.Logger.Info("unrestricted rectangle", "area", u.Area(), "rect", u.Candidate.Rect())
	}

	if opts.WantsRestricted() {
		rstart := time.Now()
		cols, err := r.Rasterize(ctx, p, opts)
		if err != nil {
			return nil, err
		}
		res.Stats.RasterTime = time.Since(rstart)
		res.Stats.Columns = cols.Width()
		res.Stats.Breakpoints = cols.TotalBreaks()

		start := time.Now()
		found, err := r.Search(ctx, p, cols, opts)
		if err != nil {
			return nil, err
		}
		res.Restricted = newAnswer(found)
		res.Stats.SearchTime += time.Since(start)
	}
	return res, nil
}

// Rasterize builds the column interval sets of p within opts.Limits.
func (r *Runner) Rasterize(ctx context.Context, p geom.Polygon, opts Options) (raster.Columns, error) {
	start := time.Now()
	cols, err := raster.BuildWithin(p, opts.Limits)
	elapsed := time.Since(start)
	observability.Search().OnRasterize(ctx, cols.Width(), cols.TotalBreaks(), elapsed, err)
	if err != nil {
		return raster.Columns{}, err
	}
	if err := cols.Validate(); err != nil {
		r.logger(opts).Debug("irregular columns", "err", err)
	}
	r.logger(opts).Info("rasterized polygon",
		"columns", cols.Width(),
		"breakpoints", cols.TotalBreaks(),
		"duration", elapsed)
	return cols, nil
}

// Search ranks the vertex pairs of p and returns the largest one whose
// rectangle lies within cols.
func (r *Runner) Search(ctx context.Context, p geom.Polygon, cols raster.Columns, opts Options) (search.Result, error) {
	logger := r.logger(opts)
	ranked := candidate.Rank(candidate.Pairs(p))

	sopts := opts.SearchOptions()
	user := sopts.OnProgress
	sopts.OnProgress = func(pr search.Progress) {
		observability.Search().OnSearchProgress(ctx, pr.Checked, pr.Total, pr.Area)
		if user != nil {
			user(pr)
		}
	}

	observability.Search().OnSearchStart(ctx, len(ranked), max(opts.Workers, 1))
	start := time.Now()
	found, err := search.Largest(ctx, ranked, raster.NewRegion(cols, opts.Policy), sopts)
	elapsed := time.Since(start)
	observability.Search().OnSearchComplete(ctx, found.Area(), found.Checked, elapsed, err)
	if err != nil {
		return search.Result{}, err
	}

	logger.Info("found rectangle",
		"area", found.Area(),
		"rect", found.Candidate.Rect(),
		"checked", found.Checked,
		"candidates", len(ranked),
		"duration", elapsed)
	return found, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
