// Package cli implements the inscribe command-line interface.
//
// This package provides commands for solving vertex files, drawing the
// polygon with its best rectangle, serving the HTTP API and managing the
// result cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Print the area of the largest inscribed rectangle
//   - render: Draw the polygon and rectangle as text, DOT, SVG or PNG
//   - cache: Manage the result cache
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and the pipeline's observability hooks are
// routed to the same logger.
//
// # Example
//
//	import "github.com/matzehuels/inscribe/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inscribe/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered out.svg (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Adapter
// =============================================================================

// logHooks forwards pipeline and cache events to a logger at debug level.
// The pipeline already logs stage results at info level.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetSearchHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnLoad(_ context.Context, source string, vertices int, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("load", "source", source, "vertices", vertices)
}

func (h logHooks) OnRasterize(_ context.Context, columns, breakpoints int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("rasterize failed", "err", err)
		return
	}
	h.logger.Debug("rasterize", "columns", columns, "breakpoints", breakpoints, "duration", d)
}

func (h logHooks) OnSearchStart(_ context.Context, candidates, workers int) {
	h.logger.Debug("search started", "candidates", candidates, "workers", workers)
}

func (h logHooks) OnSearchProgress(_ context.Context, checked, total int, area int64) {
	h.logger.Debug("searching", "checked", checked, "total", total, "area", area)
}

func (h logHooks) OnSearchComplete(_ context.Context, area int64, checked int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("search finished without result", "checked", checked, "duration", d, "err", err)
		return
	}
	h.logger.Debug("search complete", "area", area, "checked", checked, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, backend string) {
	h.logger.Debug("cache hit", "backend", backend)
}

func (h logHooks) OnCacheMiss(_ context.Context, backend string) {
	h.logger.Debug("cache miss", "backend", backend)
}

func (h logHooks) OnCacheSet(_ context.Context, backend string, size int) {
	h.logger.Debug("cache set", "backend", backend, "bytes", size)
}
