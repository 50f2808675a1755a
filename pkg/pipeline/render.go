package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
	"github.com/matzehuels/inscribe/pkg/render"
	"github.com/matzehuels/inscribe/pkg/render/dot"
	"github.com/matzehuels/inscribe/pkg/render/png"
	"github.com/matzehuels/inscribe/pkg/render/text"
)

// RenderOptions configures [Render].
type RenderOptions struct {
	Format string
	Labels bool // DOT and SVG: label vertices with their coordinates
	Size   int  // PNG: longer side in pixels
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errors.ValidateChoice("format", format, render.Formats...)
}

// Render draws p with the best rectangle of res (nil draws the polygon only).
func Render(ctx context.Context, p geom.Polygon, res *Result, opts RenderOptions) ([]byte, error) {
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	var rect *geom.Rect
	if res != nil {
		if best := res.Best(); best != nil {
			rect = &best.Rect
		}
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(opts.Format) {
	case render.FormatText:
		data, err = text.Render(p, rect)
	case render.FormatDOT:
		data = []byte(dot.ToDOT(p, rect, dot.Options{Labels: opts.Labels}))
	case render.FormatSVG:
		data, err = dot.RenderSVG(ctx, dot.ToDOT(p, rect, dot.Options{Labels: opts.Labels}))
	case render.FormatPNG:
		data, err = png.Render(p, rect, png.Options{MaxSize: opts.Size, Margin: 16})
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	return data, nil
}
