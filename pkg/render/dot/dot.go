// Package dot renders a polygon and its inscribed rectangle with Graphviz.
//
// Vertices become point nodes pinned at their coordinates (pos="x,y!"), so
// the neato engine draws the shape as given instead of computing a layout.
// Polygon edges are solid; the rectangle is a second, dashed cycle.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/inscribe/pkg/geom"
)

// Options configures DOT generation.
type Options struct {
	// Size is the drawing extent in inches along the longer side.
	// Zero selects DefaultSize.
	Size float64

	// Labels prints the coordinates next to every vertex.
	Labels bool
}

// DefaultSize is the default drawing extent in inches.
const DefaultSize = 8.0

// ToDOT converts p, and the rectangle when given, to an undirected DOT
// graph with pinned node positions. y grows downward.
func ToDOT(p geom.Polygon, rect *geom.Rect, opts Options) string {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	b := p.Bounds()
	scale := size / float64(max(b.Width()-1, b.Height()-1, 1))
	pos := func(v geom.Vertex) string {
		x := float64(v.X-b.MinX) * scale
		y := float64(b.MaxY-v.Y) * scale
		return fmt.Sprintf("%.4f,%.4f!", x, y)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  node [shape=point, width=0.06, color=\"#333333\"];\n")
	buf.WriteString("  edge [color=\"#333333\", penwidth=1.5];\n")
	buf.WriteString("\n")

	for i, v := range p {
		attrs := fmt.Sprintf("pos=%q", pos(v))
		if opts.Labels {
			attrs += fmt.Sprintf(", xlabel=%q", v.String())
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", i, attrs)
	}
	for i := range p.Edges() {
		prev := (i + len(p) - 1) % len(p)
		fmt.Fprintf(&buf, "  v%d -- v%d;\n", prev, i)
	}

	if rect != nil {
		corners := []geom.Vertex{
			{X: rect.MinX, Y: rect.MinY},
			{X: rect.MaxX, Y: rect.MinY},
			{X: rect.MaxX, Y: rect.MaxY},
			{X: rect.MinX, Y: rect.MaxY},
		}
		buf.WriteString("\n")
		for i, c := range corners {
			fmt.Fprintf(&buf, "  r%d [pos=%q, color=\"#d9480f\"];\n", i, pos(c))
		}
		for i := range corners {
			fmt.Fprintf(&buf, "  r%d -- r%d [style=dashed, color=\"#d9480f\"];\n", i, (i+1)%len(corners))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a unitless
// one so browsers scale the drawing to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
