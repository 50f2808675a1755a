// Package png rasterizes a polygon and its inscribed rectangle into a PNG
// image using golang.org/x/image/vector.
package png

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/vector"

	"github.com/matzehuels/inscribe/pkg/geom"
)

// DefaultMaxSize is the default longer image side in pixels.
const DefaultMaxSize = 1024

// Options configures the image.
type Options struct {
	// MaxSize bounds the longer image side. Zero selects DefaultMaxSize.
	MaxSize int

	// Margin is the padding around the drawing in pixels.
	Margin int
}

var (
	background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	polyFill   = color.RGBA{R: 0x9c, G: 0xc5, B: 0xe8, A: 0xff}
	rectFill   = color.RGBA{R: 0xd9, G: 0x48, B: 0x0f, A: 0xc0}
)

// transform maps lattice coordinates to pixel coordinates.
type transform struct {
	minX, minY int
	scale      float32
	margin     float32
}

func (t transform) point(x, y int) (float32, float32) {
	return t.margin + float32(x-t.minX)*t.scale, t.margin + float32(y-t.minY)*t.scale
}

// Image draws p filled, with rect (when given) on top.
func Image(p geom.Polygon, rect *geom.Rect, opts Options) *image.RGBA {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	margin := max(opts.Margin, 0)
	inner := max(maxSize-2*margin, 1)

	b := p.Bounds()
	spanX, spanY := max(b.MaxX-b.MinX, 1), max(b.MaxY-b.MinY, 1)
	scale := float32(inner) / float32(max(spanX, spanY))
	t := transform{minX: b.MinX, minY: b.MinY, scale: scale, margin: float32(margin)}

	w := int(float32(spanX)*scale) + 2*margin + 1
	h := int(float32(spanY)*scale) + 2*margin + 1
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	r := vector.NewRasterizer(w, h)
	for i, v := range p {
		x, y := t.point(v.X, v.Y)
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(polyFill), image.Point{})

	if rect != nil {
		r.Reset(w, h)
		x0, y0 := t.point(rect.MinX, rect.MinY)
		x1, y1 := t.point(rect.MaxX, rect.MaxY)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y0)
		r.LineTo(x1, y1)
		r.LineTo(x0, y1)
		r.ClosePath()
		r.Draw(img, img.Bounds(), image.NewUniform(rectFill), image.Point{})
	}
	return img
}

// Render encodes [Image] as PNG.
func Render(p geom.Polygon, rect *geom.Rect, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Image(p, rect, opts)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
