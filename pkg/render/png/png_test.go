package png

import (
	"bytes"
	"image/color"
	stdpng "image/png"
	"testing"

	"github.com/matzehuels/inscribe/internal/fixture"
	"github.com/matzehuels/inscribe/pkg/geom"
)

func TestImageSize(t *testing.T) {
	tests := []struct {
		name string
		p    geom.Polygon
		opts Options
		w, h int
	}{
		{"square default", fixture.Square(0, 0, 8, 8), Options{}, DefaultMaxSize + 1, DefaultMaxSize + 1},
		{"wide", fixture.Square(0, 0, 100, 50), Options{MaxSize: 200}, 201, 101},
		{"margin", fixture.Square(0, 0, 10, 10), Options{MaxSize: 120, Margin: 10}, 121, 121},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Image(tt.p, nil, tt.opts).Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 2 || y-x <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestImageColors(t *testing.T) {
	// Sample polygon spans 9x6 lattice units; MaxSize 90 gives 10px per unit.
	best := geom.Rect{MinX: 2, MinY: 3, MaxX: 9, MaxY: 5}
	img := Image(fixture.Sample(), &best, Options{MaxSize: 90})

	tests := []struct {
		name   string
		x, y   int
		want   color.RGBA
		differ bool
	}{
		{"outside notch", 15, 15, background, false},
		{"right block", 85, 15, polyFill, false},
		{"rectangle", 35, 25, polyFill, true},
	}
	for _, tt := range tests {
		got := img.RGBAAt(tt.x, tt.y)
		if near(got, tt.want) == tt.differ {
			t.Errorf("%s: pixel (%d,%d) = %v, want near %v = %v", tt.name, tt.x, tt.y, got, tt.want, !tt.differ)
		}
	}
	if got := img.RGBAAt(35, 25); near(got, background) {
		t.Errorf("rectangle pixel = %v, want tinted", got)
	}
}

func TestRender(t *testing.T) {
	data, err := Render(fixture.Notched(), nil, Options{MaxSize: 64})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, err := stdpng.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() > 65 || img.Bounds().Dy() > 65 {
		t.Errorf("image %v exceeds MaxSize", img.Bounds())
	}
}
