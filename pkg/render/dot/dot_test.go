package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/inscribe/internal/fixture"
	"github.com/matzehuels/inscribe/pkg/geom"
)

func TestToDOT(t *testing.T) {
	p := fixture.Sample()
	best := geom.Rect{MinX: 2, MinY: 3, MaxX: 9, MaxY: 5}
	dot := ToDOT(p, &best, Options{Labels: true})

	for _, want := range []string{
		"graph G {",
		`v0 [pos="4.4444,5.3333!", xlabel="7,1"];`,
		"v7 -- v0;",
		"v0 -- v1;",
		`r0 [pos="0.0000,3.5556!"`,
		"r3 -- r0 [style=dashed",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, " -- v"); n != len(p) {
		t.Errorf("polygon edges = %d, want %d", n, len(p))
	}
}

func TestToDOTWithoutRect(t *testing.T) {
	dot := ToDOT(fixture.Square(0, 0, 4, 4), nil, Options{})
	if strings.Contains(dot, "r0") {
		t.Error("ToDOT(nil rect) should not draw a rectangle")
	}
	if strings.Contains(dot, "xlabel") {
		t.Error("ToDOT() without Labels should not label vertices")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if string(normalizeViewBox([]byte("<svg>"))) != "<svg>" {
		t.Error("normalizeViewBox() should leave svg without viewBox untouched")
	}
}

func TestRenderSVG(t *testing.T) {
	best := geom.Rect{MinX: 2, MinY: 3, MaxX: 9, MaxY: 5}
	svg, err := RenderSVG(context.Background(), ToDOT(fixture.Sample(), &best, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
