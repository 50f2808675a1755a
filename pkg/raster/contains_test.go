package raster

import (
	"testing"

	"github.com/matzehuels/inscribe/internal/fixture"
	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
)

func mustBuild(t *testing.T, p geom.Polygon) Columns {
	t.Helper()
	cols, err := Build(p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return cols
}

func rect(x0, y0, x1, y1 int) geom.Rect {
	return geom.RectFrom(geom.Vertex{X: x0, Y: y0}, geom.Vertex{X: x1, Y: y1})
}

func TestContains(t *testing.T) {
	sample := mustBuild(t, fixture.Sample())
	notched := mustBuild(t, fixture.Notched())
	comb := mustBuild(t, fixture.Comb())

	tests := []struct {
		name string
		cols Columns
		rect geom.Rect
		want bool
	}{
		{"sample best", sample, rect(9, 5, 2, 3), true},
		{"sample right block", sample, rect(9, 7, 11, 1), true},
		{"sample bounding box", sample, rect(2, 1, 11, 7), false},
		{"sample crosses notch", sample, rect(2, 5, 11, 1), false},
		{"sample below bottom", sample, rect(2, 3, 7, 1), false},
		{"notched best", notched, rect(4, 1, 6, 15), true},
		{"notched bounding box", notched, rect(0, 0, 6, 15), false},
		{"notched crosses lower notch", notched, rect(3, 0, 6, 15), false},
		{"notched top strip", notched, rect(0, 13, 6, 15), true},
		{"comb block", comb, rect(0, 0, 5, 10), true},
		{"comb arms", comb, rect(0, 0, 9, 8), false},
		{"comb single arm", comb, rect(5, 2, 9, 4), true},
		{"left of columns", sample, rect(0, 3, 3, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cols.Contains(tt.rect, HalfOpen); got != tt.want {
				t.Errorf("Contains(%v, HalfOpen) = %v, want %v", tt.rect, got, tt.want)
			}
			if got := tt.cols.Contains(tt.rect, Inclusive); got != tt.want {
				t.Errorf("Contains(%v, Inclusive) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestContainsBoundingBoxOfRectangle(t *testing.T) {
	sq := fixture.Square(1, 2, 8, 6)
	cols := mustBuild(t, sq)
	for _, p := range []Policy{HalfOpen, Inclusive} {
		if !cols.Contains(sq.Bounds(), p) {
			t.Errorf("Contains(bounding box, %v) = false, want true", p)
		}
	}
}

func TestContainsPolicyDiffers(t *testing.T) {
	// Column 3 is outside at y=5; only the inclusive policy looks at it.
	cols := Columns{
		MinX:   0,
		MaxX:   3,
		Breaks: [][]int{{0, 9}, {0, 9}, {0, 9}, {0, 2}},
	}
	r := rect(0, 0, 3, 5)
	if !cols.Contains(r, HalfOpen) {
		t.Error("Contains(HalfOpen) = false, want true")
	}
	if cols.Contains(r, Inclusive) {
		t.Error("Contains(Inclusive) = true, want false")
	}

	// A rectangle one column wide has no half-open columns to check.
	if !cols.Contains(rect(3, 0, 3, 8), HalfOpen) {
		t.Error("Contains(single column, HalfOpen) = false, want true")
	}
	if cols.Contains(rect(3, 0, 3, 8), Inclusive) {
		t.Error("Contains(single column, Inclusive) = true, want false")
	}
}

func TestContainsColumnEdgeCases(t *testing.T) {
	cols := Columns{MinX: 0, MaxX: 0, Breaks: [][]int{{2, 4, 6, 8}}}
	tests := []struct {
		name       string
		minY, maxY int
		want       bool
	}{
		{"first run exact", 2, 4, true},
		{"second run", 6, 7, true},
		{"below first breakpoint", 1, 3, false},
		{"gap between runs", 5, 5, false},
		{"starts at run end", 4, 4, false},
		{"spans gap", 3, 7, false},
		{"above last breakpoint", 9, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := geom.Rect{MinX: 0, MinY: tt.minY, MaxX: 0, MaxY: tt.maxY}
			if got := cols.Contains(r, Inclusive); got != tt.want {
				t.Errorf("Contains(y=%d..%d) = %v, want %v", tt.minY, tt.maxY, got, tt.want)
			}
		})
	}
}

func TestRegion(t *testing.T) {
	cols := mustBuild(t, fixture.Sample())
	reg := NewRegion(cols, Inclusive)
	if !reg.Contains(rect(2, 3, 9, 5)) {
		t.Error("Region.Contains(best) = false, want true")
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", HalfOpen, false},
		{"half-open", HalfOpen, false},
		{"Inclusive", Inclusive, false},
		{" inclusive ", Inclusive, false},
		{"closed", HalfOpen, true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidOption) {
			t.Errorf("ParsePolicy(%q) code = %v", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPolicyText(t *testing.T) {
	b, err := Inclusive.MarshalText()
	if err != nil || string(b) != "inclusive" {
		t.Fatalf("MarshalText() = %q, %v", b, err)
	}
	var p Policy
	if err := p.UnmarshalText([]byte("inclusive")); err != nil || p != Inclusive {
		t.Errorf("UnmarshalText() = %v, %v", p, err)
	}
	if err := p.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("UnmarshalText(sideways) should fail")
	}
	if got := Policy(7).String(); got != "Policy(7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestContainsOddColumn(t *testing.T) {
	// Column 4 of the step polygon ends with a breakpoint that has no
	// partner. Runs starting at it must be rejected, the run below it kept.
	cols := mustBuild(t, fixture.Step())

	tests := []struct {
		name string
		r    geom.Rect
		want bool
	}{
		{"lower bar", rect(4, 0, 7, 1), true},
		{"right of the notch", rect(5, 0, 7, 2), false},
		{"across the notch", rect(3, 1, 7, 2), false},
		{"whole box", rect(3, 0, 7, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cols.Contains(tt.r, HalfOpen); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}
