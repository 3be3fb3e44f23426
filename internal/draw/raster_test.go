package draw

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	red   = colorful.Color{R: 1}
	green = colorful.Color{G: 1}
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}

func TestLightenKeepsBrighterChannels(t *testing.T) {
	r := NewRaster(4, 4)
	r.FillRect(0, 0, 4, 4, Paint{Color: red, Alpha: 1})
	r.FillRect(0, 0, 4, 4, Paint{Color: green, Alpha: 1, Mode: Lighten})

	cr, cg, cb, ca := r.At(1, 1)
	if !near(cr, 1) || !near(cg, 1) || !near(cb, 0) || !near(ca, 1) {
		t.Errorf("lighten red+green = (%v %v %v %v), want (1 1 0 1)", cr, cg, cb, ca)
	}

	r.FillRect(0, 0, 4, 4, Paint{Color: colorful.Color{R: 0.2}, Alpha: 1, Mode: Lighten})
	if cr, _, _, _ := r.At(2, 2); !near(cr, 1) {
		t.Errorf("lighten with a darker color changed red to %v", cr)
	}
}

func TestLightenOnTransparentIsSourceOver(t *testing.T) {
	r := NewRaster(2, 2)
	r.FillRect(0, 0, 2, 2, Paint{Color: green, Alpha: 0.5, Mode: Lighten})
	_, cg, _, ca := r.At(0, 0)
	if !near(cg, 0.5) || !near(ca, 0.5) {
		t.Errorf("got g=%v a=%v, want premultiplied 0.5/0.5", cg, ca)
	}
}

func TestTrailFadeDecaysGeometrically(t *testing.T) {
	r := NewRaster(1, 1)
	r.FillRect(0, 0, 1, 1, Paint{Color: white, Alpha: 1})
	want := 1.0
	for i := 0; i < 10; i++ {
		r.FillRect(0, 0, 1, 1, Paint{Color: black, Alpha: 0.175})
		want *= 0.825
	}
	cr, _, _, ca := r.At(0, 0)
	if !near(cr, want) {
		t.Errorf("after 10 fades r = %v, want %v", cr, want)
	}
	if !near(ca, 1) {
		t.Errorf("alpha = %v, fade must keep the layer opaque", ca)
	}
}

func TestThinStrokeIsOnePixelWide(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           int
	}{
		{"horizontal", 0.5, 2.5, 9.5, 2.5, 10},
		{"vertical", 3.5, 0.5, 3.5, 6.5, 7},
		{"diagonal", 0.5, 0.5, 5.5, 5.5, 6},
		{"point", 4.2, 4.2, 4.7, 4.9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRaster(10, 10)
			r.StrokeLine(tt.x0, tt.y0, tt.x1, tt.y1, 1, CapButt, Paint{Color: white, Alpha: 1})
			if got := lit(r); got != tt.want {
				t.Errorf("lit %d pixels, want %d", got, tt.want)
			}
		})
	}
}

func TestRoundCapsReachPastEndpoints(t *testing.T) {
	butt := NewRaster(20, 20)
	round := NewRaster(20, 20)
	p := Paint{Color: white, Alpha: 1}
	butt.StrokeLine(6, 10, 14, 10, 4, CapButt, p)
	round.StrokeLine(6, 10, 14, 10, 4, CapRound, p)

	if _, _, _, a := butt.At(4, 10); a != 0 {
		t.Error("butt cap painted beyond the endpoint")
	}
	if _, _, _, a := round.At(4, 10); a == 0 {
		t.Error("round cap did not cover the endpoint disc")
	}
	if lit(round) <= lit(butt) {
		t.Errorf("round %d pixels <= butt %d pixels", lit(round), lit(butt))
	}
}

func TestScaleMapsLogicalUnits(t *testing.T) {
	r := NewRaster(10, 10)
	r.SetScale(0.1, 0.1)
	r.FillRect(0, 0, 50, 100, Paint{Color: white, Alpha: 1})
	if got := lit(r); got != 50 {
		t.Errorf("lit %d pixels, want 50", got)
	}
}

func TestRadialGradientFadesToRim(t *testing.T) {
	r := NewRaster(21, 21)
	stops := []GradientStop{
		{Offset: 0, Color: white, Alpha: 1},
		{Offset: 1, Color: red, Alpha: 0},
	}
	r.FillRadialGradient(10.5, 10.5, 10, stops, SourceOver)

	_, _, _, center := r.At(10, 10)
	_, _, _, mid := r.At(15, 10)
	_, _, _, corner := r.At(0, 0)
	if center < 0.9 {
		t.Errorf("center alpha %v", center)
	}
	if mid >= center || mid <= 0 {
		t.Errorf("mid alpha %v not between rim and center %v", mid, center)
	}
	if corner != 0 {
		t.Errorf("pixel outside the radius painted: %v", corner)
	}
}

func TestGradientAt(t *testing.T) {
	stops := []GradientStop{
		{Offset: 0.2, Color: white, Alpha: 1},
		{Offset: 0.6, Color: black, Alpha: 0.2},
		{Offset: 1, Color: black, Alpha: 0},
	}
	tests := []struct {
		t, alpha float64
	}{
		{0, 1}, {0.2, 1}, {0.4, 0.6}, {0.6, 0.2}, {0.8, 0.1}, {1, 0}, {2, 0},
	}
	for _, tt := range tests {
		if _, a := GradientAt(stops, tt.t); !near(a, tt.alpha) {
			t.Errorf("GradientAt(%v) alpha = %v, want %v", tt.t, a, tt.alpha)
		}
	}
	if c, _ := GradientAt(stops, 0.4); !near(c.R, 0.5) {
		t.Errorf("midpoint color %v", c)
	}
}

func TestResizeClears(t *testing.T) {
	r := NewRaster(4, 4)
	r.FillRect(0, 0, 4, 4, Paint{Color: white, Alpha: 1})
	r.Resize(3, 3)
	if w, h := r.Size(); w != 3 || h != 3 {
		t.Fatalf("Size() = %d, %d", w, h)
	}
	if lit(r) != 0 {
		t.Error("resized raster kept old pixels")
	}
}

func lit(r *Raster) int {
	n := 0
	w, h := r.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if _, _, _, a := r.At(x, y); a > 0 {
				n++
			}
		}
	}
	return n
}
