package physics

import (
	"math"
	"testing"
)

func TestBurstCountTracksRequest(t *testing.T) {
	for _, n := range []int{6, 40, 180, 500} {
		for trial := 0; trial < 20; trial++ {
			points := Burst(n, FullArc())
			ratio := float64(len(points)) / float64(n)
			if ratio < 0.7 || ratio > 1.3 {
				t.Fatalf("Burst(%d) produced %d points (ratio %.2f)", n, len(points), ratio)
			}
		}
	}
}

func TestBurstCoversCircle(t *testing.T) {
	const sectors = 8
	for _, n := range []int{40, 180, 500} {
		var hit [sectors]bool
		for _, p := range Burst(n, FullArc()) {
			hit[int(p.Angle/Tau*sectors)%sectors] = true
		}
		for i, ok := range hit {
			if !ok {
				t.Errorf("Burst(%d): sector %d empty", n, i)
			}
		}
	}

	var hit [3]bool
	for _, p := range Burst(6, FullArc()) {
		hit[int(p.Angle/Tau*3)%3] = true
	}
	for i, ok := range hit {
		if !ok {
			t.Errorf("Burst(6): third %d empty", i)
		}
	}
}

func TestBurstPointsInRange(t *testing.T) {
	arcs := []Arc{FullArc(), {Start: 1, Length: math.Pi}, {Start: 5, Length: math.Pi}}
	for _, arc := range arcs {
		for _, p := range Burst(180, arc) {
			if p.Angle < 0 || p.Angle >= Tau {
				t.Fatalf("angle %v outside [0, 2π)", p.Angle)
			}
			if !arc.Contains(p.Angle) {
				t.Fatalf("angle %v outside arc %+v", p.Angle, arc)
			}
			if p.RadiusFactor < 0 || p.RadiusFactor > 1 {
				t.Fatalf("radius factor %v outside [0, 1]", p.RadiusFactor)
			}
		}
	}
}

func TestBurstHalfArcHalvesCount(t *testing.T) {
	full := len(Burst(500, FullArc()))
	half := len(Burst(500, Arc{Start: 0, Length: math.Pi}))
	ratio := float64(half) / float64(full)
	if ratio < 0.4 || ratio > 0.6 {
		t.Errorf("half arc ratio = %.2f, want about 0.5", ratio)
	}
}

func TestBurstEmpty(t *testing.T) {
	if got := Burst(0, FullArc()); len(got) != 0 {
		t.Errorf("Burst(0) = %d points, want 0", len(got))
	}
	if got := Burst(10, Arc{}); len(got) != 0 {
		t.Errorf("zero-length arc = %d points, want 0", len(got))
	}
}

func TestSplitArcsDisjointAndCovering(t *testing.T) {
	for _, theta := range []float64{0, 0.3, math.Pi, 4.9, -1.2, 9} {
		arcs := SplitArcs(theta)
		for i := 0; i < 720; i++ {
			angle := (float64(i) + 0.5) / 720 * Tau
			in0 := arcs[0].Contains(angle)
			in1 := arcs[1].Contains(angle)
			if in0 == in1 {
				t.Fatalf("theta %v: angle %v covered by both or neither (%v, %v)", theta, angle, in0, in1)
			}
		}
		if got := arcs[0].Length + arcs[1].Length; math.Abs(got-Tau) > 1e-12 {
			t.Errorf("theta %v: arc lengths sum to %v", theta, got)
		}
	}
}
