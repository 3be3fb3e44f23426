package physics

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{-1, 0, 1, 0},
		{0.5, 0, 1, 0.5},
		{2, 0, 1, 1},
		{5, 5, 5, 5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestRandomRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := Random(-3, 7)
		if v < -3 || v >= 7 {
			t.Fatalf("Random(-3, 7) = %v, out of range", v)
		}
		n := RandomInt(5, 7)
		if n < 5 || n > 7 {
			t.Fatalf("RandomInt(5, 7) = %d, out of range", n)
		}
	}
	if got := RandomInt(4, 2); got != 4 {
		t.Errorf("RandomInt(4, 2) = %d, want 4", got)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{Tau, 0},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= Tau {
			t.Errorf("NormalizeAngle(%v) = %v, outside [0, 2π)", tt.in, got)
		}
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := DistanceSquared(1, 1, 4, 5); got != 25 {
		t.Errorf("DistanceSquared = %v, want 25", got)
	}
	if got := Angle(0, 0, 0, 1); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("Angle = %v, want π/2", got)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.25, 2.5},
		{900, 100, 0.5, 500},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestRandomChoice(t *testing.T) {
	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[RandomChoice(items)] = true
	}
	if len(seen) != len(items) {
		t.Errorf("RandomChoice reached %v, want all of %v", seen, items)
	}
	if got := RandomChoice([]int{7}); got != 7 {
		t.Errorf("RandomChoice single = %d", got)
	}
}
