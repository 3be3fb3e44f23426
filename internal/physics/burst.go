package physics

import "math"

// BurstPoint is one star slot of a burst: a direction and how far toward the
// shell's outer edge the star travels (1 = full spread).
type BurstPoint struct {
	Angle        float64
	RadiusFactor float64
}

// Arc is a contiguous angular range starting at Start and spanning Length
// radians counter-clockwise.
type Arc struct {
	Start  float64
	Length float64
}

// FullArc covers the whole circle.
func FullArc() Arc {
	return Arc{Start: 0, Length: Tau}
}

// SplitArcs returns two half-circle arcs starting at theta. Together they
// cover every angle exactly once.
func SplitArcs(theta float64) [2]Arc {
	start := NormalizeAngle(theta)
	return [2]Arc{
		{Start: start, Length: math.Pi},
		{Start: NormalizeAngle(start + math.Pi), Length: math.Pi},
	}
}

// Contains reports whether angle lies in [Start, Start+Length).
func (a Arc) Contains(angle float64) bool {
	if a.Length >= Tau {
		return true
	}
	return NormalizeAngle(angle-a.Start) < a.Length
}

// Burst generates roughly n*arc.Length/2π points spread over arc, sampling a
// sphere projected onto the screen: concentric rings whose radius factor is
// the cosine of the ring's latitude.
func Burst(n int, arc Arc) []BurstPoint {
	return AppendBurst(nil, n, arc)
}

// AppendBurst is Burst appending into dst, so callers can reuse a buffer
// between detonations.
func AppendBurst(dst []BurstPoint, n int, arc Arc) []BurstPoint {
	length := math.Min(arc.Length, Tau)
	if n <= 0 || length <= 0 {
		return dst
	}

	r := 0.5 * math.Sqrt(float64(n)/math.Pi)
	c := 2 * math.Pi * r
	half := c / 2
	rings := int(half)

	// Raw per-ring parts overshoot n on small bursts; scale them so the
	// total tracks the request.
	var raw [64]float64
	parts := raw[:0]
	if rings+1 > len(raw) {
		parts = make([]float64, 0, rings+1)
	}
	total := 0.0
	for i := 0; i <= rings; i++ {
		ringSize := math.Cos(float64(i) / half * math.Pi / 2)
		p := c * ringSize * length / Tau
		parts = append(parts, p)
		total += p
	}
	if total <= 0 {
		return dst
	}
	scale := float64(n) * length / Tau / total

	for i, p := range parts {
		ringSize := math.Cos(float64(i) / half * math.Pi / 2)
		count := int(math.Round(p * scale))
		if count < 1 {
			count = 1
		}
		inc := length / float64(count)
		for j := 0; j < count; j++ {
			angle := arc.Start + float64(j)*inc + Random(0, inc)
			if end := arc.Start + length; angle >= end {
				angle = math.Nextafter(end, arc.Start)
			}
			dst = append(dst, BurstPoint{
				Angle:        NormalizeAngle(angle),
				RadiusFactor: ringSize,
			})
		}
	}
	return dst
}
