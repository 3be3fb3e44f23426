package object

import (
	"math"

	"github.com/tomz197/fireworks/internal/physics"
)

// RocketState is the ascent state machine.
type RocketState uint8

const (
	RocketAscending RocketState = iota
	// RocketBurstReady is terminal: the caller bursts the shell at the
	// rocket's position and releases it in the same step.
	RocketBurstReady
)

// Rocket is a launched shell climbing toward its burst altitude.
type Rocket struct {
	X, Y         float64
	PrevX, PrevY float64
	VX, VY       float64
	Trail        Trail
	Color        Color

	Acceleration float64 // upward thrust per frame
	Gravity      float64 // downward pull per frame
	Friction     float64 // horizontal velocity multiplier per frame
	TargetY      float64
	MaxFrames    int

	SpinRadius float64
	SpinAngle  float64
	SpinSpeed  float64

	SparkFreq          float64
	SparkTimer         float64
	SparkColor         Color
	SparkLife          float64
	SparkLifeVariation float64

	HideAfter float64 // ms of flight before the trail goes dark; 0 never
	Visible   bool
	Flight    float64 // ms since launch
	Frames    int
	State     RocketState

	Shell Shell
}

// resetRocket clears a rocket for reuse but keeps the trail's backing array.
func resetRocket(r *Rocket) {
	trail := r.Trail
	trail.Reset(trail.Cap())
	*r = Rocket{Trail: trail}
}

// Update advances the rocket one frame and reports whether it reached its
// burst point (apex passed, target altitude reached, or frame cap hit).
func (r *Rocket) Update(ctx StepContext, em Emitter) bool {
	if r.State == RocketBurstReady {
		return true
	}
	s := ctx.Speed
	r.Flight += ctx.TimeStep
	r.Frames++

	r.PrevX, r.PrevY = r.X, r.Y
	r.VY -= r.Acceleration * s
	r.VY += r.Gravity * s
	r.X += r.VX * s
	r.Y += r.VY * s
	r.VX *= ctx.Drag(r.Friction)

	if r.SpinRadius > 0 {
		r.SpinAngle += r.SpinSpeed * s
		r.X += math.Sin(r.SpinAngle) * r.SpinRadius * s
	}
	r.Trail.Push(r.X, r.Y)

	if r.Visible && r.HideAfter > 0 && r.Flight >= r.HideAfter {
		r.Visible = false
	}

	if r.Visible && r.SparkFreq > 0 && em != nil {
		r.SparkTimer -= ctx.TimeStep
		for r.SparkTimer < 0 {
			r.SparkTimer += r.SparkFreq
			em.EmitSpark(r.X, r.Y, r.SparkColor,
				physics.Random(0, physics.Tau),
				physics.Random(0, 1),
				r.SparkLife*0.8+physics.Random(0, r.SparkLife*r.SparkLifeVariation))
		}
	}

	if r.VY > 0 || r.Y <= r.TargetY || (r.MaxFrames > 0 && r.Frames >= r.MaxFrames) {
		r.State = RocketBurstReady
		return true
	}
	return false
}
