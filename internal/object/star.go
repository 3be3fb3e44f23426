package object

import (
	"math"

	"github.com/tomz197/fireworks/internal/physics"
)

// maxSparkLife bounds how long a star's sparks outlive it, which keeps a
// burst's total screen time finite whatever the glitter level.
const maxSparkLife = 1800.0 // ms

// Twinkle shape for strobe stars.
const (
	twinkleAmplitude = 0.35
	twinkleRate      = 0.025 // radians per simulated ms
)

// StarStatus is what a star reports back after an update.
type StarStatus uint8

const (
	StarAlive StarStatus = iota
	// StarDead means life ran out; the star must be released and not drawn.
	StarDead
	// StarRecolored means the star switched to SecondColor this frame and
	// must move to that color's bucket.
	StarRecolored
)

// Star is the primary burst particle.
type Star struct {
	X, Y         float64
	PrevX, PrevY float64
	VX, VY       float64

	Color          Color
	SecondColor    Color // empty for no transition
	TransitionTime float64
	ColorChanged   bool

	Life     float64 // milliseconds remaining
	FullLife float64
	Alpha    float64

	Layer        Layer
	RadiusFactor float64
	Size         float64
	Glow         float64
	Decay        float64
	Drag         float64
	Heavy        bool

	SpinRadius float64
	SpinAngle  float64
	SpinSpeed  float64

	SparkFreq          float64 // ms between sparks; 0 disables emission
	SparkTimer         float64
	SparkColor         Color
	SparkSpeed         float64
	SparkLife          float64
	SparkLifeVariation float64

	Twinkle      bool
	TwinklePhase float64
}

// init places a freshly acquired star and applies the per-star defaults.
func (s *Star) init(x, y float64, color Color, angle, speed, life, offX, offY float64) {
	s.X, s.Y = x, y
	s.PrevX, s.PrevY = x, y
	s.VX = math.Cos(angle)*speed + offX
	s.VY = math.Sin(angle)*speed + offY
	s.Color = color
	s.Life = life
	s.FullLife = life
	s.Alpha = 1
	s.Size = 3
	s.Decay = 1
	s.SpinAngle = physics.Random(0, physics.Tau)
	s.SpinSpeed = 0.8
	s.SparkSpeed = 1
	s.SparkColor = color
	s.SparkLife = 750
	s.SparkLifeVariation = 0.25
}

// applyLayer fixes the layer-dependent parameters.
func (s *Star) applyLayer(layer Layer, p LayerProfile) {
	s.Layer = layer
	s.Decay = p.Decay
	s.Drag = p.Drag
	s.Size = p.Size
	s.Glow = p.Glow
}

// Update advances the star one frame, emitting sparks through em.
func (s *Star) Update(ctx StepContext, heavyDrag float64, em Emitter) StarStatus {
	decay := s.Decay
	if decay <= 0 {
		decay = 1
	}
	s.Life -= ctx.TimeStep * decay
	if s.Life <= 0 {
		s.Alpha = 0
		return StarDead
	}

	burnRate := math.Sqrt(s.Life / s.FullLife)

	s.PrevX, s.PrevY = s.X, s.Y
	s.X += s.VX * ctx.Speed
	s.Y += s.VY * ctx.Speed

	drag := ctx.Drag(s.Drag)
	if s.Heavy {
		drag = heavyDrag
	}
	s.VX *= drag
	s.VY *= drag
	s.VY += ctx.Gravity

	if s.SpinRadius > 0 {
		s.SpinAngle += s.SpinSpeed * ctx.Speed
		s.X += math.Sin(s.SpinAngle) * s.SpinRadius * ctx.Speed
		s.Y += math.Cos(s.SpinAngle) * s.SpinRadius * ctx.Speed
	}

	if s.SparkFreq > 0 && em != nil {
		s.SparkTimer -= ctx.TimeStep
		for s.SparkTimer < 0 {
			s.SparkTimer += s.SparkFreq*0.75 + s.SparkFreq*(1-burnRate)*4
			em.EmitSpark(s.X, s.Y, s.SparkColor,
				physics.Random(0, physics.Tau),
				physics.Random(0, s.SparkSpeed*burnRate),
				math.Min(s.SparkLife*0.8+physics.Random(0, s.SparkLife*s.SparkLifeVariation), maxSparkLife))
		}
	}

	s.Alpha = physics.Clamp01(s.Life / s.FullLife)
	if s.Twinkle {
		s.Alpha = physics.Clamp01(s.Alpha + twinkleAmplitude*math.Sin(ctx.Clock*twinkleRate+s.TwinklePhase))
	}

	if s.SecondColor != "" && !s.ColorChanged && s.Life < s.TransitionTime {
		s.ColorChanged = true
		s.Color = s.SecondColor
		if s.SecondColor == Invisible {
			s.SparkFreq = 0
		}
		return StarRecolored
	}
	return StarAlive
}
