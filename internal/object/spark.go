package object

import (
	"math"

	"github.com/tomz197/fireworks/internal/physics"
)

// Spark is a short-lived ember shed by stars and rockets. It only falls and
// fades: no spin, no emission, no color change.
type Spark struct {
	X, Y         float64
	PrevX, PrevY float64
	VX, VY       float64
	Color        Color
	Life         float64 // milliseconds remaining
	MaxLife      float64
	Alpha        float64
	Born         float64 // system clock at emission
}

// init places a freshly acquired spark.
func (p *Spark) init(x, y float64, color Color, angle, speed, life float64) {
	p.X, p.Y = x, y
	p.PrevX, p.PrevY = x, y
	p.VX = math.Cos(angle) * speed
	p.VY = math.Sin(angle) * speed
	p.Color = color
	p.Life = life
	p.MaxLife = life
	p.Alpha = 1
}

// Fresh reports whether the spark was emitted during the step that ends at
// clock.
func (p *Spark) Fresh(clock float64) bool {
	return p.Born == clock
}

// Update advances the spark one frame. Returns true once the spark has burnt
// out and must be released.
func (p *Spark) Update(ctx StepContext) bool {
	p.Life -= ctx.TimeStep
	if p.Life <= 0 {
		p.Alpha = 0
		return true
	}

	p.PrevX, p.PrevY = p.X, p.Y
	p.X += p.VX * ctx.Speed
	p.Y += p.VY * ctx.Speed
	p.VX *= ctx.sparkDrag
	p.VY *= ctx.sparkDrag
	p.VY += ctx.Gravity

	if p.MaxLife > 0 {
		p.Alpha = physics.Clamp01(p.Life / p.MaxLife)
	}
	return false
}
