package object

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Flash is the brief radial glow marking a detonation point.
type Flash struct {
	X, Y   float64
	Radius float64
	Color  Color
	Alpha  float64

	fade *gween.Tween
}

// init places a flash that fades from full alpha to zero over durationMs.
func (f *Flash) init(x, y, radius float64, color Color, durationMs float64) {
	f.X, f.Y = x, y
	f.Radius = radius
	f.Color = color
	f.Alpha = 1
	f.fade = gween.New(1, 0, float32(durationMs), ease.OutQuad)
}

// Update advances the fade by the frame's simulated time. Returns true once
// the flash is fully transparent.
func (f *Flash) Update(ctx StepContext) bool {
	if f.fade == nil {
		f.Alpha = 0
		return true
	}
	alpha, done := f.fade.Update(float32(ctx.TimeStep))
	f.Alpha = float64(alpha)
	if f.Alpha < 0 {
		f.Alpha = 0
	}
	if done || f.Alpha <= 0 {
		f.Alpha = 0
		return true
	}
	return false
}
