// Package object holds the firework particles, their pools and the system
// that integrates them frame by frame.
package object

import "math"

// nominalFrameMs is the frame length particle velocities are expressed in.
const nominalFrameMs = 1000.0 / 60

// Emitter receives sparks spawned by stars and rockets during update.
type Emitter interface {
	EmitSpark(x, y float64, color Color, angle, speed, life float64)
}

// StepContext carries the per-frame values every particle update needs.
type StepContext struct {
	Speed    float64 // frame-normalized speed factor (1 = one 60Hz frame)
	TimeStep float64 // simulated milliseconds elapsed this frame
	Gravity  float64 // vertical velocity gained this frame
	Clock    float64 // simulated milliseconds since the system started

	sparkDrag float64
}

// NewStepContext builds the context for a frame of elapsedMs real
// milliseconds at the given simulation speed.
func NewStepContext(elapsedMs, simSpeed, gravity, sparkAirDrag, clock float64) StepContext {
	timeStep := elapsedMs * simSpeed
	speed := timeStep / nominalFrameMs
	return StepContext{
		Speed:     speed,
		TimeStep:  timeStep,
		Gravity:   timeStep / 1000 * gravity,
		Clock:     clock,
		sparkDrag: math.Pow(sparkAirDrag, speed),
	}
}

// Drag converts a per-frame drag multiplier into this frame's multiplier.
func (c StepContext) Drag(perFrame float64) float64 {
	if c.Speed == 1 {
		return perFrame
	}
	return math.Pow(perFrame, c.Speed)
}

// Point is a 2D position in stage units.
type Point struct {
	X, Y float64
}
