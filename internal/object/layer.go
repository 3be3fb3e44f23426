package object

import "github.com/tomz197/fireworks/internal/config"

// Layer is the depth band a burst star belongs to, fixed at creation from
// the star's radius factor.
type Layer uint8

const (
	LayerInner Layer = iota
	LayerMiddle
	LayerOuter
	layerCount
)

func (l Layer) String() string {
	switch l {
	case LayerInner:
		return "inner"
	case LayerMiddle:
		return "middle"
	case LayerOuter:
		return "outer"
	}
	return "unknown"
}

// LayerProfile holds the per-layer star parameters.
type LayerProfile struct {
	SpeedMin, SpeedMax float64 // jitter applied to the base star speed
	Decay              float64 // life consumed per elapsed ms
	Drag               float64 // velocity multiplier per 60Hz frame
	Size               float64 // stroke width
	Glow               float64 // glow radius around the star head
}

// Layers maps each layer to its profile.
type Layers [layerCount]LayerProfile

// NewLayers derives layer profiles from cfg. Outer stars keep the configured
// star drag; inner ones are slower, burn out sooner and drag a little more.
func NewLayers(cfg config.Config) Layers {
	return Layers{
		LayerInner: {
			SpeedMin: 0.85, SpeedMax: 1.0,
			Decay: 1.1,
			Drag:  lessDrag(cfg.StarAirDrag, 0.005),
			Size:  2, Glow: 2,
		},
		LayerMiddle: {
			SpeedMin: 0.9, SpeedMax: 1.05,
			Decay: 1.05,
			Drag:  lessDrag(cfg.StarAirDrag, 0.002),
			Size:  2.5, Glow: 3,
		},
		LayerOuter: {
			SpeedMin: 0.95, SpeedMax: 1.05,
			Decay: 1,
			Drag:  cfg.StarAirDrag,
			Size:  3, Glow: 4,
		},
	}
}

// LayerFor classifies a radius factor against the configured thresholds.
func LayerFor(radiusFactor float64, cfg config.Config) Layer {
	switch {
	case radiusFactor > cfg.LayerOuterThreshold:
		return LayerOuter
	case radiusFactor > cfg.LayerMiddleThreshold:
		return LayerMiddle
	}
	return LayerInner
}

// lessDrag lowers a drag multiplier by delta, keeping it positive.
func lessDrag(drag, delta float64) float64 {
	if drag-delta <= 0 {
		return drag
	}
	return drag - delta
}
