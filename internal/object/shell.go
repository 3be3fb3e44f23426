package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/physics"
)

// ColorMode selects how a shell colors its stars.
type ColorMode uint8

const (
	ColorSingle ColorMode = iota // every star shares Colors[0]
	ColorDual                    // two half-circle arcs, Colors[0] and Colors[1]
	ColorRandom                  // each star picks its own palette color
)

// Glitter is the spark trail intensity of burst stars.
type Glitter uint8

const (
	GlitterNone Glitter = iota
	GlitterLight
	GlitterMedium
	GlitterHeavy
)

// ParseGlitter maps a configured level to a Glitter. The second result is
// false for "auto" and unknown levels, meaning the preset decides.
func ParseGlitter(level string) (Glitter, bool) {
	switch level {
	case config.GlitterNone:
		return GlitterNone, true
	case config.GlitterLight:
		return GlitterLight, true
	case config.GlitterMedium:
		return GlitterMedium, true
	case config.GlitterHeavy:
		return GlitterHeavy, true
	}
	return GlitterNone, false
}

// ParseColorMode maps a configured color mode to a ColorMode. The second
// result is false for "auto" and unknown modes, meaning the preset decides.
func ParseColorMode(mode string) (ColorMode, bool) {
	switch mode {
	case config.ColorModeSingle:
		return ColorSingle, true
	case config.ColorModeDual:
		return ColorDual, true
	case config.ColorModeRandom:
		return ColorRandom, true
	}
	return ColorSingle, false
}

// glitterProfile is the star spark setup for one glitter level. Heavier
// glitter sparks more often, faster and longer.
type glitterProfile struct {
	freq, speed, life, variation float64
}

var glitterProfiles = [...]glitterProfile{
	GlitterLight:  {freq: 400, speed: 0.3, life: 300, variation: 2},
	GlitterMedium: {freq: 200, speed: 0.44, life: 700, variation: 2},
	GlitterHeavy:  {freq: 80, speed: 0.8, life: 1000, variation: 1},
}

// Shell is a detonation recipe. It is built per launch, carried by the
// rocket and consumed once by the burst.
type Shell struct {
	Size              float64
	SpreadSize        float64
	StarCount         int // 0 derives the count from SpreadSize and StarDensity
	StarDensity       float64
	StarLife          float64
	StarLifeVariation float64
	Mode              ColorMode
	Colors            [2]Color
	SecondColor       Color
	Glitter           Glitter
	GlitterColor      Color
	Horsetail         bool
	Strobe            bool
}

// CrysanthemumShell is the stock round shell: a full sphere of stars,
// usually one color, sometimes two halves or a confetti of every palette
// color, sometimes with a light white glitter.
func CrysanthemumShell(size float64, scheme *Scheme) Shell {
	sh := Shell{
		Size:              size,
		SpreadSize:        300 + size*100,
		StarLife:          900 + size*200,
		StarLifeVariation: 0.125,
		StarDensity:       1.25,
		GlitterColor:      White,
	}
	switch r := rand.Float64(); {
	case r < 0.72:
		sh.Mode = ColorSingle
		c := scheme.Random()
		sh.Colors = [2]Color{c, c}
	case r < 0.92:
		sh.Mode = ColorDual
		sh.Colors = scheme.RandomPair()
	default:
		sh.Mode = ColorRandom
		sh.Colors = scheme.RandomPair()
	}
	if physics.Chance(0.25) {
		sh.Glitter = GlitterLight
	} else if sh.Mode == ColorSingle && physics.Chance(0.2) {
		// Stars drop out for the last third of their life.
		sh.SecondColor = Invisible
	}
	return sh
}

// StrobeShell bursts into single-color stars that twinkle as they fall,
// trailing sparks of their own color.
func StrobeShell(size float64, scheme *Scheme) Shell {
	c := scheme.Random()
	return Shell{
		Size:              size,
		SpreadSize:        280 + size*92,
		StarLife:          1100 + size*200,
		StarLifeVariation: 0.125,
		StarDensity:       1.1,
		Mode:              ColorSingle,
		Colors:            [2]Color{c, c},
		Glitter:           GlitterLight,
		GlitterColor:      c,
		Strobe:            true,
	}
}

// HorsetailShell throws a small, dense shell whose stars keep the rocket's
// momentum and droop like a horse's tail. Its rocket never goes dark.
func HorsetailShell(size float64, scheme *Scheme) Shell {
	c := scheme.Random()
	return Shell{
		Size:              size,
		SpreadSize:        250 + size*38,
		StarLife:          1200 + size*200,
		StarLifeVariation: 0.125,
		StarDensity:       0.9,
		Mode:              ColorSingle,
		Colors:            [2]Color{c, c},
		Glitter:           GlitterMedium,
		GlitterColor:      c,
		Horsetail:         true,
	}
}

// RandomShell picks a preset for a salvo rocket and applies cfg overrides.
func RandomShell(cfg config.Config, scheme *Scheme) Shell {
	var sh Shell
	switch r := rand.Float64(); {
	case r < 0.15:
		sh = StrobeShell(cfg.ShellSize, scheme)
	case r < 0.3:
		sh = HorsetailShell(cfg.ShellSize, scheme)
	default:
		sh = CrysanthemumShell(cfg.ShellSize, scheme)
	}
	return withOverrides(sh, cfg, scheme)
}

// NewShell builds the stock crysanthemum shell with cfg overrides applied.
func NewShell(cfg config.Config, scheme *Scheme) Shell {
	return withOverrides(CrysanthemumShell(cfg.ShellSize, scheme), cfg, scheme)
}

func withOverrides(sh Shell, cfg config.Config, scheme *Scheme) Shell {
	sh.StarLifeVariation = cfg.StarLifeVariation
	if cfg.SpreadSize > 0 {
		sh.SpreadSize = cfg.SpreadSize
	}
	if cfg.StarCount > 0 {
		sh.StarCount = cfg.StarCount
	}
	if g, ok := ParseGlitter(cfg.GlitterLevel); ok {
		sh.Glitter = g
	}
	if m, ok := ParseColorMode(cfg.ColorMode); ok && m != sh.Mode {
		sh.Mode = m
		switch m {
		case ColorSingle:
			sh.Colors[1] = sh.Colors[0]
		case ColorDual:
			if sh.Colors[0] == sh.Colors[1] {
				second := sh.Colors[0]
				for second == sh.Colors[0] && len(scheme.Palette()) > 1 {
					second = scheme.Random()
				}
				sh.Colors[1] = second
			}
		case ColorRandom:
			// Stars pick their own colors; a second color would recolor them all alike.
			sh.SecondColor = ""
		}
	}
	return sh
}

// Stars returns how many stars the burst aims for.
func (sh Shell) Stars() int {
	if sh.StarCount > 0 {
		return sh.StarCount
	}
	n := int(math.Max(6, math.Pow(sh.SpreadSize/54, 2)*sh.StarDensity))
	return n
}

// LaunchVelocity is the initial climb speed for a rocket that has to rise
// distance stage units: sub-linear so tall launches are not too fast.
func LaunchVelocity(distance float64, cfg config.Config) float64 {
	if distance <= 0 {
		return cfg.RocketSpeedMin
	}
	return math.Pow(distance*cfg.LaunchScale, cfg.LaunchExponent)
}

// rocketColor is the comet color a shell launches with.
func (sh Shell) rocketColor() Color {
	if sh.Mode == ColorRandom || !sh.Colors[0].Visible() {
		return White
	}
	return sh.Colors[0]
}
