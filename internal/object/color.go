package object

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/fireworks/internal/physics"
)

// Color identifies a particle color bucket. Values are hex strings so they
// double as map keys for draw batching.
type Color string

// Named shell colors.
const (
	Red    Color = "#ff0043"
	Green  Color = "#14fc56"
	Blue   Color = "#1e7fff"
	Purple Color = "#e60aff"
	Gold   Color = "#ffbf36"
	White  Color = "#ffffff"

	// Invisible particles are simulated but never drawn.
	Invisible Color = "_INVISIBLE_"
)

// Scheme is the palette shells draw their colors from, plus the RGB lookup
// the renderer uses for every bucket.
type Scheme struct {
	palette []Color
	rgb     map[Color]colorful.Color
}

// NewScheme parses hexes into a palette. At least one color is required.
func NewScheme(hexes []string) (*Scheme, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("color scheme: empty palette")
	}
	s := &Scheme{rgb: make(map[Color]colorful.Color, len(hexes)+2)}
	for _, named := range []Color{Red, Green, Blue, Purple, Gold, White} {
		c, _ := colorful.Hex(string(named))
		s.rgb[named] = c
	}
	for _, hex := range hexes {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("color scheme: %q: %w", hex, err)
		}
		// Normalize so "#FF0043" and "#ff0043" share a bucket.
		key := Color(c.Hex())
		if !s.contains(key) {
			s.palette = append(s.palette, key)
		}
		s.rgb[key] = c
	}
	return s, nil
}

// DefaultScheme returns the six named shell colors.
func DefaultScheme() *Scheme {
	s, _ := NewScheme([]string{string(Red), string(Green), string(Blue), string(Purple), string(Gold), string(White)})
	return s
}

func (s *Scheme) contains(c Color) bool {
	for _, p := range s.palette {
		if p == c {
			return true
		}
	}
	return false
}

// Palette returns the shell colors in configuration order.
func (s *Scheme) Palette() []Color {
	return s.palette
}

// Random picks a palette color.
func (s *Scheme) Random() Color {
	return physics.RandomChoice(s.palette)
}

// RandomPair picks two colors, distinct whenever the palette allows it.
func (s *Scheme) RandomPair() [2]Color {
	first := s.Random()
	if len(s.palette) < 2 {
		return [2]Color{first, first}
	}
	second := s.Random()
	for second == first {
		second = s.Random()
	}
	return [2]Color{first, second}
}

// RGB resolves a bucket color. Invisible and unknown colors resolve to black.
func (s *Scheme) RGB(c Color) colorful.Color {
	if rgb, ok := s.rgb[c]; ok {
		return rgb
	}
	return colorful.Color{}
}

// Visible reports whether particles of color c are drawn.
func (c Color) Visible() bool {
	return c != Invisible && c != ""
}
