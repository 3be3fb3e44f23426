package draw

import "github.com/lucasb-eyer/go-colorful"

// Composite selects how painted pixels combine with what is already there.
type Composite uint8

const (
	SourceOver Composite = iota
	// Lighten keeps the brighter of source and destination per channel,
	// so overlapping particles never darken each other.
	Lighten
)

// LineCap is the shape of a stroked segment's ends.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
)

// Paint is the color and compositing applied by one drawing call.
type Paint struct {
	Color colorful.Color
	Alpha float64
	Mode  Composite
}

// GradientStop is one color stop of a radial gradient. Offset runs from 0 at
// the center to 1 at the rim.
type GradientStop struct {
	Offset float64
	Color  colorful.Color
	Alpha  float64
}

// Surface is a drawing target addressed in logical stage units. SetScale maps
// those units to device pixels; Resize changes the pixel size and drops the
// current contents.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	SetScale(sx, sy float64)
	Clear()
	FillRect(x, y, w, h float64, p Paint)
	StrokeLine(x0, y0, x1, y1, width float64, cap LineCap, p Paint)
	FillCircle(x, y, r float64, p Paint)
	FillRadialGradient(x, y, r float64, stops []GradientStop, mode Composite)
}

// GradientAt samples stops at offset t. Stops must be sorted by Offset.
func GradientAt(stops []GradientStop, t float64) (colorful.Color, float64) {
	if len(stops) == 0 {
		return colorful.Color{}, 0
	}
	if t <= stops[0].Offset {
		return stops[0].Color, stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		b := stops[i]
		if t > b.Offset {
			continue
		}
		a := stops[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color, b.Alpha
		}
		f := (t - a.Offset) / span
		return a.Color.BlendRgb(b.Color, f), a.Alpha + (b.Alpha-a.Alpha)*f
	}
	last := stops[len(stops)-1]
	return last.Color, last.Alpha
}
