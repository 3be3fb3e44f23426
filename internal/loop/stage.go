package loop

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/object"
)

// Sky glow tuning.
const (
	skyMaxSaturation = 30.0 / 255
	skyMaxStars      = 500
	skyEase          = 10.0
)

// Overlay cores run from the star back along this many frames of velocity.
const coreLength = 1.6

// Rocket drawing.
const (
	rocketWidth      = 2.0
	rocketSampleSize = 1.5
	rocketHeadSize   = 1.2
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// Stage paints a System onto two layers. The trail layer is never cleared,
// only faded toward black, so moving particles leave streaks; the overlay
// is cleared every frame and carries the bright particle cores.
type Stage struct {
	sys     *object.System
	trail   draw.Surface
	overlay draw.Surface // may be nil

	sky   colorful.Color
	flash [4]draw.GradientStop
}

// NewStage creates a stage over sys. overlay may be nil, in which case
// overlay drawing is skipped.
func NewStage(sys *object.System, trail, overlay draw.Surface) *Stage {
	return &Stage{sys: sys, trail: trail, overlay: overlay}
}

// Resize recreates both layers at pixelWidth x pixelHeight, applies the
// logical-to-pixel scale and tells the system the new stage size. Particles
// in flight keep their coordinates.
func (s *Stage) Resize(pixelWidth, pixelHeight int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	for _, layer := range s.layers() {
		layer.Resize(pixelWidth, pixelHeight)
		layer.SetScale(scale, scale)
	}
	s.sys.SetStageSize(float64(pixelWidth)/scale, float64(pixelHeight)/scale)
}

// Clear wipes both layers.
func (s *Stage) Clear() {
	for _, layer := range s.layers() {
		layer.Clear()
	}
}

// Sky returns the current sky glow color hosts paint behind the layers.
func (s *Stage) Sky() colorful.Color {
	return s.sky
}

func (s *Stage) layers() []draw.Surface {
	if s.overlay == nil {
		return []draw.Surface{s.trail}
	}
	return []draw.Surface{s.trail, s.overlay}
}

// Draw paints one frame. speed is the frame-normalized speed factor the
// simulation stepped with.
func (s *Stage) Draw(speed float64) {
	s.updateSky(speed)

	w, h := s.sys.StageSize()
	cfg := s.sys.Config()
	scheme := s.sys.Scheme()

	s.trail.FillRect(0, 0, w, h, draw.Paint{Color: black, Alpha: math.Min(1, cfg.TrailFade*speed)})
	if s.overlay != nil {
		s.overlay.Clear()
	}

	for _, f := range s.sys.Flashes() {
		s.drawFlash(f, scheme.RGB(f.Color))
	}

	for _, c := range s.sys.BucketColors() {
		if !c.Visible() {
			continue
		}
		rgb := scheme.RGB(c)
		for _, st := range s.sys.Stars(c) {
			s.trail.StrokeLine(st.X, st.Y, st.PrevX, st.PrevY, st.Size, draw.CapRound,
				draw.Paint{Color: rgb, Alpha: st.Alpha, Mode: draw.Lighten})
			if s.overlay != nil {
				s.overlay.StrokeLine(st.X, st.Y, st.X-st.VX*coreLength, st.Y-st.VY*coreLength, 1, draw.CapRound,
					draw.Paint{Color: white, Alpha: st.Alpha})
			}
		}
	}

	sparkWidth := 1.0
	if cfg.HighQuality {
		sparkWidth = 0.75
	}
	for _, c := range s.sys.BucketColors() {
		if !c.Visible() {
			continue
		}
		rgb := scheme.RGB(c)
		for _, sp := range s.sys.Sparks(c) {
			s.trail.StrokeLine(sp.X, sp.Y, sp.PrevX, sp.PrevY, sparkWidth, draw.CapButt,
				draw.Paint{Color: rgb, Alpha: sp.Alpha, Mode: draw.Lighten})
		}
	}

	for _, r := range s.sys.Rockets() {
		s.drawRocket(r, scheme.RGB(r.Color))
	}
}

// drawFlash paints a burst flash: a white-hot core falling off through the
// flash color to transparent.
func (s *Stage) drawFlash(f *object.Flash, c colorful.Color) {
	s.flash = [4]draw.GradientStop{
		{Offset: 0.024, Color: white, Alpha: f.Alpha},
		{Offset: 0.125, Color: c, Alpha: 0.2 * f.Alpha},
		{Offset: 0.32, Color: c, Alpha: 0.11 * f.Alpha},
		{Offset: 1, Color: c, Alpha: 0},
	}
	s.trail.FillRadialGradient(f.X, f.Y, f.Radius, s.flash[:], draw.SourceOver)
}

func (s *Stage) drawRocket(r *object.Rocket, c colorful.Color) {
	if !r.Visible {
		return
	}
	s.trail.StrokeLine(r.X, r.Y, r.PrevX, r.PrevY, rocketWidth, draw.CapRound,
		draw.Paint{Color: c, Alpha: 1, Mode: draw.Lighten})
	r.Trail.Each(func(p object.Point, rank float64) {
		s.trail.FillCircle(p.X, p.Y, rocketSampleSize*rank, draw.Paint{Color: c, Alpha: 0.6 * rank, Mode: draw.Lighten})
	})
	if s.overlay != nil {
		s.overlay.FillCircle(r.X, r.Y, rocketHeadSize, draw.Paint{Color: white, Alpha: 1})
	}
}

// updateSky eases the sky toward the count-weighted color of the live
// stars, brighter the more stars there are.
func (s *Stage) updateSky(speed float64) {
	var r, g, b float64
	total := 0
	scheme := s.sys.Scheme()
	for _, c := range s.sys.BucketColors() {
		if !c.Visible() {
			continue
		}
		n := len(s.sys.Stars(c))
		if n == 0 {
			continue
		}
		rgb := scheme.RGB(c)
		r += rgb.R * float64(n)
		g += rgb.G * float64(n)
		b += rgb.B * float64(n)
		total += n
	}

	var target colorful.Color
	if total > 0 {
		intensity := math.Pow(math.Min(1, float64(total)/skyMaxStars), 0.3)
		peak := math.Max(1.0/255, math.Max(r, math.Max(g, b)))
		k := skyMaxSaturation * intensity / peak
		target = colorful.Color{R: r * k, G: g * k, B: b * k}
	}

	step := math.Min(1, speed/skyEase)
	s.sky = s.sky.BlendRgb(target, step)
}
