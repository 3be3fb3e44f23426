// Package ebitendraw implements draw.Surface on an offscreen ebiten image so
// the engine can paint straight onto the GPU.
package ebitendraw

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/fireworks/internal/draw"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// blendLighten keeps the per-channel maximum of source and destination.
var blendLighten = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationMax,
	BlendOperationAlpha:         ebiten.BlendOperationMax,
}

// Surface is a draw.Surface backed by an ebiten image.
type Surface struct {
	img           *ebiten.Image
	width, height int
	sx, sy        float64

	vertices []ebiten.Vertex
	indices  []uint16
	op       ebiten.DrawTrianglesOptions
}

var _ draw.Surface = (*Surface)(nil)

// NewSurface creates a transparent surface of the given pixel size.
func NewSurface(width, height int) *Surface {
	width, height = max(width, 1), max(height, 1)
	return &Surface{
		img:    ebiten.NewImage(width, height),
		width:  width,
		height: height,
		sx:     1,
		sy:     1,
		op: ebiten.DrawTrianglesOptions{
			ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
			AntiAlias:      true,
		},
	}
}

// Image returns the backing image for compositing onto the screen.
func (s *Surface) Image() *ebiten.Image { return s.img }

func (s *Surface) Size() (int, int) { return s.width, s.height }

// Resize replaces the backing image when the size changes.
func (s *Surface) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == s.width && height == s.height {
		s.img.Clear()
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(width, height)
	s.width, s.height = width, height
}

func (s *Surface) SetScale(sx, sy float64) {
	s.sx, s.sy = sx, sy
}

func (s *Surface) Clear() { s.img.Clear() }

func (s *Surface) FillRect(x, y, w, h float64, p draw.Paint) {
	c := premultiply(p.Color.R, p.Color.G, p.Color.B, p.Alpha)
	s.vertices, s.indices = appendQuad(s.vertices[:0], s.indices[:0],
		[4][2]float64{
			{x * s.sx, y * s.sy},
			{(x + w) * s.sx, y * s.sy},
			{x * s.sx, (y + h) * s.sy},
			{(x + w) * s.sx, (y + h) * s.sy},
		}, c)
	s.flush(p.Mode)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, lineCap draw.LineCap, p draw.Paint) {
	c := premultiply(p.Color.R, p.Color.G, p.Color.B, p.Alpha)
	ax, ay := x0*s.sx, y0*s.sy
	bx, by := x1*s.sx, y1*s.sy
	hw := max(width*s.sx, 1) / 2

	s.vertices, s.indices = appendSegment(s.vertices[:0], s.indices[:0], ax, ay, bx, by, hw, c)
	if lineCap == draw.CapRound {
		s.vertices, s.indices = appendDisc(s.vertices, s.indices, ax, ay, hw, hw, c)
		s.vertices, s.indices = appendDisc(s.vertices, s.indices, bx, by, hw, hw, c)
	}
	s.flush(p.Mode)
}

func (s *Surface) FillCircle(x, y, r float64, p draw.Paint) {
	c := premultiply(p.Color.R, p.Color.G, p.Color.B, p.Alpha)
	s.vertices, s.indices = appendDisc(s.vertices[:0], s.indices[:0],
		x*s.sx, y*s.sy, max(r*s.sx, .5), max(r*s.sy, .5), c)
	s.flush(p.Mode)
}

func (s *Surface) FillRadialGradient(x, y, r float64, stops []draw.GradientStop, mode draw.Composite) {
	if len(stops) == 0 || r <= 0 {
		return
	}
	s.vertices, s.indices = appendGradient(s.vertices[:0], s.indices[:0],
		x*s.sx, y*s.sy, r*s.sx, r*s.sy, stops)
	s.flush(mode)
}

func (s *Surface) flush(mode draw.Composite) {
	if len(s.indices) == 0 {
		return
	}
	s.op.Blend = ebiten.BlendSourceOver
	if mode == draw.Lighten {
		s.op.Blend = blendLighten
	}
	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, &s.op)
}

// rgba is a premultiplied vertex color.
type rgba [4]float32

func premultiply(r, g, b, a float64) rgba {
	a = math.Max(0, math.Min(1, a))
	return rgba{float32(r * a), float32(g * a), float32(b * a), float32(a)}
}

func vertex(x, y float64, c rgba) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 1, SrcY: 1,
		ColorR: c[0], ColorG: c[1], ColorB: c[2], ColorA: c[3],
	}
}

// appendQuad adds two triangles over corners ordered top-left, top-right,
// bottom-left, bottom-right.
func appendQuad(vs []ebiten.Vertex, is []uint16, q [4][2]float64, c rgba) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(vs))
	for _, p := range q {
		vs = append(vs, vertex(p[0], p[1], c))
	}
	is = append(is, base, base+1, base+2, base+1, base+3, base+2)
	return vs, is
}

// appendSegment adds the rectangle of half width hw around a→b.
func appendSegment(vs []ebiten.Vertex, is []uint16, ax, ay, bx, by, hw float64, c rgba) ([]ebiten.Vertex, []uint16) {
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		return appendDisc(vs, is, ax, ay, hw, hw, c)
	}
	nx, ny := -dy/l*hw, dx/l*hw
	return appendQuad(vs, is, [4][2]float64{
		{ax + nx, ay + ny},
		{bx + nx, by + ny},
		{ax - nx, ay - ny},
		{bx - nx, by - ny},
	}, c)
}

// segments picks a polygon resolution for an ellipse with the given radii.
func segments(rx, ry float64) int {
	return min(max(int(math.Max(rx, ry)*2), 8), 64)
}

// appendDisc adds a triangle fan approximating an ellipse.
func appendDisc(vs []ebiten.Vertex, is []uint16, cx, cy, rx, ry float64, c rgba) ([]ebiten.Vertex, []uint16) {
	n := segments(rx, ry)
	base := uint16(len(vs))
	vs = append(vs, vertex(cx, cy, c))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		vs = append(vs, vertex(cx+rx*math.Cos(a), cy+ry*math.Sin(a), c))
	}
	for i := 0; i < n; i++ {
		is = append(is, base, base+1+uint16(i), base+1+uint16((i+1)%n))
	}
	return vs, is
}

// appendGradient adds concentric rings whose vertex colors follow the stops.
// Colors are interpolated linearly between stop offsets, so one ring per stop
// interval reproduces the gradient.
func appendGradient(vs []ebiten.Vertex, is []uint16, cx, cy, rx, ry float64, stops []draw.GradientStop) ([]ebiten.Vertex, []uint16) {
	n := segments(rx, ry)
	offsets := make([]float64, 0, len(stops)+2)
	if stops[0].Offset > 0 {
		offsets = append(offsets, 0)
	}
	for _, st := range stops {
		offsets = append(offsets, st.Offset)
	}
	if offsets[len(offsets)-1] < 1 {
		offsets = append(offsets, 1)
	}

	colorAt := func(t float64) rgba {
		col, a := draw.GradientAt(stops, t)
		return premultiply(col.R, col.G, col.B, a)
	}

	base := uint16(len(vs))
	vs = append(vs, vertex(cx, cy, colorAt(0)))
	prevRing := -1
	for _, t := range offsets {
		if t <= 0 {
			continue
		}
		c := colorAt(t)
		ring := len(vs) - int(base)
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			vs = append(vs, vertex(cx+rx*t*math.Cos(a), cy+ry*t*math.Sin(a), c))
		}
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			cur, next := base+uint16(ring+i), base+uint16(ring+j)
			if prevRing < 0 {
				is = append(is, base, cur, next)
				continue
			}
			pCur, pNext := base+uint16(prevRing+i), base+uint16(prevRing+j)
			is = append(is, pCur, cur, next, pCur, next, pNext)
		}
		prevRing = ring
	}
	return vs, is
}
