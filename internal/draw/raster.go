package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// thinLine is the pixel width at or below which strokes are drawn as
// one-pixel Bresenham lines.
const thinLine = 1.5

// Raster is a software Surface: a premultiplied RGBA float buffer. The
// terminal presenter reads it back cell by cell.
type Raster struct {
	width, height int
	pix           []float32 // premultiplied r, g, b, a per pixel
	sx, sy        float64
}

var _ Surface = (*Raster)(nil)

// NewRaster creates a transparent raster with a 1:1 scale.
func NewRaster(width, height int) *Raster {
	r := &Raster{sx: 1, sy: 1}
	r.Resize(width, height)
	return r
}

func (r *Raster) Size() (int, int) { return r.width, r.height }

func (r *Raster) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	r.width, r.height = width, height
	if n := width * height * 4; cap(r.pix) >= n {
		r.pix = r.pix[:n]
		clear(r.pix)
	} else {
		r.pix = make([]float32, n)
	}
}

func (r *Raster) SetScale(sx, sy float64) {
	r.sx, r.sy = sx, sy
}

// Scale returns the logical-to-pixel scale.
func (r *Raster) Scale() (sx, sy float64) { return r.sx, r.sy }

func (r *Raster) Clear() { clear(r.pix) }

// At returns the premultiplied color of pixel (x, y). Out of range pixels
// are transparent.
func (r *Raster) At(x, y int) (cr, cg, cb, ca float64) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return 0, 0, 0, 0
	}
	i := (y*r.width + x) * 4
	return float64(r.pix[i]), float64(r.pix[i+1]), float64(r.pix[i+2]), float64(r.pix[i+3])
}

func (r *Raster) FillRect(x, y, w, h float64, p Paint) {
	x0 := int(math.Round(x * r.sx))
	y0 := int(math.Round(y * r.sy))
	x1 := int(math.Round((x + w) * r.sx))
	y1 := int(math.Round((y + h) * r.sy))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, r.width), min(y1, r.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			r.blend(px, py, p.Color, p.Alpha, p.Mode)
		}
	}
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, lineCap LineCap, p Paint) {
	ax, ay := x0*r.sx, y0*r.sy
	bx, by := x1*r.sx, y1*r.sy
	hw := width * r.sx / 2
	if hw*2 <= thinLine {
		r.bresenham(ax, ay, bx, by, p)
		return
	}

	reach := hw
	minX := int(math.Floor(math.Min(ax, bx) - reach))
	maxX := int(math.Ceil(math.Max(ax, bx) + reach))
	minY := int(math.Floor(math.Min(ay, by) - reach))
	maxY := int(math.Ceil(math.Max(ay, by) + reach))
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, r.width-1), min(maxY, r.height-1)

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	for py := minY; py <= maxY; py++ {
		cy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			cx := float64(px) + 0.5
			t := 0.0
			if lenSq > 0 {
				t = ((cx-ax)*dx + (cy-ay)*dy) / lenSq
			}
			if lineCap == CapButt && lenSq > 0 && (t < 0 || t > 1) {
				continue
			}
			t = math.Max(0, math.Min(1, t))
			qx, qy := ax+t*dx-cx, ay+t*dy-cy
			if qx*qx+qy*qy <= hw*hw {
				r.blend(px, py, p.Color, p.Alpha, p.Mode)
			}
		}
	}
}

// bresenham plots a one-pixel line between pixel-space endpoints.
func (r *Raster) bresenham(ax, ay, bx, by float64, p Paint) {
	x1, y1 := int(math.Floor(ax)), int(math.Floor(ay))
	x2, y2 := int(math.Floor(bx)), int(math.Floor(by))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		r.blend(x1, y1, p.Color, p.Alpha, p.Mode)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *Raster) FillCircle(x, y, radius float64, p Paint) {
	cx, cy := x*r.sx, y*r.sy
	rx, ry := radius*r.sx, radius*r.sy
	if rx <= 0.5 && ry <= 0.5 {
		r.blend(int(math.Floor(cx)), int(math.Floor(cy)), p.Color, p.Alpha, p.Mode)
		return
	}
	r.eachInEllipse(cx, cy, rx, ry, func(px, py int, _ float64) {
		r.blend(px, py, p.Color, p.Alpha, p.Mode)
	})
}

func (r *Raster) FillRadialGradient(x, y, radius float64, stops []GradientStop, mode Composite) {
	cx, cy := x*r.sx, y*r.sy
	rx, ry := radius*r.sx, radius*r.sy
	if rx <= 0 || ry <= 0 {
		return
	}
	r.eachInEllipse(cx, cy, rx, ry, func(px, py int, t float64) {
		c, a := GradientAt(stops, t)
		r.blend(px, py, c, a, mode)
	})
}

// eachInEllipse calls fn for every pixel whose center lies inside the
// ellipse, with t the normalized distance from the center.
func (r *Raster) eachInEllipse(cx, cy, rx, ry float64, fn func(px, py int, t float64)) {
	minX := max(int(math.Floor(cx-rx)), 0)
	maxX := min(int(math.Ceil(cx+rx)), r.width-1)
	minY := max(int(math.Floor(cy-ry)), 0)
	maxY := min(int(math.Ceil(cy+ry)), r.height-1)
	for py := minY; py <= maxY; py++ {
		ny := (float64(py) + 0.5 - cy) / ry
		for px := minX; px <= maxX; px++ {
			nx := (float64(px) + 0.5 - cx) / rx
			d := nx*nx + ny*ny
			if d > 1 {
				continue
			}
			fn(px, py, math.Sqrt(d))
		}
	}
}

// blend composites a straight-alpha color onto pixel (x, y).
func (r *Raster) blend(x, y int, c colorful.Color, alpha float64, mode Composite) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height || alpha <= 0 {
		return
	}
	as := float32(math.Min(alpha, 1))
	src := [3]float32{float32(c.R) * as, float32(c.G) * as, float32(c.B) * as}

	i := (y*r.width + x) * 4
	dst := r.pix[i : i+4 : i+4]
	ab := dst[3]
	switch mode {
	case Lighten:
		for k := 0; k < 3; k++ {
			cs, cb := src[k], dst[k]
			dst[k] = max(cs*ab, cb*as) + cs*(1-ab) + cb*(1-as)
		}
	default:
		for k := 0; k < 3; k++ {
			dst[k] = src[k] + dst[k]*(1-as)
		}
	}
	dst[3] = as + ab - as*ab
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
