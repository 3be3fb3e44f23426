package draw

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// rgb is an 8-bit terminal color.
type rgb struct {
	r, g, b uint8
}

// Canvas presents a composed frame on a truecolor terminal. Every cell
// shows two stacked pixels with the upper-half block: foreground is the
// top pixel, background the bottom one. Only cells that changed since the
// last Render are written.
type Canvas struct {
	termWidth      int // Actual terminal columns
	termHeight     int // Actual terminal rows
	subPixelHeight int // termHeight * 2

	frame []rgb  // Composed pixels: [y * termWidth + x]
	shown []rgb  // Pixels on the terminal after the last Render
	stale []bool // Cells overwritten by text since the last Render
	dirty bool   // Shown buffer is stale, repaint every cell

	// Scaling from logical to pixel coordinates. Pixels are square, so the
	// logical height follows the terminal's aspect ratio.
	logicalWidth float64
	scale        float64

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf []byte // Reused output buffer
}

// NewCanvas creates a canvas for a terminal of termWidth x termHeight cells
// showing a stage logicalWidth units wide.
func NewCanvas(termWidth, termHeight int, logicalWidth float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical width. The next Render repaints every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 1), max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.frame = make([]rgb, c.subPixelHeight*termWidth)
		c.shown = make([]rgb, c.subPixelHeight*termWidth)
		c.stale = make([]bool, termHeight*termWidth)
		c.dirty = true
	}
	c.scale = float64(termWidth) / c.logicalWidth
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.dirty = true
}

// MarkTextDirty marks n cells starting at 1-based (col, row) as overwritten
// by text, so the next Render repaints them even if the frame did not change.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	if row < 1 || row > c.termHeight {
		return
	}
	start := max(col-1, 0)
	end := min(col-1+n, c.termWidth)
	base := (row - 1) * c.termWidth
	for i := start; i < end; i++ {
		c.stale[base+i] = true
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.dirty = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// PixelSize returns the pixel resolution layers must be rendered at.
func (c *Canvas) PixelSize() (width, height int) {
	return c.termWidth, c.subPixelHeight
}

// Scale returns the logical-to-pixel factor, the same on both axes.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// LogicalWidth returns the logical stage width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical stage height for the current terminal.
func (c *Canvas) LogicalHeight() float64 {
	return float64(c.subPixelHeight) / c.scale
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Compose flattens the layers into the frame: the sky shows through the
// trail layer wherever that is darker, and the overlay is painted on top.
// Layers must match PixelSize; a nil overlay is skipped.
func (c *Canvas) Compose(sky colorful.Color, trail, overlay *Raster) {
	for y := 0; y < c.subPixelHeight; y++ {
		row := y * c.termWidth
		for x := 0; x < c.termWidth; x++ {
			tr, tg, tb, _ := trail.At(x, y)
			r := math.Max(sky.R, tr)
			g := math.Max(sky.G, tg)
			b := math.Max(sky.B, tb)
			if overlay != nil {
				or, og, ob, oa := overlay.At(x, y)
				r = or + r*(1-oa)
				g = og + g*(1-oa)
				b = ob + b*(1-oa)
			}
			c.frame[row+x] = rgb{to8(r), to8(g), to8(b)}
		}
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes the changed cells to w using half-block characters and
// 24-bit color escapes.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	var fg, bg rgb
	colorsSet := false
	cursorCol, cursorRow := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.frame[topOffset+col]
			bottom := c.frame[bottomOffset+col]
			cell := row*c.termWidth + col
			stale := c.stale[cell]
			c.stale[cell] = false
			if !c.dirty && !stale && top == c.shown[topOffset+col] && bottom == c.shown[bottomOffset+col] {
				continue
			}
			c.shown[topOffset+col] = top
			c.shown[bottomOffset+col] = bottom

			if row != cursorRow || col != cursorCol {
				buf = appendMoveCursor(buf, col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if top == bottom {
				if !colorsSet || bg != bottom {
					buf = appendColor(buf, sgrBackground, bottom)
					bg = bottom
				}
				buf = append(buf, ' ')
			} else {
				if !colorsSet || fg != top {
					buf = appendColor(buf, sgrForeground, top)
					fg = top
				}
				if !colorsSet || bg != bottom {
					buf = appendColor(buf, sgrBackground, bottom)
					bg = bottom
				}
				buf = append(buf, string(BlockUpperHalf)...)
			}
			colorsSet = true
			cursorCol, cursorRow = col+1, row
		}
	}
	c.dirty = false
	if colorsSet {
		buf = append(buf, sgrReset...)
	}
	c.renderBuf = buf

	// Write output in chunks for optimal network flow
	for data := buf; len(data) > 0; {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func appendMoveCursor(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

func appendColor(buf []byte, sgr string, c rgb) []byte {
	buf = append(buf, sgr...)
	buf = strconv.AppendUint(buf, uint64(c.r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(c.g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(c.b), 10)
	return append(buf, 'm')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*2*12)
	buf.WriteString(sgrDim)

	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	buf.WriteString(sgrReset)
	io.WriteString(w, buf.String())
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scale))
	py := int(math.Floor(y * c.scale))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal cell to the logical
// coordinates of its center.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1) + 0.5
	py := float64(row-1)*2 + 1
	return px / c.scale, py / c.scale
}
