package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func newTestLayers(c *Canvas) (trail, overlay *Raster) {
	w, h := c.PixelSize()
	trail, overlay = NewRaster(w, h), NewRaster(w, h)
	s := c.Scale()
	trail.SetScale(s, s)
	overlay.SetScale(s, s)
	return trail, overlay
}

func TestCanvasGeometry(t *testing.T) {
	c := NewCanvas(100, 30, 1000)
	if w, h := c.PixelSize(); w != 100 || h != 60 {
		t.Fatalf("PixelSize() = %d, %d", w, h)
	}
	if c.Scale() != 0.1 {
		t.Errorf("Scale() = %v", c.Scale())
	}
	if c.LogicalHeight() != 600 {
		t.Errorf("LogicalHeight() = %v, want 600", c.LogicalHeight())
	}

	col, row := c.LogicalToTerminal(505, 215)
	if col != 51 || row != 11 {
		t.Errorf("LogicalToTerminal = %d, %d; want 51, 11", col, row)
	}
	x, y := c.TerminalToLogical(col, row)
	if gotCol, gotRow := c.LogicalToTerminal(x, y); gotCol != col || gotRow != row {
		t.Errorf("round trip through %v, %v landed on %d, %d", x, y, gotCol, gotRow)
	}
}

func TestRenderWritesOnlyChangedCells(t *testing.T) {
	c := NewCanvas(20, 5, 200)
	trail, overlay := newTestLayers(c)

	var out bytes.Buffer
	c.Compose(colorful.Color{}, trail, overlay)
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out.String(), "H"); got != 5 {
		t.Errorf("first render moved the cursor %d times, want once per row", got)
	}

	out.Reset()
	c.Compose(colorful.Color{}, trail, overlay)
	c.Render(&out)
	if out.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", out.String())
	}

	// One white pixel in the top half of cell (3, 2).
	trail.FillRect(20, 20, 10, 10, Paint{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 1})
	out.Reset()
	c.Compose(colorful.Color{}, trail, overlay)
	c.Render(&out)
	got := out.String()
	if !strings.HasPrefix(got, "\033[2;3H") {
		t.Errorf("changed cell not addressed first: %q", got)
	}
	if !strings.Contains(got, "38;2;255;255;255m") || !strings.ContainsRune(got, BlockUpperHalf) {
		t.Errorf("white top pixel not drawn as foreground half block: %q", got)
	}
	if strings.Count(got, "H") != 1 {
		t.Errorf("more than one cell written: %q", got)
	}

	out.Reset()
	c.ForceRedraw()
	c.Render(&out)
	if strings.Count(out.String(), "H") != 5 {
		t.Error("ForceRedraw did not repaint every row")
	}
}

func TestMarkTextDirtyRepaintsCells(t *testing.T) {
	c := NewCanvas(10, 3, 100)
	trail, _ := newTestLayers(c)
	var out bytes.Buffer
	c.Compose(colorful.Color{}, trail, nil)
	c.Render(&out)

	c.MarkTextDirty(4, 2, 3)
	c.MarkTextDirty(9, 3, 10) // clipped at the right edge
	c.MarkTextDirty(1, 7, 2)  // off canvas
	out.Reset()
	c.Render(&out)
	got := out.String()
	if !strings.HasPrefix(got, "\033[2;4H") || !strings.Contains(got, "\033[3;9H") {
		t.Errorf("dirty cells not addressed: %q", got)
	}
	if n := strings.Count(got, " "); n != 5 {
		t.Errorf("repainted %d cells, want 5", n)
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Errorf("dirty marks survived a render: %q", out.String())
	}
}

func TestComposeSkyOverlay(t *testing.T) {
	c := NewCanvas(2, 1, 2)
	trail, overlay := newTestLayers(c)

	// Left column: dim red trail over a blue-ish sky. Right column: white overlay.
	trail.FillRect(0, 0, 1, 2, Paint{Color: colorful.Color{R: 0.5}, Alpha: 1})
	overlay.FillRect(1, 0, 1, 2, Paint{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 1})
	sky := colorful.Color{R: 0.1, G: 0.05, B: 0.1}
	c.Compose(sky, trail, overlay)

	if got, want := c.frame[0], (rgb{128, 13, 26}); got != want {
		t.Errorf("trail pixel = %v, want %v", got, want)
	}
	if got, want := c.frame[1], (rgb{255, 255, 255}); got != want {
		t.Errorf("overlay pixel = %v, want %v", got, want)
	}

	c.Compose(sky, trail, nil)
	if got, want := c.frame[1], (rgb{26, 13, 26}); got != want {
		t.Errorf("nil overlay pixel = %v, want sky %v", got, want)
	}
}

func TestRenderBorderOnlyWithOffset(t *testing.T) {
	c := NewCanvas(10, 4, 100)
	var out bytes.Buffer
	c.RenderBorder(&out)
	if strings.ContainsAny(out.String(), "─│") {
		t.Error("border drawn without offset")
	}

	c.SetOffset(3, 2)
	out.Reset()
	c.RenderBorder(&out)
	if !strings.Contains(out.String(), "┌") || !strings.Contains(out.String(), "┘") {
		t.Errorf("missing corners: %q", out.String())
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	big := strings.Repeat("x", maxChunkSize*3)
	cw.WriteString(big)
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if want := "\033[2;3Hhi" + big; out.String() != want {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(want))
	}
	if cw.Len() != 0 {
		t.Error("buffer not reset after Flush")
	}
}
