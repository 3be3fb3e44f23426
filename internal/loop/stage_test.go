package loop

import (
	"testing"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/object"
)

func newTestStage(t *testing.T, overlay draw.Surface) (*Stage, *object.System, *draw.Raster) {
	t.Helper()
	cfg := config.Default()
	cfg.GlitterLevel = config.GlitterNone
	sys := object.NewSystem(cfg, object.DefaultScheme(), nil)
	trail := draw.NewRaster(0, 0)
	st := NewStage(sys, trail, overlay)
	st.Resize(100, 100, 0.1)
	return st, sys, trail
}

func TestStageWithoutOverlay(t *testing.T) {
	st, sys, trail := newTestStage(t, nil)
	sys.DirectBurst(500, 500)
	for i := 0; i < 10; i++ {
		sys.Step(nominalFrameMs)
		st.Draw(1)
	}
	if litPixels(trail) == 0 {
		t.Error("burst left nothing on the trail layer")
	}
	st.Clear()
	if litPixels(trail) != 0 {
		t.Error("Clear left pixels behind")
	}
}

func TestStageOverlayIsRedrawnEachFrame(t *testing.T) {
	overlay := draw.NewRaster(0, 0)
	st, sys, _ := newTestStage(t, overlay)
	sys.DirectBurst(500, 500)
	sys.Step(nominalFrameMs)
	st.Draw(1)
	if litPixels(overlay) == 0 {
		t.Fatal("no star cores on the overlay")
	}

	sys.Clear()
	st.Draw(1)
	if n := litPixels(overlay); n != 0 {
		t.Errorf("overlay kept %d pixels from the previous frame", n)
	}
}

func TestStageSkyTracksStarColor(t *testing.T) {
	st, sys, _ := newTestStage(t, nil)
	sh := object.NewShell(sys.Config(), sys.Scheme())
	sh.Mode = object.ColorSingle
	sh.Colors = [2]object.Color{object.Green, object.Green}
	sh.SecondColor = ""
	sys.BurstShell(sh, 500, 500, 0, 0)

	for i := 0; i < 30; i++ {
		sys.Step(nominalFrameMs)
		st.Draw(1)
	}
	sky := st.Sky()
	if sky.G <= sky.R || sky.G <= sky.B {
		t.Errorf("sky %v not tinted green", sky)
	}
	if sky.G > skyMaxSaturation+1e-9 {
		t.Errorf("sky green %v above max saturation", sky.G)
	}

	sys.Clear()
	for i := 0; i < 300; i++ {
		st.Draw(1)
	}
	if sky := st.Sky(); sky.G > 1e-6 {
		t.Errorf("sky %v did not fade back to black", sky)
	}
}

func TestStageResizeSetsStageSize(t *testing.T) {
	st, sys, trail := newTestStage(t, draw.NewRaster(0, 0))
	st.Resize(300, 150, 0.5)
	if w, h := trail.Size(); w != 300 || h != 150 {
		t.Errorf("trail Size() = %d, %d", w, h)
	}
	if w, h := sys.StageSize(); w != 600 || h != 300 {
		t.Errorf("StageSize() = %v, %v", w, h)
	}
}
