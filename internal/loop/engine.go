// Package loop drives a fireworks System: it schedules frames, steps the
// simulation and paints it onto the host's surfaces.
package loop

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/object"
)

// ErrNoSurface is recorded when an engine is built without a trail surface.
// Such an engine accepts triggers but never schedules a frame.
var ErrNoSurface = errors.New("loop: no trail surface")

// nominalFrameMs is one 60Hz frame, the unit particle speeds are tuned in.
const nominalFrameMs = 1000.0 / 60

// Viewport is a pixel size and the logical-to-pixel scale that goes with it.
type Viewport struct {
	Width, Height int
	Scale         float64
}

// Engine ties a System, the Stage that paints it and the Scheduler that
// paces it. Triggers start the scheduler; it stops by itself once the sky
// is empty. An Engine is driven from a single goroutine.
type Engine struct {
	cfg    config.Config
	sys    *object.System
	stage  *Stage
	sched  *Scheduler
	resize *Debouncer[Viewport]
	logger *log.Logger
	err    error

	viewport    Viewport
	lastFrameMs float64
}

// NewEngine builds an engine painting onto trail and overlay. overlay may be
// nil. A nil trail leaves the engine inert with Err returning ErrNoSurface.
// A nil logger uses log.Default().
func NewEngine(cfg config.Config, trail, overlay draw.Surface, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	scheme, err := object.NewScheme(cfg.Colors)
	if err != nil {
		logger.Warn("falling back to the default palette", "err", err)
		scheme = object.DefaultScheme()
	}

	e := &Engine{
		cfg:    cfg,
		sys:    object.NewSystem(cfg, scheme, logger),
		resize: NewDebouncer[Viewport](cfg.ResizeDebounce),
		logger: logger,
	}
	e.sched = NewScheduler(cfg.MaxFrameDelta, e.step)
	if trail == nil {
		e.err = ErrNoSurface
		logger.Error("fireworks disabled", "err", ErrNoSurface)
		return e
	}
	e.stage = NewStage(e.sys, trail, overlay)
	w, h := trail.Size()
	e.applyViewport(Viewport{Width: w, Height: h, Scale: 1})
	return e
}

// Err returns the error that made the engine inert, if any.
func (e *Engine) Err() error {
	return e.err
}

// Launch fires a salvo. x is the launch position across the stage, y the
// lowest burst height as a fraction of the stage height and heightFactor
// the burst altitude between that and the top, all in [0, 1].
func (e *Engine) Launch(x, y, heightFactor float64) {
	if e.err != nil {
		return
	}
	e.sys.Launch(x, y, heightFactor)
	e.sched.Start()
}

// DirectBurst detonates a shell at stage coordinates (x, y).
func (e *Engine) DirectBurst(x, y float64) {
	if e.err != nil {
		return
	}
	e.sys.DirectBurst(x, y)
	e.sched.Start()
}

// Celebrate bursts at (x, y) and keeps bursting across the sky for a moment.
func (e *Engine) Celebrate(x, y float64) {
	if e.err != nil {
		return
	}
	e.sys.Celebrate(x, y)
	e.sched.Start()
}

// Stop halts the animation. With clear set every particle is dropped and
// both layers are wiped; otherwise the last frame stays on screen.
func (e *Engine) Stop(clear bool) {
	e.sched.Stop()
	if !clear || e.err != nil {
		return
	}
	e.sys.Clear()
	e.stage.Clear()
}

// Resize requests new layer dimensions. Requests are debounced; the last
// one is applied by a later Frame once resizing has settled.
func (e *Engine) Resize(vp Viewport, now time.Time) {
	if e.err != nil {
		return
	}
	e.resize.Push(vp, now)
}

// ResizeNow applies vp immediately, e.g. for the first layout.
func (e *Engine) ResizeNow(vp Viewport) {
	if e.err != nil {
		return
	}
	e.applyViewport(vp)
}

func (e *Engine) applyViewport(vp Viewport) {
	e.viewport = vp
	e.stage.Resize(vp.Width, vp.Height, vp.Scale)
	w, h := e.sys.StageSize()
	e.logger.Debug("stage resized", "pixels", [2]int{vp.Width, vp.Height}, "stage", [2]float64{w, h})
}

// Frame is the host's per-frame callback. It applies a settled resize and,
// while the animation runs, steps and draws one frame. It reports whether
// a frame was drawn.
func (e *Engine) Frame(now time.Time) bool {
	if e.err != nil {
		return false
	}
	if vp, ok := e.resize.Ready(now); ok {
		e.applyViewport(vp)
	}
	if !e.sched.Running() {
		return false
	}
	e.sched.Frame(now)
	return true
}

// step advances and paints one frame; the scheduler stops once nothing is
// left to simulate.
func (e *Engine) step(elapsedMs float64) bool {
	e.lastFrameMs = elapsedMs
	e.sys.Step(elapsedMs)
	e.stage.Draw(elapsedMs * e.cfg.SimSpeed / nominalFrameMs)
	return e.sys.Active()
}

// Running reports whether frames are being scheduled.
func (e *Engine) Running() bool {
	return e.sched.Running()
}

// Active reports whether any particle or scheduled burst is alive.
func (e *Engine) Active() bool {
	return e.sys.Active()
}

// Counts returns the live particle counts.
func (e *Engine) Counts() object.Counts {
	return e.sys.Counts()
}

// Sky returns the sky glow color to paint behind the layers.
func (e *Engine) Sky() colorful.Color {
	if e.stage == nil {
		return colorful.Color{}
	}
	return e.stage.Sky()
}

// StageSize returns the logical stage dimensions.
func (e *Engine) StageSize() (width, height float64) {
	return e.sys.StageSize()
}

// Viewport returns the applied layer dimensions.
func (e *Engine) Viewport() Viewport {
	return e.viewport
}

// LastFrame returns the clamped delta of the last drawn frame.
func (e *Engine) LastFrame() time.Duration {
	return time.Duration(e.lastFrameMs * float64(time.Millisecond))
}
