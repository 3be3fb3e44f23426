// Command window runs the fireworks show in a desktop window.
//
// Controls:
//
//	Mouse click  - burst at the cursor
//	Space        - launch a salvo
//	C            - celebrate at the cursor
//	X            - clear the sky
//	A            - toggle autoplay
//	Q/Escape     - quit
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw/ebitendraw"
	"github.com/tomz197/fireworks/internal/loop"
	"github.com/tomz197/fireworks/internal/physics"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

var errQuit = errors.New("quit")

// show implements ebiten.Game around a fireworks engine.
type show struct {
	engine  *loop.Engine
	trail   *ebitendraw.Surface
	overlay *ebitendraw.Surface
	logger  *log.Logger

	width, height int
	requested     [2]int // last size handed to the engine
	autoplay      bool
	nextAutoplay  time.Time
}

func newShow(cfg config.Config, logger *log.Logger) *show {
	trail := ebitendraw.NewSurface(windowWidth, windowHeight)
	overlay := ebitendraw.NewSurface(windowWidth, windowHeight)
	return &show{
		engine:    loop.NewEngine(cfg, trail, overlay, logger),
		trail:     trail,
		overlay:   overlay,
		logger:    logger,
		width:     windowWidth,
		height:    windowHeight,
		requested: [2]int{windowWidth, windowHeight},
		autoplay:  config.GetEnvBool("FIREWORKS_AUTOPLAY", true),
	}
}

func (s *show) Update() error {
	now := time.Now()
	if size := [2]int{s.width, s.height}; size != s.requested {
		s.requested = size
		s.engine.Resize(loop.Viewport{Width: s.width, Height: s.height, Scale: 1}, now)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return errQuit
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.engine.DirectBurst(x, y)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.engine.Launch(physics.Random(0.3, 0.7), config.MinBurstHeight, physics.Random(0.3, 0.9))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.engine.Celebrate(x, y)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		s.engine.Stop(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		s.autoplay = !s.autoplay
		s.nextAutoplay = now
	}
	if s.autoplay && !now.Before(s.nextAutoplay) {
		s.engine.Launch(rand.Float64(), config.MinBurstHeight, physics.Random(0.3, 1))
		span := config.AutoplayMaxInterval - config.AutoplayMinInterval
		s.nextAutoplay = now.Add(config.AutoplayMinInterval + time.Duration(rand.Int63n(int64(span)+1)))
	}

	s.engine.Frame(now)
	return nil
}

func (s *show) Draw(screen *ebiten.Image) {
	screen.Fill(s.engine.Sky())

	// The trail keeps the brighter of sky and particles.
	op := &ebiten.DrawImageOptions{Blend: ebiten.Blend{
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationMax,
		BlendOperationAlpha:         ebiten.BlendOperationMax,
	}}
	screen.DrawImage(s.trail.Image(), op)
	screen.DrawImage(s.overlay.Image(), nil)

	counts := s.engine.Counts()
	autoplay := "off"
	if s.autoplay {
		autoplay = "on"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"TPS %0.1f  rockets %d  stars %d  sparks %d  autoplay %s  frame %v",
		ebiten.ActualTPS(), counts.Rockets, counts.Stars, counts.Sparks, autoplay,
		s.engine.LastFrame().Round(10*time.Microsecond)), 4, 4)
	ebitenutil.DebugPrintAt(screen, "click burst  space launch  c celebrate  x clear  a autoplay  q quit", 4, s.height-18)
}

func (s *show) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.width, s.height = max(outsideWidth, 1), max(outsideHeight, 1)
	return s.width, s.height
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fireworks-window",
	})
	if lvl, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Warn("using default configuration", "err", err)
		cfg = config.Default()
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Fireworks")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newShow(cfg, logger)); err != nil && !errors.Is(err, errQuit) {
		logger.Fatal("show stopped", "err", err)
	}
}
