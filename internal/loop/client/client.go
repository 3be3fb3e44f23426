package client

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/loop"
	"github.com/tomz197/fireworks/internal/loop/server"
	"github.com/tomz197/fireworks/internal/physics"
)

// Client runs the show for a single terminal: input, simulation, rendering.
type Client struct {
	hub          server.Hub
	handle       *server.ClientHandle
	state        *ClientState
	engine       *loop.Engine
	canvas       *draw.Canvas
	trail        *draw.Raster
	overlay      *draw.Raster
	chunkWriter  *draw.ChunkWriter // Accumulates the frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	idleTimeout  bool
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Hub          server.Hub // nil for a standalone terminal
	Logger       *log.Logger
	Autoplay     bool // start with autoplay on
	IdleTimeout  bool // warn and disconnect inactive viewers
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(cfg config.Config, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var handle *server.ClientHandle
	if opts.Hub != nil {
		handle = opts.Hub.RegisterClient(opts.Username)
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, config.StageWidth)
	canvas.SetOffset(offsetCol, offsetRow)

	pw, ph := canvas.PixelSize()
	trail := draw.NewRaster(pw, ph)
	overlay := draw.NewRaster(pw, ph)
	engine := loop.NewEngine(cfg, trail, overlay, logger)
	engine.ResizeNow(loop.Viewport{Width: pw, Height: ph, Scale: canvas.Scale()})

	state := NewClientState(opts.Autoplay)
	sw, sh := engine.StageSize()
	state.CursorX, state.CursorY = sw/2, sh/3

	return &Client{
		hub:          opts.Hub,
		handle:       handle,
		state:        state,
		engine:       engine,
		canvas:       canvas,
		trail:        trail,
		overlay:      overlay,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		idleTimeout:  opts.IdleTimeout,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the viewer quits, the input
// closes or the server shuts down.
func (c *Client) Run() error {
	draw.EnterAltScreen(c.writer)
	draw.HideCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		draw.ShowCursor(c.writer)
		draw.ExitAltScreen(c.writer)
	}()
	defer c.unregister()

	lastTime := time.Now()
	c.state.nextAutoplay = lastTime

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(frameStart)
		c.processServerEvents(frameStart)
		c.updateScreen(frameStart)
		c.updateCursor()
		c.updateAutoplay(frameStart)
		c.updateShutdownState()

		c.engine.Frame(frameStart)
		if err := c.drawFrame(frameStart); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

func (c *Client) unregister() {
	if c.hub != nil && c.handle != nil {
		c.hub.UnregisterClient(c.handle.ID)
	}
}

// processInput reads keys and fires the triggers they map to.
func (c *Client) processInput(now time.Time) {
	c.state.Input = input.ReadInput(c.inputStream)
	in := c.state.Input

	if len(in.Pressed) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if c.idleTimeout {
		idle := now.Sub(c.lastInput).Seconds()
		switch {
		case idle > config.InactivityDisconnectUser:
			c.state.Running = false
		case idle > config.InactivityWarnUser:
			c.state.isInactive = true
		}
	}

	sw, sh := c.engine.StageSize()
	for _, ev := range in.Events {
		switch ev.Action {
		case input.ActionLaunch:
			c.fire(server.Trigger{
				Kind:   server.TriggerLaunch,
				X:      physics.Random(0.3, 0.7),
				Y:      config.MinBurstHeight,
				Height: physics.Random(0.3, 0.9),
			})
		case input.ActionColumn:
			c.fire(server.Trigger{
				Kind:   server.TriggerLaunch,
				X:      float64(ev.Column) / 8,
				Y:      config.MinBurstHeight,
				Height: physics.Random(0.5, 1),
			})
		case input.ActionBurst:
			c.fire(server.Trigger{Kind: server.TriggerBurst, X: c.state.CursorX / sw, Y: c.state.CursorY / sh})
		case input.ActionCelebrate:
			c.fire(server.Trigger{Kind: server.TriggerCelebrate, X: c.state.CursorX / sw, Y: c.state.CursorY / sh})
		case input.ActionClear:
			c.engine.Stop(true)
		case input.ActionAutoplay:
			c.state.Autoplay = !c.state.Autoplay
			c.state.nextAutoplay = now
		}
	}

	if c.inputStream.Closed() || in.Quit {
		c.state.Running = false
	}
}

// fire applies a trigger locally and relays it to the other viewers.
func (c *Client) fire(t server.Trigger) {
	c.apply(t)
	if c.hub != nil && c.handle != nil {
		c.hub.Broadcast(c.handle.ID, t)
	}
}

// apply runs a trigger on this session's engine.
func (c *Client) apply(t server.Trigger) {
	sw, sh := c.engine.StageSize()
	switch t.Kind {
	case server.TriggerLaunch:
		c.engine.Launch(t.X, t.Y, t.Height)
	case server.TriggerBurst:
		c.engine.DirectBurst(t.X*sw, t.Y*sh)
	case server.TriggerCelebrate:
		c.engine.Celebrate(t.X*sw, t.Y*sh)
	}
}

// processServerEvents handles events from the hub.
func (c *Client) processServerEvents(now time.Time) {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventTrigger:
				c.apply(event.Trigger)
				c.state.remoteFrom = event.Trigger.From
				c.state.remoteUntil = now.Add(config.RemoteNoticeDuration)
			case server.EventServerShutdown:
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// The canvas follows immediately; the particle layers follow once the
// resize has settled.
func (c *Client) updateScreen(now time.Time) {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth == c.canvas.TerminalWidth() && renderHeight == c.canvas.TerminalHeight() &&
		offsetCol == c.canvas.OffsetCol() && offsetRow == c.canvas.OffsetRow() {
		return
	}

	// Clear residual pixels outside the new canvas area
	draw.ClearScreen(c.writer)
	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.canvas.ForceRedraw()
	c.chunkWriter.SetOffset(offsetCol, offsetRow)

	pw, ph := c.canvas.PixelSize()
	c.engine.Resize(loop.Viewport{Width: pw, Height: ph, Scale: c.canvas.Scale()}, now)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)
	offsetCol = max(termWidth-renderWidth, 0) / 2
	offsetRow = max(termHeight-renderHeight, 0) / 2
	return
}

// updateCursor moves the aim point while arrow keys are held.
func (c *Client) updateCursor() {
	in := c.state.Input
	step := config.CursorSpeed * c.state.delta.Seconds()
	if in.Left {
		c.state.CursorX -= step
	}
	if in.Right {
		c.state.CursorX += step
	}
	if in.Up {
		c.state.CursorY -= step
	}
	if in.Down {
		c.state.CursorY += step
	}
	sw, sh := c.engine.StageSize()
	c.state.CursorX = physics.Clamp(c.state.CursorX, 0, sw)
	c.state.CursorY = physics.Clamp(c.state.CursorY, 0, sh)
}

// updateAutoplay launches a random salvo whenever the autoplay timer fires.
func (c *Client) updateAutoplay(now time.Time) {
	if !c.state.Autoplay || c.state.shuttingDown || now.Before(c.state.nextAutoplay) {
		return
	}
	c.engine.Launch(rand.Float64(), config.MinBurstHeight, physics.Random(0.3, 1))
	span := config.AutoplayMaxInterval - config.AutoplayMinInterval
	c.state.nextAutoplay = now.Add(config.AutoplayMinInterval + time.Duration(rand.Int63n(int64(span)+1)))
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	if !c.state.shuttingDown {
		return
	}
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
