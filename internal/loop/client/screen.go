package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
)

const helpLine = "space launch  1-9 column  arrows/hjkl aim  enter burst  c celebrate  x clear  a autoplay  q quit"

// drawFrame composes the layers, renders changed cells and draws the UI on top.
func (c *Client) drawFrame(now time.Time) error {
	// On inactivity or shutdown transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	if c.state.isInactive != c.state.wasInactive || c.state.shuttingDown != c.state.wasShutdown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.wasInactive = c.state.isInactive
		c.state.wasShutdown = c.state.shuttingDown
	}

	c.canvas.Compose(c.engine.Sky(), c.trail, c.overlay)
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(now)

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay.
func (c *Client) drawUI(now time.Time) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY, now)
		return
	}

	c.drawCursor()
	c.drawStatus(termWidth)
	c.drawRemoteNotice(termWidth, now)
	if termHeight > 2 {
		c.writeText(1, termHeight, clip(helpLine, termWidth), draw.Dim)
	}
}

// writeText writes s at (col, row) and marks the cells so the canvas
// repaints them once the text is gone.
func (c *Client) writeText(col, row int, s string, style func(string) string) {
	if s == "" {
		return
	}
	c.chunkWriter.WriteAt(col, row, style(s))
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

// drawCursor marks the aim point.
func (c *Client) drawCursor() {
	col, row := c.canvas.LogicalToTerminal(c.state.CursorX, c.state.CursorY)
	col = min(max(col, 1), c.canvas.TerminalWidth())
	row = min(max(row, 1), c.canvas.TerminalHeight())
	c.writeText(col, row, "+", draw.Bold)
}

// drawStatus draws the particle counts and mode flags on the first row.
func (c *Client) drawStatus(termWidth int) {
	counts := c.engine.Counts()
	autoplay := "off"
	if c.state.Autoplay {
		autoplay = "on"
	}
	status := fmt.Sprintf(" rockets %-3d stars %-5d sparks %-5d autoplay %-3s",
		counts.Rockets, counts.Stars, counts.Sparks, autoplay)
	if c.hub != nil {
		status += fmt.Sprintf(" viewers %-4d", c.hub.Viewers())
	}
	c.writeText(1, 1, clip(status, termWidth), draw.Dim)
}

// drawRemoteNotice names the viewer whose trigger was just replayed.
func (c *Client) drawRemoteNotice(termWidth int, now time.Time) {
	if c.state.remoteFrom == "" || now.After(c.state.remoteUntil) {
		return
	}
	msg := c.state.remoteFrom + " lit a fuse "
	if len(msg) >= termWidth {
		return
	}
	c.writeText(termWidth-len(msg)+1, 2, msg, draw.Bold)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int, now time.Time) {
	title := "INACTIVITY WARNING"
	c.writeText(centerX-len(title)/2, centerY-2, title, draw.Bold)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-now.Sub(c.lastInput).Seconds()),
	)
	c.writeText(max(centerX-len(msg)/2, 1), centerY, msg, plain)

	hint := "Press any key to continue"
	c.writeText(centerX-len(hint)/2, centerY+2, hint, draw.Dim)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	title := "SERVER SHUTTING DOWN"
	c.writeText(centerX-len(title)/2, centerY-3, title, draw.Bold)

	msg1 := "The show is closing for maintenance."
	c.writeText(centerX-len(msg1)/2, centerY-1, msg1, plain)

	msg2 := "Please reconnect in a moment."
	c.writeText(centerX-len(msg2)/2, centerY, msg2, plain)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	c.writeText(centerX-len(countdown)/2, centerY+2, countdown, plain)

	hint := "Press Q to disconnect now"
	c.writeText(centerX-len(hint)/2, centerY+4, hint, draw.Dim)
}

func plain(s string) string { return s }

// clip cuts s to at most width runes.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return strings.TrimRight(string(r[:width]), " ")
}
