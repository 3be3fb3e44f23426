package client

import (
	"time"

	"github.com/tomz197/fireworks/internal/input"
)

// ClientState holds per-session state (input, cursor, autoplay, timers).
// Each client has its own instance, managed by the Client.
type ClientState struct {
	Input    input.Input
	CursorX  float64 // Aim point in stage units
	CursorY  float64
	Autoplay bool
	Running  bool // Client loop running

	nextAutoplay  time.Time
	delta         time.Duration // Frame delta time
	shuttingDown  bool
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state
	wasInactive   bool
	wasShutdown   bool

	remoteFrom  string    // Viewer whose trigger was replayed last
	remoteUntil time.Time // Hide the remote notice after this
}

// NewClientState creates a new initialized client state.
func NewClientState(autoplay bool) *ClientState {
	return &ClientState{
		Autoplay: autoplay,
		Running:  true,
	}
}
