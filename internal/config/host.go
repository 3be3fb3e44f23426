package config

import "time"

// StageWidth is the logical stage width terminal hosts simulate in; the
// stage height follows the terminal's aspect ratio.
const StageWidth = 1000

// Terminal render limits. Larger terminals are centered with a border.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Autoplay launches a salvo at a random interval in this range.
const (
	AutoplayMinInterval = 800 * time.Millisecond
	AutoplayMaxInterval = 2000 * time.Millisecond
)

// Terminal controls
const (
	CursorSpeed          = 600.0 // Stage units per second while an arrow key is held
	MinBurstHeight       = 0.45  // Lowest burst for keyboard salvos, as a fraction of stage height
	RemoteNoticeDuration = 2 * time.Second
)
