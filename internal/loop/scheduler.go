package loop

import "time"

// nominalFrame is the delta used for the first frame after a start, when
// there is no previous timestamp to measure from.
const nominalFrame = time.Second / 60

// FrameFunc advances and draws one frame of elapsedMs milliseconds and
// reports whether another frame is needed.
type FrameFunc func(elapsedMs float64) bool

// Scheduler turns host frame callbacks into clamped frame deltas and stops
// itself once the frame function reports there is nothing left to do.
type Scheduler struct {
	maxDelta time.Duration
	frame    FrameFunc
	running  bool
	last     time.Time
}

// NewScheduler creates a stopped scheduler. Deltas above maxDelta are
// clamped so a stalled host does not make particles jump.
func NewScheduler(maxDelta time.Duration, frame FrameFunc) *Scheduler {
	return &Scheduler{maxDelta: maxDelta, frame: frame}
}

// Start schedules frames. Starting a running scheduler is a no-op.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.last = time.Time{}
}

// Stop halts scheduling; the next Start measures from scratch.
func (s *Scheduler) Stop() {
	s.running = false
}

// Running reports whether frames are being scheduled.
func (s *Scheduler) Running() bool {
	return s.running
}

// Frame runs one frame at host time now if the scheduler is running and
// reports whether it is still running afterwards.
func (s *Scheduler) Frame(now time.Time) bool {
	if !s.running {
		return false
	}
	dt := nominalFrame
	if !s.last.IsZero() {
		dt = min(max(now.Sub(s.last), 0), s.maxDelta)
	}
	s.last = now
	if dt == 0 {
		return true
	}
	if !s.frame(float64(dt) / float64(time.Millisecond)) {
		s.running = false
	}
	return s.running
}
