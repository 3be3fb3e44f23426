package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key is considered "held" after its
// last press. Terminals only report key repeats, so holding an arrow key
// shows up as a stream of presses.
const keyHoldDuration = 30 * time.Millisecond

// Action is a one-shot command triggered by a key press.
type Action uint8

const (
	ActionLaunch    Action = iota + 1 // random salvo
	ActionColumn                      // salvo from a numbered column
	ActionBurst                       // burst at the cursor
	ActionCelebrate                   // celebration at the cursor
	ActionClear                       // stop and clear the sky
	ActionAutoplay                    // toggle autoplay
)

// Event is one triggered action. Column is 0..8 for ActionColumn.
type Event struct {
	Action Action
	Column int
}

// Input is one frame's worth of input. Events are in arrival order; the
// direction flags are held state.
type Input struct {
	Events  []Event
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Pressed []byte
}

// keyState tracks the last time each movement key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream without blocking
// and turns them into this frame's input.
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return parse(&s.state, buf, time.Now())
}

// parse applies buf to the key state at time now.
func parse(state *keyState, buf []byte, now time.Time) Input {
	var in Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
			case 'B':
				state.down = now
			case 'C':
				state.right = now
			case 'D':
				state.left = now
			}
			i += 2
			continue
		}

		applyByte(state, &in, b, now)
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Up = now.Sub(state.up) < keyHoldDuration
	in.Down = now.Sub(state.down) < keyHoldDuration
	in.Pressed = buf
	return in
}

// applyByte handles a single-byte key.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'h', 'H':
		state.left = now
	case 'l', 'L':
		state.right = now
	case 'k', 'K':
		state.up = now
	case 'j', 'J':
		state.down = now
	case ' ':
		in.Events = append(in.Events, Event{Action: ActionLaunch})
	case '\n', '\r', 'b', 'B':
		in.Events = append(in.Events, Event{Action: ActionBurst})
	case 'c', 'C':
		in.Events = append(in.Events, Event{Action: ActionCelebrate})
	case 'x', 'X':
		in.Events = append(in.Events, Event{Action: ActionClear})
	case 'a', 'A':
		in.Events = append(in.Events, Event{Action: ActionAutoplay})
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Events = append(in.Events, Event{Action: ActionColumn, Column: int(b - '1')})
	}
}
