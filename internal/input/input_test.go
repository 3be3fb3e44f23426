package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseEvents(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Event
		quit bool
	}{
		{"space launches", " ", []Event{{Action: ActionLaunch}}, false},
		{"digits pick columns", "19", []Event{{Action: ActionColumn, Column: 0}, {Action: ActionColumn, Column: 8}}, false},
		{"zero ignored", "0", nil, false},
		{"enter bursts", "\r", []Event{{Action: ActionBurst}}, false},
		{"order kept", "cxa", []Event{{Action: ActionCelebrate}, {Action: ActionClear}, {Action: ActionAutoplay}}, false},
		{"q quits", "q", nil, true},
		{"ctrl-c quits", "\x03", nil, true},
		{"arrows are not events", "\x1b[A\x1b[D", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st keyState
			got := parse(&st, []byte(tt.in), time.Now())
			if got.Quit != tt.quit {
				t.Errorf("Quit = %v, want %v", got.Quit, tt.quit)
			}
			if len(got.Events) != len(tt.want) {
				t.Fatalf("Events = %+v, want %+v", got.Events, tt.want)
			}
			for i := range tt.want {
				if got.Events[i] != tt.want[i] {
					t.Errorf("Events[%d] = %+v, want %+v", i, got.Events[i], tt.want[i])
				}
			}
		})
	}
}

func TestHeldKeysExpire(t *testing.T) {
	var st keyState
	now := time.Unix(0, 0)
	in := parse(&st, []byte("\x1b[Ah"), now)
	if !in.Up || !in.Left || in.Down || in.Right {
		t.Fatalf("held = up %v left %v down %v right %v", in.Up, in.Left, in.Down, in.Right)
	}
	in = parse(&st, nil, now.Add(keyHoldDuration/2))
	if !in.Up {
		t.Error("up released before the hold duration")
	}
	in = parse(&st, nil, now.Add(keyHoldDuration))
	if in.Up || in.Left {
		t.Error("keys still held after the hold duration")
	}
}

func TestStreamReportsClose(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(" ")))
	deadline := time.Now().Add(time.Second)
	var events int
	for !s.Closed() {
		events += len(ReadInput(s).Events)
		if time.Now().After(deadline) {
			t.Fatal("stream never closed")
		}
		time.Sleep(time.Millisecond)
	}
	if events != 1 {
		t.Errorf("got %d events, want 1", events)
	}
}
