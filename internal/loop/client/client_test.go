package client

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/loop/server"
)

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func runClient(t *testing.T, keys string, opts ClientOptions) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(80, 24)
	}
	opts.Logger = log.New(&bytes.Buffer{})
	c := NewClient(config.Default(), bufio.NewReader(strings.NewReader(keys)), &out, opts)

	done := make(chan error, 1)
	go func() { done <- c.Run() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("client did not exit when its input closed")
	}
	return &out
}

func TestClientRendersAndRestoresTerminal(t *testing.T) {
	out := runClient(t, "c", ClientOptions{})
	got := out.String()
	if !strings.HasPrefix(got, "\033[?1049h") {
		t.Errorf("alternate screen not entered: %q", got[:min(len(got), 20)])
	}
	if !strings.HasSuffix(got, "\033[?1049l\033[0m") {
		t.Error("terminal not restored on exit")
	}
	if !strings.Contains(got, "\033[?25h") {
		t.Error("cursor not shown again on exit")
	}
	if !strings.Contains(got, "rockets") {
		t.Error("status line missing")
	}
	if !strings.Contains(got, "\033[48;2;") {
		t.Error("no truecolor cells rendered")
	}
}

func TestClientRelaysTriggers(t *testing.T) {
	hub := server.NewServer(true)
	watcher := hub.RegisterClient("watcher")

	runClient(t, " 5", ClientOptions{Hub: hub, Username: "ada"})

	var kinds []server.TriggerKind
	for len(watcher.EventsCh) > 0 {
		ev := <-watcher.EventsCh
		if ev.Trigger.From != "ada" {
			t.Errorf("trigger from %q", ev.Trigger.From)
		}
		kinds = append(kinds, ev.Trigger.Kind)
	}
	if len(kinds) != 2 || kinds[0] != server.TriggerLaunch || kinds[1] != server.TriggerLaunch {
		t.Errorf("relayed %v, want two launches", kinds)
	}
	if hub.Viewers() != 1 {
		t.Errorf("client did not unregister: %d viewers", hub.Viewers())
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 24, 80, 24, 0, 0},
		{300, 24, config.MaxTermWidth, 24, 50, 0},
		{80, 100, 80, config.MaxTermHeight, 0, 20},
		{0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		rw, rh, oc, or := clampTermSize(tt.w, tt.h)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("clampTermSize(%d, %d) = %d %d %d %d; want %d %d %d %d",
				tt.w, tt.h, rw, rh, oc, or, tt.rw, tt.rh, tt.offCol, tt.offRow)
		}
	}
}

func TestClip(t *testing.T) {
	if got := clip("héllo world", 5); got != "héllo" {
		t.Errorf("clip = %q", got)
	}
	if got := clip("abc", 10); got != "abc" {
		t.Errorf("clip = %q", got)
	}
	if got := clip("abc", 0); got != "" {
		t.Errorf("clip = %q", got)
	}
}
