package server

import (
	"testing"
	"time"
)

func TestBroadcastSkipsSender(t *testing.T) {
	s := NewServer(true)
	a := s.RegisterClient("ada")
	b := s.RegisterClient("bob")
	c := s.RegisterClient("cy")

	s.Broadcast(a.ID, Trigger{Kind: TriggerBurst, X: 0.25, Y: 0.5})

	if len(a.EventsCh) != 0 {
		t.Error("sender received its own trigger")
	}
	for _, h := range []*ClientHandle{b, c} {
		select {
		case ev := <-h.EventsCh:
			if ev.Type != EventTrigger || ev.Trigger.Kind != TriggerBurst || ev.Trigger.From != "ada" {
				t.Errorf("%s got %+v", h.Username, ev)
			}
		default:
			t.Errorf("%s got nothing", h.Username)
		}
	}
}

func TestBroadcastPrivateHub(t *testing.T) {
	s := NewServer(false)
	a := s.RegisterClient("ada")
	b := s.RegisterClient("bob")
	s.Broadcast(a.ID, Trigger{Kind: TriggerLaunch})
	if len(b.EventsCh) != 0 {
		t.Error("private hub relayed a trigger")
	}
}

func TestBroadcastNeverBlocks(t *testing.T) {
	s := NewServer(true)
	a := s.RegisterClient("ada")
	slow := s.RegisterClient("slow")
	done := make(chan struct{})
	go func() {
		for i := 0; i < clientBuffer*3; i++ {
			s.Broadcast(a.ID, Trigger{Kind: TriggerLaunch})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full client queue")
	}
	if len(slow.EventsCh) != clientBuffer {
		t.Errorf("queued %d events, want %d", len(slow.EventsCh), clientBuffer)
	}
}

func TestUnregisterClosesChannel(t *testing.T) {
	s := NewServer(true)
	a := s.RegisterClient("ada")
	if s.Viewers() != 1 {
		t.Fatalf("Viewers() = %d", s.Viewers())
	}
	s.UnregisterClient(a.ID)
	s.UnregisterClient(a.ID)
	if _, ok := <-a.EventsCh; ok {
		t.Error("events channel still open")
	}
	if s.Viewers() != 0 {
		t.Errorf("Viewers() = %d after unregister", s.Viewers())
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := NewServer(false)
	a := s.RegisterClient("ada")
	go func() {
		for ev := range a.EventsCh {
			if ev.Type == EventServerShutdown {
				s.UnregisterClient(a.ID)
			}
		}
	}()

	start := time.Now()
	s.Shutdown(5 * time.Second)
	if time.Since(start) > 2*time.Second {
		t.Error("Shutdown waited for the full timeout although the client left")
	}
	if s.Viewers() != 0 {
		t.Error("client still registered")
	}
}
