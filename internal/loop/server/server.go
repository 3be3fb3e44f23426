// Package server tracks the terminal sessions watching the show and relays
// events between them. Each session simulates its own sky; the hub only
// forwards triggers (in shared-sky mode) and lifecycle events.
package server

import (
	"sync"
	"time"
)

// Hub is the interface clients use to talk to the session registry.
type Hub interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	Broadcast(from int, t Trigger)
	Viewers() int
}

// TriggerKind identifies what a relayed trigger does.
type TriggerKind uint8

const (
	TriggerLaunch TriggerKind = iota
	TriggerBurst
	TriggerCelebrate
)

// Trigger is a firework trigger in stage-relative coordinates, so sessions
// with different terminal sizes place it at the same spot.
type Trigger struct {
	Kind   TriggerKind
	X, Y   float64 // fractions of the stage
	Height float64 // launch height factor
	From   string  // username of the viewer who fired it
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventTrigger ClientEventType = iota
	EventServerShutdown
)

// ClientEvent represents an event sent from the hub to a client.
type ClientEvent struct {
	Type    ClientEventType
	Trigger Trigger
}

// ClientHandle represents a client's connection to the hub.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent
}

// clientBuffer is how many undelivered events a slow client may queue
// before further events to it are dropped.
const clientBuffer = 64

// Server is the in-process Hub shared by every SSH session.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	shared       bool
}

// Compile-time check that Server implements Hub.
var _ Hub = (*Server)(nil)

// NewServer creates an empty hub. With shared set, triggers fired in one
// session are replayed in every other session.
func NewServer(shared bool) *Server {
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		shared:       shared,
	}
}

// RegisterClient adds a session and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, clientBuffer),
	}
	s.nextClientID++
	s.clients[h.ID] = h
	return h
}

// UnregisterClient removes a session and closes its event channel.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.clients[clientID]; ok {
		delete(s.clients, clientID)
		close(h.EventsCh)
	}
}

// Broadcast relays t to every session except the sender. It never blocks:
// sessions with a full queue miss the trigger. A hub that is not shared
// drops triggers.
func (s *Server) Broadcast(from int, t Trigger) {
	if !s.shared {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.clients[from]; ok {
		t.From = h.Username
	}
	for id, h := range s.clients {
		if id == from {
			continue
		}
		select {
		case h.EventsCh <- ClientEvent{Type: EventTrigger, Trigger: t}:
		default:
		}
	}
}

// Viewers returns the number of connected sessions.
func (s *Server) Viewers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients about the shutdown and waits for
// them to disconnect, up to the given timeout.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.Viewers() == 0 {
				return
			}
		}
	}
}
