package scheduler

import (
	"github.com/KirkDiggler/dnd-rules-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-rules-engine/internal/uuid"
)

// Key identifies the boundary events a listener waits on
type Key struct {
	Scope    string
	ActorID  string
	Boundary shared.TurnBoundary
}

// Callback runs when a listener's countdown reaches its boundary.
// Callbacks close over whatever state they need.
type Callback func()

type listener struct {
	id        string
	remaining int
	callback  Callback
}

// TurnScheduler fires countdown listeners on turn boundary events.
// Not safe for concurrent use; the world owner drives it synchronously.
type TurnScheduler struct {
	idGen     uuid.Generator
	listeners map[Key][]*listener
}

// New creates an empty scheduler
func New(idGen uuid.Generator) *TurnScheduler {
	return &TurnScheduler{
		idGen:     idGen,
		listeners: make(map[Key][]*listener),
	}
}

// Register adds a listener that fires on the remaining-th matching
// boundary event. A remaining below 1 is clamped to 1, so the listener
// fires on the next matching event. Returns the listener id for
// cancellation.
func (s *TurnScheduler) Register(key Key, remaining int, callback Callback) string {
	if remaining < 1 {
		remaining = 1
	}

	id := s.idGen.New()
	s.listeners[key] = append(s.listeners[key], &listener{
		id:        id,
		remaining: remaining,
		callback:  callback,
	})
	return id
}

// Tick processes one boundary event. Listeners at remaining 1 or below
// are collected and removed, survivors are decremented, and only then is
// the collected batch invoked in registration order. A listener
// registered by a firing callback therefore never fires in the same
// tick, and each listener fires at most once.
func (s *TurnScheduler) Tick(key Key) int {
	entries, ok := s.listeners[key]
	if !ok {
		return 0
	}

	var fire []*listener
	kept := entries[:0]
	for _, entry := range entries {
		if entry.remaining <= 1 {
			fire = append(fire, entry)
			continue
		}
		entry.remaining--
		kept = append(kept, entry)
	}

	if len(kept) == 0 {
		delete(s.listeners, key)
	} else {
		s.listeners[key] = kept
	}

	for _, entry := range fire {
		entry.callback()
	}
	return len(fire)
}

// Cancel removes the listener with the given id before it fires. Reports
// whether a listener was removed.
func (s *TurnScheduler) Cancel(id string) bool {
	for key, entries := range s.listeners {
		for idx, entry := range entries {
			if entry.id != id {
				continue
			}
			entries = append(entries[:idx], entries[idx+1:]...)
			if len(entries) == 0 {
				delete(s.listeners, key)
			} else {
				s.listeners[key] = entries
			}
			return true
		}
	}
	return false
}

// CancelForActor removes every listener keyed to the actor in the scope.
// Returns the number removed.
func (s *TurnScheduler) CancelForActor(scope, actorID string) int {
	removed := 0
	for key, entries := range s.listeners {
		if key.Scope != scope || key.ActorID != actorID {
			continue
		}
		removed += len(entries)
		delete(s.listeners, key)
	}
	return removed
}

// CancelForScope removes every listener in the scope. Returns the number
// removed.
func (s *TurnScheduler) CancelForScope(scope string) int {
	removed := 0
	for key, entries := range s.listeners {
		if key.Scope != scope {
			continue
		}
		removed += len(entries)
		delete(s.listeners, key)
	}
	return removed
}

// Pending returns the number of listeners waiting on the key
func (s *TurnScheduler) Pending(key Key) int {
	return len(s.listeners[key])
}
