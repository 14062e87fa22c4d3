package dispatch

import (
	"sync"
	"time"
)

// Gate coalesces bursts of events for the same path into at most one trigger
// per window. The check-and-set is atomic per call so concurrent retries and
// live events cannot both pass inside one window.
//
// Entries are never deleted; the map lives as long as the watch session. For
// very long sessions over huge path populations this grows without bound.
type Gate struct {
	window time.Duration

	mu          sync.Mutex
	lastHandled map[string]time.Time
}

// NewGate builds a gate with the given debounce window.
func NewGate(window time.Duration) *Gate {
	return &Gate{
		window:      window,
		lastHandled: make(map[string]time.Time),
	}
}

// Admit reports whether an event for path at time now may proceed, recording
// now as the new last-handled timestamp when it does.
func (g *Gate) Admit(path string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.lastHandled[path]; ok && now.Sub(last) < g.window {
		return false
	}
	g.lastHandled[path] = now
	return true
}
