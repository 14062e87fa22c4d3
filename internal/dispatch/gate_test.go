package dispatch

import (
	"testing"
	"time"
)

func TestGateAdmitsFirstEvent(t *testing.T) {
	gate := NewGate(500 * time.Millisecond)
	now := time.Now()
	if !gate.Admit("/inbox/a.txt", now) {
		t.Fatal("expected first event to be admitted")
	}
}

func TestGateRejectsWithinWindow(t *testing.T) {
	gate := NewGate(500 * time.Millisecond)
	now := time.Now()
	gate.Admit("/inbox/a.txt", now)

	if gate.Admit("/inbox/a.txt", now.Add(100*time.Millisecond)) {
		t.Fatal("expected event inside window to be rejected")
	}
	if gate.Admit("/inbox/a.txt", now.Add(499*time.Millisecond)) {
		t.Fatal("expected event at window edge to be rejected")
	}
}

func TestGateAdmitsAfterWindow(t *testing.T) {
	gate := NewGate(500 * time.Millisecond)
	now := time.Now()
	gate.Admit("/inbox/a.txt", now)

	if !gate.Admit("/inbox/a.txt", now.Add(500*time.Millisecond)) {
		t.Fatal("expected event after window to be admitted")
	}
}

func TestGateTracksPathsIndependently(t *testing.T) {
	gate := NewGate(500 * time.Millisecond)
	now := time.Now()
	gate.Admit("/inbox/a.txt", now)

	if !gate.Admit("/inbox/b.txt", now) {
		t.Fatal("expected distinct path to be admitted")
	}
}
