package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sift/internal/journal"
	"sift/internal/testsupport"
	"sift/internal/watcher"
)

func waitFor(t *testing.T, events <-chan watcher.Event, kind journal.Kind, path string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("event channel closed while waiting for %s %s", kind, path)
			}
			if ev.Kind == kind && ev.Path == path {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s %s", kind, path)
		}
	}
}

func TestWatcherReportsLifecycle(t *testing.T) {
	root := t.TempDir()
	w, err := watcher.New(root, true, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	path := filepath.Join(root, "drop.txt")
	testsupport.WriteFile(t, path, "hello")
	waitFor(t, w.Events(), journal.KindCreated, path)

	if err := os.WriteFile(path, []byte("hello again"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	waitFor(t, w.Events(), journal.KindModified, path)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	waitFor(t, w.Events(), journal.KindDeleted, path)
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	w, err := watcher.New(root, true, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	sub := filepath.Join(root, "nested")
	testsupport.WriteDir(t, sub)

	// Files created inside the new directory must be observed. Registration
	// races with the create, so retry the drop briefly.
	path := filepath.Join(sub, "inner.txt")
	deadline := time.After(5 * time.Second)
	for {
		testsupport.WriteFile(t, path, "x")
		select {
		case ev := <-w.Events():
			if ev.Kind == journal.KindCreated && ev.Path == path {
				return
			}
		case <-time.After(100 * time.Millisecond):
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for event under new directory")
		default:
		}
		_ = os.Remove(path)
	}
}

func TestWatcherRejectsMissingRoot(t *testing.T) {
	if _, err := watcher.New(filepath.Join(t.TempDir(), "missing"), true, nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}
