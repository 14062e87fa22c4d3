package readiness_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"sift/internal/readiness"
	"sift/internal/testsupport"
)

func TestWaitStableFileIsReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stable.txt")
	testsupport.WriteFile(t, path, "done writing")

	prober := readiness.New(5, time.Millisecond)
	ready, err := prober.Wait(context.Background(), path)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !ready {
		t.Fatal("stable file should be ready")
	}
}

func TestWaitVanishedFileReturnsImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")

	prober := readiness.New(1000, time.Second)
	start := time.Now()
	ready, err := prober.Wait(context.Background(), path)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if ready {
		t.Fatal("missing file must not be ready")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("vanished file should return without sleeping, took %s", elapsed)
	}
}

func TestWaitGrowingFileIsNotReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "growing.txt")
	testsupport.WriteFile(t, path, "x")

	// Keep appending while the prober runs so no two consecutive probes see
	// the same size.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				_, _ = f.WriteString("xxxxxxxx")
				_ = f.Close()
			}
			time.Sleep(time.Millisecond)
		}
	}()

	prober := readiness.New(4, 20*time.Millisecond)
	ready, err := prober.Wait(context.Background(), path)
	close(stop)
	wg.Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if ready {
		t.Fatal("file growing across every probe must not be ready")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slow.txt")
	testsupport.WriteFile(t, path, "content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// First probe records the size; the canceled context stops the second.
	prober := readiness.New(20, time.Hour)
	_, err := prober.Wait(ctx, path)
	if err == nil {
		t.Fatal("expected context error")
	}
}
