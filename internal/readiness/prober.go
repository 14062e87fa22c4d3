// Package readiness decides whether a file is safe to read and move.
//
// A newly created or actively downloaded file may be held open or still
// growing. The prober treats "openable and size unchanged across two
// consecutive probes" as a cheap proxy for write completion, without needing
// a signal from the writer.
package readiness

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"
)

// Prober polls a file until it is stable or the attempt budget runs out.
type Prober struct {
	Attempts int
	Delay    time.Duration
}

// New returns a prober with the given budget. Non-positive values fall back
// to 20 attempts spaced 250ms apart.
func New(attempts int, delay time.Duration) Prober {
	if attempts <= 0 {
		attempts = 20
	}
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	return Prober{Attempts: attempts, Delay: delay}
}

// Wait reports whether the file at path became ready. A vanished file returns
// false immediately with a nil error; an exhausted budget returns false. The
// context cancels the wait between probes.
func (p Prober) Wait(ctx context.Context, path string) (bool, error) {
	lastSize := int64(-1)
	for attempt := 0; attempt < p.Attempts; attempt++ {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return false, nil
			}
			return false, err
		}

		if openable(path) {
			size := info.Size()
			if size == lastSize {
				return true, nil
			}
			lastSize = size
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(p.Delay):
		}
	}
	return false, nil
}

// openable detects locks by attempting a read open. Permission errors mean
// another writer still holds the file.
func openable(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = file.Close()
	return true
}
