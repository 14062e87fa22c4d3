package dispatch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"sift/internal/journal"
	"sift/internal/logging"
)

// scheduleRetry records that the file was still busy and arms a timer to
// re-inject a retry event. Attempts are tracked per path; once the cap is
// reached the path is abandoned with a giving_up record. A cap of zero
// retries forever.
func (d *Dispatcher) scheduleRetry(ctx context.Context, path string) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.attempts[path]++
	attempt := d.attempts[path]
	max := d.cfg.Retry.MaxAttempts
	if max > 0 && attempt >= max {
		delete(d.attempts, path)
		d.mu.Unlock()
		d.append(ctx, journal.Record{Kind: journal.KindGivingUp, Path: path, Detail: "file never became ready"})
		d.logger.Warn("giving up on busy file",
			logging.String("path", path),
			logging.Int("attempts", attempt),
		)
		if d.cfg.Notifications.Errors {
			if err := d.notifier.NotifyGivingUp(ctx, path, attempt); err != nil {
				d.logger.Warn("giving up notification failed", logging.Error(err))
			}
		}
		return
	}
	d.mu.Unlock()

	d.append(ctx, journal.Record{Kind: journal.KindBusyRetry, Path: path})
	d.logger.Info("file busy, retry scheduled",
		logging.String("path", path),
		logging.Int("attempt", attempt),
		logging.Duration("delay", d.retryDelay),
	)

	var timer *time.Timer
	timer = time.AfterFunc(d.retryDelay, func() {
		d.forgetTimer(timer)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			d.logger.Debug("file vanished before retry fired", logging.String("path", path))
			d.clearAttempts(path)
			return
		}
		d.Dispatch(ctx, journal.KindRetry, path)
	})
	d.trackTimer(timer)
}

func (d *Dispatcher) trackTimer(t *time.Timer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		t.Stop()
		return
	}
	d.timers[t] = struct{}{}
}

func (d *Dispatcher) forgetTimer(t *time.Timer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.timers, t)
}

func (d *Dispatcher) clearAttempts(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.attempts, path)
}
