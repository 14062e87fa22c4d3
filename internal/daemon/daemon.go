package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"sift/internal/config"
	"sift/internal/dispatch"
	"sift/internal/logging"
	"sift/internal/notifications"
	"sift/internal/watcher"
)

// Daemon runs the watch-and-organize loop and enforces single-instance
// execution per log directory.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	dispatcher *dispatch.Dispatcher
	logPath    string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	WatchDir      string
	JournalDBPath string
	LockFilePath  string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, dispatcher *dispatch.Dispatcher, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || dispatcher == nil || logger == nil {
		return nil, errors.New("daemon requires config, dispatcher, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "siftd.lock")
	return &Daemon{
		cfg:        cfg,
		logger:     logger,
		dispatcher: dispatcher,
		logPath:    filepath.Join(cfg.Paths.LogDir, "sift.log"),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock, opens the watcher, and pumps its events
// into the dispatcher until ctx is cancelled or Stop is called.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another sift daemon instance is already running")
	}

	w, err := watcher.New(d.cfg.Paths.WatchDir, d.cfg.Watch.Recursive, d.logger)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("start watcher: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(2)
	go func() {
		defer d.wg.Done()
		w.Start(runCtx)
	}()
	go func() {
		defer d.wg.Done()
		for ev := range w.Events() {
			d.dispatcher.Dispatch(runCtx, ev.Kind, ev.Path)
		}
	}()

	d.running.Store(true)
	d.logger.Info("sift daemon started",
		logging.String("watch_dir", d.cfg.Paths.WatchDir),
		logging.String("lock", d.lockPath),
	)
	return nil
}

// Stop halts the watcher, drains in-flight work, and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	d.dispatcher.Close()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("sift daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// TestNotification triggers a test notification using the current configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	notifier := notifications.NewService(d.cfg)
	if err := notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:       d.running.Load(),
		WatchDir:      d.cfg.Paths.WatchDir,
		JournalDBPath: filepath.Join(d.cfg.Paths.LogDir, "journal.db"),
		LockFilePath:  d.lockPath,
	}
}
