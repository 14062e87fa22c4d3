package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sift/internal/classify"
	"sift/internal/config"
	"sift/internal/journal"
	"sift/internal/logging"
	"sift/internal/notifications"
	"sift/internal/readiness"
	"sift/internal/router"
)

// Dispatcher feeds eligible, debounced events through the organization
// pipeline. It is safe for concurrent use by the watch loop and retry timers.
type Dispatcher struct {
	cfg        *config.Config
	sink       journal.Sink
	router     *router.Router
	summarizer classify.Summarizer
	notifier   notifications.Service
	prober     readiness.Prober
	gate       *Gate
	logger     *slog.Logger

	retryDelay time.Duration

	mu        sync.Mutex
	closed    bool
	pathLocks map[string]*sync.Mutex
	attempts  map[string]int
	timers    map[*time.Timer]struct{}

	wg sync.WaitGroup
}

// New constructs a dispatcher. The summarizer may be nil; the notifier
// defaults to a noop when nil.
func New(
	cfg *config.Config,
	sink journal.Sink,
	rt *router.Router,
	summarizer classify.Summarizer,
	notifier notifications.Service,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewNop()
	}
	return &Dispatcher{
		cfg:        cfg,
		sink:       sink,
		router:     rt,
		summarizer: summarizer,
		notifier:   notifier,
		prober:     readiness.New(cfg.Readiness.Attempts, time.Duration(cfg.Readiness.DelayMS)*time.Millisecond),
		gate:       NewGate(time.Duration(cfg.Watch.DebounceWindowMS) * time.Millisecond),
		logger:     logger.With(logging.String("component", "dispatch")),
		retryDelay: time.Duration(cfg.Retry.DelaySeconds) * time.Second,
		pathLocks:  make(map[string]*sync.Mutex),
		attempts:   make(map[string]int),
		timers:     make(map[*time.Timer]struct{}),
	}
}

// Dispatch filters, debounces, journals, and (for organizing kinds) acts on
// one event. It never panics; internal faults degrade to action_error
// records so the watch loop stays alive.
func (d *Dispatcher) Dispatch(ctx context.Context, kind journal.Kind, path string) {
	defer func() {
		if r := recover(); r != nil {
			d.recordFault(ctx, path, fmt.Errorf("dispatch panic: %v", r))
		}
	}()

	if d.isClosed() || !d.eligible(path) {
		return
	}

	if !d.gate.Admit(path, time.Now()) {
		return
	}

	// Journal every admitted event before any action so the causal trail is
	// complete even for kinds that never organize.
	d.append(ctx, journal.Record{Kind: kind, Path: path})

	if !kind.TriggersOrganization() {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.recordFault(ctx, path, fmt.Errorf("pipeline panic: %v", r))
			}
		}()
		d.organize(ctx, path)
	}()
}

// Close stops admitting events, cancels pending retries, and waits for
// in-flight workers to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	for timer := range d.timers {
		timer.Stop()
	}
	d.timers = make(map[*time.Timer]struct{})
	d.mu.Unlock()

	d.wg.Wait()
}

// eligible rejects directories and extensions outside the watch-set.
func (d *Dispatcher) eligible(path string) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	return d.cfg.WatchesExtension(ext)
}

func (d *Dispatcher) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Dispatcher) pathLock(path string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	lock, ok := d.pathLocks[path]
	if !ok {
		lock = &sync.Mutex{}
		d.pathLocks[path] = lock
	}
	return lock
}

func (d *Dispatcher) append(ctx context.Context, rec journal.Record) {
	if err := d.sink.Append(ctx, rec); err != nil {
		d.logger.Error("journal append failed",
			logging.String("kind", string(rec.Kind)),
			logging.String("path", rec.Path),
			logging.Error(err),
		)
	}
}

func (d *Dispatcher) recordFault(ctx context.Context, path string, err error) {
	d.logger.Error("pipeline fault", logging.String("path", path), logging.Error(err))
	d.append(ctx, journal.Record{Kind: journal.KindActionError, Path: path, Detail: err.Error()})
	if d.cfg.Notifications.Errors {
		if notifyErr := d.notifier.NotifyError(ctx, err, path); notifyErr != nil {
			d.logger.Warn("error notification failed", logging.Error(notifyErr))
		}
	}
}
