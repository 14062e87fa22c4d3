// Package daemonrun assembles the daemon runtime from configuration and
// runs it until interrupted.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"sift/internal/classify"
	"sift/internal/config"
	"sift/internal/daemon"
	"sift/internal/dispatch"
	"sift/internal/journal"
	"sift/internal/logging"
	"sift/internal/notifications"
	"sift/internal/preflight"
	"sift/internal/router"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
	JSONLog  bool
}

// Run starts the sift daemon runtime loop and blocks until the context is
// cancelled or a termination signal arrives.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.JSONLog {
		cfg.Logging.Format = "json"
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	results := preflight.RunAll(signalCtx, cfg)
	if failed := preflight.Failed(results); len(failed) > 0 {
		details := make([]string, 0, len(failed))
		for _, res := range failed {
			details = append(details, fmt.Sprintf("%s: %s", res.Name, res.Detail))
		}
		return fmt.Errorf("preflight failed: %s", strings.Join(details, "; "))
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "sift.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := journal.Open(cfg)
	if err != nil {
		logger.Error("open journal store", logging.Error(err))
		return err
	}
	defer store.Close()

	sink := journal.Sink(store)
	jsonlPath := filepath.Join(cfg.Paths.LogDir, "journal.jsonl")
	if mirror, mirrorErr := journal.NewJSONLSink(jsonlPath); mirrorErr != nil {
		logger.Warn("journal jsonl mirror unavailable", logging.Error(mirrorErr))
	} else if mirror != nil {
		defer mirror.Close()
		sink = journal.MultiSink{store, mirror}
	}

	classifier, summarizer := classify.FromConfig(cfg)
	rt := router.New(cfg, classifier, logger)
	notifier := notifications.NewService(cfg)
	dispatcher := dispatch.New(cfg, sink, rt, summarizer, notifier, logger)

	d, err := daemon.New(cfg, dispatcher, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	sessionID := uuid.NewString()
	logger.Info("sift session starting",
		logging.String("session_id", sessionID),
		logging.String("watch_dir", cfg.Paths.WatchDir),
		logging.String("classifier", cfg.Routing.Classifier),
		logging.String("journal_db", store.Path()),
	)

	if err := d.Start(signalCtx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	<-signalCtx.Done()
	logger.Info("sift daemon shutting down", logging.String("session_id", sessionID))
	d.Stop()
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
