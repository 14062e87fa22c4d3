package dispatch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"sift/internal/journal"
	"sift/internal/logging"
	"sift/internal/mover"
	"sift/internal/router"
	"sift/internal/services"
)

// organize runs the probe → route → move pipeline for one path. The per-path
// lock serializes movers so two in-flight triggers for the same file cannot
// race on the destination probe. Returns through recordFault on failure.
func (d *Dispatcher) organize(ctx context.Context, path string) {
	lock := d.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	// Only act on files directly inside the watch root; anything deeper is a
	// destination folder and acting there would re-process moved files.
	if filepath.Dir(path) != d.cfg.Paths.WatchDir {
		return
	}

	if !d.router.Handles(path) {
		return
	}

	ready, err := d.prober.Wait(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		d.recordFault(ctx, path, err)
		return
	}
	if !ready {
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			// Vanished input: terminal, nothing to do.
			d.logger.Debug("file vanished before it became ready", logging.String("path", path))
			return
		}
		d.scheduleRetry(ctx, path)
		return
	}

	// Route only after readiness: a preview taken from a half-written file
	// may misclassify.
	decision := d.router.Route(ctx, path)
	if decision.Kind == router.DecisionNone {
		return
	}

	destDir := filepath.Join(d.cfg.Paths.WatchDir, decision.Folder)
	finalPath, err := mover.Move(path, destDir)
	if err != nil {
		if services.IsVanished(err) {
			d.logger.Debug("file vanished during move", logging.String("path", path))
			return
		}
		d.recordFault(ctx, path, err)
		return
	}
	d.clearAttempts(path)

	kind := journal.KindOrganized
	if decision.Kind == router.DecisionDynamic || decision.Kind == router.DecisionFallback {
		kind = journal.KindAIRouted
	}
	d.append(ctx, journal.Record{Kind: kind, Path: finalPath, Folder: decision.Folder})
	d.logger.Info("organized file",
		logging.String("path", path),
		logging.String("folder", decision.Folder),
		logging.String("final_path", finalPath),
	)

	if d.cfg.Notifications.Organized {
		if err := d.notifier.NotifyOrganized(ctx, filepath.Base(finalPath), decision.Folder); err != nil {
			d.logger.Warn("organized notification failed", logging.Error(err))
		}
	}

	if kind == journal.KindAIRouted {
		d.maybeSummarize(ctx, path, finalPath)
	}
}

// maybeSummarize writes a summary sidecar next to the organized file when
// the strategy supports it and either auto-summarize is on or the filename
// asked with "@sum". Summaries run after the move so they attach to the
// final path.
func (d *Dispatcher) maybeSummarize(ctx context.Context, originalPath, finalPath string) {
	if d.summarizer == nil {
		return
	}
	if !d.cfg.Routing.AutoSummarize && !router.WantsSummary(originalPath) {
		return
	}

	preview, err := router.Preview(finalPath, d.cfg.Routing.PreviewMaxChars)
	if err != nil {
		d.append(ctx, journal.Record{Kind: journal.KindSummaryErr, Path: finalPath, Detail: err.Error()})
		return
	}
	summary, err := d.summarizer.Summarize(ctx, preview)
	if err != nil {
		d.append(ctx, journal.Record{Kind: journal.KindSummaryErr, Path: finalPath, Detail: err.Error()})
		return
	}
	if summary == "" {
		return
	}
	if _, err := mover.WriteSummarySidecar(finalPath, summary); err != nil {
		d.append(ctx, journal.Record{Kind: journal.KindSummaryErr, Path: finalPath, Detail: err.Error()})
		return
	}
	d.append(ctx, journal.Record{Kind: journal.KindSummary, Path: finalPath, Detail: summary})
}
