package router

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"sift/internal/classify"
	"sift/internal/config"
	"sift/internal/logging"
)

// DecisionKind describes which strategy produced a route.
type DecisionKind string

const (
	// DecisionNone means the file is not ours to organize.
	DecisionNone DecisionKind = "none"
	// DecisionStatic means the extension map chose the folder.
	DecisionStatic DecisionKind = "static"
	// DecisionDynamic means the classifier chose the folder.
	DecisionDynamic DecisionKind = "dynamic"
	// DecisionFallback means dynamic routing degraded to the fallback folder.
	DecisionFallback DecisionKind = "fallback"
)

// Decision is the routing outcome for one path.
type Decision struct {
	Folder string
	Kind   DecisionKind
}

// Router picks destination folders using the configured strategies.
type Router struct {
	cfg        *config.Config
	classifier classify.Classifier
	logger     *slog.Logger
}

// New constructs a router. The classifier may be nil when dynamic routing is
// disabled.
func New(cfg *config.Config, classifier classify.Classifier, logger *slog.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Router{cfg: cfg, classifier: classifier, logger: logger.With(logging.String("component", "router"))}
}

// Handles reports whether any strategy applies to path. Unlike Route it
// never reads the file or calls the classifier, so it is safe to ask before
// the file is ready.
func (r *Router) Handles(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if r.cfg.Routing.DynamicExtension != "" && ext == r.cfg.Routing.DynamicExtension && r.classifier != nil {
		return true
	}
	_, ok := r.cfg.Routing.StaticMap[ext]
	return ok
}

// Route decides the destination folder for path. A Decision with
// DecisionNone means no action; dynamic routes always carry a folder from
// the allow-list.
func (r *Router) Route(ctx context.Context, path string) Decision {
	ext := strings.ToLower(filepath.Ext(path))

	if r.cfg.Routing.DynamicExtension != "" && ext == r.cfg.Routing.DynamicExtension && r.classifier != nil {
		return r.routeDynamic(ctx, path)
	}

	if folder, ok := r.cfg.Routing.StaticMap[ext]; ok {
		return Decision{Folder: folder, Kind: DecisionStatic}
	}
	return Decision{Kind: DecisionNone}
}

func (r *Router) routeDynamic(ctx context.Context, path string) Decision {
	fallback := Decision{Folder: r.cfg.Routing.FallbackLabel, Kind: DecisionFallback}

	preview, err := Preview(path, r.cfg.Routing.PreviewMaxChars)
	if err != nil || strings.TrimSpace(preview) == "" {
		if err != nil {
			r.logger.Warn("preview read failed; using fallback folder",
				logging.String("path", path),
				logging.Error(err),
			)
		}
		return fallback
	}

	reply, err := r.classifier.Classify(ctx, preview)
	if err != nil {
		r.logger.Warn("classification failed; using fallback folder",
			logging.String("path", path),
			logging.Error(err),
		)
		return fallback
	}

	label := classify.CanonicalLabel(reply, r.cfg.Routing.Labels)
	if label == "" {
		if strings.TrimSpace(reply) != "" {
			r.logger.Warn("classifier returned unrecognized label; using fallback folder",
				logging.String("path", path),
				logging.String("label", reply),
			)
		}
		return fallback
	}
	return Decision{Folder: label, Kind: DecisionDynamic}
}

// WantsSummary reports whether the filename requests a summary sidecar via
// the "@sum" marker in its stem.
func WantsSummary(path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Contains(strings.ToLower(stem), "@sum")
}
