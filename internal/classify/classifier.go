package classify

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sift/internal/config"
	"sift/internal/services/llm"
)

// Classifier maps a content preview to a folder label.
type Classifier interface {
	Classify(ctx context.Context, preview string) (string, error)
}

// Summarizer produces a short overview of a content preview. Not every
// classifier strategy can summarize; callers must tolerate a nil Summarizer.
type Summarizer interface {
	Summarize(ctx context.Context, preview string) (string, error)
}

// FromConfig constructs the configured classifier strategy and, when the
// strategy supports it, a summarizer.
func FromConfig(cfg *config.Config) (Classifier, Summarizer) {
	switch cfg.Routing.Classifier {
	case "llm":
		client := llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			Referer:        cfg.LLM.Referer,
			Title:          cfg.LLM.Title,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
		c := NewLLMClassifier(client, cfg.Routing.Labels)
		return c, c
	default:
		return NewKeywordClassifier(), nil
	}
}

// CanonicalLabel normalizes a classifier reply against the allow-list:
// whitespace is trimmed, casing is canonicalized, and anything not in the
// list comes back empty.
func CanonicalLabel(reply string, labels []string) string {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return ""
	}
	reply = strings.Trim(reply, `"'.`)
	titled := cases.Title(language.Und).String(strings.ToLower(reply))
	for _, label := range labels {
		if strings.EqualFold(label, reply) || label == titled {
			return label
		}
	}
	return ""
}
