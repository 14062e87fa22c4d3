package classify_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sift/internal/classify"
	"sift/internal/config"
)

func TestKeywordClassifier(t *testing.T) {
	c := classify.NewKeywordClassifier()
	cases := map[string]string{
		"Invoice #4412, payment due, total $120.50": "Finance",
		"sprint planning meeting with the manager":  "Work",
		"homework for the midterm lecture":          "School",
		"grocery list for the birthday party":       "Personal",
		"nothing remarkable in here":                "",
	}
	for preview, want := range cases {
		got, err := c.Classify(context.Background(), preview)
		if err != nil {
			t.Fatalf("Classify(%q): %v", preview, err)
		}
		if got != want {
			t.Fatalf("Classify(%q) = %q, want %q", preview, got, want)
		}
	}
}

type stubCompleter struct {
	reply string
	err   error
	// captured prompts
	system string
	user   string
}

func (s *stubCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.system = systemPrompt
	s.user = userPrompt
	return s.reply, s.err
}

func TestLLMClassifierPromptsWithLabels(t *testing.T) {
	stub := &stubCompleter{reply: " Finance \n"}
	c := classify.NewLLMClassifier(stub, []string{"Work", "Finance", "Other"})

	got, err := c.Classify(context.Background(), "invoice text")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != "Finance" {
		t.Fatalf("expected trimmed reply, got %q", got)
	}
	if !strings.Contains(stub.user, "Work, Finance, Other") {
		t.Fatalf("prompt missing allow-list: %q", stub.user)
	}
	if !strings.Contains(stub.user, "invoice text") {
		t.Fatalf("prompt missing preview: %q", stub.user)
	}
}

func TestLLMClassifierEmptyPreviewShortCircuits(t *testing.T) {
	stub := &stubCompleter{err: errors.New("should not be called")}
	c := classify.NewLLMClassifier(stub, []string{"Other"})
	got, err := c.Classify(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty label, got %q", got)
	}
}

func TestLLMClassifierPropagatesError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("model offline")}
	c := classify.NewLLMClassifier(stub, []string{"Other"})
	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error from completer")
	}
}

func TestCanonicalLabel(t *testing.T) {
	labels := []string{"School", "Work", "Finance", "Other"}
	cases := map[string]string{
		"Finance":     "Finance",
		"finance":     "Finance",
		" FINANCE ":   "Finance",
		`"Work"`:      "Work",
		"Homework":    "",
		"":            "",
		"Not a label": "",
	}
	for reply, want := range cases {
		if got := classify.CanonicalLabel(reply, labels); got != want {
			t.Fatalf("CanonicalLabel(%q) = %q, want %q", reply, got, want)
		}
	}
}

func TestFromConfigSelectsStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Routing.Classifier = "keyword"
	c, s := classify.FromConfig(&cfg)
	if _, ok := c.(*classify.KeywordClassifier); !ok {
		t.Fatalf("expected keyword classifier, got %T", c)
	}
	if s != nil {
		t.Fatal("keyword strategy has no summarizer")
	}

	cfg.Routing.Classifier = "llm"
	cfg.LLM.APIKey = "key"
	c, s = classify.FromConfig(&cfg)
	if _, ok := c.(*classify.LLMClassifier); !ok {
		t.Fatalf("expected llm classifier, got %T", c)
	}
	if s == nil {
		t.Fatal("llm strategy should summarize")
	}
}
