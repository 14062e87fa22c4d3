package classify

import (
	"context"
	"strings"
)

// KeywordClassifier routes by cheap substring rules. It is the offline
// strategy: no network, deterministic, and good enough for obviously shaped
// content like receipts and meeting notes.
type KeywordClassifier struct {
	rules []keywordRule
}

type keywordRule struct {
	label    string
	keywords []string
}

// NewKeywordClassifier returns the default rule set.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		rules: []keywordRule{
			{label: "School", keywords: []string{"assignment", "midterm", "lecture", "homework", "syllabus", "exam"}},
			{label: "Work", keywords: []string{"meeting", "jira", "ticket", "manager", "deadline", "sprint", "standup"}},
			{label: "Finance", keywords: []string{"$", "total", "subtotal", "tax", "invoice", "payment", "receipt", "budget"}},
			{label: "Personal", keywords: []string{"journal", "diary", "grocery", "birthday", "vacation"}},
		},
	}
}

// Classify returns the first rule label whose keywords match, or an empty
// string when nothing matches (the router falls back).
func (c *KeywordClassifier) Classify(_ context.Context, preview string) (string, error) {
	text := strings.ToLower(preview)
	for _, rule := range c.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.label, nil
			}
		}
	}
	return "", nil
}
