package classify

import (
	"context"
	"fmt"
	"strings"
)

// Completer is the slice of the llm client the classifier needs.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// LLMClassifier asks a language model to pick exactly one label from the
// allow-list. The reply is returned verbatim (trimmed); validation against
// the allow-list is the router's job, so an off-list reply degrades to the
// fallback folder there instead of failing here.
type LLMClassifier struct {
	client Completer
	labels []string
}

// NewLLMClassifier wraps a completion client with the routing allow-list.
func NewLLMClassifier(client Completer, labels []string) *LLMClassifier {
	return &LLMClassifier{client: client, labels: labels}
}

const classifySystemPrompt = "You are a file organizer. Choose exactly ONE folder for the user's text. Return ONLY the folder name, no extra words. If unsure, return the last folder in the list."

func (c *LLMClassifier) Classify(ctx context.Context, preview string) (string, error) {
	preview = strings.TrimSpace(preview)
	if preview == "" {
		return "", nil
	}
	userPrompt := fmt.Sprintf("Folders: %s\n\nText:\n%s", strings.Join(c.labels, ", "), preview)
	reply, err := c.client.Complete(ctx, classifySystemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

const summarizeSystemPrompt = "Summarize the user's text in 3 concise bullet points, then 3 short tags (single words or short phrases)."

// Summarize produces the bullets-and-tags overview written to summary
// sidecars.
func (c *LLMClassifier) Summarize(ctx context.Context, preview string) (string, error) {
	preview = strings.TrimSpace(preview)
	if preview == "" {
		return "", nil
	}
	return c.client.Complete(ctx, summarizeSystemPrompt, preview)
}
