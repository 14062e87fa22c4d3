package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"sift/internal/services/llm"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	if err != nil {
		t.Fatalf("marshal completion: %v", err)
	}
	return body
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", payload.Messages)
		}
		_, _ = w.Write(completionBody(t, "  Finance  "))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "key", BaseURL: server.URL, Model: "test-model"})
	got, err := client.Complete(context.Background(), "classify", "some text")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Finance" {
		t.Fatalf("expected trimmed content, got %q", got)
	}
}

func TestCompleteRetriesOnTooManyRequests(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write(completionBody(t, "Work"))
	}))
	defer server.Close()

	var slept []time.Duration
	client := llm.NewClient(llm.Config{APIKey: "key", BaseURL: server.URL, Model: "test-model"},
		llm.WithRetryMaxAttempts(3),
		llm.WithRetryBackoff(time.Millisecond, 10*time.Millisecond),
		llm.WithSleeper(func(d time.Duration) { slept = append(slept, d) }),
	)
	got, err := client.Complete(context.Background(), "classify", "some text")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Work" {
		t.Fatalf("expected Work, got %q", got)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 requests, got %d", calls.Load())
	}
	// Retry-After asks for 1s but the configured max delay caps it.
	if len(slept) != 1 || slept[0] != 10*time.Millisecond {
		t.Fatalf("expected one capped Retry-After sleep, got %v", slept)
	}
}

func TestCompleteDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "key", BaseURL: server.URL, Model: "test-model"},
		llm.WithRetryMaxAttempts(3),
		llm.WithSleeper(func(time.Duration) {}),
	)
	if _, err := client.Complete(context.Background(), "classify", "some text"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("400 must not be retried, got %d requests", calls.Load())
	}
}

func TestCompleteRequiresKey(t *testing.T) {
	client := llm.NewClient(llm.Config{BaseURL: "http://127.0.0.1:0", Model: "m"})
	if _, err := client.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected api key error")
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"model not found"}}`))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "key", BaseURL: server.URL, Model: "bad"})
	_, err := client.Complete(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("expected api error")
	}
}
