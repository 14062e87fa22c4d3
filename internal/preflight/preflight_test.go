package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"sift/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_Missing(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}
}

func TestCheckDirectoryAccess_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result := CheckDirectoryAccess("test", path)
	if result.Passed {
		t.Fatal("expected failure for regular file")
	}
}

func TestCheckLLMMissingKey(t *testing.T) {
	result := CheckLLM(context.Background(), "Classifier LLM", config.LLM{})
	if result.Passed {
		t.Fatal("expected failure without api key")
	}
	if result.Detail != "API key missing" {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckLLMReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"OK"}}]}`))
	}))
	defer server.Close()

	result := CheckLLM(context.Background(), "Classifier LLM", config.LLM{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	})
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestRunAllReportsMissingWatchDir(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WatchDir = filepath.Join(base, "missing-inbox")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Routing.Classifier = "keyword"

	results := RunAll(context.Background(), &cfg)
	failed := Failed(results)
	if len(failed) != 1 {
		t.Fatalf("expected exactly the watch dir check to fail, got %d failures", len(failed))
	}
	if failed[0].Name != "Watch directory" {
		t.Fatalf("unexpected failed check: %s", failed[0].Name)
	}
}

func TestRunAllPassesWithValidDirs(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WatchDir = filepath.Join(base, "inbox")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Routing.Classifier = "keyword"
	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	results := RunAll(context.Background(), &cfg)
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected all checks to pass, first failure: %+v", failed[0])
	}
}
