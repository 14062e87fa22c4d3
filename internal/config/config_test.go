package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sift/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.WatchDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("expected missing config, got exists for %s", resolved)
	}
	if cfg.Watch.DebounceWindowMS != 500 {
		t.Fatalf("expected default debounce window, got %d", cfg.Watch.DebounceWindowMS)
	}
	if cfg.Routing.Classifier != "keyword" {
		t.Fatalf("expected keyword classifier default, got %q", cfg.Routing.Classifier)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
watch_dir = "` + dir + `"
log_dir = "` + dir + `"

[watch]
extensions = ["TXT", ".Csv"]
debounce_window_ms = 250

[routing]
dynamic_extension = "txt"
labels = ["Work", "Other"]
fallback_label = "Other"
classifier = "keyword"

[routing.static_map]
"csv" = "Data"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if got := cfg.Watch.Extensions; len(got) != 2 || got[0] != ".txt" || got[1] != ".csv" {
		t.Fatalf("extensions not normalized: %v", got)
	}
	if cfg.Routing.DynamicExtension != ".txt" {
		t.Fatalf("dynamic extension not normalized: %q", cfg.Routing.DynamicExtension)
	}
	if folder := cfg.Routing.StaticMap[".csv"]; folder != "Data" {
		t.Fatalf("static map not normalized: %v", cfg.Routing.StaticMap)
	}
	if !cfg.WatchesExtension(".TXT") {
		t.Fatal("WatchesExtension should be case-insensitive")
	}
	if cfg.WatchesExtension(".pdf") {
		t.Fatal("extension outside watch-set should be rejected")
	}
}

func TestValidateRejectsUnknownClassifier(t *testing.T) {
	cfg := config.Default()
	cfg.Routing.Classifier = "oracle"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "routing.classifier") {
		t.Fatalf("expected classifier validation error, got %v", err)
	}
}

func TestValidateRejectsFallbackOutsideLabels(t *testing.T) {
	cfg := config.Default()
	cfg.Routing.FallbackLabel = "Elsewhere"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "fallback_label") {
		t.Fatalf("expected fallback label validation error, got %v", err)
	}
}

func TestValidateLLMRequiresKey(t *testing.T) {
	cfg := config.Default()
	cfg.Routing.Classifier = "llm"
	cfg.LLM.APIKey = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "llm.api_key") {
		t.Fatalf("expected llm key validation error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[routing]") {
		t.Fatal("sample config missing routing section")
	}

	// The sample must itself load cleanly once the watch dir exists.
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
