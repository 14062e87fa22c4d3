package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WatchDir string `toml:"watch_dir"`
	LogDir   string `toml:"log_dir"`
}

// Watch contains event intake configuration.
type Watch struct {
	// Extensions restricts intake to the listed suffixes (".txt", ".pdf", ...).
	// An empty list watches everything.
	Extensions       []string `toml:"extensions"`
	Recursive        bool     `toml:"recursive"`
	DebounceWindowMS int      `toml:"debounce_window_ms"`
}

// Readiness contains file readiness probe configuration.
type Readiness struct {
	Attempts int `toml:"attempts"`
	DelayMS  int `toml:"delay_ms"`
}

// Retry contains busy-file retry scheduling configuration.
type Retry struct {
	DelaySeconds int `toml:"delay_seconds"`
	// MaxAttempts caps busy retries per path. Zero retries forever, matching
	// the historical behavior; the cap is the recommended default.
	MaxAttempts int `toml:"max_attempts"`
}

// Routing contains destination decision configuration.
type Routing struct {
	// StaticMap routes by extension: ".csv" -> "Data".
	StaticMap map[string]string `toml:"static_map"`
	// DynamicExtension selects which files are routed by content classification.
	DynamicExtension string `toml:"dynamic_extension"`
	// Labels is the allow-list of folder names a classifier may choose from.
	Labels []string `toml:"labels"`
	// FallbackLabel receives files the classifier cannot place confidently.
	FallbackLabel string `toml:"fallback_label"`
	// Classifier selects the classification strategy: "keyword" or "llm".
	Classifier string `toml:"classifier"`
	// AutoSummarize writes a summary sidecar for every dynamically routed file.
	// When false, only files with "@sum" in the name are summarized.
	AutoSummarize bool `toml:"auto_summarize"`
	// PreviewMaxChars bounds how much file content is read for classification.
	PreviewMaxChars int `toml:"preview_max_chars"`
}

// LLM contains connection settings for the classification model.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Organized      bool   `toml:"organized"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Sift.
//
// Configuration sections by subsystem:
//   - Paths: watched inbox and log/journal directories
//   - Watch: extension filter, recursion, debounce window
//   - Readiness: file stability probe attempts and spacing
//   - Retry: busy-file retry delay and attempt cap
//   - Routing: static extension map, dynamic labels, classifier strategy
//   - LLM: connection settings for the llm classifier
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Watch         Watch         `toml:"watch"`
	Readiness     Readiness     `toml:"readiness"`
	Retry         Retry         `toml:"retry"`
	Routing       Routing       `toml:"routing"`
	LLM           LLM           `toml:"llm"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sift/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/sift/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sift.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation. The
// watch directory is never created implicitly; a missing inbox is a
// configuration error, not something the daemon should invent.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// WatchesExtension reports whether the watch-set admits the given path suffix.
// An empty watch-set admits every extension.
func (c *Config) WatchesExtension(ext string) bool {
	if len(c.Watch.Extensions) == 0 {
		return true
	}
	ext = strings.ToLower(strings.TrimSpace(ext))
	for _, candidate := range c.Watch.Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
