package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWatch()
	c.normalizeRouting()
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WatchDir, err = expandPath(c.Paths.WatchDir); err != nil {
		return fmt.Errorf("paths.watch_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWatch() {
	normalized := make([]string, 0, len(c.Watch.Extensions))
	for _, ext := range c.Watch.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Watch.Extensions = normalized
	if c.Watch.DebounceWindowMS <= 0 {
		c.Watch.DebounceWindowMS = defaultDebounceWindowMS
	}
	if c.Readiness.Attempts <= 0 {
		c.Readiness.Attempts = defaultReadinessAttempts
	}
	if c.Readiness.DelayMS <= 0 {
		c.Readiness.DelayMS = defaultReadinessDelayMS
	}
	if c.Retry.DelaySeconds <= 0 {
		c.Retry.DelaySeconds = defaultRetryDelaySeconds
	}
	if c.Retry.MaxAttempts < 0 {
		c.Retry.MaxAttempts = defaultRetryMaxAttempts
	}
}

func (c *Config) normalizeRouting() {
	staticMap := make(map[string]string, len(c.Routing.StaticMap))
	for ext, folder := range c.Routing.StaticMap {
		ext = strings.ToLower(strings.TrimSpace(ext))
		folder = strings.TrimSpace(folder)
		if ext == "" || folder == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		staticMap[ext] = folder
	}
	c.Routing.StaticMap = staticMap

	c.Routing.DynamicExtension = strings.ToLower(strings.TrimSpace(c.Routing.DynamicExtension))
	if c.Routing.DynamicExtension != "" && !strings.HasPrefix(c.Routing.DynamicExtension, ".") {
		c.Routing.DynamicExtension = "." + c.Routing.DynamicExtension
	}

	labels := make([]string, 0, len(c.Routing.Labels))
	for _, label := range c.Routing.Labels {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	c.Routing.Labels = labels

	c.Routing.FallbackLabel = strings.TrimSpace(c.Routing.FallbackLabel)
	if c.Routing.FallbackLabel == "" {
		c.Routing.FallbackLabel = defaultFallbackLabel
	}
	c.Routing.Classifier = strings.ToLower(strings.TrimSpace(c.Routing.Classifier))
	if c.Routing.Classifier == "" {
		c.Routing.Classifier = defaultClassifier
	}
	if c.Routing.PreviewMaxChars <= 0 {
		c.Routing.PreviewMaxChars = defaultPreviewMaxChars
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = strings.TrimSpace(os.Getenv("SIFT_LLM_API_KEY"))
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}
