package config

const (
	defaultWatchDir            = "~/inbox"
	defaultLogDir              = "~/.local/share/sift/logs"
	defaultDebounceWindowMS    = 500
	defaultReadinessAttempts   = 20
	defaultReadinessDelayMS    = 250
	defaultRetryDelaySeconds   = 1
	defaultRetryMaxAttempts    = 5
	defaultDynamicExtension    = ".txt"
	defaultFallbackLabel       = "Other"
	defaultClassifier          = "keyword"
	defaultPreviewMaxChars     = 3000
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel            = "google/gemini-3-flash-preview"
	defaultLLMTimeoutSeconds   = 60
	defaultNotifyTimeout       = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WatchDir: defaultWatchDir,
			LogDir:   defaultLogDir,
		},
		Watch: Watch{
			Extensions:       []string{".txt", ".md", ".csv", ".log", ".pdf"},
			Recursive:        true,
			DebounceWindowMS: defaultDebounceWindowMS,
		},
		Readiness: Readiness{
			Attempts: defaultReadinessAttempts,
			DelayMS:  defaultReadinessDelayMS,
		},
		Retry: Retry{
			DelaySeconds: defaultRetryDelaySeconds,
			MaxAttempts:  defaultRetryMaxAttempts,
		},
		Routing: Routing{
			StaticMap: map[string]string{
				".pdf": "PDFs",
				".md":  "Docs",
				".csv": "Data",
				".log": "Logs",
			},
			DynamicExtension: defaultDynamicExtension,
			Labels:           []string{"School", "Work", "Personal", "Finance", "Other"},
			FallbackLabel:    defaultFallbackLabel,
			Classifier:       defaultClassifier,
			PreviewMaxChars:  defaultPreviewMaxChars,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Organized:      true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
