package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRouting(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WatchDir) == "" {
		return errors.New("paths.watch_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateRouting() error {
	if c.Routing.DynamicExtension != "" && !strings.HasPrefix(c.Routing.DynamicExtension, ".") {
		return fmt.Errorf("routing.dynamic_extension %q must start with a dot", c.Routing.DynamicExtension)
	}
	switch c.Routing.Classifier {
	case "keyword", "llm":
	default:
		return fmt.Errorf("routing.classifier %q must be \"keyword\" or \"llm\"", c.Routing.Classifier)
	}
	if c.Routing.DynamicExtension != "" {
		if len(c.Routing.Labels) == 0 {
			return errors.New("routing.labels must list at least one folder when dynamic routing is enabled")
		}
		found := false
		for _, label := range c.Routing.Labels {
			if label == c.Routing.FallbackLabel {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("routing.fallback_label %q must be one of routing.labels", c.Routing.FallbackLabel)
		}
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.Routing.Classifier != "llm" || c.Routing.DynamicExtension == "" {
		return nil
	}
	if c.LLM.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/sift/config.toml"
		}
		return fmt.Errorf("llm.api_key is required for the llm classifier. Set SIFT_LLM_API_KEY or edit %s (create with 'sift config init')", defaultPath)
	}
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		return errors.New("llm.base_url must be set")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be \"console\" or \"json\"", c.Logging.Format)
	}
	return nil
}
