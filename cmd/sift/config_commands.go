package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sift/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigPathCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set paths.watch_dir before running sift.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			staticRoutes := make([]string, 0, len(cfg.Routing.StaticMap))
			for ext, folder := range cfg.Routing.StaticMap {
				staticRoutes = append(staticRoutes, fmt.Sprintf("%s -> %s", ext, folder))
			}

			out := cmd.OutOrStdout()
			printLines(out,
				fmt.Sprintf("watch_dir:          %s", cfg.Paths.WatchDir),
				fmt.Sprintf("log_dir:            %s", cfg.Paths.LogDir),
				fmt.Sprintf("extensions:         %s", strings.Join(cfg.Watch.Extensions, ", ")),
				fmt.Sprintf("recursive:          %s", yesNo(cfg.Watch.Recursive)),
				fmt.Sprintf("debounce_window_ms: %d", cfg.Watch.DebounceWindowMS),
				fmt.Sprintf("readiness:          %d attempts x %dms", cfg.Readiness.Attempts, cfg.Readiness.DelayMS),
				fmt.Sprintf("retry:              every %ds, max %d attempts", cfg.Retry.DelaySeconds, cfg.Retry.MaxAttempts),
				fmt.Sprintf("classifier:         %s", cfg.Routing.Classifier),
				fmt.Sprintf("dynamic_extension:  %s", cfg.Routing.DynamicExtension),
				fmt.Sprintf("labels:             %s", strings.Join(cfg.Routing.Labels, ", ")),
				fmt.Sprintf("fallback_label:     %s", cfg.Routing.FallbackLabel),
				fmt.Sprintf("static_map:         %s", strings.Join(staticRoutes, ", ")),
				fmt.Sprintf("auto_summarize:     %s", yesNo(cfg.Routing.AutoSummarize)),
			)
			return nil
		},
	}
}

func newConfigPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the resolved configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ctx.configPath)
			return nil
		},
	}
}
