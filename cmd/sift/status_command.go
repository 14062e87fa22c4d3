package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sift/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and environment health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			printLines(out,
				"Configuration",
				fmt.Sprintf("  Config file:    %s", ctx.configPath),
				fmt.Sprintf("  Watch dir:      %s", cfg.Paths.WatchDir),
				fmt.Sprintf("  Log dir:        %s", cfg.Paths.LogDir),
				fmt.Sprintf("  Extensions:     %s", strings.Join(cfg.Watch.Extensions, ", ")),
				fmt.Sprintf("  Classifier:     %s", cfg.Routing.Classifier),
				fmt.Sprintf("  Fallback:       %s", cfg.Routing.FallbackLabel),
				fmt.Sprintf("  Notifications:  %s", yesNo(strings.TrimSpace(cfg.Notifications.NtfyTopic) != "")),
				fmt.Sprintf("  Journal:        %s", filepath.Join(cfg.Paths.LogDir, "journal.db")),
				"",
				"Checks",
			)

			results := preflight.RunAll(cmd.Context(), cfg)
			for _, res := range results {
				state := "FAIL"
				if res.Passed {
					state = "OK"
				}
				fmt.Fprintf(out, "  %-20s [%s] %s\n", res.Name+":", state, res.Detail)
			}
			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d check(s) failed", len(failed))
			}
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
