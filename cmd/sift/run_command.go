package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sift/internal/daemonrun"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var logLevel string
	var jsonLog bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Watch the inbox and organize files until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{LogLevel: logLevel, JSONLog: jsonLog})
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&jsonLog, "json", false, "Emit JSON logs regardless of the configured format")
	return cmd
}
