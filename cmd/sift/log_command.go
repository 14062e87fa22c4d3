package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sift/internal/config"
	"sift/internal/journal"
)

const logDetailWidth = 60

func newLogCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var forPath string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			var records []journal.Record
			if strings.TrimSpace(forPath) != "" {
				expanded, pathErr := config.ExpandPath(forPath)
				if pathErr != nil {
					return fmt.Errorf("resolve path: %w", pathErr)
				}
				records, err = store.ForPath(cmd.Context(), expanded)
			} else {
				records, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Journal is empty")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Timestamp.Local().Format(time.DateTime),
					string(rec.Kind),
					rec.Path,
					rec.Folder,
					truncateDetail(rec.Detail),
				})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Time", "Event", "Path", "Folder", "Detail"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of entries to show")
	cmd.Flags().StringVar(&forPath, "path", "", "Show the full history for one file instead")
	return cmd
}

func truncateDetail(detail string) string {
	detail = strings.ReplaceAll(detail, "\n", " ")
	if len(detail) <= logDetailWidth {
		return detail
	}
	return detail[:logDetailWidth-3] + "..."
}
