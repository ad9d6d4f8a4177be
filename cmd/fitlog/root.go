// ABOUTME: Root Cobra command for fitlog CLI.
// ABOUTME: Handles storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fitlog/internal/config"
	"fitlog/internal/storage"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "fitlog",
	Short: "Personal compound and exercise tracker",
	Long: `Fitlog tracks compound dosages with half-life decay and your exercise log.

COMPOUNDS AND DOSES:

  Each compound has a half-life in days and a tracking start date. Doses
  are a per-date ledger: setting a dose for a date you already logged
  overwrites the old amount, and setting 0 clears the day.

  $ fitlog compound add "Compound A" --half-life 1.5 --start 2026-01-01
  $ fitlog dose set comp 2026-01-05 50       # Log 50mg on Jan 5
  $ fitlog dose set comp 2026-01-05 30       # Correct it to 30mg
  $ fitlog dose zero comp 2026-01-05         # Clear the day
  $ fitlog series comp --days 30             # Decay curve with forecast

EXERCISE LOG:

  $ fitlog entry add 2026-01-05 lifting squat --quant "5x5 @ 100kg"
  $ fitlog entry list --category cardio
  $ fitlog stats --year 2026                 # Activity heatmap and counts

SERVER AND SYNC:

  $ fitlog serve                  # HTTP API (set FITLOG_PASSWORD)
  $ fitlog sync push              # Mirror data to Charm Cloud
  $ fitlog export json            # Full backup

MCP INTEGRATION:

  Run 'fitlog mcp' to start the Model Context Protocol server for use
  with MCP-compatible AI assistants.

DATA STORAGE:

  Data lives in a SQLite database at ~/.local/share/fitlog/fitlog.db.
  Override the location with data_dir in ~/.config/fitlog/config.json.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
