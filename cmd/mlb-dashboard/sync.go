package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-dashboard/internal/logger"
	"github.com/yourusername/mlb-dashboard/internal/service"
)

var (
	syncFrom string
	syncTo   string
)

func init() {
	syncCmd.Flags().StringVar(&syncFrom, "from", "", "First date to sync (YYYY-MM-DD, default yesterday)")
	syncCmd.Flags().StringVar(&syncTo, "to", "", "Last date to sync (YYYY-MM-DD, default --from)")
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy completed games from the schedule service into the game log",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		start, end, err := syncRange(time.Now())
		if err != nil {
			return err
		}

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		gameSync := service.NewGameSync(a.source, a.repos.GameLog, newSyncLogger())
		runMetrics, err := gameSync.SyncRange(ctx, start, end)
		if runMetrics != nil {
			fmt.Fprintln(cmd.OutOrStdout(), runMetrics.String())
		}
		return err
	},
}

func syncRange(now time.Time) (time.Time, time.Time, error) {
	local := now.In(location)
	yesterday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location).AddDate(0, 0, -1)

	start := yesterday
	if syncFrom != "" {
		var err error
		if start, err = parseDate(syncFrom); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	end := start
	if syncTo != "" {
		var err error
		if end, err = parseDate(syncTo); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	return start, end, nil
}

func newSyncLogger() *logger.SyncLogger {
	return logger.NewSyncLogger(appLog)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
