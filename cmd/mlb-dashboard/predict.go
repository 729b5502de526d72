package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-dashboard/internal/dashboard"
)

var (
	predictDate   string
	predictAction string
	predictJSON   bool
)

func init() {
	predictCmd.Flags().StringVarP(&predictDate, "date", "d", "", "Date to predict (YYYY-MM-DD, default today)")
	predictCmd.Flags().StringVarP(&predictAction, "action", "a", "", "Quick select: today, tomorrow, yesterday, day_after, refresh")
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "Print the report as JSON")
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Print predictions for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		date, notices := dateWindow().Resolve(predictAction, predictDate, time.Now())
		report := a.builder.Build(ctx, date)
		report.Notices = append(notices, report.Notices...)

		if predictJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		return dashboard.NewTextRenderer(location).Render(cmd.OutOrStdout(), report)
	},
}
