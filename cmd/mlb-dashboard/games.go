package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var gamesDate string

func init() {
	gamesCmd.Flags().StringVarP(&gamesDate, "date", "d", "", "Official date to list (YYYY-MM-DD)")
	_ = gamesCmd.MarkFlagRequired("date")
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the games stored in the game log for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		date, err := parseDate(gamesDate)
		if err != nil {
			return err
		}

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		games, err := a.repos.GameLog.GetByOfficialDate(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to load games: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GAME\tMATCHUP\tSCORE\tSTATUS")
		for _, g := range games {
			score := "-"
			if g.AwayScore != nil && g.HomeScore != nil {
				score = fmt.Sprintf("%d-%d", *g.AwayScore, *g.HomeScore)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", g.GamePK, g.Matchup(), score, g.Status)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d games logged for %s\n", len(games), gamesDate)
		return nil
	},
}
