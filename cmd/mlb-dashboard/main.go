// Package main provides the entry point for the MLB predictions dashboard.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-dashboard/internal/config"
	"github.com/yourusername/mlb-dashboard/internal/dashboard"
	"github.com/yourusername/mlb-dashboard/internal/database"
	"github.com/yourusername/mlb-dashboard/internal/datasource"
	"github.com/yourusername/mlb-dashboard/internal/logger"
	"github.com/yourusername/mlb-dashboard/internal/metrics"
	"github.com/yourusername/mlb-dashboard/internal/models"
	"github.com/yourusername/mlb-dashboard/internal/prediction"
	"github.com/yourusername/mlb-dashboard/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
	location   *time.Location
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(serveCmd, predictCmd, syncCmd, gamesCmd)
}

var rootCmd = &cobra.Command{
	Use:           "mlb-dashboard",
	Short:         "MLB daily predictions dashboard",
	Long:          `Fetches the MLB schedule for a date, scores each matchup from recent team form and renders the results.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	location, err = cfg.GetLocation()
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	appLog = logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Debug("Configuration loaded")

	metrics.InitRegistry()
	return nil
}

// offlineStats stands in for the game log when the database is unreachable,
// so every matchup renders as unavailable instead of failing the pass.
type offlineStats struct {
	err error
}

func (o offlineStats) RecentStats(ctx context.Context, since time.Time, completedStatus string, teamIDs ...int) (map[int]*models.TeamRecentStats, error) {
	return nil, o.err
}

// app bundles the collaborators shared by the commands
type app struct {
	db      *database.DB
	repos   *repository.Repositories
	source  *datasource.StatsAPIClient
	builder *dashboard.Builder
}

func (a *app) Close() {
	if a.source != nil {
		_ = a.source.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// newApp wires the schedule client, game log and scorer. When requireDB is false a
// database failure is logged and scoring degrades to "insufficient data".
func newApp(ctx context.Context, requireDB bool) (*app, error) {
	a := &app{}

	httpCfg := datasource.NewStatsAPIConfig(&cfg.ScheduleAPI)
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg.HTTPConfig, logger.NewLeveledLogger(appLog, "statsapi"))
	a.source = datasource.NewStatsAPIClient(httpCfg, httpClient)

	var stats prediction.StatsRepository
	db, err := database.Initialize(ctx, cfg, appLog)
	switch {
	case err == nil:
		a.db = db
		a.repos, err = repository.NewRepositories(db)
		if err != nil {
			a.Close()
			return nil, err
		}
		stats = a.repos.GameLog
	case requireDB:
		a.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	default:
		appLog.WithError(err).Warn("Game log unavailable; predictions will be skipped")
		stats = offlineStats{err: err}
	}

	predLog := logger.NewPredictionLogger(appLog)
	scorer, err := prediction.NewScorer(stats, cfg, predLog)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.builder = dashboard.NewBuilder(a.source, scorer, predLog)

	return a, nil
}

func dateWindow() dashboard.DateWindow {
	return dashboard.DateWindow{
		PastDays:   cfg.Dashboard.PastDays,
		FutureDays: cfg.Dashboard.FutureDays,
		Location:   location,
	}
}

func parseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", value, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return date, nil
}
