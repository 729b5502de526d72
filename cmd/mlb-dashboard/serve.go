package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-dashboard/internal/dashboard"
	"github.com/yourusername/mlb-dashboard/internal/health"
	"github.com/yourusername/mlb-dashboard/internal/repository"
	"github.com/yourusername/mlb-dashboard/internal/scheduler"
	"github.com/yourusername/mlb-dashboard/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("MLB dashboard starting")

	checkerCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Logger:      appLog,
	}
	if a.db != nil {
		checkerCfg.DB = a.db
	}
	checker := health.NewChecker(checkerCfg)

	if cfg.Sync.Enabled {
		if a.repos == nil {
			appLog.Warn("Game log sync disabled: database unavailable")
		} else {
			sched, err := startSyncScheduler(a.source, a.repos)
			if err != nil {
				return err
			}
			defer func() {
				if err := sched.Stop(); err != nil {
					appLog.WithError(err).Error("Failed to stop scheduler")
				}
			}()
		}
	}

	srv := dashboard.NewServer(dashboard.ServerConfig{
		Addr:           cfg.GetListenAddress(),
		Window:         dateWindow(),
		CORSOrigins:    cfg.Dashboard.CORSOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	}, a.builder, checker, appLog)

	checker.SetReady(true)
	return srv.Start(ctx)
}

func startSyncScheduler(source service.ScheduleFetcher, repos *repository.Repositories) (*scheduler.Scheduler, error) {
	gameSync := service.NewGameSync(source, repos.GameLog, newSyncLogger())
	sched := scheduler.NewScheduler(gameSync, location, appLog)

	if err := sched.ScheduleGameLogSync(cfg.Sync.Cron, cfg.Sync.LookbackDays); err != nil {
		return nil, err
	}
	if err := sched.Start(); err != nil {
		return nil, err
	}

	appLog.WithField("next_run", sched.GetNextRun()).Info("Game log sync scheduled")
	return sched, nil
}
