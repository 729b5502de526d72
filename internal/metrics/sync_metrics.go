package metrics

import "github.com/prometheus/client_golang/prometheus"

// Game log sync metrics
var (
	GamesSyncedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_synced_total",
		Help:      "Total number of final games written to the game log",
	})
	GamesRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_rejected_total",
		Help:      "Total number of games rejected by validation during sync",
	})
	SyncRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Total number of per-date sync runs by result",
	}, []string{"result"})
)

// RecordSyncRun records the outcome of syncing one date.
func RecordSyncRun(ok bool, upserted, rejected int) {
	SyncRunsTotal.WithLabelValues(resultLabel(ok, "success", "error")).Inc()
	GamesSyncedTotal.Add(float64(upserted))
	GamesRejectedTotal.Add(float64(rejected))
}
