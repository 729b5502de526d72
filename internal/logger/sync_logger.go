// Package logger provides game log sync logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SyncLogger records writes into the historical game log.
type SyncLogger struct {
	*logrus.Entry
}

// NewSyncLogger creates a new sync logger.
func NewSyncLogger(baseLogger *logrus.Logger) *SyncLogger {
	return &SyncLogger{
		Entry: baseLogger.WithField("component", "sync"),
	}
}

// LogGameRejected logs a schedule record that failed validation.
func (sl *SyncLogger) LogGameRejected(gamePK int64, date string, err error) {
	sl.WithFields(logrus.Fields{
		"game_pk": gamePK,
		"date":    date,
	}).WithError(err).Warn("Game rejected by validation")
}

// LogDateSynced logs the result of syncing one official date.
func (sl *SyncLogger) LogDateSynced(date string, fetched, final, upserted, rejected int) {
	sl.WithFields(logrus.Fields{
		"date":     date,
		"fetched":  fetched,
		"final":    final,
		"upserted": upserted,
		"rejected": rejected,
	}).Info("Game log synced")
}
