package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setLocation(t *testing.T) {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	location = loc
}

func TestSyncRange(t *testing.T) {
	setLocation(t)
	now := time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		from, to  string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{name: "defaults to yesterday", wantStart: "2025-06-14", wantEnd: "2025-06-14"},
		{name: "single day", from: "2025-05-01", wantStart: "2025-05-01", wantEnd: "2025-05-01"},
		{name: "explicit range", from: "2025-05-01", to: "2025-05-07", wantStart: "2025-05-01", wantEnd: "2025-05-07"},
		{name: "bad from", from: "May 1", wantErr: true},
		{name: "bad to", from: "2025-05-01", to: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncFrom, syncTo = tt.from, tt.to
			t.Cleanup(func() { syncFrom, syncTo = "", "" })

			start, end, err := syncRange(now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start.Format("2006-01-02"))
			assert.Equal(t, tt.wantEnd, end.Format("2006-01-02"))
		})
	}
}

func TestOfflineStats(t *testing.T) {
	cause := errors.New("connection refused")
	stats, err := offlineStats{err: cause}.RecentStats(context.Background(), time.Now(), "Final", 1, 2)

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, cause)
}
