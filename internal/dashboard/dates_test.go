package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow(t *testing.T) DateWindow {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return DateWindow{PastDays: 7, FutureDays: 14, Location: loc}
}

func TestDateWindow_Today(t *testing.T) {
	w := testWindow(t)

	// 02:30 UTC is still the previous evening in New York
	now := time.Date(2025, 6, 16, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-15", w.Today(now).Format(dateLayout))
}

func TestDateWindow_Resolve(t *testing.T) {
	w := testWindow(t)
	now := time.Date(2025, 6, 15, 16, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		action      string
		selected    string
		want        string
		wantNotices int
	}{
		{name: "defaults to today", want: "2025-06-15"},
		{name: "explicit date", selected: "2025-06-20", want: "2025-06-20"},
		{name: "today action overrides selection", action: ActionToday, selected: "2025-06-20", want: "2025-06-15"},
		{name: "tomorrow", action: ActionTomorrow, want: "2025-06-16"},
		{name: "yesterday", action: ActionYesterday, want: "2025-06-14"},
		{name: "day after tomorrow", action: ActionDayAfter, want: "2025-06-17"},
		{name: "refresh keeps selection", action: ActionRefresh, selected: "2025-06-10", want: "2025-06-10"},
		{name: "earliest allowed", selected: "2025-06-08", want: "2025-06-08"},
		{name: "latest allowed", selected: "2025-06-29", want: "2025-06-29"},
		{name: "too far back is clamped", selected: "2025-06-01", want: "2025-06-08", wantNotices: 1},
		{name: "too far ahead is clamped", selected: "2025-07-30", want: "2025-06-29", wantNotices: 1},
		{name: "invalid date falls back to today", selected: "June 20", want: "2025-06-15", wantNotices: 1},
		{name: "unknown action is reported", action: "next_week", selected: "2025-06-12", want: "2025-06-12", wantNotices: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, notices := w.Resolve(tt.action, tt.selected, now)
			assert.Equal(t, tt.want, got.Format(dateLayout))
			assert.Len(t, notices, tt.wantNotices)
		})
	}
}

func TestDateWindow_Bounds(t *testing.T) {
	w := testWindow(t)
	now := time.Date(2025, 6, 15, 16, 0, 0, 0, time.UTC)

	first, last := w.Bounds(now)
	assert.Equal(t, "2025-06-08", first.Format(dateLayout))
	assert.Equal(t, "2025-06-29", last.Format(dateLayout))
}
