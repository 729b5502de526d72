package dashboard

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Quick-select actions accepted by the dashboard
const (
	ActionToday     = "today"
	ActionTomorrow  = "tomorrow"
	ActionYesterday = "yesterday"
	ActionDayAfter  = "day_after"
	ActionRefresh   = "refresh"
)

// DateWindow bounds the dates a caller may select, relative to today in Location
type DateWindow struct {
	PastDays   int
	FutureDays int
	Location   *time.Location
}

// Today returns midnight of the current day in the window's location
func (w DateWindow) Today(now time.Time) time.Time {
	loc := w.location()
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// Bounds returns the first and last selectable dates
func (w DateWindow) Bounds(now time.Time) (time.Time, time.Time) {
	today := w.Today(now)
	return today.AddDate(0, 0, -w.PastDays), today.AddDate(0, 0, w.FutureDays)
}

// Resolve turns a quick-select action and a YYYY-MM-DD selection into a date inside
// the window. Anything that had to be corrected is reported as a notice.
func (w DateWindow) Resolve(action, selected string, now time.Time) (time.Time, []string) {
	var notices []string
	today := w.Today(now)

	switch action {
	case ActionToday:
		return today, nil
	case ActionTomorrow:
		return w.clamp(today.AddDate(0, 0, 1), now, notices)
	case ActionYesterday:
		return w.clamp(today.AddDate(0, 0, -1), now, notices)
	case ActionDayAfter:
		return w.clamp(today.AddDate(0, 0, 2), now, notices)
	case "", ActionRefresh:
	default:
		notices = append(notices, fmt.Sprintf("Unknown action %q ignored", action))
	}

	if selected == "" {
		return today, notices
	}

	date, err := time.ParseInLocation(dateLayout, selected, w.location())
	if err != nil {
		notices = append(notices, fmt.Sprintf("Invalid date %q, showing today", selected))
		return today, notices
	}

	return w.clamp(date, now, notices)
}

func (w DateWindow) clamp(date, now time.Time, notices []string) (time.Time, []string) {
	first, last := w.Bounds(now)

	switch {
	case date.Before(first):
		notices = append(notices, fmt.Sprintf("%s is outside the available range (%s to %s), showing %s",
			date.Format(dateLayout), first.Format(dateLayout), last.Format(dateLayout), first.Format(dateLayout)))
		return first, notices
	case date.After(last):
		notices = append(notices, fmt.Sprintf("%s is outside the available range (%s to %s), showing %s",
			date.Format(dateLayout), first.Format(dateLayout), last.Format(dateLayout), last.Format(dateLayout)))
		return last, notices
	}

	return date, notices
}

func (w DateWindow) location() *time.Location {
	if w.Location == nil {
		return time.Local
	}
	return w.Location
}
