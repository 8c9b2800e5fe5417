package billing

import (
	"time"

	"github.com/jinzhu/now"
	"mailroom.app/billing/models"
)

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intervalMonths(interval models.BillingInterval) int {
	if interval == models.IntervalYear {
		return 12
	}
	return 1
}

// addMonthsClamped moves anchor by n months, clamping the day to the end of
// the target month so a 31st anchor bills on the 28th/29th/30th.
func addMonthsClamped(anchor time.Time, n int) time.Time {
	firstOfTarget := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	lastDay := now.With(firstOfTarget).EndOfMonth().Day()
	day := anchor.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// currentBoundary returns the number of whole intervals (in months) elapsed
// between anchor and at, and the start of the period containing at.
func currentBoundary(interval models.BillingInterval, anchor time.Time, at time.Time) (int, time.Time, bool) {
	anchor = dateOnly(anchor)
	day := dateOnly(at)
	if day.Before(anchor) {
		return 0, time.Time{}, false
	}
	step := intervalMonths(interval)
	months := (day.Year()-anchor.Year())*12 + int(day.Month()-anchor.Month())
	months -= months % step
	boundary := addMonthsClamped(anchor, months)
	if boundary.After(day) {
		months -= step
		boundary = addMonthsClamped(anchor, months)
	}
	return months, boundary, true
}

// LastEndedPeriod returns the most recent period whose end boundary is at or
// before at. Callers pass now plus a jitter tolerance of well under a day so
// a run firing slightly early still bills the period that is about to close.
func LastEndedPeriod(interval models.BillingInterval, anchor time.Time, at time.Time) (models.Period, bool) {
	months, boundary, ok := currentBoundary(interval, anchor, at)
	if !ok || months == 0 {
		return models.Period{}, false
	}
	period := models.Period{
		Start: addMonthsClamped(dateOnly(anchor), months-intervalMonths(interval)),
		End:   boundary.AddDate(0, 0, -1),
	}
	if !period.Valid() {
		return models.Period{}, false
	}
	return period, true
}
