package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"mailroom.app/billing/models"
)

func date(s string) time.Time {
	t, err := time.Parse(models.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAddMonthsClamped(t *testing.T) {
	t.Parallel()

	assert.Equal(t, date("2025-02-28"), addMonthsClamped(date("2025-01-31"), 1))
	assert.Equal(t, date("2024-02-29"), addMonthsClamped(date("2024-01-31"), 1))
	assert.Equal(t, date("2025-03-31"), addMonthsClamped(date("2025-01-31"), 2))
	assert.Equal(t, date("2026-01-15"), addMonthsClamped(date("2025-01-15"), 12))
	assert.Equal(t, date("2025-02-28"), addMonthsClamped(date("2024-02-29"), 12))
}

func TestLastEndedPeriod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		interval models.BillingInterval
		anchor   string
		at       time.Time
		want     models.Period
		ok       bool
	}{
		{
			name:     "calendar month for a first of month anchor",
			interval: models.IntervalMonth,
			anchor:   "2024-06-01",
			at:       time.Date(2025, 2, 1, 0, 15, 0, 0, time.UTC),
			want:     models.Period{Start: date("2025-01-01"), End: date("2025-01-31")},
			ok:       true,
		},
		{
			name:     "mid month anchor",
			interval: models.IntervalMonth,
			anchor:   "2024-06-15",
			at:       time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
			want:     models.Period{Start: date("2025-01-15"), End: date("2025-02-14")},
			ok:       true,
		},
		{
			name:     "end of month anchor clamps in february",
			interval: models.IntervalMonth,
			anchor:   "2024-10-31",
			at:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			want:     models.Period{Start: date("2025-01-31"), End: date("2025-02-27")},
			ok:       true,
		},
		{
			name:     "first month not over yet",
			interval: models.IntervalMonth,
			anchor:   "2025-01-10",
			at:       time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC),
			ok:       false,
		},
		{
			name:     "anchor in the future",
			interval: models.IntervalMonth,
			anchor:   "2025-03-01",
			at:       time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC),
			ok:       false,
		},
		{
			name:     "annual anniversary",
			interval: models.IntervalYear,
			anchor:   "2023-03-15",
			at:       time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			want:     models.Period{Start: date("2024-03-15"), End: date("2025-03-14")},
			ok:       true,
		},
		{
			name:     "annual before the anniversary",
			interval: models.IntervalYear,
			anchor:   "2023-03-15",
			at:       time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
			want:     models.Period{Start: date("2023-03-15"), End: date("2024-03-14")},
			ok:       true,
		},
		{
			name:     "annual first year",
			interval: models.IntervalYear,
			anchor:   "2024-09-01",
			at:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			ok:       false,
		},
	}

	for _, tc := range cases {
		got, ok := LastEndedPeriod(tc.interval, date(tc.anchor), tc.at)
		assert.Equal(t, tc.ok, ok, tc.name)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.name)
		}
	}
}

func TestLastEndedPeriodWithTolerance(t *testing.T) {
	t.Parallel()

	anchor := date("2024-06-01")
	early := time.Date(2025, 1, 31, 23, 30, 0, 0, time.UTC)

	period, ok := LastEndedPeriod(models.IntervalMonth, anchor, early)
	assert.True(t, ok)
	assert.Equal(t, date("2024-12-01"), period.Start)

	period, ok = LastEndedPeriod(models.IntervalMonth, anchor, early.Add(time.Hour))
	assert.True(t, ok)
	assert.Equal(t, models.Period{Start: date("2025-01-01"), End: date("2025-01-31")}, period)
}
