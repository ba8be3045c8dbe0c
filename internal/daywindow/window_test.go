package daywindow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

func TestResolveFixedOffsets(t *testing.T) {
	zones := []string{"UTC", "Asia/Kolkata", "Asia/Kathmandu", "Etc/GMT+5", "Etc/GMT-14", "America/Caracas"}
	dates := []time.Time{
		time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC), // time of day is ignored
		time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, tz := range zones {
		loc, err := time.LoadLocation(tz)
		require.NoError(t, err)
		for _, d := range dates {
			w, err := Resolve(d, tz)
			require.NoError(t, err, tz)

			assert.Equal(t, time.UTC, w.Start.Location())
			assert.Equal(t, time.UTC, w.End.Location())

			localStart := w.Start.In(loc)
			localEnd := w.End.In(loc)
			y, m, dd := d.Date()
			assert.Equal(t, time.Date(y, m, dd, 0, 0, 0, 0, loc), localStart, "%s %s", tz, d)
			assert.Equal(t, time.Date(y, m, dd, 23, 59, 59, 999000000, loc), localEnd, "%s %s", tz, d)
			assert.Equal(t, day-time.Millisecond, w.Duration())
		}
	}
}

func TestResolveNegativeAndFractionalOffset(t *testing.T) {
	w, err := ResolveISO("2026-01-27", "Asia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 26, 18, 30, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 1, 27, 18, 29, 59, 999000000, time.UTC), w.End)

	w, err = ResolveISO("2026-01-27", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 27, 5, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 1, 28, 4, 59, 59, 999000000, time.UTC), w.End)
}

func TestResolveDaylightSavingTransitions(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	cases := []struct {
		date  string
		shift time.Duration
	}{
		{"2024-03-10", -time.Hour}, // spring forward
		{"2024-11-03", time.Hour},  // fall back
		{"2024-06-15", 0},
	}
	for _, tc := range cases {
		w, err := ResolveISO(tc.date, "America/New_York")
		require.NoError(t, err)

		assert.Equal(t, day-time.Millisecond+tc.shift, w.Duration(), tc.date)
		assert.Equal(t, "00:00:00.000", w.Start.In(ny).Format("15:04:05.000"), tc.date)
		assert.Equal(t, "23:59:59.999", w.End.In(ny).Format("15:04:05.000"), tc.date)
		assert.Equal(t, tc.date, w.Start.In(ny).Format(DateLayout))
		assert.Equal(t, tc.date, w.End.In(ny).Format(DateLayout))
	}
}

func TestResolveMidnightGap(t *testing.T) {
	// Santiago skips from 00:00 to 01:00 on 2024-09-08.
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	w, err := ResolveISO("2024-09-08", "America/Santiago")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 9, 8, 4, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, "2024-09-08", w.Start.In(santiago).Format(DateLayout))
	assert.Equal(t, "2024-09-07", w.Start.Add(-time.Nanosecond).In(santiago).Format(DateLayout))
	assert.Equal(t, "23:59:59.999", w.End.In(santiago).Format("15:04:05.000"))
}

func TestResolveInvalidTimezone(t *testing.T) {
	for _, tz := range []string{"", "Local", "Mars/Olympus_Mons", "UTC+5"} {
		_, err := Resolve(time.Now(), tz)
		assert.True(t, errors.Is(err, ErrInvalidTimezone), "tz %q: %v", tz, err)
	}
}

func TestResolveISOInvalidDate(t *testing.T) {
	_, err := ResolveISO("2026-13-01", "UTC")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ResolveISO("27/01/2026", "UTC")
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Timezone is checked first.
	_, err = ResolveISO("garbage", "")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestWindowContainsIsHalfOpen(t *testing.T) {
	w, err := ResolveISO("2026-01-27", "UTC")
	require.NoError(t, err)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.Start.Add(12*time.Hour)))
	assert.False(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Millisecond)))
}

func TestToday(t *testing.T) {
	now := time.Date(2026, 1, 27, 2, 0, 0, 0, time.UTC)

	got, err := Today(now, "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-26", got)

	got, err = Today(now, "Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-27", got)

	_, err = Today(now, "")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestSpan(t *testing.T) {
	w, err := Span("2026-01-27", "2026-01-29", "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 27, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 1, 29, 23, 59, 59, 999000000, time.UTC), w.End)

	_, err = Span("2026-01-29", "2026-01-27", "UTC")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
