package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, now time.Time) *Service {
	t.Helper()
	svc, err := New(DefaultTimezone, DefaultDayStartOffset)
	require.NoError(t, err)
	return svc.WithNow(func() time.Time { return now })
}

func TestNewRejectsUnknownTimezone(t *testing.T) {
	_, err := New("Not/AZone", DefaultDayStartOffset)
	assert.Error(t, err)
}

func TestDayStartFloorsToOffsetPastMidnight(t *testing.T) {
	svc, err := New(DefaultTimezone, DefaultDayStartOffset)
	require.NoError(t, err)

	loc := svc.Location()
	afternoon := time.Date(2025, 3, 10, 15, 42, 11, 0, loc)

	start := svc.DayStart(afternoon)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 5, 0, 0, loc), start)
}

func TestDayStartKeepsEarlyInstantsOnTheirCalendarDate(t *testing.T) {
	svc, err := New(DefaultTimezone, DefaultDayStartOffset)
	require.NoError(t, err)

	loc := svc.Location()
	// 00:03 is before the 00:05 marker but still belongs to March 10.
	early := time.Date(2025, 3, 10, 0, 3, 0, 0, loc)

	start := svc.DayStart(early)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 5, 0, 0, loc), start)
}

func TestDaysBetweenSameDateIsZero(t *testing.T) {
	svc, err := New(DefaultTimezone, DefaultDayStartOffset)
	require.NoError(t, err)

	d := time.Date(2025, 6, 1, 9, 0, 0, 0, svc.Location())
	assert.Equal(t, 0, svc.DaysBetween(d, d))
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	svc, err := New(DefaultTimezone, DefaultDayStartOffset)
	require.NoError(t, err)

	loc := svc.Location()
	lateNight := time.Date(2025, 6, 1, 23, 59, 0, 0, loc)
	earlyMorning := time.Date(2025, 6, 1, 0, 1, 0, 0, loc)

	assert.Equal(t, 0, svc.DaysBetween(earlyMorning, lateNight))

	reference := time.Date(2025, 6, 1, 12, 0, 0, 0, loc)
	assert.Equal(t, 0, svc.DaysBetween(reference, lateNight))
	assert.Equal(t, 0, svc.DaysBetween(reference, earlyMorning))
}

func TestDaysBetweenIsHostTimezoneInsensitive(t *testing.T) {
	svc, err := New(DefaultTimezone, DefaultDayStartOffset)
	require.NoError(t, err)

	// The same instants expressed in UTC must produce the same answer as
	// their civil-local representations.
	loc := svc.Location()
	a := time.Date(2025, 6, 1, 10, 0, 0, 0, loc)
	b := time.Date(2025, 6, 4, 10, 0, 0, 0, loc)

	assert.Equal(t, 3, svc.DaysBetween(a, b))
	assert.Equal(t, 3, svc.DaysBetween(a.UTC(), b.UTC()))
	assert.Equal(t, -3, svc.DaysBetween(b, a))
}

func TestDayWindowSpansCalendarMidnights(t *testing.T) {
	svc, err := New(DefaultTimezone, DefaultDayStartOffset)
	require.NoError(t, err)

	loc := svc.Location()
	// 00:02 precedes the 00:05 day-start marker but must still fall inside
	// June 15's own window.
	early := time.Date(2025, 6, 15, 0, 2, 0, 0, loc)

	from, to := svc.DayWindow(early)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, loc), to)
	assert.True(t, !early.Before(from) && early.Before(to))

	late := time.Date(2025, 6, 15, 23, 59, 0, 0, loc)
	assert.True(t, !late.Before(from) && late.Before(to))

	nextDay := time.Date(2025, 6, 16, 0, 1, 0, 0, loc)
	assert.False(t, nextDay.Before(to))
}

func TestParseDateIsCivilLocal(t *testing.T) {
	svc, err := New(DefaultTimezone, DefaultDayStartOffset)
	require.NoError(t, err)

	d, err := svc.ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, svc.Location()), d)

	_, err = svc.ParseDate("01/06/2025")
	assert.Error(t, err)
}

func TestCurrentDayIsOneBased(t *testing.T) {
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, loc)
	svc := fixedClock(t, now)

	// Planting day counts as day 1.
	assert.Equal(t, 1, svc.CurrentDay(time.Date(2025, 6, 15, 8, 0, 0, 0, loc)))
	assert.Equal(t, 15, svc.CurrentDay(time.Date(2025, 6, 1, 23, 0, 0, 0, loc)))
}

func TestCurrentDayClampsFuturePlanting(t *testing.T) {
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, loc)
	svc := fixedClock(t, now)

	assert.Equal(t, 0, svc.CurrentDay(time.Date(2025, 6, 16, 0, 0, 0, 0, loc)))
	assert.Equal(t, 0, svc.CurrentDay(time.Date(2025, 7, 1, 0, 0, 0, 0, loc)))
}
