package clock

import (
	"fmt"
	"time"
)

// DefaultTimezone is the civil timezone all day arithmetic is anchored to.
const DefaultTimezone = "Asia/Ho_Chi_Minh"

// DefaultDayStartOffset shifts the civil day boundary slightly past midnight
// so that jobs firing at 00:00 sharp still land on the intended day.
const DefaultDayStartOffset = 5 * time.Minute

// Service normalizes all date arithmetic to a fixed civil timezone with a
// configurable day-start offset. The server host timezone never matters:
// every calculation converts to the configured location first.
type Service struct {
	loc    *time.Location
	offset time.Duration
	nowFn  func() time.Time
}

// New creates a clock service for the given IANA timezone name and
// day-start offset.
func New(timezone string, offset time.Duration) (*Service, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Service{loc: loc, offset: offset, nowFn: time.Now}, nil
}

// Default creates a clock service with the production defaults.
func Default() *Service {
	svc, err := New(DefaultTimezone, DefaultDayStartOffset)
	if err != nil {
		// The default zone ships with the Go tzdata; failing to load it
		// means the environment is broken beyond recovery.
		panic(err)
	}
	return svc
}

// WithNow returns a copy of the service using a fixed now function.
// Used by tests and by jobs that must evaluate a whole scan against one
// consistent instant.
func (s *Service) WithNow(nowFn func() time.Time) *Service {
	return &Service{loc: s.loc, offset: s.offset, nowFn: nowFn}
}

// Location returns the configured civil timezone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the current instant in the civil timezone.
func (s *Service) Now() time.Time {
	return s.nowFn().In(s.loc)
}

// Today returns the day-start instant of the current civil day.
func (s *Service) Today() time.Time {
	return s.DayStart(s.Now())
}

// DayStart converts t to the civil timezone, floors it to midnight and adds
// the day-start offset. The offset shifts the nominal day-start marker only;
// it never reclassifies an instant into the previous civil day.
func (s *Service) DayStart(t time.Time) time.Time {
	local := t.In(s.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return midnight.Add(s.offset)
}

// DaysBetween returns the whole civil days from a to b. Both inputs go
// through DayStart first, so time-of-day never influences the result.
func (s *Service) DaysBetween(a, b time.Time) int {
	startA := s.DayStart(a)
	startB := s.DayStart(b)
	return int(startB.Sub(startA) / (24 * time.Hour))
}

// SameDay reports whether a and b fall on the same civil day.
func (s *Service) SameDay(a, b time.Time) bool {
	return s.DaysBetween(a, b) == 0
}

// DayWindow returns the half-open interval [from, to) spanning the civil day
// containing t. The bounds are plain calendar midnights: an instant recorded
// before the day-start offset still falls inside its own day's window, so the
// interval groups instants exactly the way SameDay does.
func (s *Service) DayWindow(t time.Time) (time.Time, time.Time) {
	local := t.In(s.loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return from, from.AddDate(0, 0, 1)
}

// ParseDate parses a date-only string (YYYY-MM-DD) as civil-local midnight.
// Parsing in UTC and converting later would shift the date across the zone
// boundary, so the location is applied at parse time.
func (s *Service) ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// CurrentDay returns the 1-based day number of a record planted on
// plantedDate. The planting day itself counts as day 1; future planting
// dates clamp to 0.
func (s *Service) CurrentDay(plantedDate time.Time) int {
	days := s.DaysBetween(plantedDate, s.Now()) + 1
	if days < 0 {
		return 0
	}
	return days
}
