// Package daywindow converts a calendar date observed in an IANA timezone into the
// UTC instants that bound that day.
package daywindow

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // resolve any IANA zone regardless of the host's zoneinfo
)

// DateLayout is the ISO calendar date format used in query parameters.
const DateLayout = "2006-01-02"

var (
	ErrInvalidTimezone = errors.New("invalid timezone")
	ErrInvalidDate     = errors.New("invalid date")
)

// Window is the half-open UTC interval [Start, End) of one local calendar day.
// End is 23:59:59.999 local time.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration is the wall-clock length of the window. It is not 24h on DST transition days.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// LoadLocation resolves an IANA identifier. Empty and "Local" are rejected so the
// server never substitutes its own zone for the user's.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}
	return loc, nil
}

// Resolve returns the UTC window of date's calendar day as observed in timezone.
// Only the year, month and day of date are used.
func Resolve(date time.Time, timezone string) (Window, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return Window{}, err
	}
	return ResolveIn(date, loc), nil
}

// ResolveIn is Resolve for an already loaded location.
func ResolveIn(date time.Time, loc *time.Location) Window {
	y, m, d := date.Date()

	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if sy, sm, sd := start.Date(); sy != y || sm != m || sd != d {
		// Local midnight falls in a DST gap and was normalized into the previous day.
		// The day then begins at the transition instant.
		_, start = start.ZoneBounds()
	}
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)

	return Window{Start: start.UTC(), End: end.UTC()}
}

// ParseDate parses a yyyy-MM-dd calendar date. The result carries no zone meaning.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// ResolveISO is Resolve for a yyyy-MM-dd date string.
func ResolveISO(date, timezone string) (Window, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return Window{}, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return Window{}, err
	}
	return ResolveIn(d, loc), nil
}

// Today returns the current calendar date in timezone, formatted yyyy-MM-dd.
func Today(now time.Time, timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", err
	}
	return now.In(loc).Format(DateLayout), nil
}

// Span covers the local days from..to inclusive. It fails when to precedes from.
func Span(from, to, timezone string) (Window, error) {
	first, err := ResolveISO(from, timezone)
	if err != nil {
		return Window{}, err
	}
	last, err := ResolveISO(to, timezone)
	if err != nil {
		return Window{}, err
	}
	if last.End.Before(first.Start) {
		return Window{}, fmt.Errorf("%w: %s is before %s", ErrInvalidDate, to, from)
	}
	return Window{Start: first.Start, End: last.End}, nil
}
