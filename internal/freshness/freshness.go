// Package freshness decides whether a cached ECB rate snapshot can still be
// trusted or a new one must be fetched.
//
// The ECB publishes one snapshot per business day at around 14:00 UTC. A
// snapshot is expected to exist for a day once that day's cutoff has passed;
// on weekends the newest snapshot is the preceding Friday's.
package freshness

import "time"

const (
	// PublishHourUTC is the hour at which a new snapshot is normally published.
	PublishHourUTC = 14

	// Grace absorbs publication jitter on top of PublishHourUTC.
	Grace = time.Hour

	// DefaultCutoff is the time of day (UTC) after which today's snapshot is required.
	DefaultCutoff = PublishHourUTC*time.Hour + Grace
)

// Policy carries the cutoff used to compute the expected publication date.
// The zero value is not useful; use NewPolicy or Default.
type Policy struct {
	Cutoff time.Duration
}

// NewPolicy builds a Policy from a publication hour and a grace period.
func NewPolicy(publishHourUTC int, grace time.Duration) Policy {
	return Policy{Cutoff: time.Duration(publishHourUTC)*time.Hour + grace}
}

// Default returns the policy with the 15:00 UTC cutoff.
func Default() Policy {
	return Policy{Cutoff: DefaultCutoff}
}

// IsFresh reports whether a snapshot published on the given date is at least
// as new as the one expected at now, using the default cutoff.
func IsFresh(now, published time.Time) bool {
	return Default().IsFresh(now, published)
}

// IsFresh reports whether published is on or after the expected publication date.
// Only the calendar date (in UTC) of published is considered.
func (p Policy) IsFresh(now, published time.Time) bool {
	return !dateOf(published).Before(p.ExpectedPublication(now))
}

// ExpectedPublication returns the date (UTC midnight) of the newest snapshot
// that should exist at now.
func (p Policy) ExpectedPublication(now time.Time) time.Time {
	adjusted := now.UTC().Add(-p.Cutoff)

	if back := daysFromMonday(adjusted.Weekday()) - daysFromMonday(time.Friday); back > 0 {
		adjusted = adjusted.AddDate(0, 0, -back)
	}

	return dateOf(adjusted)
}

// daysFromMonday maps Monday..Sunday to 0..6.
func daysFromMonday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
