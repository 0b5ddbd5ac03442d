package freshness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestIsFresh(t *testing.T) {
	tests := []struct {
		name      string
		now       string
		published string
		fresh     bool
	}{
		{"saturday, friday snapshot", "2023-07-08T13:00:00Z", "2023-07-07", true},
		{"saturday, thursday snapshot", "2023-07-08T13:00:00Z", "2023-07-06", false},
		{"sunday, friday snapshot", "2023-07-09T13:00:00Z", "2023-07-07", true},
		{"sunday, thursday snapshot", "2023-07-09T13:00:00Z", "2023-07-06", false},
		{"late sunday, friday snapshot", "2023-07-09T23:59:59Z", "2023-07-07", true},
		{"early saturday, friday snapshot", "2023-07-08T00:00:01Z", "2023-07-07", true},
		{"thursday after cutoff, same day", "2023-07-13T16:00:00Z", "2023-07-13", true},
		{"thursday after cutoff, previous day", "2023-07-13T16:00:00Z", "2023-07-12", false},
		{"monday before cutoff, friday snapshot", "2023-07-10T14:59:59Z", "2023-07-07", true},
		{"monday at cutoff, friday snapshot", "2023-07-10T15:00:00Z", "2023-07-07", false},
		{"friday after cutoff, friday snapshot", "2023-07-07T20:00:00Z", "2023-07-07", true},
		{"snapshot from the future", "2023-07-12T09:00:00Z", "2023-07-13", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IsFresh(mustTime(t, tc.now), mustDate(t, tc.published))
			assert.Equal(t, tc.fresh, got)
		})
	}
}

func TestIsFresh_CutoffBoundary(t *testing.T) {
	// Every weekday of one week: before the cutoff yesterday's snapshot is
	// still the newest, from the cutoff on today's is required.
	for _, day := range []string{"2023-07-10", "2023-07-11", "2023-07-12", "2023-07-13", "2023-07-14"} {
		t.Run(day, func(t *testing.T) {
			today := mustDate(t, day)
			yesterday := today.AddDate(0, 0, -1)
			before := mustTime(t, day+"T14:59:59Z")
			at := mustTime(t, day+"T15:00:00Z")

			assert.True(t, IsFresh(before, yesterday))
			assert.False(t, IsFresh(at, yesterday))
			assert.True(t, IsFresh(before, today))
			assert.True(t, IsFresh(at, today))
		})
	}
}

func TestIsFresh_IsDeterministic(t *testing.T) {
	now := mustTime(t, "2023-07-13T16:00:00Z")
	published := mustDate(t, "2023-07-12")

	first := IsFresh(now, published)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsFresh(now, published))
	}
}

func TestIsFresh_IgnoresTimeOfDayAndZone(t *testing.T) {
	now := mustTime(t, "2023-07-13T16:00:00Z")
	cet := time.FixedZone("CET", 2*60*60)

	assert.True(t, IsFresh(now, time.Date(2023, 7, 13, 23, 0, 0, 0, time.UTC)))
	// 17:00 local on the 13th is the 13th in UTC as well.
	assert.True(t, IsFresh(now.In(cet), time.Date(2023, 7, 13, 17, 0, 0, 0, cet)))
}

func TestExpectedPublication(t *testing.T) {
	p := Default()
	tests := []struct {
		now      string
		expected string
	}{
		{"2023-07-08T13:00:00Z", "2023-07-07"},
		{"2023-07-09T13:00:00Z", "2023-07-07"},
		{"2023-07-10T10:00:00Z", "2023-07-07"},
		{"2023-07-10T15:00:00Z", "2023-07-10"},
		{"2023-07-13T16:00:00Z", "2023-07-13"},
		{"2023-07-13T14:00:00Z", "2023-07-12"},
	}

	for _, tc := range tests {
		t.Run(tc.now, func(t *testing.T) {
			got := p.ExpectedPublication(mustTime(t, tc.now))
			assert.Equal(t, mustDate(t, tc.expected), got)
		})
	}
}

func TestNewPolicy(t *testing.T) {
	p := NewPolicy(14, time.Hour)
	assert.Equal(t, DefaultCutoff, p.Cutoff)

	// Without grace the cutoff moves to 14:00.
	strict := NewPolicy(14, 0)
	now := mustTime(t, "2023-07-13T14:30:00Z")
	assert.False(t, strict.IsFresh(now, mustDate(t, "2023-07-12")))
	assert.True(t, Default().IsFresh(now, mustDate(t, "2023-07-12")))
}
