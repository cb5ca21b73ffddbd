package domain

import "time"

// DefaultPeriodSeconds is the resolution cadence of the up/down crypto
// markets this scanner targets. Kept configurable because Polymarket also
// lists 15-minute and hourly variants of the same product.
const DefaultPeriodSeconds = 300

// Period identifies one resolution epoch for one symbol. Immutable once
// created; a new Period supersedes it when the floor of the wall clock
// moves to the next window.
type Period struct {
	Symbol string
	Start  int64 // epoch seconds, floor(now / length) * length
	End    int64
}

// PeriodStart returns the start of the period containing now.
func PeriodStart(now time.Time, length time.Duration) int64 {
	secs := int64(length.Seconds())
	if secs <= 0 {
		secs = DefaultPeriodSeconds
	}
	return (now.Unix() / secs) * secs
}

// NewPeriod builds the Period for symbol containing now.
func NewPeriod(symbol string, now time.Time, length time.Duration) Period {
	start := PeriodStart(now, length)
	return Period{
		Symbol: symbol,
		Start:  start,
		End:    start + int64(length.Seconds()),
	}
}

// TimeRemaining returns the seconds left until the period closes.
// Never negative.
func (p Period) TimeRemaining(now time.Time) float64 {
	left := float64(p.End) - float64(now.UnixNano())/float64(time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// Contains reports whether now falls inside this period.
func (p Period) Contains(now time.Time) bool {
	ts := now.Unix()
	return ts >= p.Start && ts < p.End
}

// StartTime returns the period start as a time.Time in UTC.
func (p Period) StartTime() time.Time {
	return time.Unix(p.Start, 0).UTC()
}
