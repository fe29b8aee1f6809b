package services

import "time"

// DefaultTimezone is used whenever a participant has no stored zone or the
// stored identifier fails to resolve.
const DefaultTimezone = "America/New_York"

const dateLayout = "2006-01-02"

// DateIn returns the calendar date of t as observed in the given IANA zone.
// The fallback chain (supplied zone, default zone, process local) guarantees a
// date is always returned.
func DateIn(t time.Time, tz *string) string {
	if tz != nil && *tz != "" {
		if loc, err := time.LoadLocation(*tz); err == nil {
			return t.In(loc).Format(dateLayout)
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return t.In(loc).Format(dateLayout)
	}
	return t.Format(dateLayout)
}

// TodayIn returns today's calendar date in the given zone.
func TodayIn(tz *string) string {
	return DateIn(time.Now(), tz)
}
