package timezone

import "time"

const DateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC. Parsing in UTC keeps
// the date from drifting to the neighbouring day under a local offset.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DayStart truncates t to midnight of its UTC calendar day.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBounds returns the half-open UTC interval [start, end) covering t's day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := DayStart(t)
	return start, start.AddDate(0, 0, 1)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func Today(now time.Time) time.Time {
	return DayStart(now)
}
