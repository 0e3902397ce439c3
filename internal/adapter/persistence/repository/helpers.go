package repository

import "time"

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime accepts RFC3339 timestamps and the plain dates (2006-01-02)
// found in older rows. Anything else yields the zero time.
func parseTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t
	}
	return time.Time{}
}
