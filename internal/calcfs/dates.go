package calcfs

import (
	"strings"
	"time"
)

// ParseDate parses a fixed-width YYYYMMDD date. Malformed or wrong-length
// values yield nil rather than an error: a record with an unreadable date is
// still worth importing.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if len(raw) != 8 {
		return nil
	}
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return nil
	}
	return &t
}

// ParseDateTime parses a YYYYMMDDHHMMSS timestamp with a
// "YYYY-MM-DD HH:MM:SS" fallback seen in older exports. Nil on failure.
func ParseDateTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"20060102150405", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
