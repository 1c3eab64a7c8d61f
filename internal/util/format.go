package util //nolint:revive // package name util hosts small shared helpers

import (
	"strings"
	"time"
)

// FormatElapsed renders a duration for CLI output, truncated to milliseconds.
// Zero or negative durations render as "-".
func FormatElapsed(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Millisecond:
		return d.String()
	default:
		return d.Truncate(time.Millisecond).String()
	}
}

// FormatAge renders how long ago t was relative to now, rounded to the second.
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return FormatElapsed(now.Sub(t).Round(time.Second)) + " ago"
}

// Deref returns *s or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
