package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "-"},
		{-time.Second, "-"},
		{500 * time.Microsecond, "500µs"},
		{1234567 * time.Microsecond, "1.234s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.in))
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "-", FormatAge(time.Time{}, now))
	assert.Equal(t, "1m30s ago", FormatAge(now.Add(-90*time.Second), now))
}

func TestDerefAndTruncate(t *testing.T) {
	s := "hello"
	assert.Equal(t, "hello", Deref(&s))
	assert.Equal(t, "", Deref(nil))

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}
