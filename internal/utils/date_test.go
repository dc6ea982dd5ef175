package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Date only", func(t *testing.T) {
		got, err := ParseDate("2027-01-10")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("RFC3339 truncated", func(t *testing.T) {
		got, err := ParseDate("2027-01-10T15:04:05Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("RFC3339 with offset keeps local date", func(t *testing.T) {
		got, err := ParseDate("2027-01-10T23:00:00-05:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseDate("  ")
		assert.EqualError(t, err, "date is required")
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseDate("10/01/2027")
		assert.EqualError(t, err, "invalid date format, expected yyyy-mm-dd")
	})
}
