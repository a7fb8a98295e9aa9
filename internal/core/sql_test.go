package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeToSQL(t *testing.T) {
	assert.Equal(t, "", timeToSQL(time.Time{}))
	assert.True(t, timeFromSQL("").IsZero())

	date := time.Date(2023, time.January, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2023-01-01T12:30:00.000000000Z", timeToSQL(date))
	assert.True(t, date.Equal(timeFromSQL(timeToSQL(date))))

	// Dates are normalized to UTC
	paris := time.FixedZone("CET", 3600)
	assert.Equal(t, "2023-01-01T11:30:00.000000000Z", timeToSQL(time.Date(2023, time.January, 1, 12, 30, 0, 0, paris)))

	// String order follows chronological order
	before := timeToSQL(date)
	after := timeToSQL(date.Add(time.Nanosecond))
	assert.Less(t, before, after)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
