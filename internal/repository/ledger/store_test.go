package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRangeContains(t *testing.T) {
	r := Window(
		time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
	)

	// Bounds are inclusive and compared at day resolution.
	assert.True(t, r.Contains(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2026, time.January, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC)))
}

func TestDateRangeUnbounded(t *testing.T) {
	all := DateRange{}
	assert.True(t, all.Contains(time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, all.Contains(time.Date(2090, time.January, 1, 0, 0, 0, 0, time.UTC)))

	from := DateRange{Start: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)}
	assert.False(t, from.Contains(time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC)))
	assert.True(t, from.Contains(time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
