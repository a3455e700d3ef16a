package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 5, 3, 0, time.UTC)
	c := Fake(start)

	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), c.Now())

	later := time.Date(2026, 1, 1, 23, 59, 59, 0, time.UTC)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestTimestamp(t *testing.T) {
	c := Fake(time.Date(2026, 1, 1, 21, 7, 9, 0, time.UTC))

	assert.Equal(t, "21:07:09", Timestamp(c, ""))
	assert.Equal(t, "21:07", Timestamp(c, "15:04"))
}

func TestRealClockAdvances(t *testing.T) {
	c := Real()
	before := time.Now()
	got := c.Now()
	assert.False(t, got.Before(before), "Real().Now() = %v, earlier than %v", got, before)
}
