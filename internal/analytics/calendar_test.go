package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalendar(t *testing.T) {
	c, err := NewCalendar("")
	require.NoError(t, err)
	assert.Equal(t, "UTC", c.Timezone())

	c, err = NewCalendar("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", c.Timezone())

	_, err = NewCalendar("Not/AZone")
	assert.Error(t, err)
}

func TestCalendar_DayAndHour(t *testing.T) {
	c, err := NewCalendar("Asia/Tokyo")
	require.NoError(t, err)

	// 16:30 UTC is 01:30 next day in Tokyo
	at := time.Date(2024, 3, 9, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), c.Day(at))
	assert.Equal(t, 1, c.Hour(at))
}

func TestCalendar_Bounds(t *testing.T) {
	c, err := NewCalendar("America/New_York")
	require.NoError(t, err)

	// DST starts on 2024-03-10 in New York, that day lasts 23 hours
	start, end := c.Bounds(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 23*time.Hour, end.Sub(start))
	assert.Equal(t, time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC), start.UTC())
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	d := DateOf(time.Date(2024, 3, 9, 23, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), time.Time(d))
}
