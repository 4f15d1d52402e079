package datafeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowFrom(t *testing.T) {
	target := day(2024, 1, 10)
	assert.Equal(t, pageCursor{Start: day(2024, 1, 1), End: target}, windowFrom(day(2024, 1, 1), target, 0))
	assert.Equal(t, pageCursor{Start: day(2024, 1, 1), End: day(2024, 1, 5)}, windowFrom(day(2024, 1, 1), target, 5))
	assert.Equal(t, pageCursor{Start: day(2024, 1, 8), End: target}, windowFrom(day(2024, 1, 8), target, 5))
}

func TestCursorNext(t *testing.T) {
	c := pageCursor{Start: day(2024, 1, 1), End: day(2024, 1, 5)}
	assert.Equal(t, pageCursor{Start: day(2024, 1, 6), End: day(2024, 1, 10)}, c.next(day(2024, 1, 10), 5))
	assert.Equal(t, pageCursor{Start: day(2024, 1, 6), End: day(2024, 1, 7)}, c.next(day(2024, 1, 7), 5))
}

func TestCursorAfterNeverRewinds(t *testing.T) {
	c := pageCursor{Start: day(2024, 1, 5), End: day(2024, 1, 10)}
	assert.Equal(t, day(2024, 1, 8), c.after(time.Date(2024, 1, 7, 15, 0, 0, 0, ChinaTZ)).Start)
	assert.Equal(t, day(2024, 1, 6), c.after(time.Date(2024, 1, 2, 15, 0, 0, 0, ChinaTZ)).Start)
	assert.Equal(t, day(2024, 1, 10), c.after(day(2024, 1, 7)).End)
}

func TestCursorExhausted(t *testing.T) {
	assert.False(t, pageCursor{Start: day(2024, 1, 5), End: day(2024, 1, 5)}.exhausted())
	assert.True(t, pageCursor{Start: day(2024, 1, 6), End: day(2024, 1, 5)}.exhausted())
}

func TestDateOfUsesChinaCalendar(t *testing.T) {
	utcEvening := time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, day(2024, 1, 3), dateOf(utcEvening))
	assert.True(t, sameDate(time.Date(2024, 1, 3, 1, 0, 0, 0, ChinaTZ), utcEvening))
}
