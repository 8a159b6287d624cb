package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock_AdvanceMovesNow(t *testing.T) {
	start := time.Unix(1700000000, 0)
	c := NewMockClock(start)
	assert.Equal(t, start, c.Now())

	c.Advance(5 * time.Minute)
	assert.Equal(t, start.Add(5*time.Minute), c.Now())
}

func TestRealClock_ReturnsNonZeroTime(t *testing.T) {
	c := RealClock{}
	assert.False(t, c.Now().IsZero())
}
