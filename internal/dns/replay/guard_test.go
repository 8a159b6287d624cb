package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_SeenAfterMark(t *testing.T) {
	g := NewGuard(1000, 0.01)
	mac := []byte{1, 2, 3, 4}

	assert.False(t, g.Seen(42, mac))
	g.Mark(42, mac)
	assert.True(t, g.Seen(42, mac))
}

func TestGuard_DistinctPairsDoNotCollideTrivially(t *testing.T) {
	g := NewGuard(1000, 0.01)
	g.Mark(1, []byte{1, 1, 1, 1})
	assert.False(t, g.Seen(2, []byte{2, 2, 2, 2}))
}

func TestSize_ProducesNonZeroParameters(t *testing.T) {
	m, k := size(10000, 0.01)
	assert.Greater(t, m, uint64(0))
	assert.GreaterOrEqual(t, k, uint8(1))
}

func TestSize_HandlesDegenerateInputs(t *testing.T) {
	m, k := size(0, 0)
	assert.Greater(t, m, uint64(0))
	assert.GreaterOrEqual(t, k, uint8(1))
}
