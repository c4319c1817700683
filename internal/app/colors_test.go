package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetColorExcluding(t *testing.T) {
	t.Parallel()

	taken := PlayerColors[:len(PlayerColors)-1]
	for i := 0; i < 20; i++ {
		assert.Equal(t, PlayerColors[len(PlayerColors)-1], GetColorExcluding(taken))
	}

	// Exhausted palette falls back to any color
	assert.Contains(t, PlayerColors, GetColorExcluding(PlayerColors))
}
