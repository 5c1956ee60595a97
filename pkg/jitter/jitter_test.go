package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationWithinRange(t *testing.T) {
	base := 100 * time.Millisecond

	for i := 0; i < 100; i++ {
		d := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}

func TestExponentialBackoffDoubles(t *testing.T) {
	base := time.Second
	max := 30 * time.Second

	// Без джиттера границы детерминированы.
	assert.Equal(t, 1*time.Second, ExponentialBackoff(base, max, 0, 0))
	assert.Equal(t, 2*time.Second, ExponentialBackoff(base, max, 1, 0))
	assert.Equal(t, 8*time.Second, ExponentialBackoff(base, max, 3, 0))
}

func TestExponentialBackoffCapped(t *testing.T) {
	d := ExponentialBackoff(time.Second, 30*time.Second, 10, 0)

	assert.Equal(t, 30*time.Second, d)
}
