package termcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabStopDefaults(t *testing.T) {
	ts := newTabStops(40)
	assert.Equal(t, 8, ts.next(0, 40))
	assert.Equal(t, 16, ts.next(8, 40))
	assert.Equal(t, 8, ts.prev(16))
	assert.Equal(t, 0, ts.prev(8))
	// past the last stop the right edge is the target
	assert.Equal(t, 39, ts.next(32, 40))
}

func TestTabStopSetClear(t *testing.T) {
	ts := newTabStops(20)
	ts.clearAll()
	assert.Equal(t, 19, ts.next(0, 20))

	ts.set(5)
	ts.set(3)
	assert.Equal(t, 3, ts.next(0, 20))
	assert.Equal(t, 5, ts.next(3, 20))

	ts.clear(3)
	assert.Equal(t, 5, ts.next(0, 20))

	ts.reset()
	assert.Equal(t, 8, ts.next(0, 20))
}

func TestTabStopResize(t *testing.T) {
	ts := newTabStops(16)
	ts.set(10)
	ts.resize(40)
	// existing stops survive, new columns default every 8
	assert.Equal(t, 10, ts.next(8, 40))
	assert.Equal(t, 24, ts.next(16, 40))
	assert.Equal(t, 32, ts.next(24, 40))

	ts.resize(12)
	assert.Equal(t, 10, ts.next(8, 12))
	assert.Equal(t, 11, ts.next(10, 12))
}
