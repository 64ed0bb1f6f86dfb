package termcore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputQueueOrdering(t *testing.T) {
	q := newInputQueue(1 << 20)
	q.push([]byte("one"))
	q.push([]byte("two"))
	q.push([]byte("three"))

	var got []string
	for i := 0; i < 3; i++ {
		select {
		case chunk := <-q.Chan():
			got = append(got, string(chunk))
			q.done(len(chunk))
		case <-time.After(time.Second):
			t.Fatal("queue stalled")
		}
	}
	assert.Equal(t, []string{"one", "two", "three"}, got)
	assert.Equal(t, 0, q.pendingBytes())
}

func TestInputQueueBackpressure(t *testing.T) {
	// nothing drains the channel, so pending bytes accumulate
	q := newInputQueue(10)
	pending, over := q.push([]byte("12345"))
	assert.Equal(t, 5, pending)
	assert.False(t, over)

	pending, over = q.push([]byte("6789012345"))
	assert.Equal(t, 15, pending)
	assert.True(t, over)

	// acknowledging written bytes releases the pressure
	q.done(15)
	assert.Equal(t, 0, q.pendingBytes())
}

func TestInputQueueResumesAfterDrain(t *testing.T) {
	q := newInputQueue(1 << 20)
	q.push([]byte("a"))
	select {
	case chunk := <-q.Chan():
		require.Equal(t, "a", string(chunk))
		q.done(1)
	case <-time.After(time.Second):
		t.Fatal("queue stalled")
	}

	// the drain goroutine exited; a later push starts a fresh one
	q.push([]byte("b"))
	select {
	case chunk := <-q.Chan():
		assert.Equal(t, "b", string(chunk))
	case <-time.After(time.Second):
		t.Fatal("queue did not resume")
	}
}
