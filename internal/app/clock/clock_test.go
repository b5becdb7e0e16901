package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeFiresInOrder(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	var fired []string

	c.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	c.AfterFunc(time.Second, func() {
		fired = append(fired, "a")
		c.AfterFunc(500*time.Millisecond, func() { fired = append(fired, "a2") })
	})
	stopped := c.AfterFunc(1500*time.Millisecond, func() { fired = append(fired, "never") })
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	c.Advance(2 * time.Second)

	assert.Equal(t, []string{"a", "a2", "b"}, fired)
	assert.Equal(t, time.Unix(2, 0), c.Now())
	assert.Equal(t, 0, c.Pending())
}

func TestFakeLeavesFutureTimers(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	calls := 0
	c.AfterFunc(time.Minute, func() { calls++ })

	c.Advance(30 * time.Second)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, c.Pending())

	c.Advance(30 * time.Second)
	assert.Equal(t, 1, calls)
}
