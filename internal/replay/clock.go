// internal/replay/clock.go

package replay

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock emits one tick per simulated minute and counts them atomically.
type Clock struct {
	Ch    chan int64 // carries the minute that just elapsed
	count atomic.Int64
	stop  chan struct{}
	once  sync.Once
}

// NewClock creates a clock but does not start it.
func NewClock(buffer int) *Clock {
	return &Clock{
		Ch:   make(chan int64, buffer),
		stop: make(chan struct{}),
	}
}

// Start begins emitting ticks, one simulated minute per interval. Ch is
// closed once the clock stops.
func (c *Clock) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer close(c.Ch)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n := c.count.Add(1)
				select {
				case c.Ch <- n:
				case <-c.stop:
					return
				}
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop signals the clock to stop emitting ticks. It is safe to call more
// than once.
func (c *Clock) Stop() {
	c.once.Do(func() { close(c.stop) })
}

// Count returns the number of minutes elapsed.
func (c *Clock) Count() int64 {
	return c.count.Load()
}
