package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Set while a test controls the time
var frozen atomic.Pointer[TestClock]

// Now is the same as time.Now() but makes possible to control time from unit tests.
// Safe to call from the goroutines of the web app and the update workers.
func Now() time.Time {
	if c := frozen.Load(); c != nil {
		return c.Now()
	}
	return time.Now()
}

// TestClock only moves when asked to.
type TestClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// FastForward moves the clock forward, for example to simulate a new review session.
func (c *TestClock) FastForward(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// FreezeAt stops the time at the given date.
func FreezeAt(date time.Time) *TestClock {
	c := &TestClock{now: date}
	frozen.Store(c)
	return c
}

// Freeze stops the time now.
func Freeze() *TestClock {
	return FreezeAt(time.Now())
}

// Unfreeze restores the system time.
func Unfreeze() {
	frozen.Store(nil)
}
