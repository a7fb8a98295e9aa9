package clock_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/cellularmitosis/retainn/pkg/clock"
	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	t1 := time.Now()
	assert.WithinDuration(t, t1, clock.Now(), 1*time.Second)
	time.Sleep(10 * time.Millisecond)
	// time is not frozen by default
	assert.NotEqual(t, t1, clock.Now())
}

func TestFreeze(t *testing.T) {
	clock.Freeze()
	defer clock.Unfreeze()
	t1 := clock.Now()
	time.Sleep(10 * time.Millisecond)
	// time is always the same
	assert.Equal(t, t1, clock.Now())
}

func TestFastForward(t *testing.T) {
	sessionStart := time.Date(2023, time.January, 1, 14, 0, 0, 0, time.UTC)
	c := clock.FreezeAt(sessionStart)
	defer clock.Unfreeze()

	nextSession := c.FastForward(24 * time.Hour)
	assert.Equal(t, sessionStart.Add(24*time.Hour), nextSession)
	assert.Equal(t, nextSession, clock.Now())
}

func TestUnfreeze(t *testing.T) {
	point := time.Date(2023, time.January, 1, 14, 0, 0, 0, time.UTC)
	clock.FreezeAt(point)
	assert.Equal(t, point, clock.Now())

	clock.Unfreeze()
	assert.WithinDuration(t, time.Now(), clock.Now(), 1*time.Second)
}

func TestConcurrentNow(t *testing.T) {
	c := clock.FreezeAt(time.Date(2023, time.January, 1, 14, 0, 0, 0, time.UTC))
	defer clock.Unfreeze()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			clock.Now()
		}
	}()
	for i := 0; i < 100; i++ {
		c.FastForward(time.Second)
	}
	<-done
	assert.Equal(t, 100*time.Second, clock.Now().Sub(time.Date(2023, time.January, 1, 14, 0, 0, 0, time.UTC)))
}

func ExampleFreezeAt() {
	point := time.Date(2023, 01, 01, 14, 00, 00, 00, time.UTC)
	clock.FreezeAt(point)
	defer clock.Unfreeze()

	fmt.Println(clock.Now())
	// Output: 2023-01-01 14:00:00 +0000 UTC
}
