// Package countdown provides second-granularity countdown timers used by the
// verification flows: one tracking passcode expiry and one gating resends.
package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Countdown counts whole seconds down to zero. At zero it stops decrementing
// but keeps running, so Reset can revive it without restarting anything.
// All methods are safe for concurrent use.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	ticking   bool

	stopOnce sync.Once
	stopped  chan struct{}
}

// New creates a countdown holding the given number of seconds. The countdown
// does not decrement until Start is called; tests may drive it with Tick.
func New(seconds int) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{
		remaining: seconds,
		ticking:   seconds > 0,
		stopped:   make(chan struct{}),
	}
}

// Run drives the ticking loop, blocking until ctx is canceled or Stop is
// called; reaching zero only pauses decrementing. Callers schedule it on
// whatever goroutine discipline they use.
func (c *Countdown) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopped:
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Tick decrements the countdown by one second. It is a no-op once the
// countdown has reached zero.
func (c *Countdown) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ticking {
		return
	}

	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.ticking = false
	}
}

// Reset sets the countdown back to the given number of seconds and resumes
// decrementing.
func (c *Countdown) Reset(seconds int) {
	if seconds < 0 {
		seconds = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.remaining = seconds
	c.ticking = seconds > 0
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remaining
}

// Expired reports whether the countdown has reached zero.
func (c *Countdown) Expired() bool {
	return c.Remaining() == 0
}

// Stop terminates the ticking loop. The countdown value freezes where it is.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stopped) })
}

// FormatMMSS renders seconds as m:ss for display, e.g. 300 -> "5:00".
func FormatMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
