package timeline

import "time"

// Clock is the pausable elapsed-time counter the scheduler runs against.
// Only active time accumulates; a paused clock holds its value.
type Clock struct {
	elapsed time.Duration
	running bool
}

func (c *Clock) Start()  { c.running = true }
func (c *Clock) Pause()  { c.running = false }
func (c *Clock) Resume() { c.running = true }

func (c *Clock) Reset() {
	c.elapsed = 0
	c.running = false
}

// Advance accumulates one tick's duration while running.
func (c *Clock) Advance(dt time.Duration) {
	if c.running {
		c.elapsed += dt
	}
}

func (c *Clock) Elapsed() time.Duration { return c.elapsed }
func (c *Clock) Running() bool          { return c.running }
