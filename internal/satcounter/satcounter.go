// Package satcounter provides fixed-width saturating counters
// for replacement-policy bookkeeping.
package satcounter

type (
	// A Counter is an unsigned counter of a fixed bit width.
	// Increment and Decrement clamp at the width's bounds
	// instead of wrapping. The zero value is a zero-width
	// counter pinned at zero.
	Counter struct {
		count, max uint32
	}
)

// New creates a Counter of the given bit width, starting at zero.
// A width of zero yields a counter permanently pinned at zero.
func New(bits uint) Counter {
	return Counter{max: maxFor(bits)}
}

func maxFor(bits uint) uint32 {
	if bits == 0 {
		return 0
	}
	if bits >= 32 {
		return ^uint32(0)
	}
	return 1<<bits - 1
}

// Increment advances the counter by one,
// clamping at the counter's maximum.
func (c *Counter) Increment() {
	if c.count < c.max {
		c.count++
	}
}

// Decrement lowers the counter by one, clamping at zero.
func (c *Counter) Decrement() {
	if c.count > 0 {
		c.count--
	}
}

// Reset returns the counter to zero
// without changing its width.
func (c *Counter) Reset() { c.count = 0 }

// Read returns the current count.
func (c Counter) Read() uint32 { return c.count }

// Max returns the saturation ceiling for the counter's width.
func (c Counter) Max() uint32 { return c.max }
