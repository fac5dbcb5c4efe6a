package progress

import "sync/atomic"

// Counter is the one piece of state shared between the download
// orchestration task (writer) and its observers (the reporter and the
// status server). Done is monotonically non-decreasing.
type Counter struct {
	done  atomic.Int64
	total atomic.Int64
}

// Add increments the completed count by n.
func (c *Counter) Add(n int64) {
	c.done.Add(n)
}

// Done returns the completed count.
func (c *Counter) Done() int64 {
	return c.done.Load()
}

// SetTotal records the expected final count.
func (c *Counter) SetTotal(n int64) {
	c.total.Store(n)
}

// Total returns the expected final count, or 0 if not yet known.
func (c *Counter) Total() int64 {
	return c.total.Load()
}
