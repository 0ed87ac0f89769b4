package sim

// Clock is a monotonic logical clock for dose-event ordering.
//
// Every dose event within a run is stamped with a strictly increasing seq
// number so the ledger replays in application order. Wall-clock timestamps
// are never used for ordering.
//
// The simulator is single-threaded, so no synchronization is needed.
type Clock struct {
	seq int64
}

// NewClock creates a new clock starting at 0. The first call to Next()
// returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq
}
