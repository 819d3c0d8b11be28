package anki

import "time"

// Clock issues the epoch timestamps used as primary keys and modification
// stamps throughout a collection.
//
// NextMillis must never return the same value twice: note and card ids are
// millisecond timestamps used as SQLite primary keys, so two rapid creations
// colliding on the same millisecond would corrupt the primary key space.
// The collection is single-threaded by contract, so no locking is done here.
type Clock struct {
	lastMillis int64
}

// NewClock creates a Clock.
func NewClock() *Clock {
	return &Clock{}
}

// NextMillis returns milliseconds since epoch, strictly greater than any
// value previously returned by this Clock. When the wall clock has not moved
// past the last issued value the result is bumped by one millisecond.
func (c *Clock) NextMillis() int64 {
	now := time.Now().UnixMilli()
	if now <= c.lastMillis {
		now = c.lastMillis + 1
	}
	c.lastMillis = now
	return now
}

// NowSeconds returns seconds since epoch. Used for modification stamps,
// where collisions are harmless.
func (c *Clock) NowSeconds() int64 {
	return time.Now().Unix()
}
