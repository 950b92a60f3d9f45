package host

import (
	"sync"

	"github.com/piksel/mbconf"
)

// Exchange is one recorded (request, response) frame pair, kept for
// diagnostics (spec §4.6).
type Exchange struct {
	Request  [mbconf.MessageLength]byte
	Response [mbconf.MessageLength]byte
}

// RingLog is a fixed-capacity, overwrite-oldest ring buffer of recent
// exchanges. It is safe for concurrent use: the discovery goroutine
// pushes while a UI goroutine may read.
type RingLog struct {
	mu    sync.Mutex
	items []Exchange
	cap   int
	next  int
	full  bool
}

// NewRingLog returns a ring log holding up to cap entries.
func NewRingLog(capacity int) *RingLog {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingLog{items: make([]Exchange, capacity), cap: capacity}
}

// Push records one exchange, evicting the oldest entry once full.
func (r *RingLog) Push(req, resp [mbconf.MessageLength]byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[r.next] = Exchange{Request: req, Response: resp}
	r.next = (r.next + 1) % r.cap
	if r.next == 0 {
		r.full = true
	}
}

// Recent returns the recorded exchanges, oldest first.
func (r *RingLog) Recent() []Exchange {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		out := make([]Exchange, r.next)
		copy(out, r.items[:r.next])
		return out
	}
	out := make([]Exchange, r.cap)
	copy(out, r.items[r.next:])
	copy(out[r.cap-r.next:], r.items[:r.next])
	return out
}
