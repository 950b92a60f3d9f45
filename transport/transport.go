// Package transport holds the external, protocol-agnostic bindings that
// move 64-byte frames between a host and a device: each exchange sends
// exactly one request frame and reads exactly one response frame, in
// order (spec §6). Transports have no knowledge of commands, descriptors,
// or schema; they are pure byte-frame couriers.
package transport

import (
	"context"
	"time"

	"github.com/piksel/mbconf"
)

// defaultTimeout is the bounded wait transports SHOULD impose per spec §5
// ("typically ≤ 2s"), surfaced as a transport failure distinct from a
// protocol error.
const defaultTimeout = 2 * time.Second

// Transport moves one 64-byte request frame to a device and returns its
// 64-byte response. Implementations must perform exactly one write
// followed by exactly one read per call; no pipelining, no
// fragmentation (spec §1 Non-goals, §6).
type Transport interface {
	Exchange(ctx context.Context, request [mbconf.MessageLength]byte) ([mbconf.MessageLength]byte, error)
	Close() error
}

// TimeoutError distinguishes a transport-level expiry from any protocol
// error kind (spec §5).
type TimeoutError struct {
	Transport string
}

func (e *TimeoutError) Error() string {
	return e.Transport + ": exchange timed out"
}
