package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/piksel/mbconf"
)

// TCPTransport exchanges frames over a byte-stream connection to a device
// emulator: each exchange is exactly 64 bytes written then 64 bytes read,
// with no framing header (spec §6).
type TCPTransport struct {
	conn    net.Conn
	timeout time.Duration
}

// DialTCP opens a TCP connection to addr (host:port) for frame exchange.
func DialTCP(ctx context.Context, addr string) (*TCPTransport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("mbconf/transport: dial %s: %w", addr, err)
	}
	return &TCPTransport{conn: conn, timeout: defaultTimeout}, nil
}

// SetTimeout overrides the default per-exchange deadline.
func (t *TCPTransport) SetTimeout(d time.Duration) {
	t.timeout = d
}

func (t *TCPTransport) Exchange(ctx context.Context, request [mbconf.MessageLength]byte) ([mbconf.MessageLength]byte, error) {
	var response [mbconf.MessageLength]byte

	deadline := time.Now().Add(t.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := t.conn.SetDeadline(deadline); err != nil {
		return response, fmt.Errorf("mbconf/transport: set deadline: %w", err)
	}

	if _, err := t.conn.Write(request[:]); err != nil {
		if isTimeout(err) {
			return response, &TimeoutError{Transport: "tcp"}
		}
		return response, fmt.Errorf("mbconf/transport: write: %w", err)
	}
	if _, err := io.ReadFull(t.conn, response[:]); err != nil {
		if isTimeout(err) {
			return response, &TimeoutError{Transport: "tcp"}
		}
		return response, fmt.Errorf("mbconf/transport: read: %w", err)
	}
	return response, nil
}

func (t *TCPTransport) Close() error {
	return t.conn.Close()
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
