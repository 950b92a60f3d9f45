package transport

import (
	"context"
	"errors"

	"github.com/piksel/mbconf"
)

// SerialTransport is reserved for a UART connection to the physical
// device; it is not required for conformance (spec §6) and is not
// implemented here. The type exists so callers can select "serial" as a
// --device value and get a clear error rather than a missing symbol.
type SerialTransport struct {
	port string
}

// ErrSerialNotImplemented is returned by every SerialTransport exchange.
var ErrSerialNotImplemented = errors.New("mbconf/transport: serial transport is reserved, not implemented")

// OpenSerial returns a placeholder transport bound to port; every
// Exchange on it fails with ErrSerialNotImplemented, and Close returns
// nil.
func OpenSerial(port string) (*SerialTransport, error) {
	return &SerialTransport{port: port}, nil
}

func (t *SerialTransport) Exchange(context.Context, [mbconf.MessageLength]byte) ([mbconf.MessageLength]byte, error) {
	var zero [mbconf.MessageLength]byte
	return zero, ErrSerialNotImplemented
}

func (t *SerialTransport) Close() error {
	return nil
}
