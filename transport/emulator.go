package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"plugin"

	"github.com/piksel/mbconf"
)

// EmulatorBinary is the freestanding ABI a loaded in-process device
// emulator exposes: send packs one 64-byte request as eight big-endian
// u64 words and returns the number of response words produced (8 on
// success, 0 on failure); receive unpacks one word (0..7) of the most
// recent response (spec §6).
type EmulatorBinary interface {
	Send(words [8]uint64) (int, error)
	Receive(index int) (uint64, error)
}

// EmulatorTransport drives an EmulatorBinary. Each exchange fully
// processes one request synchronously, matching the freestanding
// emulator's send/receive contract.
type EmulatorTransport struct {
	bin EmulatorBinary
}

// NewEmulatorTransport wraps an already-loaded emulator binary.
func NewEmulatorTransport(bin EmulatorBinary) *EmulatorTransport {
	return &EmulatorTransport{bin: bin}
}

// pluginSendFunc and pluginReceiveFunc are the C-ABI-shaped symbol types
// the freestanding emulator module exports.
type (
	pluginSendFunc    = func([8]uint64) int
	pluginReceiveFunc = func(int) uint64
)

// pluginEmulator adapts a Go plugin (loaded via LoadEmulatorPlugin) to
// EmulatorBinary.
type pluginEmulator struct {
	send    pluginSendFunc
	receive pluginReceiveFunc
}

func (p *pluginEmulator) Send(words [8]uint64) (int, error) {
	n := p.send(words)
	if n != 8 && n != 0 {
		return n, fmt.Errorf("mbconf/transport: emulator send returned unexpected byte count %d", n)
	}
	return n, nil
}

func (p *pluginEmulator) Receive(index int) (uint64, error) {
	if index < 0 || index > 7 {
		return 0, fmt.Errorf("mbconf/transport: emulator receive index %d out of range", index)
	}
	return p.receive(index), nil
}

// LoadEmulatorPlugin loads a relocatable freestanding emulator module
// (compiled as a Go plugin exporting "Send" and "Receive" with the ABI
// described in spec §6) and returns a ready-to-use transport.
func LoadEmulatorPlugin(path string) (*EmulatorTransport, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mbconf/transport: load emulator %s: %w", path, err)
	}
	sendSym, err := p.Lookup("Send")
	if err != nil {
		return nil, fmt.Errorf("mbconf/transport: emulator %s missing Send: %w", path, err)
	}
	recvSym, err := p.Lookup("Receive")
	if err != nil {
		return nil, fmt.Errorf("mbconf/transport: emulator %s missing Receive: %w", path, err)
	}
	send, ok := sendSym.(pluginSendFunc)
	if !ok {
		return nil, fmt.Errorf("mbconf/transport: emulator %s Send has wrong signature", path)
	}
	receive, ok := recvSym.(pluginReceiveFunc)
	if !ok {
		return nil, fmt.Errorf("mbconf/transport: emulator %s Receive has wrong signature", path)
	}
	return NewEmulatorTransport(&pluginEmulator{send: send, receive: receive}), nil
}

func (t *EmulatorTransport) Exchange(_ context.Context, request [mbconf.MessageLength]byte) ([mbconf.MessageLength]byte, error) {
	var response [mbconf.MessageLength]byte

	var words [8]uint64
	for i := range words {
		words[i] = binary.BigEndian.Uint64(request[i*8 : i*8+8])
	}

	n, err := t.bin.Send(words)
	if err != nil {
		return response, err
	}
	if n == 0 {
		return response, fmt.Errorf("mbconf/transport: emulator rejected request")
	}

	for i := 0; i < 8; i++ {
		word, err := t.bin.Receive(i)
		if err != nil {
			return response, err
		}
		binary.BigEndian.PutUint64(response[i*8:i*8+8], word)
	}
	return response, nil
}

func (t *EmulatorTransport) Close() error {
	return nil
}
