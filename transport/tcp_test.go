package transport

import (
	"context"
	"net"
	"testing"

	"github.com/piksel/mbconf"
	"github.com/stretchr/testify/require"
)

func TestTCPTransport_ExchangeRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf [mbconf.MessageLength]byte
		if _, err := conn.Read(buf[:]); err != nil {
			return
		}
		resp := mbconf.NewResponseFrame().AsBytes()
		conn.Write(resp[:])
	}()

	tr, err := DialTCP(context.Background(), ln.Addr().String())
	require.NoError(t, err)
	defer tr.Close()

	var req [mbconf.MessageLength]byte
	req[0] = 'm'
	resp, err := tr.Exchange(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, byte(1), resp[0])
}
