package mbconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameBuildsDeterministically(t *testing.T) {
	build := func() [MessageLength]byte {
		f := NewResponseFrame()
		f.Push(1)
		f.Extend([]byte("hello"))
		return f.AsBytes()
	}
	assert.Equal(t, build(), build())
}

func TestNewResponseFrameStartsWithOkMarker(t *testing.T) {
	f := NewResponseFrame()
	b := f.AsBytes()
	assert.Equal(t, byte(1), b[0])
	assert.Equal(t, 1, f.Len())
}

func TestNewErrorFrameEncodesKindAndName(t *testing.T) {
	f := NewErrorFrame(ErrInvalidOption)
	b := f.AsBytes()
	assert.Equal(t, byte(0), b[0])
	assert.Equal(t, byte(ErrInvalidOption), b[1])
	assert.Equal(t, "InvalidOption", string(b[2:2+len("InvalidOption")]))
	for _, c := range b[2+len("InvalidOption"):] {
		assert.Equal(t, byte(0), c)
	}
}

func TestPushStopsAtCapacity(t *testing.T) {
	f := NewFrame()
	for i := 0; i < MessageLength+10; i++ {
		f.Push(0xAB)
	}
	assert.Equal(t, MessageLength, f.Len())
	b := f.AsBytes()
	for _, c := range b {
		assert.Equal(t, byte(0xAB), c)
	}
}

func TestExtendNeverWraps(t *testing.T) {
	f := NewFrame()
	huge := make([]byte, MessageLength+20)
	for i := range huge {
		huge[i] = 1
	}
	f.Extend(huge)
	assert.Equal(t, MessageLength, f.Len())
}
