package host

import (
	"testing"

	"github.com/piksel/mbconf"
	"github.com/stretchr/testify/assert"
)

func TestRingLog_WrapsAtCapacity(t *testing.T) {
	r := NewRingLog(3)
	for i := 0; i < 5; i++ {
		var req [mbconf.MessageLength]byte
		req[0] = byte('a' + i)
		r.Push(req, req)
	}
	recent := r.Recent()
	assert.Len(t, recent, 3)
	assert.Equal(t, byte('c'), recent[0].Request[0])
	assert.Equal(t, byte('d'), recent[1].Request[0])
	assert.Equal(t, byte('e'), recent[2].Request[0])
}

func TestRingLog_BelowCapacityReturnsAllInOrder(t *testing.T) {
	r := NewRingLog(10)
	var req1, req2 [mbconf.MessageLength]byte
	req1[0] = 1
	req2[0] = 2
	r.Push(req1, req1)
	r.Push(req2, req2)

	recent := r.Recent()
	assert.Len(t, recent, 2)
	assert.Equal(t, byte(1), recent[0].Request[0])
	assert.Equal(t, byte(2), recent[1].Request[0])
}

func TestNewRingLog_NonPositiveCapacityClampsToOne(t *testing.T) {
	r := NewRingLog(0)
	var req [mbconf.MessageLength]byte
	r.Push(req, req)
	r.Push(req, req)
	assert.Len(t, r.Recent(), 1)
}
