package link

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fortuna/hal"
	"fortuna/home/surface/surfacetest"
)

type hider struct{ hidden int }

func (h *hider) Hide() { h.hidden++ }

type failingSerial struct{ hal.Serial }

func (failingSerial) WriteByte(byte) error { return errors.New("uart: overrun") }

func TestRouteTable(t *testing.T) {
	rs := Routes()
	require.Len(t, rs, 6)
	for i, r := range rs {
		assert.Equal(t, i+1, r.Selection)
		assert.Equal(t, byte('0'+i+1), r.Command)
		assert.Equal(t, r.Command, r.Ack)

		cmd, ok := CommandFor(r.Selection)
		assert.True(t, ok)
		assert.Equal(t, r.Command, cmd)
	}
	_, ok := CommandFor(0)
	assert.False(t, ok)
	_, ok = CommandFor(7)
	assert.False(t, ok)
}

func TestSendWritesOneByte(t *testing.T) {
	serial := hal.NewLoopbackSerial(clockwork.NewFakeClock(), time.Second)
	c := NewChannel(serial, surfacetest.New(), nil, nil)

	require.NoError(t, c.Send('5'))
	assert.Equal(t, []byte{'5'}, serial.Sent())
}

func TestSendRejectsUnknownCommand(t *testing.T) {
	serial := hal.NewLoopbackSerial(clockwork.NewFakeClock(), time.Second)
	c := NewChannel(serial, surfacetest.New(), nil, nil)

	err := c.Send('9')
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Empty(t, serial.Sent())
}

func TestSendWrapsWriteError(t *testing.T) {
	c := NewChannel(failingSerial{}, surfacetest.New(), nil, nil)
	err := c.Send('1')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uart: overrun")
}

func TestOnByteReceivedKnownAck(t *testing.T) {
	rec := surfacetest.New()
	h := &hider{}
	c := NewChannel(nil, rec, h, nil)

	assert.True(t, c.OnByteReceived('3'))
	text, ok := rec.TextAt(StatusX, StatusY)
	require.True(t, ok)
	assert.Equal(t, "Request Completed: 3", text)
	assert.Equal(t, 1, h.hidden)
	assert.Equal(t, "clear", rec.Ops()[0].Kind)
}

func TestOnByteReceivedUnknownAck(t *testing.T) {
	rec := surfacetest.New()
	h := &hider{}
	c := NewChannel(nil, rec, h, nil)

	for _, b := range []byte{'9', '0', 0x00, 'A', 0xff} {
		assert.False(t, c.OnByteReceived(b))
	}
	assert.Empty(t, rec.Ops())
	assert.Zero(t, h.hidden)
}
