package ws2811test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ws2811spi/ws2811"
)

func TestDecode(t *testing.T) {
	got, err := Decode([]byte{0xC8, 0xC8, 0x8C, 0x8C, 0x88, 0x88, 0x88, 0x88})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xA5, 0x00}, got)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte{0x88, 0x88, 0x88})
	assert.Error(t, err)
	_, err = Decode([]byte{0x88, 0x8E, 0x88, 0x88})
	assert.EqualError(t, err, "ws2811test: invalid symbol 1110 at byte 1")
	_, err = Decode([]byte{0x00, 0x88, 0x88, 0x88})
	assert.Error(t, err)
}

func TestSplitFrame(t *testing.T) {
	z := make([]byte, ws2811.ResetBytes)
	w := append([]byte{0xCC, 0xCC, 0xCC, 0xCC}, z...)
	data, err := SplitFrame(w, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCC, 0xCC, 0xCC, 0xCC}, data)

	_, err = SplitFrame(w, true)
	assert.Error(t, err)
	_, err = SplitFrame(w[:len(w)-1], false)
	assert.ErrorIs(t, err, errTail)

	data, err = SplitFrame(append(append([]byte(nil), z...), w...), true)
	require.NoError(t, err)
	assert.Len(t, data, 4)
}

func TestRecord(t *testing.T) {
	errFault := errors.New("fault")
	r := &Record{Busy: 1, FailAt: 2, Err: errFault}

	_, err := r.Read()
	assert.ErrorIs(t, err, ws2811.ErrWouldBlock)

	assert.ErrorIs(t, r.Send(0x12), ws2811.ErrWouldBlock)
	require.NoError(t, r.Send(0x12))
	b, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, byte(0x12), b)

	assert.ErrorIs(t, r.Send(0x34), ws2811.ErrWouldBlock)
	assert.Same(t, errFault, r.Send(0x34))
	assert.Equal(t, []byte{0x12}, r.W)
	assert.Equal(t, 2, r.Sends)
	assert.Equal(t, 4, r.Attempts)
	assert.Equal(t, 2, r.Reads)

	r.Reset()
	assert.Empty(t, r.W)
	assert.Zero(t, r.Sends)
}
