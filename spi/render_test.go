package spi

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ws2811spi/ws2811"
	"github.com/coreman2200/ws2811spi/ws2811/ws2811test"
)

func decodeFrame(t *testing.T, w []byte) []byte {
	data, err := ws2811test.SplitFrame(w, false)
	require.NoError(t, err)
	b, err := ws2811test.Decode(data)
	require.NoError(t, err)
	return b
}

func TestDrawer(t *testing.T) {
	r := &ws2811test.Record{}
	d := NewDrawer(r, 3, nil)
	assert.Equal(t, "ws2811", d.String())
	assert.Equal(t, image.Rect(0, 0, 3, 1), d.Bounds())
	assert.Equal(t, color.NRGBAModel, d.ColorModel())

	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF})
	img.SetNRGBA(2, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	require.NoError(t, d.Draw(d.Bounds(), img, image.Point{}))
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0, 0, 0, 0xFF, 0, 0}, decodeFrame(t, r.W))
}

func TestDrawer_Partial(t *testing.T) {
	r := &ws2811test.Record{}
	d := NewDrawer(r, 4, nil)
	src := image.NewUniform(color.NRGBA{G: 0x80, A: 0xFF})
	require.NoError(t, d.Draw(image.Rect(1, 0, 3, 1), src, image.Point{}))
	assert.Equal(t, []byte{0, 0, 0, 0, 0x80, 0, 0, 0x80, 0, 0, 0, 0}, decodeFrame(t, r.W))

	r.Reset()
	require.NoError(t, d.Draw(image.Rect(3, 0, 9, 1), image.NewUniform(color.White), image.Point{}))
	assert.Equal(t, []byte{0, 0, 0, 0, 0x80, 0, 0, 0x80, 0, 0xFF, 0xFF, 0xFF}, decodeFrame(t, r.W))
}

func TestDrawer_NegativeOrigin(t *testing.T) {
	r := &ws2811test.Record{}
	d := NewDrawer(r, 3, nil)
	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	for x := 0; x < 4; x++ {
		src.SetNRGBA(x, 0, color.NRGBA{R: uint8(x + 1), A: 0xFF})
	}
	require.NoError(t, d.Draw(image.Rect(-1, 0, 3, 1), src, image.Point{}))
	assert.Equal(t, []byte{2, 0, 0, 3, 0, 0, 4, 0, 0}, decodeFrame(t, r.W))
}

func TestDrawer_Halt(t *testing.T) {
	r := &ws2811test.Record{}
	d := NewDrawer(r, 2, &ws2811.Opts{IdleHigh: true})
	require.NoError(t, d.Draw(d.Bounds(), image.NewUniform(color.White), image.Point{}))
	r.Reset()
	require.NoError(t, d.Halt())
	assert.Len(t, r.W, 2*3*ws2811.BytesPerChannel+2*ws2811.ResetBytes)
	data, err := ws2811test.SplitFrame(r.W, true)
	require.NoError(t, err)
	b, err := ws2811test.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 6), b)
}
