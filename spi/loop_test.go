package spi

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/ws2811spi/ws2811/ws2811test"
)

func TestLooper_Cancel(t *testing.T) {
	r := &ws2811test.Record{}
	l := &Looper{
		Drawer: NewDrawer(r, 2, nil),
		FPS:    200,
		Pattern: func(elapsed time.Duration, dst *image.NRGBA) {
			dst.SetNRGBA(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := l.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotZero(t, l.Frames)
	assert.Equal(t, []byte{0xFF, 0, 0, 0, 0, 0}, decodeFrame(t, r.W[len(r.W)-(6*4+20):]))
}

func TestLooper_HugeFPS(t *testing.T) {
	r := &ws2811test.Record{}
	l := &Looper{
		Drawer:  NewDrawer(r, 1, nil),
		FPS:     2000000000,
		Pattern: func(time.Duration, *image.NRGBA) {},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.NotPanics(t, func() {
		assert.ErrorIs(t, l.Run(ctx), context.DeadlineExceeded)
	})
}

func TestLooper_DrawError(t *testing.T) {
	errBus := errors.New("bus")
	r := &ws2811test.Record{FailAt: 1, Err: errBus}
	l := &Looper{
		Drawer:  NewDrawer(r, 1, nil),
		Pattern: func(time.Duration, *image.NRGBA) {},
	}
	err := l.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errBus)
	assert.Zero(t, l.Frames)
}
