package driver

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
	pspi "periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/coreman2200/ws2811spi/internal/config"
)

func TestNew_NRZ(t *testing.T) {
	buf := bytes.Buffer{}
	c := config.Default()
	c.Driver = "nrzled"
	c.Layout.Width = 0
	d, err := New(c, spitest.NewRecordRaw(&buf))
	require.NoError(t, err)
	assert.Equal(t, "nrzled{recordraw}", d.String())
	n, err := d.(interface{ Write([]byte) (int, error) }).Write([]byte{})
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestNew_WS2811(t *testing.T) {
	c := config.Default()
	c.Layout = config.Layout{Width: 4, Height: 2}
	p := &spitest.Playback{Playback: conntest.Playback{DontPanic: true}}
	d, err := New(c, p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 1), d.Bounds())

	c.SPI.SpeedHz = 8000000
	_, err = New(c, &spitest.Playback{})
	assert.Error(t, err)
}

func TestNew_Unknown(t *testing.T) {
	c := config.Default()
	c.Driver = "pwm"
	_, err := New(c, &spitest.Playback{})
	assert.Error(t, err)
}

func TestOpen_Screen(t *testing.T) {
	c := config.Default()
	c.Driver = "screen"
	o, err := Open(c)
	require.NoError(t, err)
	assert.Equal(t, c.Count(), o.Bounds().Dx())
}

func TestOpen_PortError(t *testing.T) {
	errNoPort := errors.New("no port")
	old := openPort
	defer func() { openPort = old }()
	openPort = func(string) (pspi.PortCloser, error) { return nil, errNoPort }

	_, err := Open(config.Default())
	assert.ErrorIs(t, err, errNoPort)
}
