// Package driver opens the LED output selected by the configuration.
package driver

import (
	"errors"
	"fmt"
	"io"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	pspi "periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/coreman2200/ws2811spi/internal/config"
	"github.com/coreman2200/ws2811spi/spi"
	"github.com/coreman2200/ws2811spi/ws2811"
)

// NRZFreq is the clock handed to periph's nrzled driver.
const NRZFreq = 2500 * physic.KiloHertz

// Output is a Drawer with the port it holds.
type Output struct {
	display.Drawer
	port io.Closer
}

// Close turns the LEDs off and releases the port.
func (o *Output) Close() error {
	err := o.Drawer.Halt()
	if o.port != nil {
		err = errors.Join(err, o.port.Close())
	}
	return err
}

// openPort is replaced in tests.
var openPort = func(name string) (pspi.PortCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return spireg.Open(name)
}

// Open returns the output selected by c.Driver.
func Open(c *config.Config) (*Output, error) {
	if c.Driver == "screen" {
		return &Output{Drawer: screen.New(c.Count())}, nil
	}
	p, err := openPort(c.SPI.Dev)
	if err != nil {
		return nil, fmt.Errorf("driver: open %q: %w", c.SPI.Dev, err)
	}
	d, err := New(c, p)
	if err != nil {
		return nil, errors.Join(err, p.Close())
	}
	return &Output{Drawer: d, port: p}, nil
}

// New connects the SPI driver selected by c.Driver on p.
func New(c *config.Config, p pspi.Port) (display.Drawer, error) {
	switch c.Driver {
	case "ws2811":
		f := physic.Frequency(c.SPI.SpeedHz) * physic.Hertz
		if f == 0 {
			f = spi.DefaultFreq
		}
		conn, err := spi.Connect(p, f)
		if err != nil {
			return nil, err
		}
		return spi.NewDrawer(conn, c.Count(), &ws2811.Opts{IdleHigh: c.SPI.IdleHigh}), nil
	case "nrzled":
		d, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: c.Count(), Channels: 3, Freq: NRZFreq})
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("driver: unknown driver %q", c.Driver)
	}
}
