// Package tinyspi connects ws2811 strings to TinyGo SPI buses, such as
// machine.SPI0 on a microcontroller.
package tinyspi

import (
	"tinygo.org/x/drivers"

	"github.com/coreman2200/ws2811spi/ws2811"
)

// Conn adapts a drivers.SPI bus to ws2811.FullDuplex.
//
// The bus must be configured with Frequency between ws2811.MinFreq and
// ws2811.MaxFreq and Mode 0.
type Conn struct {
	bus drivers.SPI
	r   byte
	rx  bool
}

// New returns a Conn over bus.
func New(bus drivers.SPI) *Conn {
	return &Conn{bus: bus}
}

// Send implements ws2811.FullDuplex.
func (c *Conn) Send(b byte) error {
	c.rx = false
	r, err := c.bus.Transfer(b)
	if err != nil {
		return err
	}
	c.r, c.rx = r, true
	return nil
}

// Read implements ws2811.FullDuplex.
func (c *Conn) Read() (byte, error) {
	if !c.rx {
		return 0, ws2811.ErrWouldBlock
	}
	c.rx = false
	return c.r, nil
}
