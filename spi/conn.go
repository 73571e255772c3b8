// Package spi connects ws2811 strings to periph.io SPI ports.
package spi

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	pspi "periph.io/x/conn/v3/spi"

	"github.com/coreman2200/ws2811spi/ws2811"
)

// DefaultFreq sits in the middle of the window ws2811 accepts.
const DefaultFreq = 3200 * physic.KiloHertz

// Conn adapts a periph spi.Conn to ws2811.FullDuplex, one byte per Tx.
//
// Every Tx is its own transaction. Drivers that leave a gap between
// transactions stretch the low part of the last symbol; prefer ports that
// keep their FIFO fed.
type Conn struct {
	c    pspi.Conn
	half bool
	w    [1]byte
	r    [1]byte
	rx   bool
}

// NewConn returns a Conn over c. c must be configured for 8 bit words.
func NewConn(c pspi.Conn) *Conn {
	return &Conn{c: c, half: c.Duplex() == conn.Half}
}

// Send implements ws2811.FullDuplex.
func (c *Conn) Send(b byte) error {
	c.w[0] = b
	c.rx = false
	var r []byte
	if !c.half {
		r = c.r[:]
	}
	if err := c.c.Tx(c.w[:], r); err != nil {
		return err
	}
	c.rx = !c.half
	return nil
}

// Read implements ws2811.FullDuplex. It returns the byte clocked in by the
// last Send, once.
func (c *Conn) Read() (byte, error) {
	if !c.rx {
		return 0, ws2811.ErrWouldBlock
	}
	c.rx = false
	return c.r[0], nil
}

func (c *Conn) String() string {
	return c.c.String()
}

// Connect connects p at f in mode 0 with 8 bit words.
func Connect(p pspi.Port, f physic.Frequency) (*Conn, error) {
	if f < ws2811.MinFreq || f > ws2811.MaxFreq {
		return nil, fmt.Errorf("spi: frequency %s outside [%s, %s]", f, ws2811.MinFreq, ws2811.MaxFreq)
	}
	c, err := p.Connect(f, pspi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("spi: connect: %w", err)
	}
	return NewConn(c), nil
}
