package ws2811

import (
	"iter"

	"periph.io/x/conn/v3/physic"
)

const (
	// MinFreq and MaxFreq bound the SPI clock the caller must configure.
	MinFreq = 3 * physic.MegaHertz
	MaxFreq = 3440 * physic.KiloHertz

	// BytesPerChannel is the number of SPI bytes sent per 8 bit channel.
	BytesPerChannel = 4
	// ResetBytes is the length of the zero run that latches a frame. At 3MHz
	// it holds the line low for 53µs, past the WS2811 reset time.
	ResetBytes = 20
)

const (
	symbolZero = 0b1000
	symbolOne  = 0b1100
)

// Opts is optional parameters for New.
type Opts struct {
	// IdleHigh must be set when MOSI idles high between transfers. A zero run
	// is then sent before the frame to pull the line low.
	IdleHigh bool
}

// DefaultOpts is the options used when New is given nil.
var DefaultOpts = Opts{}

// Dev is a WS2811 string connected to the MOSI line of an SPI port.
//
// Dev is not safe for concurrent use; it owns the port for its lifetime.
type Dev struct {
	p        FullDuplex
	idleHigh bool
}

// New returns a Dev writing to p.
//
// p must already run between MinFreq and MaxFreq and the CPU must be fast
// enough to keep the port fed, otherwise the symbols stretch.
func New(p FullDuplex, opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	return &Dev{p: p, idleHigh: opts.IdleHigh}
}

// Write sends every color of colors, red then green then blue, followed by
// the reset gap.
//
// colors is consumed once. The first transport error stops the iteration and
// is returned as a *TransportError; the string then shows a partial frame.
func (d *Dev) Write(colors iter.Seq[Colorer]) error {
	if d.idleHigh {
		if err := d.flush(); err != nil {
			return err
		}
	}
	for c := range colors {
		rgb := c.RGB8()
		if err := d.writeByte(rgb.R); err != nil {
			return err
		}
		if err := d.writeByte(rgb.G); err != nil {
			return err
		}
		if err := d.writeByte(rgb.B); err != nil {
			return err
		}
	}
	return d.flush()
}

func (d *Dev) writeByte(b byte) error {
	for _, s := range Encode(b) {
		if err := d.send(s); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) flush() error {
	for i := 0; i < ResetBytes; i++ {
		if err := d.send(0); err != nil {
			return err
		}
	}
	return nil
}

// send transmits b and drains the receive side.
func (d *Dev) send(b byte) error {
	if err := send(d.p, b); err != nil {
		return err
	}
	_, _ = d.p.Read()
	return nil
}

// Encode returns the 4 SPI bytes carrying b, in transmission order.
func Encode(b byte) [BytesPerChannel]byte {
	var out [BytesPerChannel]byte
	// Two halves of 4 bits, so the CPU has slack between the SPI writes.
	for half := 0; half < 2; half++ {
		var bits uint16
		for i := 0; i < 4; i++ {
			nibble := uint16(symbolZero)
			if b&0x80 != 0 {
				nibble = symbolOne
			}
			bits = bits<<4 | nibble
			b <<= 1
		}
		out[2*half] = byte(bits >> 8)
		out[2*half+1] = byte(bits)
	}
	return out
}
