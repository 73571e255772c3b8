package model

import (
	"image/color"

	"github.com/coreman2200/ws2811spi/ws2811"
)

// MaxBrightness caps the alpha channel used as intensity.
const MaxBrightness uint8 = 200

// Channel offsets in a packed ColorVal, 0xAAGGRRBB.
const (
	AlphaOffset uint8 = 0x18
	GreenOffset uint8 = 0x10
	RedOffset   uint8 = 0x08
	BlueOffset  uint8 = 0x0
)

// ColorVal is a packed color whose alpha channel is the LED intensity.
type ColorVal struct {
	val uint32
}

func NewColor(c uint32) ColorVal {
	return ColorVal{val: c}
}

func (c ColorVal) Color() uint32 {
	return c.val
}

func setcolor(c uint32, n uint8, off uint8) uint32 {
	var val uint32 = uint32(n) << off
	var mask uint32 = 0xFF << off
	return (c & (^mask)) | val
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & mask) >> off)
}

func (c *ColorVal) SetR(r uint8) { c.val = setcolor(c.val, r, RedOffset) }
func (c *ColorVal) SetG(g uint8) { c.val = setcolor(c.val, g, GreenOffset) }
func (c *ColorVal) SetB(b uint8) { c.val = setcolor(c.val, b, BlueOffset) }
func (c *ColorVal) SetA(a uint8) { c.val = setcolor(c.val, a, AlphaOffset) }

func (c ColorVal) GetR() uint8 { return getcolor(c.val, RedOffset) }
func (c ColorVal) GetG() uint8 { return getcolor(c.val, GreenOffset) }
func (c ColorVal) GetB() uint8 { return getcolor(c.val, BlueOffset) }
func (c ColorVal) GetA() uint8 { return getcolor(c.val, AlphaOffset) }

// ToRGBA returns the channels unscaled.
func (c ColorVal) ToRGBA() color.RGBA {
	return color.RGBA{c.GetR(), c.GetG(), c.GetB(), c.GetA()}
}

// ToRGB returns the channels scaled by alpha, alpha capped at MaxBrightness.
func (c ColorVal) ToRGB() color.NRGBA {
	aa := float64(min(c.GetA(), MaxBrightness)) / 255.0
	return color.NRGBA{
		R: uint8(float64(c.GetR()) * aa),
		G: uint8(float64(c.GetG()) * aa),
		B: uint8(float64(c.GetB()) * aa),
		A: 255,
	}
}

// RGB8 implements ws2811.Colorer.
func (c ColorVal) RGB8() ws2811.RGB8 {
	return ws2811.FromColor(c.ToRGB())
}
