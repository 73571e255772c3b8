package ws2811

import (
	"image/color"
	"iter"
)

// RGB8 is one LED color with 8 bits per channel.
type RGB8 struct {
	R, G, B uint8
}

// RGB8 implements Colorer.
func (c RGB8) RGB8() RGB8 {
	return c
}

// RGBA implements color.Color. RGB8 is always opaque.
func (c RGB8) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// Colorer is any value that can be sent to a LED.
type Colorer interface {
	RGB8() RGB8
}

// FromColor converts c to its non alpha-premultiplied 8 bit channels. The
// alpha channel is dropped.
func FromColor(c color.Color) RGB8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB8{R: n.R, G: n.G, B: n.B}
}

// Slice yields the items of s in order.
func Slice[C Colorer](s []C) iter.Seq[Colorer] {
	return func(yield func(Colorer) bool) {
		for _, c := range s {
			if !yield(c) {
				return
			}
		}
	}
}

// Seq adapts a sequence of a concrete color type.
func Seq[C Colorer](s iter.Seq[C]) iter.Seq[Colorer] {
	return func(yield func(Colorer) bool) {
		for c := range s {
			if !yield(c) {
				return
			}
		}
	}
}
