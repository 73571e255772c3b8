package model

import (
	"image"
	"time"
)

// Layout maps a Width x Height image onto a single LED chain, row after
// row. With Serpentine set, odd rows run right to left as on zig-zag wired
// panels.
type Layout struct {
	Width      int
	Height     int
	Serpentine bool
}

func (l Layout) Count() int {
	return l.Width * l.Height
}

// Bounds is the 2-D image area of the layout.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// Index returns the chain position of pixel (x, y).
func (l Layout) Index(x, y int) int {
	if l.Serpentine && y%2 == 1 {
		x = l.Width - 1 - x
	}
	return y*l.Width + x
}

// Chain copies src, read from its Min corner, into dst in chain order. dst
// must hold at least Count pixels in its first row.
func (l Layout) Chain(dst *image.NRGBA, src image.Image) {
	b := src.Bounds()
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			dst.Set(dst.Rect.Min.X+l.Index(x, y), dst.Rect.Min.Y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
}

// Wrap renders p on the 2-D layout and hands the result over in chain
// order.
func (l Layout) Wrap(p func(time.Duration, *image.NRGBA)) func(time.Duration, *image.NRGBA) {
	img := image.NewNRGBA(l.Bounds())
	return func(elapsed time.Duration, dst *image.NRGBA) {
		p(elapsed, img)
		l.Chain(dst, img)
	}
}
