package spi

import (
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"

	"github.com/coreman2200/ws2811spi/ws2811"
)

// Drawer is a display.Drawer over a ws2811 strip of n pixels.
//
// The strip state is kept so that a partial Draw still writes a full frame.
type Drawer struct {
	d    *ws2811.Dev
	name string
	img  *image.NRGBA
}

// NewDrawer returns a Drawer for a strip of n pixels on p.
func NewDrawer(p ws2811.FullDuplex, n int, opts *ws2811.Opts) *Drawer {
	name := "ws2811"
	if s, ok := p.(interface{ String() string }); ok {
		name = "ws2811{" + s.String() + "}"
	}
	return &Drawer{
		d:    ws2811.New(p, opts),
		name: name,
		img:  image.NewNRGBA(image.Rect(0, 0, n, 1)),
	}
}

func (r *Drawer) String() string {
	return r.name
}

// ColorModel implements display.Drawer. There's no surprise, it is
// color.NRGBAModel.
func (r *Drawer) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (r *Drawer) Bounds() image.Rectangle {
	return r.img.Rect
}

// Draw implements display.Drawer.
//
// Only the first row of dstRect is used. The whole strip is written.
func (r *Drawer) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(r.img, dstRect, src, sp, draw.Src)
	return r.write()
}

// Halt implements display.Drawer. It turns every LED off.
func (r *Drawer) Halt() error {
	clear(r.img.Pix)
	return r.write()
}

func (r *Drawer) write() error {
	return r.d.Write(func(yield func(ws2811.Colorer) bool) {
		for i := 0; i+3 < len(r.img.Pix); i += 4 {
			if !yield(ws2811.RGB8{R: r.img.Pix[i], G: r.img.Pix[i+1], B: r.img.Pix[i+2]}) {
				return
			}
		}
	})
}

var _ display.Drawer = &Drawer{}
