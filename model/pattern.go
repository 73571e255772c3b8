package model

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"
)

// Solid fills every LED with c.
func Solid(c color.Color) func(time.Duration, *image.NRGBA) {
	u := image.NewUniform(c)
	return func(_ time.Duration, dst *image.NRGBA) {
		draw.Draw(dst, dst.Rect, u, image.Point{}, draw.Src)
	}
}

// MinStep is the shortest period or step a pattern accepts; shorter values
// are raised to it.
const MinStep = time.Millisecond

// Wheel spreads the hue circle along the X axis and rotates it once per
// period.
func Wheel(period time.Duration) func(time.Duration, *image.NRGBA) {
	period = max(period, MinStep)
	return func(elapsed time.Duration, dst *image.NRGBA) {
		phase := math.Mod(float64(elapsed)/float64(period), 1)
		w := dst.Rect.Dx()
		for x := 0; x < w; x++ {
			c := ColorWheel(math.Mod(phase+float64(x)/float64(w), 1))
			for y := dst.Rect.Min.Y; y < dst.Rect.Max.Y; y++ {
				dst.SetNRGBA(dst.Rect.Min.X+x, y, c)
			}
		}
	}
}

// Chase lights a single pixel with c, moving one pixel every step.
func Chase(c color.Color, step time.Duration) func(time.Duration, *image.NRGBA) {
	step = max(step, MinStep)
	return func(elapsed time.Duration, dst *image.NRGBA) {
		clear(dst.Pix)
		n := dst.Rect.Dx() * dst.Rect.Dy()
		if n == 0 {
			return
		}
		i := int(elapsed/step) % n
		dst.Set(dst.Rect.Min.X+i%dst.Rect.Dx(), dst.Rect.Min.Y+i/dst.Rect.Dx(), c)
	}
}

// ColorWheel returns the fully saturated color at hue h in [0, 1).
func ColorWheel(h float64) color.NRGBA {
	h *= 6
	switch {
	case h < 1.:
		return color.NRGBA{R: 255, G: byte(255 * h), A: 255}
	case h < 2.:
		return color.NRGBA{R: byte(255 * (2 - h)), G: 255, A: 255}
	case h < 3.:
		return color.NRGBA{G: 255, B: byte(255 * (h - 2)), A: 255}
	case h < 4.:
		return color.NRGBA{G: byte(255 * (4 - h)), B: 255, A: 255}
	case h < 5.:
		return color.NRGBA{R: byte(255 * (h - 4)), B: 255, A: 255}
	default:
		return color.NRGBA{R: 255, B: byte(255 * (6 - h)), A: 255}
	}
}
