package spi

import (
	"context"
	"image"
	"time"

	"periph.io/x/conn/v3/display"
)

const (
	// DefaultFPS is used when a Looper has no FPS set.
	DefaultFPS = 30
	// MaxFPS caps the rate of a Looper.
	MaxFPS = 1000
)

// Pattern renders the frame at elapsed into dst.
type Pattern func(elapsed time.Duration, dst *image.NRGBA)

// Looper redraws a Drawer from a Pattern at a fixed rate.
type Looper struct {
	Drawer  display.Drawer
	Pattern Pattern
	FPS     int

	// Frames counts the frames drawn by Run.
	Frames uint64
}

// Run draws frames until ctx is done or a Draw fails. It returns ctx.Err()
// on cancellation.
func (l *Looper) Run(ctx context.Context) error {
	fps := l.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	fps = min(fps, MaxFPS)
	img := image.NewNRGBA(l.Drawer.Bounds())
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case t := <-ticker.C:
			l.Pattern(t.Sub(start), img)
			if err := l.Drawer.Draw(img.Rect, img, img.Rect.Min); err != nil {
				return err
			}
			l.Frames++

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
