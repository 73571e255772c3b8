// ws2811ctl drives a WS2811 string from an SPI port, either with a built-in
// pattern or with frames received over a websocket.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ws2811spi/internal/config"
	"github.com/coreman2200/ws2811spi/internal/driver"
	"github.com/coreman2200/ws2811spi/internal/ws"
	"github.com/coreman2200/ws2811spi/model"
	"github.com/coreman2200/ws2811spi/spi"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml")
		drv        = flag.String("driver", "", "driver: ws2811 | nrzled | screen")
		dev        = flag.String("spi", "", "SPI port name, empty for the first one")
		speedHz    = flag.Int("speed-hz", 0, "SPI clock in Hz (3000000..3440000)")
		idleHigh   = flag.Bool("idle-high", false, "MOSI idles high; send a zero run before each frame")
		count      = flag.Int("n", 0, "number of LEDs (width of a single row layout)")
		pattern    = flag.String("pattern", "", "pattern: solid | wheel | chase")
		col        = flag.String("color", "", "hex RRGGBB color for solid and chase")
		fps        = flag.Int("fps", 0, "frames per second")
		serve      = flag.String("serve", "", "listen address of the websocket frame server, e.g. :8080")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
		cfg = c
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Driver = *drv
		case "spi":
			cfg.SPI.Dev = *dev
		case "speed-hz":
			cfg.SPI.SpeedHz = *speedHz
		case "idle-high":
			cfg.SPI.IdleHigh = *idleHigh
		case "n":
			cfg.Layout = config.Layout{Width: *count, Height: 1}
		case "pattern":
			cfg.Pattern = *pattern
		case "color":
			cfg.Color = *col
		case "fps":
			cfg.FPS = *fps
		case "serve":
			cfg.Addr = *serve
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("ws2811ctl")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	out, err := driver.Open(cfg)
	if err != nil && cfg.Driver != "screen" {
		log.Warn().Err(err).
			Str("driver", cfg.Driver).
			Str("dev", cfg.SPI.Dev).
			Int("speed_hz", cfg.SPI.SpeedHz).
			Msg("SPI init failed; printing at the console")
		cfg.Driver = "screen"
		out, err = driver.Open(cfg)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Warn().Err(err).Msg("halt")
		}
	}()
	log.Info().Str("driver", out.String()).Int("count", cfg.Count()).Msg("output ready")

	if cfg.Addr != "" {
		return serveFrames(ctx, cfg.Addr, ws.NewServer(out))
	}

	p, err := newPattern(cfg)
	if err != nil {
		return err
	}
	l := &spi.Looper{Drawer: out, Pattern: p, FPS: cfg.FPS}
	err = l.Run(ctx)
	log.Info().Uint64("frames", l.Frames).Msg("stopped")
	return err
}

func serveFrames(ctx context.Context, addr string, s *ws.Server) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Int("count", s.Count()).Msg("frame server starting")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

func newPattern(cfg *config.Config) (func(time.Duration, *image.NRGBA), error) {
	c, err := parseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	var p func(time.Duration, *image.NRGBA)
	switch cfg.Pattern {
	case "solid":
		p = model.Solid(c)
	case "wheel":
		p = model.Wheel(5 * time.Second)
	case "chase":
		p = model.Chase(c, 50*time.Millisecond)
	default:
		return nil, fmt.Errorf("unknown pattern %q", cfg.Pattern)
	}
	l := model.Layout{Width: cfg.Layout.Width, Height: cfg.Layout.Height, Serpentine: cfg.Layout.Serpentine}
	return l.Wrap(p), nil
}

func parseColor(s string) (color.NRGBA, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q, want RRGGBB", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
