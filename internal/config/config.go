package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SPI struct {
	Dev      string `yaml:"dev"`       // spireg name, e.g. "SPI0.0"; empty picks the first port
	SpeedHz  int    `yaml:"speed_hz"`  // 3000000..3440000
	IdleHigh bool   `yaml:"idle_high"` // MOSI idles high between transfers
}

type Layout struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Serpentine bool `yaml:"serpentine"`
}

type Config struct {
	Driver  string `yaml:"driver"`  // "ws2811" | "nrzled" | "screen"
	Pattern string `yaml:"pattern"` // "solid" | "wheel" | "chase"
	Color   string `yaml:"color"`   // hex RRGGBB for solid/chase
	FPS     int    `yaml:"fps"`
	Addr    string `yaml:"addr,omitempty"`

	Layout Layout `yaml:"layout"`
	SPI    SPI    `yaml:"spi,omitempty"`
}

// MaxFPS is the highest frame rate accepted.
const MaxFPS = 1000

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Driver:  "ws2811",
		Pattern: "wheel",
		Color:   "ff8000",
		FPS:     30,
		Layout:  Layout{Width: 50, Height: 1},
		SPI:     SPI{SpeedHz: 3200000},
	}
}

// Count is the number of LEDs on the chain.
func (c *Config) Count() int {
	return c.Layout.Width * c.Layout.Height
}

// Validate reports the first unusable field.
func (c *Config) Validate() error {
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return fmt.Errorf("config: invalid layout %dx%d", c.Layout.Width, c.Layout.Height)
	}
	if c.FPS < 0 || c.FPS > MaxFPS {
		return fmt.Errorf("config: invalid fps %d", c.FPS)
	}
	switch c.Driver {
	case "ws2811", "nrzled", "screen":
	default:
		return fmt.Errorf("config: unknown driver %q", c.Driver)
	}
	return nil
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
