// Package config holds the meshtool settings read from a TOML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all meshtool settings
type Config struct {
	Log     Log          `toml:"log"`
	Load    LoadSettings `toml:"load"`
	Physics Physics      `toml:"physics"`
	Check   Check        `toml:"check"`
	Watch   Watch        `toml:"watch"`
	Preview Preview      `toml:"preview"`
}

type Log struct {
	Level string `toml:"level"`
}

// LoadSettings controls how models are read
type LoadSettings struct {
	Scale float64 `toml:"scale"`
	// Material keeps only the OBJ faces using this material, empty for all
	Material string `toml:"material"`
}

type Physics struct {
	Density float64 `toml:"density"`
}

type Check struct {
	Strict bool `toml:"strict"`
}

type Watch struct {
	// Debounce is a duration such as "300ms"
	Debounce string `toml:"debounce"`
}

type Preview struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Supersample int     `toml:"supersample"`
	Yaw         float64 `toml:"yaw"`
	Pitch       float64 `toml:"pitch"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Log:     Log{Level: "info"},
		Load:    LoadSettings{Scale: 1},
		Physics: Physics{Density: 1},
		Watch:   Watch{Debounce: "300ms"},
		Preview: Preview{Width: 512, Height: 512, Supersample: 2, Yaw: 30, Pitch: 20},
	}
}

// Load reads a TOML file over the default settings.
// Settings missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config: %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the settings untouched.
type Flags struct {
	LogLevel string
	Scale    float64
	Material string
	Density  float64
	Strict   bool
	Debounce string
}

// Resolve applies the flags and replaces invalid values by defaults
func (c *Config) Resolve(flags Flags) {
	if flags.LogLevel != "" {
		c.Log.Level = flags.LogLevel
	}
	if flags.Scale > 0 {
		c.Load.Scale = flags.Scale
	}
	if flags.Material != "" {
		c.Load.Material = flags.Material
	}
	if flags.Density > 0 {
		c.Physics.Density = flags.Density
	}
	if flags.Strict {
		c.Check.Strict = true
	}
	if flags.Debounce != "" {
		c.Watch.Debounce = flags.Debounce
	}

	def := Default()
	if c.Load.Scale <= 0 {
		c.Load.Scale = def.Load.Scale
	}
	if c.Physics.Density <= 0 {
		c.Physics.Density = def.Physics.Density
	}
	if c.Preview.Width <= 0 {
		c.Preview.Width = def.Preview.Width
	}
	if c.Preview.Height <= 0 {
		c.Preview.Height = def.Preview.Height
	}
	if c.Preview.Supersample <= 0 {
		c.Preview.Supersample = def.Preview.Supersample
	}
}

// DebounceDuration parses the watch debounce
func (c Config) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("config: watch.debounce: %w", err)
	}
	return d, nil
}

// LogLevel parses the log level
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log.level: %w", err)
	}
	return level, nil
}
