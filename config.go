package sapling

import (
	"fmt"
	"time"

	"gopkg.in/ini.v1"
)

const (
	defaultWidth        = 640
	defaultHeight       = 480
	defaultLoadLimit    = 3
	defaultPollInterval = 200 * time.Millisecond

	configSection = "engine"
)

// Config holds the options recognized when an Engine is constructed.
type Config struct {
	// Debug enables the overlay, the FPS text and stderr logging.
	Debug bool `ini:"debug"`
	// Width and Height are the logical canvas size. Zero means "use the
	// surface size", falling back to 640x480.
	Width  int `ini:"width"`
	Height int `ini:"height"`
	// HighResolution doubles the backing resolution while the displayed size
	// stays at Width x Height.
	HighResolution bool `ini:"high_resolution"`
	// LoadLimit is the number of retries an asset gets after its first failed
	// attempt. Zero means the default of 3.
	LoadLimit int `ini:"load_limit"`
	// SoundOn enables the audio subsystem. Audio requests are ignored when off.
	SoundOn bool `ini:"sound_on"`
	// PollInterval is the asset loader's polling period.
	PollInterval time.Duration `ini:"poll_interval"`
}

// DefaultConfig returns a Config with the loader defaults filled in.
func DefaultConfig() Config {
	return Config{
		LoadLimit:    defaultLoadLimit,
		PollInterval: defaultPollInterval,
	}
}

// LoadConfig reads the [engine] section of an INI file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return configFromFile(f)
}

// ParseConfig is LoadConfig for in-memory INI data.
func ParseConfig(data []byte) (Config, error) {
	f, err := ini.Load(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return configFromFile(f)
}

func configFromFile(f *ini.File) (Config, error) {
	cfg := DefaultConfig()
	if err := f.Section(configSection).StrictMapTo(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// withDefaults replaces zero or negative values that have no meaning.
func (c Config) withDefaults() Config {
	if c.LoadLimit <= 0 {
		c.LoadLimit = defaultLoadLimit
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.Width < 0 {
		c.Width = 0
	}
	if c.Height < 0 {
		c.Height = 0
	}
	return c
}
