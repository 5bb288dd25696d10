package config

import (
	"context"
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/cpuleds/internal/errors"
	"codeberg.org/mutker/cpuleds/internal/led"
	"codeberg.org/mutker/cpuleds/internal/logger"
	"codeberg.org/mutker/cpuleds/internal/ws2812"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix       = "CPULEDS"
	EnvConfigFile   = EnvPrefix + "_CONFIG"
	configName      = "cpuleds"
	configType      = "toml"
	configDir       = "/etc"
	DefaultInterval = time.Second
	DefaultLEDs     = 20
	DefaultColor    = "#050000"
	DefaultLogLevel = "info"
)

type Config struct {
	Interval    time.Duration `mapstructure:"interval"`
	LEDs        int           `mapstructure:"leds"`
	StatPath    string        `mapstructure:"stat_path"`
	SPIDevice   string        `mapstructure:"spi_device"`
	SPIClock    int64         `mapstructure:"spi_clock"`
	LatchBytes  int           `mapstructure:"latch_bytes"`
	ActiveColor string        `mapstructure:"active_color"`
	DryRun      bool          `mapstructure:"dry_run"`
	LogLevel    string        `mapstructure:"log_level"`

	v *viper.Viper
}

// flag name -> config key
var flagKeys = map[string]string{
	"interval":    "interval",
	"leds":        "leds",
	"stat-path":   "stat_path",
	"spi-device":  "spi_device",
	"spi-clock":   "spi_clock",
	"latch-bytes": "latch_bytes",
	"color":       "active_color",
	"dry-run":     "dry_run",
	"log-level":   "log_level",
}

// RegisterFlags defines the command line flags understood by Load
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Path to configuration file (default /etc/cpuleds.toml)")
	fs.Duration("interval", DefaultInterval, "Interval between updates")
	fs.Int("leds", DefaultLEDs, "Number of LEDs on the strip")
	fs.String("stat-path", "/proc/stat", "CPU accounting file")
	fs.String("spi-device", "", "SPI port name (default: first available)")
	fs.Int64("spi-clock", ws2812.ClockHz, "SPI clock in Hz")
	fs.Int("latch-bytes", 0, "Zero bytes sent ahead of each frame")
	fs.String("color", DefaultColor, "Color of lit LEDs as #rrggbb")
	fs.Bool("dry-run", false, "Log frames instead of writing to SPI")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
}

// Load reads configuration from defaults, the TOML file, CPULEDS_*
// environment variables and flags, in increasing order of precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	errFactory := errors.New()
	v := viper.New()

	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("leds", DefaultLEDs)
	v.SetDefault("stat_path", "/proc/stat")
	v.SetDefault("spi_device", "")
	v.SetDefault("spi_clock", ws2812.ClockHz)
	v.SetDefault("latch_bytes", 0)
	v.SetDefault("active_color", DefaultColor)
	v.SetDefault("dry_run", false)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errFactory.Wrap(errors.ErrBindFlags, err)
				}
			}
		}
	}

	path, explicit := configPath(fs)
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func configPath(fs *pflag.FlagSet) (string, bool) {
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Changed {
			return f.Value.String(), true
		}
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		return path, true
	}

	return "", false
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New().Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges and that the color and log level parse
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	if c.LEDs <= 0 {
		return errFactory.WithData(errors.ErrInvalidLEDCount, c.LEDs)
	}

	if c.SPIClock <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			Field string
			Value int64
		}{
			Field: "spi_clock",
			Value: c.SPIClock,
		})
	}

	if c.LatchBytes < 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, struct {
			Field string
			Value int
		}{
			Field: "latch_bytes",
			Value: c.LatchBytes,
		})
	}

	if _, err := c.Palette(); err != nil {
		return err
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Palette returns the LED palette for the configured active color
func (c *Config) Palette() (led.Palette, error) {
	active, err := led.ParseColor(c.ActiveColor)
	if err != nil {
		return led.Palette{}, err
	}

	p := led.NewPalette(active)
	if err := p.Validate(); err != nil {
		return led.Palette{}, err
	}

	return p, nil
}

// File returns the config file in use, or "" when running on defaults
func (c *Config) File() string {
	if c.v == nil {
		return ""
	}

	return c.v.ConfigFileUsed()
}

// Watch calls fn with the reloaded configuration whenever the config file
// changes. Invalid reloads are logged and skipped. It is a no-op when no
// config file was read.
func (c *Config) Watch(ctx context.Context, fn func(*Config)) {
	if c.File() == "" {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		if ctx.Err() != nil || e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}

		cfg, err := decode(c.v)
		if err != nil {
			logger.Warn().Err(err).Str("file", e.Name).Msg("Ignoring invalid configuration reload")
			return
		}

		logger.Info().Str("file", e.Name).Msg("Configuration reloaded")
		fn(cfg)
	})
	c.v.WatchConfig()
}
