// Package config resolves desk settings from defaults, an optional yaml file, DESK_*
// environment variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"desk-cli/internal/model"
	"desk-cli/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyDeskWidth    = "desk.width"
	KeyDeskHeight   = "desk.height"
	KeyItemExtent   = "item.extent"
	KeyLogLevel     = "log.level"
	KeyOutputFormat = "output.format"
	KeyOutputPretty = "output.pretty"
	KeySeedFile     = "seed.file"
	KeySeedRandom   = "seed.random"
)

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"format":    KeyOutputFormat,
	"pretty":    KeyOutputPretty,
	"log-level": KeyLogLevel,
	"seed":      KeySeedFile,
}

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	DeskWidth    float64 `json:"deskWidth" yaml:"deskWidth"`
	DeskHeight   float64 `json:"deskHeight" yaml:"deskHeight"`
	ItemExtent   float64 `json:"itemExtent" yaml:"itemExtent"`
	LogLevel     string  `json:"logLevel" yaml:"logLevel"`
	OutputFormat string  `json:"outputFormat" yaml:"outputFormat"`
	Pretty       bool    `json:"pretty" yaml:"pretty"`
	SeedFile     string  `json:"seedFile" yaml:"seedFile"`
	SeedRandom   uint64  `json:"seedRandom" yaml:"seedRandom"`

	// File is the config file that was read, empty when none was found.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// DefaultDir is $XDG_CONFIG_HOME/desk (or the platform equivalent).
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "desk"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDeskWidth, 640)
	v.SetDefault(KeyDeskHeight, 260)
	v.SetDefault(KeyItemExtent, 80)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyOutputFormat, "json")
	v.SetDefault(KeyOutputPretty, false)
	v.SetDefault(KeySeedFile, "")
	v.SetDefault(KeySeedRandom, 0)

	v.SetEnvPrefix("DESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. configFile overrides the default location and must exist;
// a missing default file is fine. flags may be nil; only flags the user set override
// lower layers.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind --%s: %w", name, err)
				}
			}
		}
	}

	c := Config{
		DeskWidth:    v.GetFloat64(KeyDeskWidth),
		DeskHeight:   v.GetFloat64(KeyDeskHeight),
		ItemExtent:   v.GetFloat64(KeyItemExtent),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		OutputFormat: strings.ToLower(strings.TrimSpace(v.GetString(KeyOutputFormat))),
		Pretty:       v.GetBool(KeyOutputPretty),
		SeedFile:     strings.TrimSpace(v.GetString(KeySeedFile)),
		SeedRandom:   v.GetUint64(KeySeedRandom),
		File:         v.ConfigFileUsed(),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.ItemExtent <= 0 {
		return fmt.Errorf("%s must be positive, got %v: %w", KeyItemExtent, c.ItemExtent, ErrInvalid)
	}
	if c.DeskWidth < c.ItemExtent {
		return fmt.Errorf("%s (%v) is smaller than %s (%v): %w", KeyDeskWidth, c.DeskWidth, KeyItemExtent, c.ItemExtent, ErrInvalid)
	}
	if c.DeskHeight < c.ItemExtent {
		return fmt.Errorf("%s (%v) is smaller than %s (%v): %w", KeyDeskHeight, c.DeskHeight, KeyItemExtent, c.ItemExtent, ErrInvalid)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %v: %w", KeyLogLevel, err, ErrInvalid)
	}
	switch c.OutputFormat {
	case "json", "yaml", "text":
	default:
		return fmt.Errorf("%s: unknown format %q (expected json|yaml|text): %w", KeyOutputFormat, c.OutputFormat, ErrInvalid)
	}
	return nil
}

// DeskBounds keeps an item's whole footprint on the desk.
func (c Config) DeskBounds() model.Bounds {
	return model.Bounds{
		MinX: 0,
		MaxX: c.DeskWidth - c.ItemExtent,
		MinY: 0,
		MaxY: c.DeskHeight - c.ItemExtent,
	}
}

func (c Config) Logger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	log.SetLevel(lvl)
	return log
}

// Seed returns the bootstrap seed: the configured file, or the embedded default.
func (c Config) Seed() (store.Seed, error) {
	if c.SeedFile == "" {
		return store.DefaultSeed(), nil
	}
	f, err := os.Open(c.SeedFile)
	if err != nil {
		return store.Seed{}, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return store.LoadSeed(f)
}
