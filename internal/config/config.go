// Package config layers defaults, an optional .env file, STOCK_* environment
// variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Makepad-fr/stock/internal/ui"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

const envPrefix = "STOCK_"

// Config is the runtime configuration shared by every subcommand.
type Config struct {
	Theme      string
	SeedFile   string
	Demo       bool
	Addr       string
	SessionTTL time.Duration
	Token      string
	Color      bool
	NoColor    bool
	Debug      bool
}

func Default() Config {
	return Config{
		Theme:      "classic",
		Addr:       "127.0.0.1:8501",
		SessionTTL: 30 * time.Minute,
	}
}

// LoadDotEnv exports the variables of a .env file into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from STOCK_* variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	get := func(k string) string { return strings.TrimSpace(getenv(envPrefix + k)) }

	if v := get("THEME"); v != "" {
		c.Theme = v
	}
	if v := get("SEED"); v != "" {
		c.SeedFile = v
	}
	if v := get("ADDR"); v != "" {
		c.Addr = v
	}
	if v := get("TOKEN"); v != "" {
		c.Token = v
	}
	if v := get("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSESSION_TTL: %w", envPrefix, err)
		}
		c.SessionTTL = d
	}
	return nil
}

// BindFlags registers root flags on fs. Current field values become the
// flag defaults, so call it after ApplyEnv.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVarP(&c.Theme, "theme", "t", c.Theme, "colour theme (classic, neon, mono)")
	fs.StringVarP(&c.SeedFile, "seed", "s", c.SeedFile, "JSON file with the item names a session starts with")
	fs.BoolVar(&c.Demo, "demo", c.Demo, "start sessions with the built-in demo items")
	fs.StringVarP(&c.Addr, "addr", "a", c.Addr, "listen address for serve")
	fs.DurationVar(&c.SessionTTL, "session-ttl", c.SessionTTL, "idle time after which a web session is discarded")
	fs.BoolVar(&c.Color, "color", c.Color, "force coloured output")
	fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "disable coloured output")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "log session state after every change")
}

// Validate rejects combinations no subcommand can work with.
func (c Config) Validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if !knownTheme(c.Theme) {
		return fmt.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(ui.Themes, ", "))
	}
	if c.Demo && c.SeedFile != "" {
		return errors.New("--demo and --seed are mutually exclusive")
	}
	return nil
}

func knownTheme(name string) bool {
	for _, t := range ui.Themes {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}
