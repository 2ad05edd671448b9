// Package config loads rectile settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML or YAML config file ([LoadFile])
//  3. environment variables prefixed RECTILE_, after loading a .env file if
//     one exists ([ApplyEnv], [LoadDotEnv])
//  4. command-line flags, applied by the CLI
//
// A config file has four sections:
//
//	[tiling]
//	cx = 32
//	grid_width = 28
//	colorize = true
//
//	[render]
//	scale = 2.0
//	formats = ["svg", "png"]
//
//	[cache]
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling"
)

// Config is the full application configuration.
type Config struct {
	Tiling tiling.Config `toml:"tiling" yaml:"tiling" json:"tiling"`
	Render Render        `toml:"render" yaml:"render" json:"render"`
	Cache  Cache         `toml:"cache" yaml:"cache" json:"cache"`
	Server Server        `toml:"server" yaml:"server" json:"server"`
}

// Render holds output settings.
type Render struct {
	// Scale is the PNG device-pixel ratio.
	Scale float64 `toml:"scale" yaml:"scale" json:"scale"`
	// Formats are rendered when none is given on the command line.
	Formats []string `toml:"formats" yaml:"formats" json:"formats"`
	// OutputDir is where artifacts are written.
	OutputDir string `toml:"output_dir" yaml:"output_dir" json:"output_dir"`
}

// Cache holds artifact cache settings. RedisURL takes precedence over Dir.
type Cache struct {
	Disabled bool          `toml:"disabled" yaml:"disabled" json:"disabled"`
	Dir      string        `toml:"dir" yaml:"dir" json:"dir"`
	RedisURL string        `toml:"redis_url" yaml:"redis_url" json:"redis_url"`
	TTL      time.Duration `toml:"ttl" yaml:"ttl" json:"ttl"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr            string        `toml:"addr" yaml:"addr" json:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout" yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout" yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// Default values outside the tiling section.
const (
	DefaultScale    = 2.0
	DefaultCacheTTL = 24 * time.Hour
	DefaultAddr     = ":8080"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tiling: tiling.DefaultConfig(),
		Render: Render{
			Scale:     DefaultScale,
			Formats:   []string{"svg"},
			OutputDir: ".",
		},
		Cache: Cache{TTL: DefaultCacheTTL},
		Server: Server{
			Addr:            DefaultAddr,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load builds a configuration from defaults, the optional file at path, a
// .env file in the working directory and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	if err := LoadDotEnv(); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the TOML or YAML file at path onto cfg. Keys absent from
// the file keep their current values.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidConfiguration, "unknown keys in %s: %v", path, undecoded)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"unsupported config file %s (use .toml, .yaml or .yml)", path)
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Tiling.Validate(); err != nil {
		return err
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "render scale must be positive, got %v", c.Render.Scale)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "cache ttl cannot be negative, got %s", c.Cache.TTL)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "server address cannot be empty")
	}
	return nil
}
