// Package config loads fadiagram's optional TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/fadiagram/config.toml, falling back to
// ~/.config/fadiagram/config.toml. Every key is optional; a missing file
// yields [Default].
//
//	[render]
//	engine = "dot"
//	horizontal = true
//	font_size = 14
//	arrow_size = 0.85
//	state_separation = 0.5
//	cleanup = true
//	figure_size = [8, 5]
//
//	[serve]
//	addr = ":8080"
//	cache = "file"          # none, file or redis
//	cache_dir = "/var/cache/fadiagram"
//	redis_addr = "localhost:6379"
//	cache_ttl = "24h"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fadiagram/pkg/cache"
	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/render/diagram"
)

const (
	appName  = "fadiagram"
	fileName = "config.toml"

	// DefaultAddr is the listen address of the HTTP service.
	DefaultAddr = ":8080"
)

// Config is the decoded configuration file.
type Config struct {
	Render Render `toml:"render"`
	Serve  Serve  `toml:"serve"`
}

// Render holds render defaults. Pointer fields distinguish unset keys from
// false or zero.
type Render struct {
	Engine          string    `toml:"engine"`
	Horizontal      *bool     `toml:"horizontal"`
	Cleanup         *bool     `toml:"cleanup"`
	FontSize        float64   `toml:"font_size"`
	ArrowSize       float64   `toml:"arrow_size"`
	StateSeparation float64   `toml:"state_separation"`
	FigureSize      []float64 `toml:"figure_size"` // [width, height] in inches
}

// Serve holds HTTP service settings.
type Serve struct {
	Addr string `toml:"addr"`

	// Cache selects the artifact cache: none (default), file or redis.
	Cache     string `toml:"cache"`
	CacheDir  string `toml:"cache_dir"`  // file cache; defaults to [CacheDir]
	RedisAddr string `toml:"redis_addr"` // redis cache
	RedisDB   int    `toml:"redis_db"`
	CacheTTL  string `toml:"cache_ttl"` // Go duration, e.g. "24h"; empty never expires
}

// CacheOptions returns the artifact cache settings and entry lifetime.
func (s Serve) CacheOptions() (cache.Options, time.Duration, error) {
	opts := cache.Options{Kind: strings.ToLower(s.Cache), Dir: s.CacheDir, RedisAddr: s.RedisAddr, RedisDB: s.RedisDB}
	if opts.Kind == cache.KindFile && opts.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return opts, 0, err
		}
		opts.Dir = dir
	}
	var ttl time.Duration
	if s.CacheTTL != "" {
		var err error
		if ttl, err = time.ParseDuration(s.CacheTTL); err != nil || ttl < 0 {
			return opts, 0, errors.New(errors.ErrCodeInvalidInput, "cache_ttl %q is not a duration", s.CacheTTL)
		}
	}
	return opts, ttl, nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Serve: Serve{Addr: DefaultAddr}}
}

// Path returns the configuration file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "locate home directory")
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// CacheDir returns the default file cache location,
// $XDG_CACHE_HOME/fadiagram or ~/.cache/fadiagram.
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "locate home directory")
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the configuration from [Path]. A missing file is not an error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path. A missing file yields
// [Default]; a malformed one fails with INVALID_INPUT. Unknown keys are
// rejected so typos do not pass silently.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %s", path, undecoded[0])
	}
	if cfg.Render.Engine != "" {
		if _, err := diagram.ParseEngine(cfg.Render.Engine); err != nil {
			return Default(), err
		}
	}
	if n := len(cfg.Render.FigureSize); n != 0 && n != 2 {
		return Default(), errors.New(errors.ErrCodeInvalidInput, "config %s: figure_size needs width and height", path)
	}
	if cfg.Serve.Cache != "" {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidInput, "cache", cfg.Serve.Cache, cache.Kinds); err != nil {
			return Default(), err
		}
	}
	if _, _, err := cfg.Serve.CacheOptions(); err != nil {
		return Default(), err
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = DefaultAddr
	}
	return cfg, nil
}

// Options returns the render defaults with the configured values applied.
func (c Config) Options() diagram.Options {
	opts := diagram.DefaultOptions()
	r := c.Render
	opts.Engine = r.Engine
	if r.Horizontal != nil {
		opts.Horizontal = *r.Horizontal
	}
	if r.Cleanup != nil {
		opts.Cleanup = *r.Cleanup
	}
	if r.FontSize > 0 {
		opts.FontSize = r.FontSize
	}
	if r.ArrowSize > 0 {
		opts.ArrowSize = r.ArrowSize
	}
	if r.StateSeparation > 0 {
		opts.StateSeparation = r.StateSeparation
	}
	if len(r.FigureSize) == 2 {
		opts.FigureSize = &diagram.Size{Width: r.FigureSize[0], Height: r.FigureSize[1]}
	}
	return opts
}
