package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/fadiagram/pkg/cache"
	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/render/diagram"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), fileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Serve.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Serve.Addr, DefaultAddr)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[render]
engine = "circo"
horizontal = false
cleanup = false
font_size = 10
figure_size = [8, 5]

[serve]
addr = "127.0.0.1:9000"
cache = "redis"
redis_addr = "localhost:6379"
cache_ttl = "1h"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Serve.Addr != "127.0.0.1:9000" || cfg.Serve.Cache != "redis" || cfg.Serve.CacheTTL != "1h" {
		t.Errorf("Serve = %+v", cfg.Serve)
	}

	opts := cfg.Options()
	if opts.Engine != "circo" || opts.Horizontal || opts.Cleanup {
		t.Errorf("Options() = %+v", opts)
	}
	if opts.FontSize != 10 {
		t.Errorf("FontSize = %v, want 10", opts.FontSize)
	}
	if opts.ArrowSize != diagram.DefaultArrowSize {
		t.Errorf("ArrowSize = %v, want default", opts.ArrowSize)
	}
	if opts.FigureSize == nil || *opts.FigureSize != (diagram.Size{Width: 8, Height: 5}) {
		t.Errorf("FigureSize = %v", opts.FigureSize)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want errors.Code
	}{
		{"malformed", "[render\n", errors.ErrCodeInvalidInput},
		{"unknown key", "[render]\ncolour = \"red\"\n", errors.ErrCodeInvalidInput},
		{"bad engine", "[render]\nengine = \"spring\"\n", errors.ErrCodeInvalidEngine},
		{"bad figure size", "[render]\nfigure_size = [1, 2, 3]\n", errors.ErrCodeInvalidInput},
		{"bad cache", "[serve]\ncache = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"bad cache ttl", "[serve]\ncache_ttl = \"soon\"\n", errors.ErrCodeInvalidInput},
		{"negative cache ttl", "[serve]\ncache_ttl = \"-1h\"\n", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadFile() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName, fileName); path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

func TestCacheOptions(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	tests := []struct {
		name    string
		serve   Serve
		want    cache.Options
		wantTTL time.Duration
	}{
		{"none", Serve{}, cache.Options{}, 0},
		{"file default dir", Serve{Cache: "File"}, cache.Options{Kind: "file", Dir: filepath.Join("/tmp/xdg-cache", appName)}, 0},
		{"file dir", Serve{Cache: "file", CacheDir: "/srv/c", CacheTTL: "90m"}, cache.Options{Kind: "file", Dir: "/srv/c"}, 90 * time.Minute},
		{"redis", Serve{Cache: "redis", RedisAddr: "db:6379", RedisDB: 2}, cache.Options{Kind: "redis", RedisAddr: "db:6379", RedisDB: 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ttl, err := tt.serve.CacheOptions()
			if err != nil {
				t.Fatalf("CacheOptions() error: %v", err)
			}
			if got != tt.want || ttl != tt.wantTTL {
				t.Errorf("CacheOptions() = %+v, %v, want %+v, %v", got, ttl, tt.want, tt.wantTTL)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := Default().Options()
	if !opts.Horizontal || !opts.Cleanup || opts.FontSize != diagram.DefaultFontSize {
		t.Errorf("Default().Options() = %+v", opts)
	}
}
