// Package config supplies run settings, optionally seeded from a config.toml
// so operators do not repeat flags on every run. Flags override file values.
package config

import (
	"os"
	"path/filepath"

	"github.com/go-micro/plugins/v4/config/encoder/toml"
	"go-micro.dev/v4/config"
	"go-micro.dev/v4/config/reader"
	"go-micro.dev/v4/config/reader/json"
	"go-micro.dev/v4/config/source"
	"go-micro.dev/v4/config/source/file"
)

// LimitConfig describes one rate limit window on the fetch path.
type LimitConfig struct {
	EventCount int
	EventDur   int // seconds
	Bucket     int
}

type Settings struct {
	BaseURL        string
	Resource       string
	MediaType      string
	LogFile        string
	LogDir         string
	FilterFile     string
	VisitedFile    string
	LinkKey        string
	LogLevel       string
	WorkCount      int
	TimeoutSeconds int
	DSN            string
	Proxies        []string
	Limits         []LimitConfig
}

// Default returns the provider defaults the reference deployment uses.
func Default() Settings {
	dir, err := os.Executable()
	if err != nil {
		dir = "."
	} else {
		dir = filepath.Dir(dir)
	}
	return Settings{
		BaseURL:        "https://library.cdisc.org/api",
		Resource:       "/mdr/ct/packages",
		MediaType:      "application/json",
		LogFile:        "link_log.txt",
		LogDir:         dir,
		FilterFile:     "prime_cache_filters.txt",
		VisitedFile:    "tested_urls.txt",
		LinkKey:        "href",
		LogLevel:       "INFO",
		WorkCount:      1,
		TimeoutSeconds: 30,
	}
}

// Load reads config.toml from dir into the defaults. A missing file is not an
// error; the defaults stand.
func Load(dir string) (Settings, error) {
	settings := Default()
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return settings, nil
	}

	enc := toml.NewEncoder()
	cfg, err := config.NewConfig(config.WithReader(json.NewReader(reader.WithEncoder(enc))))
	if err != nil {
		return settings, err
	}
	if err := cfg.Load(file.NewSource(
		file.WithPath(path),
		source.WithEncoder(enc),
	)); err != nil {
		return settings, err
	}
	if err := cfg.Get("Primer").Scan(&settings); err != nil {
		return settings, err
	}

	return settings, nil
}
