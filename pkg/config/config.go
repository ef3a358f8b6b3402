// Package config loads optional run settings from a TOML file.
//
// Every key is optional. Values from the file fill in [pipeline.Options]
// fields that were not set on the command line:
//
//	font_size     = 12
//	log_file      = "influencerdeck.log"
//	image_timeout = "10s"
//	no_cache      = false
//	cache_ttl     = "24h"
//	title         = "Influencer Report"
package config

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/influencerdeck/influencerdeck/pkg/errors"
	"github.com/influencerdeck/influencerdeck/pkg/pipeline"
)

// Config mirrors the configuration file.
type Config struct {
	FontSize     float64  `toml:"font_size"`
	LogFile      string   `toml:"log_file"`
	ImageTimeout Duration `toml:"image_timeout"`
	NoCache      bool     `toml:"no_cache"`
	CacheTTL     Duration `toml:"cache_ttl"`
	Title        string   `toml:"title"`
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads the file at path. Unknown keys are rejected so that typos do
// not pass silently.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Parse(string(data))
}

// Parse decodes a configuration document.
func Parse(data string) (*Config, error) {
	var c Config
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return &c, nil
}

// Apply copies every value set in c into the zero-valued fields of opts.
// NoCache is sticky: either source can disable the cache.
func (c *Config) Apply(opts *pipeline.Options) {
	if c == nil {
		return
	}
	if opts.FontSize == 0 {
		opts.FontSize = c.FontSize
	}
	if opts.ImageTimeout == 0 {
		opts.ImageTimeout = c.ImageTimeout.Duration
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = c.CacheTTL.Duration
	}
	if opts.Title == "" {
		opts.Title = c.Title
	}
	opts.NoCache = opts.NoCache || c.NoCache
}

// Default returns the configuration equivalent to an empty file with the
// pipeline defaults spelled out, as written by "config init".
func Default() *Config {
	return &Config{
		FontSize:     pipeline.DefaultFontSize,
		LogFile:      pipeline.DefaultLogFile,
		ImageTimeout: Duration{pipeline.DefaultImageTimeout},
		CacheTTL:     Duration{pipeline.DefaultCacheTTL},
		Title:        pipeline.DefaultTitle,
	}
}

// Write encodes c as TOML to path.
func (c *Config) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config %s", path)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return f.Close()
}
