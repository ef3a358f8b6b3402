package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/influencerdeck/influencerdeck/pkg/errors"
	"github.com/influencerdeck/influencerdeck/pkg/pipeline"
)

func TestParse(t *testing.T) {
	got, err := Parse(`
font_size     = 14
log_file      = "run.log"
image_timeout = "3s"
no_cache      = true
cache_ttl     = "1h30m"
title         = "Q3 Creators"
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := &Config{
		FontSize:     14,
		LogFile:      "run.log",
		ImageTimeout: Duration{3 * time.Second},
		NoCache:      true,
		CacheTTL:     Duration{90 * time.Minute},
		Title:        "Q3 Creators",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, got); diff != "" {
		t.Errorf("Parse(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown key", `fontsize = 12`},
		{"bad duration", `image_timeout = "soon"`},
		{"negative duration", `cache_ttl = "-1h"`},
		{"wrong type", `font_size = "big"`},
		{"syntax", `title = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("Parse(%q) error = %v, want INVALID_FORMAT", tt.in, err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestApply(t *testing.T) {
	c := &Config{
		FontSize:     14,
		ImageTimeout: Duration{3 * time.Second},
		NoCache:      true,
		CacheTTL:     Duration{time.Hour},
		Title:        "From file",
	}

	opts := pipeline.Options{FontSize: 10, Title: "From flag"}
	c.Apply(&opts)

	if opts.FontSize != 10 || opts.Title != "From flag" {
		t.Errorf("Apply overrode explicit values: font %v title %q", opts.FontSize, opts.Title)
	}
	if opts.ImageTimeout != 3*time.Second || opts.CacheTTL != time.Hour || !opts.NoCache {
		t.Errorf("Apply did not fill unset values: %+v", opts)
	}

	var nilConfig *Config
	nilConfig.Apply(&opts)
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "influencerdeck.toml")
	if err := Default().Write(path); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v\n%s", err, data)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
