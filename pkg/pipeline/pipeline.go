// Package pipeline provides the deck generation pipeline for influencerdeck.
//
// This package implements the complete load → build → persist pipeline used
// by the CLI. Centralizing it here keeps defaults and ordering rules in one
// place.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the CSV or XLSX input and validate every row
//  2. Build: Render one slide per record, in input order
//  3. Persist: Encode the deck once and write it to the output path
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "influencers.xlsx",
//	    Output: "report.pptx",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Slides)
//
// Or use [Convert] for the plain input → output contract. Convert writes its
// run log to [DefaultLogFile] next to the output; callers of Execute pass
// their own logger, typically one built with [NewRunLogger].
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/influencerdeck/influencerdeck/pkg/cache"
	"github.com/influencerdeck/influencerdeck/pkg/deck"
	"github.com/influencerdeck/influencerdeck/pkg/errors"
	"github.com/influencerdeck/influencerdeck/pkg/imagefetch"
	"github.com/influencerdeck/influencerdeck/pkg/slides"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and config file
// =============================================================================

const (
	// DefaultTitle is the document title stamped on the presentation.
	DefaultTitle = "Influencer Report"

	// DefaultCreator is the document author property.
	DefaultCreator = "influencerdeck"

	// DefaultFontSize is the table font size in points.
	DefaultFontSize = slides.DefaultFontSize

	// DefaultImageTimeout bounds each profile image download.
	DefaultImageTimeout = imagefetch.DefaultTimeout

	// DefaultCacheTTL is how long downloaded images stay cached.
	DefaultCacheTTL = cache.DefaultTTL

	// DefaultLogFile is the run log file name, placed next to the output.
	DefaultLogFile = "influencerdeck.log"
)

// Size limits accepted by Validate.
const (
	MinFontSize = 6.0
	MaxFontSize = 72.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one generation run.
type Options struct {
	// Input is the .csv or .xlsx file to read.
	Input string
	// Output is the .pptx file to write.
	Output string

	Title    string
	FontSize float64

	// ImageTimeout bounds each profile image download.
	ImageTimeout time.Duration
	// NoCache disables the image cache for this run.
	NoCache  bool
	CacheTTL time.Duration

	// RunID identifies the run in logs. Generated when empty.
	RunID string

	// Runtime options
	Logger *log.Logger
	// Images overrides the image fetcher built from the options above.
	Images slides.ImageFetcher

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the in-memory deck that was written.
	Document *deck.Document

	// RunID identifies the run.
	RunID string

	// Failures holds one entry per record whose profile image could not be embedded.
	Failures []ImageFailure

	// Stats contains counts and timing information.
	Stats Stats
}

// ImageFailure describes a profile image that was left off its slide.
type ImageFailure struct {
	Record int
	Name   string
	URL    string
	Err    error
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records        int
	Slides         int
	ImagesEmbedded int
	ImagesFailed   int
	ChartsSkipped  int
	Bytes          int64

	LoadTime    time.Duration
	BuildTime   time.Duration
	PersistTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in every unset field.
func (o *Options) SetDefaults() {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.ImageTimeout == 0 {
		o.ImageTimeout = DefaultImageTimeout
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks required fields and value ranges.
func (o *Options) Validate() error {
	if err := errors.ValidateInputPath(o.Input); err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if sameFile(o.Input, o.Output) {
		return errors.New(errors.ErrCodeInvalidPath, "output would overwrite input %s", o.Input)
	}
	if o.FontSize < MinFontSize || o.FontSize > MaxFontSize {
		return errors.New(errors.ErrCodeInvalidInput, "font size %g out of range [%g, %g]", o.FontSize, MinFontSize, MaxFontSize)
	}
	if o.ImageTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "image timeout must not be negative")
	}
	if o.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	return nil
}

// ValidateAndSetDefaults applies defaults, then validates.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func sameFile(a, b string) bool {
	pa, errA := filepath.Abs(a)
	pb, errB := filepath.Abs(b)
	return errA == nil && errB == nil && pa == pb
}
