package pipeline

import (
	"context"
	"fmt"
	stdio "io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/influencerdeck/influencerdeck/pkg/cache"
	"github.com/influencerdeck/influencerdeck/pkg/deck"
	"github.com/influencerdeck/influencerdeck/pkg/errors"
	"github.com/influencerdeck/influencerdeck/pkg/imagefetch"
	"github.com/influencerdeck/influencerdeck/pkg/io"
	"github.com/influencerdeck/influencerdeck/pkg/observability"
	"github.com/influencerdeck/influencerdeck/pkg/record"
	"github.com/influencerdeck/influencerdeck/pkg/slides"
)

// Runner encapsulates pipeline execution with an image cache.
//
// The Runner is stateless except for the cache and logger; it does not
// store results between runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given image cache.
// If cache is nil, a NullCache is used (caching disabled); a nil logger
// discards everything.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}
	return &Runner{Cache: c, Logger: logger}
}

// Convert reads input and writes one slide per record to output, using
// default options and no image cache. The run log is appended to
// [DefaultLogFile] in the output directory.
func Convert(ctx context.Context, input, output string) error {
	opts := Options{Input: input, Output: output}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	f, err := OpenLogFile(LogFilePath(output, ""))
	if err != nil {
		return err
	}
	defer f.Close()

	logger := NewRunLogger(f, log.InfoLevel)
	opts.Logger = logger
	_, err = NewRunner(nil, logger).Execute(ctx, opts)
	if err != nil {
		logger.Error("run failed", "run", opts.RunID, "err", err)
	}
	return err
}

// Execute runs the complete load → build → persist pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger.With("run", opts.RunID)
	opts.Logger = logger

	result := &Result{RunID: opts.RunID}

	// Stage 1: Load
	loadStart := time.Now()
	recs, err := r.Load(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Records = len(recs)
	logger.Info("loaded records", "input", opts.Input, "records", len(recs), "duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	doc, err := r.Build(ctx, recs, opts, result)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Slides = len(doc.Slides)
	logger.Info("built slides",
		"slides", result.Stats.Slides,
		"images", result.Stats.ImagesEmbedded,
		"image_failures", result.Stats.ImagesFailed,
		"duration", result.Stats.BuildTime)

	// Stage 3: Persist
	persistStart := time.Now()
	n, err := r.Persist(ctx, doc, opts.Output)
	if err != nil {
		return nil, err
	}
	result.Stats.Bytes = n
	result.Stats.PersistTime = time.Since(persistStart)
	logger.Info("wrote presentation", "output", opts.Output, "bytes", n, "duration", result.Stats.PersistTime)

	return result, nil
}

// Load reads and validates every record of the input file.
func (r *Runner) Load(ctx context.Context, path string) ([]*record.Influencer, error) {
	hooks := observability.Generation()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	recs, err := io.ImportRecords(path)
	if err == nil && len(recs) == 0 {
		err = errors.New(errors.ErrCodeInvalidInput, "%s contains no records", path)
	}
	hooks.OnLoadComplete(ctx, path, len(recs), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return recs, nil
}

// Build renders one slide per record onto a new document. Image failures
// are recorded in res and never abort the run; a canceled context does.
func (r *Runner) Build(ctx context.Context, recs []*record.Influencer, opts Options, res *Result) (*deck.Document, error) {
	if res == nil {
		res = &Result{}
	}
	fetcher := opts.Images
	if fetcher == nil {
		fetcher = r.imageClient(opts)
	}

	doc := deck.New(opts.Title)
	doc.Creator = DefaultCreator
	doc.RunID = opts.RunID

	hooks := observability.Generation()
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build: %w", err)
		}
		hooks.OnRecordStart(ctx, rec.Index, rec.Name)
		start := time.Now()

		b := slides.New(doc.AddSlide(), rec,
			slides.WithImageFetcher(fetcher),
			slides.WithLogger(opts.Logger),
			slides.WithFontSize(opts.FontSize),
		)
		rep := b.Build(ctx)

		res.Stats.ChartsSkipped += len(rep.SkippedCharts)
		switch {
		case rep.ImageEmbedded:
			res.Stats.ImagesEmbedded++
		case rep.ImageAttempted:
			res.Stats.ImagesFailed++
			res.Failures = append(res.Failures, ImageFailure{
				Record: rec.Index,
				Name:   rec.Name,
				URL:    rec.ProfileImage,
				Err:    rep.ImageErr,
			})
		}
		hooks.OnRecordComplete(ctx, rec.Index, rec.Name, time.Since(start))
	}
	return doc, nil
}

// Persist encodes doc and writes it to path, returning the byte count.
func (r *Runner) Persist(ctx context.Context, doc *deck.Document, path string) (int64, error) {
	hooks := observability.Generation()
	hooks.OnPersistStart(ctx, path, len(doc.Slides))
	start := time.Now()

	n, err := io.ExportPPTX(doc, path)
	hooks.OnPersistComplete(ctx, path, int(n), time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("persist: %w", err)
	}
	return n, nil
}

func (r *Runner) imageClient(opts Options) *imagefetch.Client {
	c := r.Cache
	if opts.NoCache {
		c = cache.NewNullCache()
	}
	return imagefetch.NewClient(
		imagefetch.WithTimeout(opts.ImageTimeout),
		imagefetch.WithCache(c, opts.CacheTTL),
	)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
