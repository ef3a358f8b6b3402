package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/influencerdeck/influencerdeck/pkg/buildinfo"
	"github.com/influencerdeck/influencerdeck/pkg/config"
	"github.com/influencerdeck/influencerdeck/pkg/errors"
	"github.com/influencerdeck/influencerdeck/pkg/observability"
	"github.com/influencerdeck/influencerdeck/pkg/pipeline"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	output       string
	configPath   string
	title        string
	fontSize     float64
	logFile      string
	noLogFile    bool
	noCache      bool
	imageTimeout time.Duration
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate <input.csv|input.xlsx>",
		Short: "Generate a slide deck from an influencer spreadsheet",
		Long: `Generate a PowerPoint deck with one slide per input row.

Rows are validated before anything is written; the first missing or malformed
value aborts the run. Profile pictures that cannot be downloaded are logged
and left off their slide.`,
		Example: `  influencerdeck generate influencers.xlsx -o report.pptx
  influencerdeck generate influencers.csv -o out/report.pptx --no-cache
  influencerdeck generate influencers.csv -o report.pptx --config influencerdeck.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output .pptx file (required)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML configuration file")
	cmd.Flags().StringVar(&opts.title, "title", "", "presentation title")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, fmt.Sprintf("table font size in points (default %d)", pipeline.DefaultFontSize))
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "run log file (default: "+pipeline.DefaultLogFile+" next to the output)")
	cmd.Flags().BoolVar(&opts.noLogFile, "no-log-file", false, "do not write a run log file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the profile image cache")
	cmd.Flags().DurationVar(&opts.imageTimeout, "image-timeout", 0, fmt.Sprintf("profile image download timeout (default %s)", pipeline.DefaultImageTimeout))
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, input string, g generateOpts) error {
	ctx := cmd.Context()

	var cfg *config.Config
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return err
		}
	}

	opts := pipeline.Options{
		Input:        input,
		Output:       g.output,
		Title:        g.title,
		FontSize:     g.fontSize,
		ImageTimeout: g.imageTimeout,
		NoCache:      g.noCache,
		RunID:        uuid.NewString(),
	}
	cfg.Apply(&opts)

	logger := c.Logger
	if path := logFilePath(g, cfg); path != "" {
		f, err := pipeline.OpenLogFile(path)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = pipeline.NewRunLogger(io.MultiWriter(c.errOut, f), c.Logger.GetLevel())
		logger.Debug("writing run log", append([]any{"path", path}, buildinfo.KeyVals()...)...)
	}
	opts.Logger = logger

	hooks := newLogHooks(logger.With("run", opts.RunID))
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	runner, err := c.newRunner(opts.NoCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d slides", result.Stats.Slides))

	printGenerateSummary(opts.Output, result)
	return nil
}

// logFilePath resolves the run log location: flag, then config, then the
// default next to the output. Empty means no log file.
func logFilePath(g generateOpts, cfg *config.Config) string {
	if g.noLogFile {
		return ""
	}
	if g.logFile != "" {
		return g.logFile
	}
	var name string
	if cfg != nil {
		name = cfg.LogFile
	}
	return pipeline.LogFilePath(g.output, name)
}

func printGenerateSummary(output string, res *pipeline.Result) {
	printSuccess("Wrote %d slides", res.Stats.Slides)
	printFile(output)
	printStats(
		statCount{res.Stats.Records, "records"},
		statCount{res.Stats.ImagesEmbedded, "images"},
		statCount{res.Stats.ImagesFailed, "images missing"},
		statCount{res.Stats.ChartsSkipped, "charts skipped"},
	)
	for _, f := range res.Failures {
		printWarning("record %d (%s): no profile picture: %s", f.Record, f.Name, errors.UserMessage(f.Err))
	}
	printDetail("run %s", res.RunID)
}

// logHooks reports image downloads and cache activity at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}
