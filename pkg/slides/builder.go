package slides

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/influencerdeck/influencerdeck/pkg/deck"
	"github.com/influencerdeck/influencerdeck/pkg/imagefetch"
	"github.com/influencerdeck/influencerdeck/pkg/record"
)

// ImageFetcher downloads an image into memory.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*imagefetch.Image, error)
}

// Report summarizes what a Builder could not place on its slide.
type Report struct {
	ImageAttempted bool
	ImageEmbedded  bool
	ImageErr       error
	SkippedCharts  []string
}

// Builder renders one record onto one slide.
type Builder struct {
	slide    *deck.Slide
	rec      *record.Influencer
	images   ImageFetcher
	logger   *log.Logger
	fontSize float64

	report Report
}

// Option configures a Builder.
type Option func(*Builder)

// WithImageFetcher sets the fetcher used by [Builder.Profile]. Without one the
// profile picture is skipped.
func WithImageFetcher(f ImageFetcher) Option {
	return func(b *Builder) { b.images = f }
}

// WithLogger sets the logger for skipped content.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithFontSize sets the table font size in points.
func WithFontSize(pt float64) Option {
	return func(b *Builder) {
		if pt > 0 {
			b.fontSize = pt
		}
	}
}

// New returns a Builder that draws rec onto slide.
func New(slide *deck.Slide, rec *record.Influencer, opts ...Option) *Builder {
	b := &Builder{
		slide:    slide,
		rec:      rec,
		logger:   log.New(io.Discard),
		fontSize: DefaultFontSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("record", rec.Index, "handle", rec.Name)
	return b
}

// Report returns what was skipped so far.
func (b *Builder) Report() Report {
	return b.report
}

// Build runs every section in the fixed slide order.
func (b *Builder) Build(ctx context.Context) Report {
	b.AccountDetails()
	b.Metrics()
	b.HIndex()
	b.GenderChart()
	b.AccountTypeChart()
	b.AgeChart()
	b.InterestChart()
	b.InstagramTable()
	b.YouTubeTable()
	b.Profile(ctx)
	b.Footer()
	return b.report
}

func (b *Builder) addTable(t *deck.Table) {
	t.NormalizeFont(b.fontSize)
	b.slide.Add(t)
}

// Profile adds the handle and follower table, then the profile picture if
// it can be downloaded.
func (b *Builder) Profile(ctx context.Context) {
	t := deck.NewTable(profileRect, 2, 2, deck.Cm(5), deck.Cm(3))
	t.SetRow(0, "Handle", b.rec.Name)
	t.SetRow(1, "Followers", FormatCount(b.rec.Followers))
	b.addTable(t)

	url := b.rec.ProfileImage
	if url == "" || b.images == nil {
		return
	}
	b.report.ImageAttempted = true
	img, err := b.images.Fetch(ctx, url)
	if err != nil {
		b.report.ImageErr = err
		b.logger.Warn("failed to extract image", "url", url, "err", err)
		return
	}
	b.slide.Add(&deck.Picture{
		Rect: deck.Rect{X: pictureX, Y: pictureY, W: deck.Px(img.Width), H: deck.Px(img.Height)},
		Data: img.Data,
		MIME: img.MIME,
	})
	b.report.ImageEmbedded = true
	b.logger.Debug("embedded profile image", "mime", img.MIME, "width", img.Width, "height", img.Height)
}

// AccountDetails adds the location, time zone and creation date table.
func (b *Builder) AccountDetails() {
	t := deck.NewTable(accountDetailsRect, 4, 3, deck.Cm(3), deck.Cm(3))
	t.SetRow(0, "", "Account Details", "Channels")
	t.SetRow(1, "Location", b.rec.Location, "Twitter")
	t.SetRow(2, "Time zone", b.rec.TimeZone, "Youtube")
	t.SetRow(3, "Created @", b.rec.CreatedAt, "Instagram")
	b.addTable(t)
}

// Metrics adds the audience reach, sentiment and impact table.
func (b *Builder) Metrics() {
	t := deck.NewTable(metricsRect, 5, 2, deck.Cm(5), deck.Cm(2))
	t.SetRow(0, "Metric", "Score")
	t.SetRow(1, "Average Reach", FormatScore(b.rec.AverageReach))
	t.SetRow(2, "Positive Sentiment(%)", FormatScore(b.rec.PositiveSentiment))
	t.SetRow(3, "Negative Sentiment(%)", FormatScore(b.rec.NegativeSentiment))
	t.SetRow(4, "Average Impact", FormatScore(b.rec.AverageImpact))
	b.addTable(t)
}

// HIndex adds the highlighted H-index label.
func (b *Builder) HIndex() {
	b.slide.Add(deck.NewTextBox(hIndexRect, deck.Run{
		Text: "H-INDEX:" + FormatCount(b.rec.HIndex),
		Font: deck.Font{
			Name:  hIndexFontName,
			Size:  hIndexFontSize,
			Bold:  true,
			Color: hIndexColor,
		},
	}))
}

// GenderChart adds the male/female pie chart.
func (b *Builder) GenderChart() {
	b.pie(genderRect, "Gender Breakdown", "Male", "Female", b.rec.Male, b.rec.Female)
}

// AccountTypeChart adds the organisation/individual pie chart.
func (b *Builder) AccountTypeChart() {
	b.pie(accountTypeRect, "Account Type Distribution", "Organisation", "Individual",
		b.rec.Organisational, b.rec.Individuals)
}

func (b *Builder) pie(r deck.Rect, title, catA, catB string, va, vb float64) {
	pa, pb, ok := Proportions(va, vb)
	if !ok {
		b.report.SkippedCharts = append(b.report.SkippedCharts, title)
		b.logger.Warn("skipping chart with no data", "chart", title)
		return
	}
	c := deck.NewChart(r, deck.ChartPie, title, []string{catA, catB}, []float64{pa, pb})
	c.SeriesName = seriesName
	c.Legend = deck.LegendBottom
	c.LegendOverlay = true
	c.ShowPercent = true
	b.slide.Add(c)
}

// AgeChart adds the audience age column chart.
func (b *Builder) AgeChart() {
	b.column(ageRect, "Age Distribution", record.AgeGroups[:], b.rec.Ages[:])
}

// InterestChart adds the column chart of the top audience interests.
func (b *Builder) InterestChart() {
	top := TopInterests(b.rec.InterestScores[:], TopInterestCount)
	names := make([]string, len(top))
	values := make([]float64, len(top))
	for i, in := range top {
		names[i] = in.Name
		values[i] = in.Score
	}
	b.column(interestRect, "Interest Distribution", names, values)
}

func (b *Builder) column(r deck.Rect, title string, categories []string, values []float64) {
	c := deck.NewChart(r, deck.ChartColumn, title, categories, values)
	c.SeriesName = seriesName
	b.slide.Add(c)
}

// InstagramTable adds the Instagram followers and posts table.
func (b *Builder) InstagramTable() {
	t := deck.NewTable(instagramRect, 3, 2, deck.Cm(5), deck.Cm(2))
	t.SetRow(0, "Instagram Metric", "Score")
	t.SetRow(1, "Followers", FormatScore(b.rec.InstagramFollowers))
	t.SetRow(2, "Posts", FormatScore(b.rec.InstagramPosts))
	b.addTable(t)
}

// YouTubeTable adds the YouTube table: per-video averages when the channel
// has no videos, channel totals otherwise.
func (b *Builder) YouTubeTable() {
	yt := b.rec.YouTube
	var t *deck.Table
	if !yt.HasChannel() {
		t = deck.NewTable(youTubeRect, 5, 2, deck.Cm(5), deck.Cm(2))
		t.SetRow(1, "Average Comments", FormatScore(yt.AvgComments))
		t.SetRow(2, "Average Dislikes", FormatScore(yt.AvgDislikes))
		t.SetRow(3, "Average Likes", FormatScore(yt.AvgLikes))
		t.SetRow(4, "Average Views", FormatScore(yt.AvgViews))
	} else {
		t = deck.NewTable(youTubeRect, 4, 2, deck.Cm(5), deck.Cm(2))
		t.SetRow(1, "Channel Comments", FormatScore(yt.ChannelComments))
		t.SetRow(2, "Channel Videos", FormatScore(yt.ChannelVideos))
		t.SetRow(3, "Channel Views", FormatScore(yt.ChannelViews))
	}
	t.SetRow(0, "Youtube Metric", "Score")
	b.addTable(t)
}

// Footer adds the H-index explanation.
func (b *Builder) Footer() {
	b.slide.Add(deck.NewTextBox(footerRect, deck.Run{Text: footerText}))
}
