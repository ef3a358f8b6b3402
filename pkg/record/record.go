// Package record defines the typed influencer row consumed by the slide builder.
//
// Rows arrive from a spreadsheet as loosely typed cells keyed by column name.
// [Parse] validates the fixed column contract once, at load time, and produces
// [Influencer] values whose fields are plain Go types. Numeric fields are
// always finite, except for interest scores, which keep NaN to mark a missing
// value so that ranking can apply its own substitution rule.
//
// # Column contract
//
// Required text: twitter_name. Optional text: twitter_location,
// twitter_time_zone, twitter_created_at, twitter_profile_image.
//
// Required numbers must be present in the header and non-empty in every row.
// Optional numbers (age groups, YouTube metrics, interests) may be absent from
// the header entirely; empty or NaN cells read as zero.
package record

// Age group labels in display order.
var AgeGroups = [8]string{"0-9", "10-17", "18-24", "25-34", "35-44", "45-54", "55-64", "65+"}

// Interest category names in their canonical column order. Ties in ranking
// are broken by this order.
var Interests = [21]string{
	"animals & pets", "automotive",
	"beauty/health & fitness",
	"books", "business",
	"environment", "family & parenting",
	"fashion", "fine arts",
	"food & drinks", "games",
	"movies", "music",
	"photo & video", "politics",
	"science", "shopping",
	"sports", "technology",
	"travel", "tv",
}

// Influencer is one validated input row.
type Influencer struct {
	// Index is the 1-based position of the row in the input, excluding the header.
	Index int

	Name         string
	Location     string
	TimeZone     string
	CreatedAt    string
	ProfileImage string

	Followers float64
	HIndex    float64

	AverageReach      float64
	PositiveSentiment float64
	NegativeSentiment float64
	AverageImpact     float64

	Male   float64
	Female float64

	Organisational float64
	Individuals    float64

	InstagramFollowers float64
	InstagramPosts     float64

	YouTube YouTube

	// Ages holds audience shares per [AgeGroups] entry.
	Ages [8]float64

	// InterestScores holds one score per [Interests] entry; NaN marks a missing value.
	InterestScores [21]float64
}

// YouTube holds the channel metrics. When ChannelVideos is zero the per-video
// averages are shown instead of the channel aggregates.
type YouTube struct {
	AvgComments float64
	AvgDislikes float64
	AvgLikes    float64
	AvgViews    float64

	ChannelVideos   float64
	ChannelComments float64
	ChannelViews    float64
}

// HasChannel reports whether the channel aggregate metrics apply.
func (y YouTube) HasChannel() bool {
	return y.ChannelVideos != 0
}
