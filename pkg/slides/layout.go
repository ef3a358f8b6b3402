package slides

import "github.com/influencerdeck/influencerdeck/pkg/deck"

func cmRect(x, y, w, h float64) deck.Rect {
	return deck.Rect{X: deck.Cm(x), Y: deck.Cm(y), W: deck.Cm(w), H: deck.Cm(h)}
}

// Slide regions.
var (
	profileRect        = cmRect(0.81, 2, 11, 2.73)
	accountDetailsRect = cmRect(0.81, 6.06, 10.17, 3.73)
	metricsRect        = cmRect(0.81, 11.60, 10.17, 2.73)
	hIndexRect         = cmRect(0.81, 15.99, 3, 1)
	genderRect         = cmRect(10.46, 0.44, 7, 6)
	accountTypeRect    = cmRect(18, 0.44, 7.9, 6.9)
	ageRect            = cmRect(10.46, 8.44, 7, 6)
	interestRect       = cmRect(18, 8.44, 7, 6)
	instagramRect      = cmRect(10.46, 14.60, 8, 3)
	youTubeRect        = cmRect(18, 14.60, 8, 3)
	footerRect         = cmRect(0.05, 18, 18, 1)

	// Top-left corner of the profile picture; its size comes from the image.
	pictureX, pictureY = deck.Cm(0.81), deck.Cm(0.05)
)

const (
	// DefaultFontSize is the point size applied to every table cell.
	DefaultFontSize = 12

	// TopInterestCount is how many interests the interest chart shows.
	TopInterestCount = 5

	seriesName     = "Series 1"
	hIndexFontName = "Calibri"
	hIndexFontSize = 18
	hIndexColor    = "FF7F50"

	footerText = "H-Index is a measure of productivity (tweets) " +
		"& engagement (retweets). An influencer has an " +
		"index of H when they have posted H tweets that " +
		"has received at least H retweets"
)
