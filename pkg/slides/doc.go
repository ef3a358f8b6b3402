// Package slides lays out one influencer record on one slide.
//
// A [Builder] binds a [deck.Slide] to a [record.Influencer] and exposes one
// method per slide section: profile, account details, metrics, H-index,
// four charts, Instagram and YouTube tables, and the footer. [Builder.Build]
// runs them all in the fixed order used for every slide.
//
// Positions and sizes are fixed and expressed in centimetres (see layout.go).
// Every table is normalized to a single font size after it is filled.
//
// The only fallible step is the profile image download. Its failure is logged
// and recorded in the [Report]; the slide is still produced without a
// picture.
package slides
