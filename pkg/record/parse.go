package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/influencerdeck/influencerdeck/pkg/errors"
)

// Table is the raw tabular input: a header row plus data rows of cell text.
type Table struct {
	Header []string
	Rows   [][]string
}

// Parse validates t against the column contract and returns one Influencer
// per data row, in input order.
//
// The first problem found is returned as an *errors.FieldError naming the
// record (1-based, 0 for the header) and the column.
func Parse(t Table) ([]*Influencer, error) {
	cols := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		name := strings.TrimSpace(h)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, errors.Field(0, c, errors.ErrCodeMissingField, nil)
		}
	}

	out := make([]*Influencer, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec, err := parseRow(i+1, cols, row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// rowParser reads typed cells from one row and keeps the first error.
type rowParser struct {
	index int
	cols  map[string]int
	row   []string
	err   error
}

func parseRow(index int, cols map[string]int, row []string) (*Influencer, error) {
	p := &rowParser{index: index, cols: cols, row: row}

	rec := &Influencer{
		Index:        index,
		Name:         p.text(ColName, true),
		Location:     p.text(ColLocation, false),
		TimeZone:     p.text(ColTimeZone, false),
		CreatedAt:    p.text(ColCreatedAt, false),
		ProfileImage: p.text(ColProfileImage, false),

		Followers: p.number(ColFollowers),
		HIndex:    p.number(ColHIndex),

		AverageReach:      p.number(ColAverageReach),
		PositiveSentiment: p.number(ColPositiveSentiment),
		NegativeSentiment: p.number(ColNegativeSentiment),
		AverageImpact:     p.number(ColAverageImpact),

		Male:           p.count(ColMale),
		Female:         p.count(ColFemale),
		Organisational: p.count(ColOrganisational),
		Individuals:    p.count(ColIndividuals),

		InstagramFollowers: p.number(ColInstagramFollowers),
		InstagramPosts:     p.number(ColInstagramPosts),

		YouTube: YouTube{
			AvgComments:     p.optional(ColYTAvgComments),
			AvgDislikes:     p.optional(ColYTAvgDislikes),
			AvgLikes:        p.optional(ColYTAvgLikes),
			AvgViews:        p.optional(ColYTAvgViews),
			ChannelVideos:   p.number(ColYTChannelVideos),
			ChannelComments: p.optional(ColYTChannelComments),
			ChannelViews:    p.optional(ColYTChannelViews),
		},
	}
	for i, c := range AgeColumns {
		rec.Ages[i] = p.optional(c)
	}
	for i, c := range Interests {
		rec.InterestScores[i] = p.score(c)
	}

	if p.err != nil {
		return nil, p.err
	}
	return rec, nil
}

// cell returns the trimmed cell text and whether the column exists.
func (p *rowParser) cell(col string) (string, bool) {
	i, ok := p.cols[col]
	if !ok {
		return "", false
	}
	if i >= len(p.row) {
		return "", true
	}
	return strings.TrimSpace(p.row[i]), true
}

func (p *rowParser) fail(col string, code errors.Code, cause error) {
	if p.err == nil {
		p.err = errors.Field(p.index, col, code, cause)
	}
}

func (p *rowParser) text(col string, required bool) string {
	s, _ := p.cell(col)
	if isNull(s) {
		s = ""
	}
	if required && s == "" {
		p.fail(col, errors.ErrCodeMissingField, nil)
	}
	return s
}

// number reads a required finite number.
func (p *rowParser) number(col string) float64 {
	s, _ := p.cell(col)
	if isNull(s) {
		p.fail(col, errors.ErrCodeMissingField, nil)
		return 0
	}
	v, err := parseFloat(s)
	if err != nil {
		p.fail(col, errors.ErrCodeInvalidField, err)
		return 0
	}
	return v
}

// count reads a required non-negative number used as a pie chart input.
func (p *rowParser) count(col string) float64 {
	v := p.number(col)
	if v < 0 {
		p.fail(col, errors.ErrCodeInvalidField, fmt.Errorf("negative value %v", v))
		return 0
	}
	return v
}

// optional reads a finite number, treating absent columns and empty or NaN cells as zero.
func (p *rowParser) optional(col string) float64 {
	v := p.score(col)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// score reads a finite number, returning NaN for absent columns and empty or NaN cells.
func (p *rowParser) score(col string) float64 {
	s, _ := p.cell(col)
	if isNull(s) {
		return math.NaN()
	}
	v, err := parseFloat(s)
	if err != nil {
		p.fail(col, errors.ErrCodeInvalidField, err)
		return math.NaN()
	}
	return v
}

// isNull reports whether s is one of the spellings spreadsheet exports use for a missing value.
func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "n/a", "#n/a":
		return true
	}
	return false
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
