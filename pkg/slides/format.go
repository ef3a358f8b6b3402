package slides

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/influencerdeck/influencerdeck/pkg/record"
)

// FormatScore renders v with exactly two decimals.
func FormatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatCount renders v in the shortest form that round-trips, without an
// exponent: 1500 -> "1500", 12.5 -> "12.5".
func FormatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Proportions normalizes a and b so they sum to 1. It reports ok=false when
// both are zero or either is negative.
func Proportions(a, b float64) (pa, pb float64, ok bool) {
	if a < 0 || b < 0 {
		return 0, 0, false
	}
	total := a + b
	if total == 0 {
		return 0, 0, false
	}
	return a / total, b / total, true
}

// Interest is a named interest score.
type Interest struct {
	Name  string
	Score float64
}

// TopInterests returns the n highest scores, highest first. scores is indexed
// like [record.Interests]. NaN counts as zero, and equal scores keep their
// original order.
func TopInterests(scores []float64, n int) []Interest {
	count := min(len(scores), len(record.Interests))
	all := make([]Interest, count)
	for i := range count {
		v := scores[i]
		if math.IsNaN(v) {
			v = 0
		}
		all[i] = Interest{Name: record.Interests[i], Score: v}
	}
	slices.SortStableFunc(all, func(a, b Interest) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if n < len(all) {
		all = all[:max(n, 0)]
	}
	return all
}
