package pricing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders whole US dollars for display, e.g. "$12,500".
func FormatCurrency(v float64) string {
	whole := int64(math.Round(v))
	if whole < 0 {
		return "-$" + humanize.Comma(-whole)
	}
	return "$" + humanize.Comma(whole)
}

// FormatCompact abbreviates large counts: "1.5M" above a million, "12K"
// above a thousand, the plain number otherwise.
func FormatCompact(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fK", n/1_000)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}
