package inventory

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders a money amount as "$1,234.50".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatPercentage renders a value already in percent units as "12.3%".
func FormatPercentage(v float64) string {
	return humanize.FormatFloat("####.#", v) + "%"
}

// FormatNumber renders a count rounded half to even to a whole number with
// thousands separators.
func FormatNumber(v float64) string {
	return humanize.FormatFloat("#,###.", math.RoundToEven(v))
}

// FormatRatio renders a plain ratio with two decimals.
func FormatRatio(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
