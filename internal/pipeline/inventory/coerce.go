package inventory

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// maxMagnitude bounds the decimal exponent of a parsed cell. Anything past
// it is outside float64 range, so it is 0 before any conversion work.
const maxMagnitude = 330

// toNumber parses a cell leniently: blanks, text such as "N/A" and values
// that do not fit a finite float64 all become 0.
func toNumber(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	if mag := int64(d.Exponent()) + int64(d.NumDigits()); mag > maxMagnitude || mag < -maxMagnitude {
		return 0
	}
	f, _ := d.Float64()
	return finite(f)
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// formatNumber renders a value in the shortest form that parses back to the
// same float64. Non-finite values render as 0.
func formatNumber(v float64) string {
	return decimal.NewFromFloat(finite(v)).String()
}
