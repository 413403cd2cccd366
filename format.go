package calc

import (
	"math"
	"strconv"
	"strings"
)

// Thresholds outside of which FormatDisplay switches to exponential notation.
const (
	expAbove = 1e12
	expBelow = 1e-6
)

// FormatDisplay formats a result for a calculator display. Infinities and NaN
// display as ∞. Magnitudes of at least 1e12 or below 1e-6 use exponential
// notation with up to ten fractional mantissa digits, like 1.5e+12 or 1e-7.
// Everything else is rounded to twelve significant digits and written as a
// plain decimal without trailing zeros.
func FormatDisplay(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "∞"
	}
	a := math.Abs(v)
	if a >= expAbove || v != 0 && a < expBelow {
		return exponential(v)
	}
	// Round to 12 significant digits, then let the round trip drop whatever
	// digits that leaves insignificant.
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		panic("calc: reparsing formatted number: " + err.Error())
	}
	if r == 0 {
		// Includes -0.
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// exponential formats v as mantissa, e, sign, and exponent without padding.
func exponential(v float64) string {
	s := strconv.FormatFloat(v, 'e', 10, 64)
	k := strings.IndexByte(s, 'e')
	mant, exp := s[:k], s[k+1:]
	if strings.IndexByte(mant, '.') >= 0 {
		mant = strings.TrimRight(mant, "0")
		mant = strings.TrimSuffix(mant, ".")
	}
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
