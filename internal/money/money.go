// Package money provides integer cent arithmetic for rule evaluation.
// All monetary amounts in the system are int64 cents; keeping percentage
// math in integers avoids binary-float rounding surprises at cent precision.
package money

import (
	"math"
	"strconv"
)

// PercentOf returns pct percent of amount in cents, rounded half-up.
// The percentage is first snapped to basis points (two decimal places),
// matching the precision rules are stored with, so the whole computation
// stays in integers. The amount is split before multiplying so the result
// is exact over the full int64 range: with pct capped at 100 the partial
// products never overflow.
func PercentOf(amount int64, pct float64) int64 {
	if amount <= 0 || pct <= 0 {
		return 0
	}
	bp := int64(math.Round(pct * 100))
	if bp <= 0 {
		return 0
	}
	whole := amount / 10000
	rem := amount % 10000
	return whole*bp + (rem*bp+5000)/10000
}

// FormatCents renders cents as a plain decimal string with two places,
// used in log lines.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
