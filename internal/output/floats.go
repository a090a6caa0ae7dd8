// Package output keeps projection output deterministic: scores are rounded
// before encoding so repeated runs over the same input are byte-identical.
package output

import (
	"math"
	"strconv"
	"strings"
)

const scorePrecision = 6

// RoundScore rounds a score to at most 6 decimal places
func RoundScore(f float64) float64 {
	multiplier := math.Pow(10, scorePrecision)
	return math.Round(f*multiplier) / multiplier
}

// FormatScore formats a score with trailing zeros removed
func FormatScore(f float64) string {
	str := strconv.FormatFloat(RoundScore(f), 'f', scorePrecision, 64)
	str = strings.TrimRight(str, "0")
	return strings.TrimRight(str, ".")
}
