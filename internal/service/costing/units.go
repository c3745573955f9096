package costing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// The units multiplier lives inside the free-text description as a trailing
// ". <n> units" marker. That encoding predates this backend and is kept for
// compatibility with stored rows; these helpers are the only place that
// knows about it.
var unitsSuffixRe = regexp.MustCompile(`(?i)\.\s*(\d+(?:\.\d+)?)\s*units?\s*$`)

// StripUnitsSuffix removes a trailing units marker from text and trims the
// remainder. Text without a marker is returned unchanged.
func StripUnitsSuffix(text string) string {
	loc := unitsSuffixRe.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return strings.TrimSpace(text[:loc[0]])
}

// AppendUnitsSuffix strips any existing marker from text and appends
// ". <units> units". Non-positive, NaN or infinite units fall back to 1.
func AppendUnitsSuffix(text string, units float64) string {
	if !(units > 0) || math.IsInf(units, 1) {
		units = 1
	}
	base := StripUnitsSuffix(text)
	return base + ". " + strconv.FormatFloat(units, 'f', -1, 64) + " units"
}

// ParseUnits recovers the units multiplier from a description. Missing or
// unparsable markers default to 1.
func ParseUnits(text string) float64 {
	m := unitsSuffixRe.FindStringSubmatch(text)
	if m == nil {
		return 1
	}
	units, err := strconv.ParseFloat(m[1], 64)
	if err != nil || !(units > 0) {
		return 1
	}
	return units
}
