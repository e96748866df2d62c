// Package geo parses the free-text coordinate encodings found in supplier
// feeds and resolves them to decimal degrees. Feeds deliver coordinates as
// plain decimals, DMS with hemisphere letters, WKT-like POINT strings and
// occasionally degenerate zeros; everything funnels through Parse and the
// Valid gate before a coordinate participates in averaging.
package geo

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// dmsRe matches one DMS triple with an optional trailing hemisphere
	// letter after glyph normalization, e.g. "41D 48M 3.6S N".
	dmsRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*D\s*(\d+(?:\.\d+)?)\s*M\s*(\d+(?:\.\d+)?)\s*S\s*([NSEW]?)`)

	numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

	// glyphReplacer rewrites the exotic degree/minute/second glyphs and
	// non-ASCII minus signs seen in feeds to the ASCII tokens the DMS
	// grammar expects.
	glyphReplacer = strings.NewReplacer(
		"°", "D ",
		"º", "D ",
		"˚", "D ",
		"′", "M ",
		"’", "M ",
		"'", "M ",
		"″", "S ",
		"”", "S ",
		`"`, "S ",
		"−", "-",
		"–", "-",
		"—", "-",
	)
)

// Parse converts a free-text coordinate string into decimal degrees.
// It returns (0, 0) when nothing parses; callers must gate on Valid before
// trusting the result.
func Parse(value string) (lat, lng float64) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, 0
	}
	normalized := glyphReplacer.Replace(value)

	if lat, lng, ok := parseDMS(normalized); ok {
		return lat, lng
	}
	return parseNumeric(normalized)
}

// parseDMS handles strings carrying two degree-minute-second triples.
func parseDMS(value string) (lat, lng float64, ok bool) {
	matches := dmsRe.FindAllStringSubmatch(value, 2)
	if len(matches) < 2 {
		return 0, 0, false
	}

	first, letter1 := dmsValue(matches[0])
	second, letter2 := dmsValue(matches[1])

	if letter1 != "" && letter2 != "" {
		// Hemisphere letters on both numbers: assign by letter.
		lat, lng = first, second
		if letter1 == "E" || letter1 == "W" {
			lat, lng = second, first
			letter1, letter2 = letter2, letter1
		}
		if letter1 == "S" {
			lat = -lat
		}
		if letter2 == "W" {
			lng = -lng
		}
		return lat, lng, true
	}

	// Incomplete hemisphere letters: positional assignment, applying
	// whatever letters are present.
	lat, lng = first, second
	if letter1 == "S" || letter1 == "W" {
		lat = -lat
	}
	if letter2 == "W" {
		lng = -lng
	}
	if letter2 == "S" {
		// Historical quirk from one malformed upstream feed: an S on the
		// second number marks it as the latitude. Preserved verbatim for
		// compatibility; do not generalize.
		lat, lng = lng, lat
		lat = -lat
	}
	return lat, lng, true
}

// dmsValue converts one DMS regex match into decimal degrees.
func dmsValue(match []string) (float64, string) {
	deg, _ := strconv.ParseFloat(match[1], 64)
	min, _ := strconv.ParseFloat(match[2], 64)
	sec, _ := strconv.ParseFloat(match[3], 64)
	return deg + min/60 + sec/3600, strings.ToUpper(match[4])
}

// parseNumeric extracts plain numeric tokens and decides their order.
func parseNumeric(value string) (lat, lng float64) {
	tokens := numberRe.FindAllString(value, -1)
	if len(tokens) < 2 {
		return 0, 0
	}

	first, err1 := strconv.ParseFloat(tokens[0], 64)
	second, err2 := strconv.ParseFloat(tokens[1], 64)
	if err1 != nil || err2 != nil {
		return 0, 0
	}

	// WKT POINT stores longitude first.
	if strings.Contains(strings.ToUpper(value), "POINT") {
		return second, first
	}

	// A first number outside latitude range with a plausible second number
	// means the feed swapped the order.
	if math.Abs(first) > 90 && math.Abs(second) <= 90 {
		return second, first
	}

	return first, second
}

// Valid reports whether a parsed coordinate may participate in averaging:
// finite, not exactly (0, 0) and inside [-90, 90] x [-180, 180].
func Valid(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	if lat == 0 && lng == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
