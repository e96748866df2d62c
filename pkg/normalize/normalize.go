// Package normalize provides the text cleanup used across the reconciliation
// pipeline. Group keys and alias de-duplication must go through the same
// MatchKey function or grouping becomes inconsistent.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	titleCaser = cases.Title(language.English)

	// foldDiacritics decomposes characters and drops combining marks,
	// so "Málaga" and "Malaga" normalize to the same key.
	foldDiacritics = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	whitespaceRe  = regexp.MustCompile(`\s+`)
	bracketCodeRe = regexp.MustCompile(`\(([A-Za-z]{3})\)`)
)

// TitleCase trims the value, replaces underscores and hyphens with spaces,
// collapses runs of whitespace and capitalizes each word. Empty-safe.
func TitleCase(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	value = strings.NewReplacer("_", " ", "-", " ").Replace(value)
	value = whitespaceRe.ReplaceAllString(value, " ")
	return titleCaser.String(strings.TrimSpace(value))
}

// MatchKey reduces a value to the canonical comparison form: lowercase,
// diacritics folded, everything but letters and digits removed.
func MatchKey(value string) string {
	value = strings.ToLower(value)
	if folded, _, err := transform.String(foldDiacritics, value); err == nil {
		value = folded
	}
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// typeSuffixes maps a location type to the terminal phrases suppliers append
// to a city name. Longer phrases are listed first so they win over their
// substrings when matched end-anchored.
var typeSuffixes = map[string][]string{
	"airport": {
		"international airport",
		"intl airport",
		"aeropuerto",
		"aeroporto",
		"aerodromo",
		"airport",
	},
	"port": {
		"ferry terminal",
		"cruise port",
		"harbour",
		"harbor",
		"puerto",
		"marina",
		"port",
	},
	"train": {
		"railway station",
		"train station",
		"central station",
		"estacion de tren",
		"bahnhof",
		"station",
		"gare",
	},
	"downtown": {
		"city center",
		"city centre",
		"downtown",
		"centro",
	},
}

// allSuffixes is the flattened suffix list tried when the type is unknown,
// ordered longest-first across all types.
var allSuffixes = func() []string {
	var all []string
	for _, suffixes := range typeSuffixes {
		all = append(all, suffixes...)
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if len(all[j]) > len(all[i]) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	return all
}()

// CityFromLabel extracts the city portion of a supplier location label.
// It strips bracketed 3-letter codes such as "(MXP)", discards anything after
// a "/" separator and then removes a known terminal suffix phrase for the
// given type, matching only at the end of the string, case-insensitively.
// When the type is unknown every known suffix is tried. If no suffix matches,
// the cleaned label is returned unchanged.
func CityFromLabel(label, locType string) string {
	s := bracketCodeRe.ReplaceAllString(label, "")
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return ""
	}

	suffixes, ok := typeSuffixes[strings.ToLower(strings.TrimSpace(locType))]
	if !ok {
		suffixes = allSuffixes
	}
	for _, suffix := range suffixes {
		if n := len(s) - len(suffix); n >= 0 && strings.EqualFold(s[n:], suffix) {
			if remainder := strings.TrimSpace(strings.Trim(s[:n], " ,-")); remainder != "" {
				return remainder
			}
		}
	}
	return s
}

// CityFromPath extracts a city from a ">"-delimited category path such as
// "Italy > Sicily > Catania" by returning the first non-empty segment.
func CityFromPath(path string) string {
	for _, segment := range strings.Split(path, ">") {
		if trimmed := strings.TrimSpace(segment); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
