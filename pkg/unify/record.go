// Package unify implements the reconciliation pipeline: per-record
// enrichment, grouping by normalized (city, type) match key, unified
// record construction and atomic catalog publication.
//
// Suppliers share no common identifier, so identity is inferred from
// normalized city and type text. The inference is intentionally heuristic;
// the pipeline optimizes for a stable, deterministic catalog rather than
// authoritative record linkage.
package unify

import (
	"regexp"
	"strings"

	"github.com/carvoy/locmerge/pkg/classify"
	"github.com/carvoy/locmerge/pkg/errors"
	"github.com/carvoy/locmerge/pkg/geo"
	"github.com/carvoy/locmerge/pkg/normalize"
	"github.com/carvoy/locmerge/pkg/suppliers"
)

// iataLabelRe extracts a bracketed 3-letter code such as "(MXP)" from a
// supplier label.
var iataLabelRe = regexp.MustCompile(`\(([A-Za-z]{3})\)`)

// Record is a supplier location after enrichment: cleaned city, resolved
// type, validated coordinate and the match key used for grouping.
type Record struct {
	Raw suppliers.RawLocation

	City       string
	Type       classify.Type
	Latitude   float64
	Longitude  float64
	CoordValid bool
	IATA       string
	MatchKey   string
}

// Enricher normalizes raw supplier records. It is a pure function of its
// inputs and safe to run per record in parallel.
type Enricher struct {
	fallbacks *geo.FallbackTable
}

// NewEnricher creates an enricher with the given coordinate fallback table.
// A nil table disables fallback resolution.
func NewEnricher(fallbacks *geo.FallbackTable) *Enricher {
	return &Enricher{fallbacks: fallbacks}
}

// Enrich normalizes one raw record. Records missing their native id or
// label are rejected with ErrMalformedRecord; the caller drops them without
// affecting siblings.
func (e *Enricher) Enrich(raw suppliers.RawLocation) (Record, error) {
	if strings.TrimSpace(raw.NativeID) == "" || strings.TrimSpace(raw.Label) == "" {
		return Record{}, errors.ErrMalformedRecord
	}

	locType := classify.Resolve(raw.RawType, raw.AirportFlag, raw.Label, raw.Address)

	city := strings.TrimSpace(raw.City)
	if city == "" {
		city = normalize.CityFromLabel(raw.Label, displayType(locType))
	}
	if city == "" && raw.Path != "" {
		city = normalize.CityFromPath(raw.Path)
	}

	iata := strings.ToUpper(strings.TrimSpace(raw.IATA))
	if iata == "" {
		if m := iataLabelRe.FindStringSubmatch(raw.Label); m != nil {
			iata = strings.ToUpper(m[1])
		}
	}

	lat, lng := geo.Parse(strings.TrimSpace(raw.Latitude + " " + raw.Longitude))
	valid := geo.Valid(lat, lng)
	if !valid {
		if p, ok := e.fallbacks.Lookup(raw.Supplier, iata, raw.NativeID); ok {
			lat, lng = p.Latitude, p.Longitude
			valid = true
		}
	}
	if !valid {
		lat, lng = 0, 0
	}

	return Record{
		Raw:        raw,
		City:       normalize.TitleCase(city),
		Type:       locType,
		Latitude:   lat,
		Longitude:  lng,
		CoordValid: valid,
		IATA:       iata,
		MatchKey:   normalize.MatchKey(city) + "|" + normalize.MatchKey(displayType(locType)),
	}, nil
}

// displayType renders a resolved type for display and keying: the lowercase
// enum value, or empty for unknown so names don't grow an "Unknown" suffix.
func displayType(t classify.Type) string {
	if t == classify.TypeUnknown {
		return ""
	}
	return string(t)
}
