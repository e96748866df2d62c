package catalog

import (
	"sort"
	"strings"

	"github.com/carvoy/locmerge/pkg/normalize"
)

// Search match scores, highest priority first. An IATA hit outranks
// everything because the user typed an airport code on purpose.
const (
	scoreIATAExact    = 100
	scoreNameExact    = 90
	scoreNamePrefix   = 80
	scoreCityExact    = 70
	scoreCityPrefix   = 60
	scoreNameContains = 50
	scoreCityContains = 40
	scoreAlias        = 30
	scoreProviderName = 25
	scoreCountry      = 20

	maxProviderBoost = 5
	maxSearchLimit   = 50
)

// Search scores locations against a free-text term and returns the best
// matches, at most limit (capped at 50). Terms shorter than two characters
// return nothing.
func Search(locations []Location, term string, limit int) []Location {
	if len(strings.TrimSpace(term)) < 2 {
		return nil
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	needle := normalize.MatchKey(term)
	if needle == "" {
		return nil
	}

	type scored struct {
		location Location
		score    int
	}
	var results []scored

	for _, loc := range locations {
		name := normalize.MatchKey(loc.Name)
		city := normalize.MatchKey(loc.City)
		country := normalize.MatchKey(loc.Country)

		var iata string
		if loc.IATA != nil {
			iata = normalize.MatchKey(*loc.IATA)
		}

		score := 0
		switch {
		case iata != "" && iata == needle:
			score = scoreIATAExact
		case name == needle:
			score = scoreNameExact
		case strings.HasPrefix(name, needle):
			score = scoreNamePrefix
		case city == needle:
			score = scoreCityExact
		case strings.HasPrefix(city, needle):
			score = scoreCityPrefix
		case strings.Contains(name, needle):
			score = scoreNameContains
		case strings.Contains(city, needle):
			score = scoreCityContains
		default:
			for _, alias := range loc.Aliases {
				if strings.Contains(normalize.MatchKey(alias), needle) {
					score = scoreAlias
					break
				}
			}
			if score == 0 {
				for _, p := range loc.Providers {
					if p.OriginalName != "" && strings.Contains(normalize.MatchKey(p.OriginalName), needle) {
						score = scoreProviderName
						break
					}
				}
			}
			if score == 0 && country != "" && strings.Contains(country, needle) {
				score = scoreCountry
			}
		}

		if score > 0 {
			// Locations covered by more suppliers are more useful results.
			boost := len(loc.Providers)
			if boost > maxProviderBoost {
				boost = maxProviderBoost
			}
			results = append(results, scored{location: loc, score: score + boost})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].location.Name < results[j].location.Name
	})

	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]Location, len(results))
	for i, r := range results {
		out[i] = r.location
	}
	return out
}

// ByProviderID finds the unified location carrying a provider mapping for
// the given supplier tag and pickup id.
func ByProviderID(locations []Location, provider, pickupID string) (Location, bool) {
	for _, loc := range locations {
		for _, p := range loc.Providers {
			if p.Provider == provider && p.PickupID == pickupID {
				return loc, true
			}
		}
	}
	return Location{}, false
}

// ByUnifiedID finds a location by its unified id.
func ByUnifiedID(locations []Location, id int64) (Location, bool) {
	for _, loc := range locations {
		if loc.UnifiedLocationID == id {
			return loc, true
		}
	}
	return Location{}, false
}
