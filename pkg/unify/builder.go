package unify

import (
	"math"
	"strings"

	"github.com/carvoy/locmerge/pkg/catalog"
	"github.com/carvoy/locmerge/pkg/geo"
	"github.com/carvoy/locmerge/pkg/logging"
	"github.com/carvoy/locmerge/pkg/normalize"
	"github.com/carvoy/locmerge/pkg/suppliers"
)

// groupSpreadWarnKm flags groups whose members are suspiciously far apart,
// a sign the (city, type) key lumped two different places together.
const groupSpreadWarnKm = 25.0

// Build merges one group into its canonical catalog record.
func Build(group Group) catalog.Location {
	name := strings.TrimSpace(group.City + " " + normalize.TitleCase(group.Type))
	nameKey := normalize.MatchKey(name)

	loc := catalog.Location{
		UnifiedLocationID: catalog.ID(name),
		Name:              name,
		City:              group.City,
		LocationType:      locationType(group.Type),
	}

	var (
		aliasSeen    = map[string]bool{}
		providerSeen = map[string]bool{}
		iataCodes    []string
		latSum       float64
		lngSum       float64
		coordCount   int
	)

	for _, member := range group.Members {
		// Aliases keep the supplier's original spelling, deduplicated with
		// the same normalization the group key uses.
		labelKey := normalize.MatchKey(member.Raw.Label)
		if labelKey != "" && labelKey != nameKey && !aliasSeen[labelKey] {
			aliasSeen[labelKey] = true
			loc.Aliases = append(loc.Aliases, member.Raw.Label)
		}

		if loc.Country == "" && member.Raw.Country != "" {
			loc.Country = member.Raw.Country
		}

		if member.IATA != "" && !contains(iataCodes, member.IATA) {
			iataCodes = append(iataCodes, member.IATA)
		}

		if member.CoordValid {
			latSum += member.Latitude
			lngSum += member.Longitude
			coordCount++
		}

		if member.Raw.Supplier == suppliers.SourceInternal {
			// Last internal member wins; upstream behavior, kept until
			// verified against real data.
			id := member.Raw.NativeID
			loc.OurLocationID = &id
			continue
		}

		if member.Raw.NativeID == "" {
			continue
		}
		dedupeKey := member.Raw.Supplier + "|" + member.Raw.NativeID
		if providerSeen[dedupeKey] {
			continue
		}
		providerSeen[dedupeKey] = true

		mapping := catalog.ProviderMapping{
			Provider:     member.Raw.Supplier,
			PickupID:     member.Raw.NativeID,
			OriginalName: member.Raw.Label,
			Dropoffs:     member.Raw.DropoffIDs,
		}
		if member.CoordValid {
			lat, lng := member.Latitude, member.Longitude
			mapping.Latitude = &lat
			mapping.Longitude = &lng
		}
		loc.Providers = append(loc.Providers, mapping)
	}

	// IATA only on unanimity across members that resolved one.
	if len(iataCodes) == 1 {
		loc.IATA = &iataCodes[0]
	}

	if coordCount > 0 {
		loc.Latitude = round6(latSum / float64(coordCount))
		loc.Longitude = round6(lngSum / float64(coordCount))
		logGroupSpread(group, loc)
	}

	return loc
}

// BuildAll merges every group in order.
func BuildAll(groups []Group) []catalog.Location {
	locations := make([]catalog.Location, 0, len(groups))
	for _, group := range groups {
		locations = append(locations, Build(group))
	}
	return locations
}

// logGroupSpread reports members far away from the averaged coordinate.
func logGroupSpread(group Group, loc catalog.Location) {
	for _, member := range group.Members {
		if !member.CoordValid {
			continue
		}
		d := geo.Distance(loc.Latitude, loc.Longitude, member.Latitude, member.Longitude)
		if d > groupSpreadWarnKm {
			logging.Warn().
				Str("name", loc.Name).
				Str("supplier", member.Raw.Supplier).
				Str("pickup_id", member.Raw.NativeID).
				Float64("distance_km", math.Round(d)).
				Msg("Group member far from averaged coordinate")
		}
	}
}

// locationType maps the display type back onto the catalog enum.
func locationType(displayType string) string {
	if displayType == "" {
		return "unknown"
	}
	return displayType
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
