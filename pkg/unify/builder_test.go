package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carvoy/locmerge/pkg/classify"
	"github.com/carvoy/locmerge/pkg/suppliers"
)

func airportRecord(supplier, nativeID, label, city string, lat, lng float64) Record {
	return Record{
		Raw: suppliers.RawLocation{
			Supplier: supplier,
			NativeID: nativeID,
			Label:    label,
			Country:  "Italy",
		},
		City:       city,
		Type:       classify.TypeAirport,
		Latitude:   lat,
		Longitude:  lng,
		CoordValid: lat != 0 || lng != 0,
		MatchKey:   "catania|airport",
	}
}

func TestGroupAllBucketsByMatchKey(t *testing.T) {
	records := []Record{
		airportRecord("greenmotion", "10", "Catania Airport", "Catania", 37.46, 15.06),
		airportRecord("locauto", "404", "Catania Fontanarossa", "Catania", 37.47, 15.07),
		{
			Raw:      suppliers.RawLocation{Supplier: "adobe", NativeID: "9", Label: "Palermo Centro"},
			City:     "Palermo",
			Type:     classify.TypeDowntown,
			MatchKey: "palermo|downtown",
		},
	}

	groups := GroupAll(records)
	require.Len(t, groups, 2)
	assert.Equal(t, "catania|airport", groups[0].Key)
	assert.Len(t, groups[0].Members, 2)
	assert.Equal(t, "palermo|downtown", groups[1].Key)
}

func TestGroupAllDropsEmptyCity(t *testing.T) {
	records := []Record{
		{
			Raw:      suppliers.RawLocation{Supplier: "adobe", NativeID: "1", Label: "Airport"},
			Type:     classify.TypeAirport,
			MatchKey: "|airport",
		},
	}
	assert.Empty(t, GroupAll(records))
}

func TestGroupAllFirstRecordFixesDisplay(t *testing.T) {
	records := []Record{
		airportRecord("greenmotion", "10", "Catania Airport", "Catania", 37.46, 15.06),
		airportRecord("locauto", "404", "CATANIA Airport", "CATANIA", 37.47, 15.07),
	}
	groups := GroupAll(records)
	require.Len(t, groups, 1)
	assert.Equal(t, "Catania", groups[0].City)
	assert.Equal(t, "airport", groups[0].Type)
}

func TestBuildMergesTwoSuppliers(t *testing.T) {
	groups := GroupAll([]Record{
		airportRecord("greenmotion", "10", "Catania Fontanarossa Airport", "Catania", 37.46, 15.06),
		airportRecord("locauto", "404", "Catania Airport (CTA)", "Catania", 37.48, 15.08),
	})
	require.Len(t, groups, 1)

	loc := Build(groups[0])
	assert.Equal(t, "Catania Airport", loc.Name)
	assert.Equal(t, "Catania", loc.City)
	assert.Equal(t, "Italy", loc.Country)
	assert.Equal(t, "airport", loc.LocationType)
	assert.InDelta(t, 37.47, loc.Latitude, 1e-9)
	assert.InDelta(t, 15.07, loc.Longitude, 1e-9)

	require.Len(t, loc.Providers, 2)
	assert.Equal(t, "greenmotion", loc.Providers[0].Provider)
	assert.Equal(t, "10", loc.Providers[0].PickupID)
	assert.Equal(t, "locauto", loc.Providers[1].Provider)
	require.NotNil(t, loc.Providers[1].Latitude)
	assert.InDelta(t, 37.48, *loc.Providers[1].Latitude, 1e-9)

	// Both labels differ from the canonical name, so both become aliases.
	assert.Equal(t, []string{"Catania Fontanarossa Airport", "Catania Airport (CTA)"}, loc.Aliases)
	assert.Nil(t, loc.OurLocationID)
}

func TestBuildAliasSkipsCanonicalSpelling(t *testing.T) {
	groups := GroupAll([]Record{
		airportRecord("greenmotion", "10", "Catania  AIRPORT", "Catania", 37.46, 15.06),
	})
	loc := Build(groups[0])
	// "Catania  AIRPORT" normalizes to the same key as "Catania Airport".
	assert.Empty(t, loc.Aliases)
}

func TestBuildIATAUnanimity(t *testing.T) {
	agree := GroupAll([]Record{
		func() Record {
			r := airportRecord("greenmotion", "10", "Catania A", "Catania", 37.46, 15.06)
			r.IATA = "CTA"
			return r
		}(),
		func() Record {
			r := airportRecord("locauto", "404", "Catania B", "Catania", 37.47, 15.07)
			r.IATA = "CTA"
			return r
		}(),
	})
	loc := Build(agree[0])
	require.NotNil(t, loc.IATA)
	assert.Equal(t, "CTA", *loc.IATA)

	disagree := GroupAll([]Record{
		func() Record {
			r := airportRecord("greenmotion", "10", "Catania A", "Catania", 37.46, 15.06)
			r.IATA = "CTA"
			return r
		}(),
		func() Record {
			r := airportRecord("locauto", "404", "Catania B", "Catania", 37.47, 15.07)
			r.IATA = "PMO"
			return r
		}(),
	})
	assert.Nil(t, Build(disagree[0]).IATA)
}

func TestBuildInternalMemberSetsOurID(t *testing.T) {
	internal := airportRecord(suppliers.SourceInternal, "cat-airport-1", "Catania Airport", "Catania", 37.46, 15.06)
	external := airportRecord("greenmotion", "10", "Catania Fontanarossa", "Catania", 37.47, 15.07)

	groups := GroupAll([]Record{external, internal})
	loc := Build(groups[0])

	require.NotNil(t, loc.OurLocationID)
	assert.Equal(t, "cat-airport-1", *loc.OurLocationID)
	// Internal records never appear as provider mappings.
	require.Len(t, loc.Providers, 1)
	assert.Equal(t, "greenmotion", loc.Providers[0].Provider)
}

func TestBuildDeduplicatesProviderDesks(t *testing.T) {
	groups := GroupAll([]Record{
		airportRecord("greenmotion", "10", "Catania Airport Desk A", "Catania", 37.46, 15.06),
		airportRecord("greenmotion", "10", "Catania Airport Desk B", "Catania", 37.46, 15.06),
	})
	loc := Build(groups[0])
	assert.Len(t, loc.Providers, 1)
}

func TestBuildNoValidCoordinates(t *testing.T) {
	groups := GroupAll([]Record{
		airportRecord("adobe", "X1", "Catania Airport Kiosk", "Catania", 0, 0),
	})
	loc := Build(groups[0])
	assert.Zero(t, loc.Latitude)
	assert.Zero(t, loc.Longitude)
	require.Len(t, loc.Providers, 1)
	assert.Nil(t, loc.Providers[0].Latitude)
	assert.Nil(t, loc.Providers[0].Longitude)
}

func TestBuildStableID(t *testing.T) {
	groups := GroupAll([]Record{
		airportRecord("greenmotion", "10", "Catania Airport", "Catania", 37.46, 15.06),
	})
	first := Build(groups[0])
	second := Build(groups[0])
	assert.Equal(t, first.UnifiedLocationID, second.UnifiedLocationID)
	assert.NotZero(t, first.UnifiedLocationID)
}
