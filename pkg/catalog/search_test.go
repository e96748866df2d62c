package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture() []Location {
	cta := "CTA"
	return []Location{
		{
			Name:         "Catania Airport",
			City:         "Catania",
			Country:      "Italy",
			LocationType: "airport",
			IATA:         &cta,
			Aliases:      []string{"Catania Fontanarossa Airport"},
			Providers: []ProviderMapping{
				{Provider: "greenmotion", PickupID: "10", OriginalName: "Catania Fontanarossa Airport"},
				{Provider: "sicilybycar", PickupID: "CT01", OriginalName: "Catania Fontanarossa Airport"},
			},
		},
		{
			Name:         "Catania Downtown",
			City:         "Catania",
			Country:      "Italy",
			LocationType: "downtown",
		},
		{
			Name:         "Malaga Airport",
			City:         "Malaga",
			Country:      "Spain",
			LocationType: "airport",
			Providers: []ProviderMapping{
				{Provider: "recordgo", PickupID: "AGP1", OriginalName: "Malaga Airport"},
			},
		},
	}
}

func TestSearchIATABeatsEverything(t *testing.T) {
	results := Search(searchFixture(), "CTA", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, "Catania Airport", results[0].Name)
}

func TestSearchExactNameBeatsPrefix(t *testing.T) {
	results := Search(searchFixture(), "Malaga Airport", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, "Malaga Airport", results[0].Name)
}

func TestSearchCityReturnsAllCityLocations(t *testing.T) {
	results := Search(searchFixture(), "catania", 10)
	require.Len(t, results, 2)
	// The airport carries two providers, so its boost ranks it first.
	assert.Equal(t, "Catania Airport", results[0].Name)
}

func TestSearchDiacriticsFolded(t *testing.T) {
	results := Search(searchFixture(), "Málaga", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, "Malaga Airport", results[0].Name)
}

func TestSearchCountryMatch(t *testing.T) {
	results := Search(searchFixture(), "spain", 10)
	require.Len(t, results, 1)
	assert.Equal(t, "Malaga Airport", results[0].Name)
}

func TestSearchShortTermRejected(t *testing.T) {
	assert.Empty(t, Search(searchFixture(), "c", 10))
	assert.Empty(t, Search(searchFixture(), " ", 10))
}

func TestSearchLimit(t *testing.T) {
	results := Search(searchFixture(), "catania", 1)
	assert.Len(t, results, 1)
}

func TestByProviderID(t *testing.T) {
	loc, ok := ByProviderID(searchFixture(), "sicilybycar", "CT01")
	require.True(t, ok)
	assert.Equal(t, "Catania Airport", loc.Name)

	_, ok = ByProviderID(searchFixture(), "sicilybycar", "missing")
	assert.False(t, ok)
}

func TestByUnifiedID(t *testing.T) {
	fixture := searchFixture()
	fixture[0].UnifiedLocationID = ID(fixture[0].Name)

	loc, ok := ByUnifiedID(fixture, ID("Catania Airport"))
	require.True(t, ok)
	assert.Equal(t, "Catania Airport", loc.Name)

	_, ok = ByUnifiedID(fixture, 42)
	assert.False(t, ok)
}
