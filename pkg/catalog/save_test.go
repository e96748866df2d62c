package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLocations() []Location {
	iata := "CTA"
	internal := "internal-catania-airport"
	return []Location{
		{
			UnifiedLocationID: ID("Catania Airport"),
			Name:              "Catania Airport",
			Aliases:           []string{"Catania Fontanarossa Airport"},
			City:              "Catania",
			Country:           "Italy",
			Latitude:          37.466801,
			Longitude:         15.0664,
			LocationType:      "airport",
			IATA:              &iata,
			Providers: []ProviderMapping{
				{Provider: "greenmotion", PickupID: "10", OriginalName: "Catania Fontanarossa Airport"},
			},
			OurLocationID: &internal,
		},
		{
			UnifiedLocationID: ID("Taormina"),
			Name:              "Taormina",
			City:              "Taormina",
			Country:           "Italy",
			LocationType:      "unknown",
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unified_locations.json")

	require.NoError(t, Save(path, sampleLocations()))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Catania Airport", loaded[0].Name)
	require.NotNil(t, loaded[0].IATA)
	assert.Equal(t, "CTA", *loaded[0].IATA)
	assert.Nil(t, loaded[1].IATA)
	assert.Nil(t, loaded[1].OurLocationID)

	// Nil slices are published as empty arrays, not null.
	assert.NotNil(t, loaded[1].Aliases)
	assert.NotNil(t, loaded[1].Providers)
}

func TestSaveReplacesPreviousCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unified_locations.json")

	require.NoError(t, Save(path, sampleLocations()))
	require.NoError(t, Save(path, sampleLocations()[:1]))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	// No temp artifact left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unified_locations.json")
	locations := sampleLocations()

	require.NoError(t, Save(path, locations))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Save(path, locations))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must produce a byte-identical catalog")
}

func TestSaveFailureLeavesPreviousCatalogUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unified_locations.json")

	require.NoError(t, Save(path, sampleLocations()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Make the directory read-only so the temp write fails.
	require.NoError(t, os.Chmod(dir, 0o555))
	defer func() { _ = os.Chmod(dir, 0o755) }()

	err = Save(path, sampleLocations()[:1])
	require.Error(t, err)

	require.NoError(t, os.Chmod(dir, 0o755))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed publish must leave the live catalog byte-identical")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "truncat`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestIDStability(t *testing.T) {
	// crc32 of the lowercased name; pinned so ids stay stable across runs
	// and releases.
	assert.Equal(t, ID("Catania Airport"), ID("catania airport"))
	assert.NotEqual(t, ID("Catania Airport"), ID("Palermo Airport"))
	assert.Equal(t, ID("x"), ID("X"))
}
