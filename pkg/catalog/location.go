// Package catalog defines the unified location record published to the
// booking search frontend and the atomic file publication that keeps
// readers from ever observing a partial catalog.
package catalog

import (
	"hash/crc32"
	"strings"
)

// ProviderMapping links a unified location back to one supplier's native
// location record.
type ProviderMapping struct {
	Provider     string   `json:"provider"`
	PickupID     string   `json:"pickup_id"`
	OriginalName string   `json:"original_name"`
	Dropoffs     []string `json:"dropoffs"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// Location is the canonical, deduplicated place record exposed to the
// booking frontend. The whole catalog is rebuilt from scratch every run;
// records are never patched in place.
type Location struct {
	UnifiedLocationID int64             `json:"unified_location_id"`
	Name              string            `json:"name"`
	Aliases           []string          `json:"aliases"`
	City              string            `json:"city"`
	Country           string            `json:"country"`
	Latitude          float64           `json:"latitude"`
	Longitude         float64           `json:"longitude"`
	LocationType      string            `json:"location_type"`
	IATA              *string           `json:"iata"`
	Providers         []ProviderMapping `json:"providers"`
	OurLocationID     *string           `json:"our_location_id"`
}

// ID computes the deterministic unified location id for a display name.
// The id is stable across runs as long as the name text is unchanged, so
// frontend references keep resolving between catalog rebuilds.
func ID(name string) int64 {
	return int64(crc32.ChecksumIEEE([]byte(strings.ToLower(name))))
}
