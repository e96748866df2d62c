package geo

import (
	_ "embed"

	"github.com/goccy/go-yaml"

	"github.com/carvoy/locmerge/pkg/errors"
)

//go:embed data/fallbacks.yaml
var fallbackYAML []byte

// Point is a resolved decimal-degree coordinate pair.
type Point struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// FallbackTable maps supplier tags to known-good coordinates keyed by IATA
// code or supplier-native location id. It backstops records whose feed
// coordinate fails the Valid gate.
type FallbackTable struct {
	Suppliers map[string]map[string]Point `yaml:"suppliers"`
}

// LoadFallbacks parses the embedded fallback coordinate table.
func LoadFallbacks() (*FallbackTable, error) {
	var table FallbackTable
	if err := yaml.Unmarshal(fallbackYAML, &table); err != nil {
		return nil, errors.WrapParse("yaml", "embedded coordinate fallbacks", err)
	}
	return &table, nil
}

// Lookup resolves a fallback coordinate for a supplier record. The IATA code
// is preferred over the supplier-native id. The boolean reports whether a
// valid fallback was found.
func (t *FallbackTable) Lookup(supplier, iata, nativeID string) (Point, bool) {
	if t == nil {
		return Point{}, false
	}
	entries, ok := t.Suppliers[supplier]
	if !ok {
		return Point{}, false
	}
	if iata != "" {
		if p, ok := entries[iata]; ok && Valid(p.Latitude, p.Longitude) {
			return p, true
		}
	}
	if nativeID != "" {
		if p, ok := entries[nativeID]; ok && Valid(p.Latitude, p.Longitude) {
			return p, true
		}
	}
	return Point{}, false
}
