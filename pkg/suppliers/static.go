package suppliers

import (
	"context"
	_ "embed"

	"github.com/goccy/go-yaml"

	"github.com/carvoy/locmerge/pkg/errors"
)

//go:embed data/static_locations.yaml
var staticYAML []byte

//go:embed data/internal_locations.yaml
var internalYAML []byte

// staticTables is the decoded shape of the embedded location tables.
type staticTables struct {
	Suppliers []struct {
		Name      string        `yaml:"name"`
		Locations []RawLocation `yaml:"locations"`
	} `yaml:"suppliers"`
}

// StaticCollector serves a fixed, in-code location table for suppliers
// without a public locations API. The table is maintained by hand from
// supplier documentation and booking-flow responses.
type StaticCollector struct {
	name      string
	locations []RawLocation
}

// NewStaticCollector creates a collector over a fixed location list.
// The supplier tag is stamped onto every record.
func NewStaticCollector(name string, locations []RawLocation) *StaticCollector {
	stamped := make([]RawLocation, len(locations))
	for i, loc := range locations {
		loc.Supplier = name
		stamped[i] = loc
	}
	return &StaticCollector{name: name, locations: stamped}
}

// Name returns the supplier tag.
func (c *StaticCollector) Name() string { return c.name }

// Collect returns a copy of the fixed table.
func (c *StaticCollector) Collect(_ context.Context) ([]RawLocation, error) {
	out := make([]RawLocation, len(c.locations))
	copy(out, c.locations)
	return out, nil
}

// LoadStatic builds one StaticCollector per supplier in the embedded
// static table, preserving file order.
func LoadStatic() ([]*StaticCollector, error) {
	var tables staticTables
	if err := yaml.Unmarshal(staticYAML, &tables); err != nil {
		return nil, errors.WrapParse("yaml", "embedded static locations", err)
	}

	collectors := make([]*StaticCollector, 0, len(tables.Suppliers))
	for _, supplier := range tables.Suppliers {
		collectors = append(collectors, NewStaticCollector(supplier.Name, supplier.Locations))
	}
	return collectors, nil
}

// LoadInternal builds the collector for the site's own vehicle locations,
// tagged with SourceInternal so the builder records our_location_id instead
// of a provider mapping.
func LoadInternal() (*StaticCollector, error) {
	var table struct {
		Locations []RawLocation `yaml:"locations"`
	}
	if err := yaml.Unmarshal(internalYAML, &table); err != nil {
		return nil, errors.WrapParse("yaml", "embedded internal locations", err)
	}
	return NewStaticCollector(SourceInternal, table.Locations), nil
}
