// Package suppliers defines the collector contract for rental-location
// feeds and the raw record shape every supplier normalizes into. Suppliers
// with a public locations API get a dedicated client package; the rest ship
// as fixed tables embedded in this package.
package suppliers

import "context"

// Source tag for records originating from the site's own inventory rather
// than a third-party supplier.
const SourceInternal = "internal"

// RawLocation is the immutable collector output for one supplier location.
// Every field is untrusted text straight from the feed; coordinates in
// particular arrive in several ad hoc encodings and must go through the
// geo resolver before use.
type RawLocation struct {
	Supplier    string   `yaml:"supplier" json:"supplier"`
	NativeID    string   `yaml:"native_id" json:"native_id"`
	Label       string   `yaml:"label" json:"label"`
	Address     string   `yaml:"address,omitempty" json:"address,omitempty"`
	City        string   `yaml:"city,omitempty" json:"city,omitempty"`
	State       string   `yaml:"state,omitempty" json:"state,omitempty"`
	Country     string   `yaml:"country,omitempty" json:"country,omitempty"`
	Latitude    string   `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   string   `yaml:"longitude,omitempty" json:"longitude,omitempty"`
	RawType     string   `yaml:"location_type,omitempty" json:"location_type,omitempty"`
	AirportFlag string   `yaml:"airport,omitempty" json:"airport,omitempty"`
	IATA        string   `yaml:"iata,omitempty" json:"iata,omitempty"`
	Path        string   `yaml:"path,omitempty" json:"path,omitempty"`
	DropoffIDs  []string `yaml:"dropoffs,omitempty" json:"dropoffs,omitempty"`
}

// Collector turns a supplier's native feed into raw location records.
// Implementations must return whatever records were gathered before an
// error occurred; the pipeline keeps partial results and logs the error.
type Collector interface {
	// Name returns the supplier tag recorded on every collected location.
	Name() string

	// Collect fetches the supplier's full location list.
	Collect(ctx context.Context) ([]RawLocation, error)
}

// Registry holds collectors in a fixed order. The order is load-bearing:
// first-wins merge policies (country, aliases, provider de-duplication)
// depend on records being folded into groups in the same sequence every run.
type Registry struct {
	collectors []Collector
}

// NewRegistry creates a registry with the given collectors in order.
func NewRegistry(collectors ...Collector) *Registry {
	return &Registry{collectors: collectors}
}

// Add appends a collector to the registry.
func (r *Registry) Add(c Collector) {
	r.collectors = append(r.collectors, c)
}

// List returns the collectors in registration order.
func (r *Registry) List() []Collector {
	out := make([]Collector, len(r.collectors))
	copy(out, r.collectors)
	return out
}

// Len returns the number of registered collectors.
func (r *Registry) Len() int {
	return len(r.collectors)
}
