// Package surprice provides the collector for the Surprice stations API,
// a single JSON document listing every rental station.
package surprice

import (
	"context"
	"strings"

	"github.com/carvoy/locmerge/internal/transport"
	"github.com/carvoy/locmerge/pkg/errors"
	"github.com/carvoy/locmerge/pkg/suppliers"
)

// DefaultBaseURL is the production stations endpoint.
const DefaultBaseURL = "https://api.surpricenow.com/stations"

type stationsResponse struct {
	Stations []station `json:"stations"`
}

type station struct {
	Code    string `json:"code"`
	ExtCode string `json:"extCode"`
	Name    string `json:"name"`
	Type    string `json:"stationType"`
	Address struct {
		Street      string `json:"street"`
		City        string `json:"city"`
		Country     string `json:"country"`
		Coordinates struct {
			Lat string `json:"lat"`
			Lon string `json:"lon"`
		} `json:"coordinates"`
	} `json:"address"`
	Returns []string `json:"returnStations"`
}

// Collector fetches the Surprice station list.
type Collector struct {
	baseURL string
	client  *transport.Client
}

// Option configures a Collector.
type Option func(*Collector)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Collector) { c.baseURL = baseURL }
}

// New creates a Surprice collector.
func New(opts ...Option) *Collector {
	c := &Collector{
		baseURL: DefaultBaseURL,
		client:  transport.New("surprice"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the supplier tag.
func (c *Collector) Name() string { return "surprice" }

// Collect fetches and converts the full station list.
func (c *Collector) Collect(ctx context.Context) ([]suppliers.RawLocation, error) {
	var resp stationsResponse
	if err := c.client.GetJSON(ctx, c.baseURL, nil, &resp); err != nil {
		return nil, errors.NewCollectorError("surprice", "station list fetch", err)
	}

	locations := make([]suppliers.RawLocation, 0, len(resp.Stations))
	for _, s := range resp.Stations {
		// Station codes double as IATA codes for airport desks.
		iata := ""
		if len(s.Code) == 3 && strings.EqualFold(s.Type, "airport") {
			iata = strings.ToUpper(s.Code)
		}

		nativeID := s.Code
		if s.ExtCode != "" {
			nativeID = s.Code + "-" + s.ExtCode
		}

		locations = append(locations, suppliers.RawLocation{
			Supplier:   "surprice",
			NativeID:   nativeID,
			Label:      s.Name,
			Address:    s.Address.Street,
			City:       s.Address.City,
			Country:    s.Address.Country,
			Latitude:   s.Address.Coordinates.Lat,
			Longitude:  s.Address.Coordinates.Lon,
			RawType:    s.Type,
			IATA:       iata,
			DropoffIDs: s.Returns,
		})
	}
	return locations, nil
}
