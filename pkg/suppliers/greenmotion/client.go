// Package greenmotion provides the collector for the GreenMotion locations
// API. The same API serves the U-SAVE brand under a different fleet id, so
// one client covers both suppliers.
//
// The feed is paginated in three steps: GetCountryList enumerates serviced
// countries, GetServiceAreas lists location ids per country and
// GetLocationInfo returns the detail record per location.
package greenmotion

import (
	"context"
	"net/url"

	"github.com/carvoy/locmerge/internal/transport"
	"github.com/carvoy/locmerge/pkg/errors"
	"github.com/carvoy/locmerge/pkg/logging"
	"github.com/carvoy/locmerge/pkg/suppliers"
)

// DefaultBaseURL is the production locations endpoint.
const DefaultBaseURL = "https://gmvehiclefeeds.com/api/locations"

type countryListResponse struct {
	Countries []struct {
		ID   string `xml:"countryID"`
		Name string `xml:"countryName"`
	} `xml:"country"`
}

type serviceAreasResponse struct {
	ServiceAreas []struct {
		LocationID string `xml:"locationID"`
		Name       string `xml:"name"`
	} `xml:"servicearea"`
}

type locationInfoResponse struct {
	Info *struct {
		LocationID string `xml:"location_id"`
		Name       string `xml:"location_name"`
		Address    string `xml:"address_1"`
		City       string `xml:"address_city"`
		County     string `xml:"address_county"`
		Postcode   string `xml:"address_postcode"`
		Latitude   string `xml:"latitude"`
		Longitude  string `xml:"longitude"`
		IATA       string `xml:"iata_code"`
		Airport    string `xml:"airport"`
	} `xml:"location_info"`
}

// Collector fetches locations from the GreenMotion feed.
type Collector struct {
	supplier string
	baseURL  string
	fleetID  string
	client   *transport.Client
}

// Option configures a Collector.
type Option func(*Collector)

// WithBaseURL overrides the API endpoint, used by tests and staging runs.
func WithBaseURL(baseURL string) Option {
	return func(c *Collector) { c.baseURL = baseURL }
}

// New creates a GreenMotion collector for the given supplier brand
// ("greenmotion" or "usave") and fleet id.
func New(supplier, fleetID string, opts ...Option) *Collector {
	c := &Collector{
		supplier: supplier,
		baseURL:  DefaultBaseURL,
		fleetID:  fleetID,
		client:   transport.New(supplier),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the supplier tag.
func (c *Collector) Name() string { return c.supplier }

// Collect walks the country list, the service areas of each country and the
// detail record of each service area. Records gathered before an error are
// returned alongside it so a mid-pagination outage only truncates coverage.
func (c *Collector) Collect(ctx context.Context) ([]suppliers.RawLocation, error) {
	var countries countryListResponse
	if err := c.client.GetXML(ctx, c.baseURL, c.query("GetCountryList", nil), &countries); err != nil {
		return nil, errors.NewCollectorError(c.supplier, "country list fetch", err)
	}
	if len(countries.Countries) == 0 {
		return nil, errors.NewCollectorError(c.supplier, "country list empty", errors.ErrNotFound)
	}

	log := logging.With().Str("supplier", c.supplier).Logger()
	var locations []suppliers.RawLocation

	for _, country := range countries.Countries {
		if country.ID == "" || country.Name == "" {
			continue
		}

		var areas serviceAreasResponse
		err := c.client.GetXML(ctx, c.baseURL, c.query("GetServiceAreas", url.Values{"countryID": {country.ID}}), &areas)
		if err != nil {
			if ctx.Err() != nil {
				return locations, errors.NewCollectorError(c.supplier, "service area fetch", err)
			}
			log.Warn().Err(err).Str("country", country.Name).Msg("Skipping country, service area fetch failed")
			continue
		}

		for _, area := range areas.ServiceAreas {
			if area.LocationID == "" {
				log.Warn().Str("country", country.Name).Str("area", area.Name).Msg("Skipping service area without location id")
				continue
			}

			var detail locationInfoResponse
			err := c.client.GetXML(ctx, c.baseURL, c.query("GetLocationInfo", url.Values{"locationID": {area.LocationID}}), &detail)
			if err != nil {
				if ctx.Err() != nil {
					return locations, errors.NewCollectorError(c.supplier, "location info fetch", err)
				}
				log.Warn().Err(err).Str("location_id", area.LocationID).Msg("Skipping location, detail fetch failed")
				continue
			}
			if detail.Info == nil {
				log.Warn().Str("location_id", area.LocationID).Msg("Location info response missing location_info node")
				continue
			}

			info := detail.Info
			nativeID := info.LocationID
			if nativeID == "" {
				nativeID = area.LocationID
			}
			label := info.Name
			if label == "" {
				label = area.Name
			}

			locations = append(locations, suppliers.RawLocation{
				Supplier:    c.supplier,
				NativeID:    nativeID,
				Label:       label,
				Address:     info.Address,
				City:        info.City,
				State:       info.County,
				Country:     country.Name,
				Latitude:    info.Latitude,
				Longitude:   info.Longitude,
				IATA:        info.IATA,
				AirportFlag: info.Airport,
			})
		}
	}

	return locations, nil
}

// query builds the action query for the locations endpoint.
func (c *Collector) query(action string, extra url.Values) url.Values {
	q := url.Values{"action": {action}}
	if c.fleetID != "" {
		q.Set("fleet_id", c.fleetID)
	}
	for key, values := range extra {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	return q
}
