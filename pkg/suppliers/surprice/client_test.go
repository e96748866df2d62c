package surprice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationsJSON = `{
	"stations": [
		{
			"code": "CTA",
			"extCode": "01",
			"name": "Catania Airport",
			"stationType": "airport",
			"address": {
				"street": "Via Fontanarossa",
				"city": "Catania",
				"country": "Italy",
				"coordinates": {"lat": "37.4669", "lon": "15.0663"}
			},
			"returnStations": ["CTA-01", "PMO-01"]
		},
		{
			"code": "TAO",
			"extCode": "",
			"name": "Taormina Office",
			"stationType": "downtown",
			"address": {
				"city": "Taormina",
				"country": "Italy",
				"coordinates": {"lat": "", "lon": ""}
			}
		}
	]
}`

func TestCollect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(stationsJSON))
	}))
	defer server.Close()

	c := New(WithBaseURL(server.URL))
	locations, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 2)

	first := locations[0]
	assert.Equal(t, "surprice", first.Supplier)
	assert.Equal(t, "CTA-01", first.NativeID)
	assert.Equal(t, "Catania Airport", first.Label)
	assert.Equal(t, "CTA", first.IATA)
	assert.Equal(t, "airport", first.RawType)
	assert.Equal(t, []string{"CTA-01", "PMO-01"}, first.DropoffIDs)

	// Non-airport stations get no IATA code even with a 3-letter code.
	second := locations[1]
	assert.Equal(t, "TAO", second.NativeID)
	assert.Empty(t, second.IATA)
	assert.Empty(t, second.Latitude)
}

func TestCollectFeedDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(WithBaseURL(server.URL))
	locations, err := c.Collect(context.Background())
	assert.Error(t, err)
	assert.Empty(t, locations)
}
