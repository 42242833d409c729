package connector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

const vtexSampleResponse = `[
  {
    "productId": "4061",
    "productName": "Taladro Percutor Bosch GSB 550",
    "brand": "Bosch",
    "link": "/taladro-percutor-bosch-gsb-550/p",
    "linkText": "taladro-percutor-bosch-gsb-550",
    "items": [
      {
        "images": [{"imageUrl": "https://promart.vteximg.com.br/taladro.jpg"}],
        "sellers": [{"commertialOffer": {"Price": 249.90}}]
      }
    ]
  },
  {
    "productId": "abc-12",
    "productName": "Taladro Inalámbrico Makita",
    "brand": "Makita",
    "link": "",
    "linkText": "taladro-inalambrico-makita",
    "items": [
      {
        "images": [],
        "sellers": [{"commertialOffer": {"Price": 399.00}}]
      }
    ]
  },
  {
    "productId": "5000",
    "productName": "Lijadora Orbital",
    "brand": "Bosch",
    "items": [
      {
        "images": [],
        "sellers": [{"commertialOffer": {"Price": 189.00}}]
      }
    ]
  },
  {
    "productId": "6000",
    "productName": "Taladro Sin Oferta",
    "brand": "Stanley",
    "items": []
  }
]`

func newVTEXConnector(serverURL string) *VTEX {
	client := NewClient(ClientConfig{RequestsPerSecond: 100})
	return NewVTEX(client, VTEXConfig{
		Name:       "promart",
		StoreName:  "Promart Online",
		StoreID:    5,
		BaseOrigin: serverURL,
		Location:   domain.GeoPoint{Lat: -12.06, Lon: -77.04},
	})
}

func TestVTEXFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, vtexSearchPath, r.URL.Path)
		assert.Equal(t, "taladro", r.URL.Query().Get("ft"))
		assert.Equal(t, "0", r.URL.Query().Get("_from"))
		assert.Equal(t, "24", r.URL.Query().Get("_to"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(vtexSampleResponse))
	}))
	defer server.Close()

	v := newVTEXConnector(server.URL)
	records, err := v.Fetch(context.Background(), "taladro", nil, nil)
	require.NoError(t, err)

	// the sander fails the word filter; the offer-less item is skipped
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 4061, first.SourceID)
	assert.Equal(t, "Taladro Percutor Bosch GSB 550", first.Name)
	assert.Equal(t, "Bosch", first.Brand)
	assert.Equal(t, 249.90, first.Price)
	assert.Equal(t, "Promart Online", first.StoreName)
	assert.Equal(t, server.URL+"/taladro-percutor-bosch-gsb-550/p", first.ProductURL)
	assert.Equal(t, "https://promart.vteximg.com.br/taladro.jpg", first.ImageURL)

	// non-numeric productId falls back to a positional ID; empty link
	// derives the URL from linkText
	second := records[1]
	assert.Equal(t, 2, second.SourceID)
	assert.Equal(t, server.URL+"/taladro-inalambrico-makita/p", second.ProductURL)
	assert.Empty(t, second.ImageURL)
}

func TestVTEXFetchMaxPriceFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(vtexSampleResponse))
	}))
	defer server.Close()

	v := newVTEXConnector(server.URL)
	max := 300.0
	records, err := v.Fetch(context.Background(), "taladro", nil, &domain.SearchFilters{MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 249.90, records[0].Price)
}

func TestVTEXFetchDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>bloqueado</html>"))
	}))
	defer server.Close()

	v := newVTEXConnector(server.URL)
	_, err := v.Fetch(context.Background(), "taladro", nil, nil)
	assert.Error(t, err)
}

func TestVTEXFetchEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]vtexProduct{})
	}))
	defer server.Close()

	v := newVTEXConnector(server.URL)
	records, err := v.Fetch(context.Background(), "taladro", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
