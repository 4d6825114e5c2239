package geo

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Local Packages
	errors "swipepoint/errors"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/countries/positions", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"name": "Kenya"}, {"name": "Brazil"}},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	countries, err := client.Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Kenya", "Brazil"}, countries)
}

func TestStates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/countries/states", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Kenya", body["country"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"states": []map[string]any{{"name": "Nairobi"}, {"name": "Mombasa"}},
			},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	states, err := client.States(context.Background(), "Kenya")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nairobi", "Mombasa"}, states)
}

func TestCities(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/countries/state/cities", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []string{"Westlands", "Karen"}})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	cities, err := client.Cities(context.Background(), "Kenya", "Nairobi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Westlands", "Karen"}, cities)
}

func TestUpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.Countries(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.Upstream, errors.KindOf(err))
}
