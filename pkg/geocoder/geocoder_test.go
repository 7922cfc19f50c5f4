package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "02118", r.URL.Query().Get("q"))
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "ops@example.com", r.URL.Query().Get("email"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"42.3396","lon":"-71.0723"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "ops@example.com")
	loc, err := c.Geocode(context.Background(), "02118")
	require.NoError(t, err)
	require.InDelta(t, 42.3396, loc.Latitude, 1e-6)
	require.InDelta(t, -71.0723, loc.Longitude, 1e-6)
}

func TestGeocodeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Geocode(context.Background(), "nowhere at all")
	require.ErrorIs(t, err, ErrNoResult)
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Geocode(context.Background(), "02118")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoResult)
}
