package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoResult is returned when the provider knows nothing about an address.
var ErrNoResult = errors.New("geocoder: no result for address")

// Location is one geocoding result.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Client resolves free-form addresses against a Nominatim-compatible
// search endpoint.
type Client struct {
	BaseURL string
	Email   string // contact address, sent per provider usage policy
	HTTP    *http.Client
}

func New(baseURL, email string) *Client {
	return &Client{
		BaseURL: baseURL,
		Email:   email,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Geocode resolves an address or zipcode to coordinates, returning the
// first match.
func (c *Client) Geocode(ctx context.Context, address string) (Location, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	if c.Email != "" {
		q.Set("email", c.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Location{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return Location{}, errors.New("geocoder: unexpected status " + res.Status)
	}

	var hits []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(res.Body).Decode(&hits); err != nil {
		return Location{}, err
	}
	if len(hits) == 0 {
		return Location{}, ErrNoResult
	}
	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return Location{}, err
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return Location{}, err
	}
	return Location{Latitude: lat, Longitude: lng}, nil
}
