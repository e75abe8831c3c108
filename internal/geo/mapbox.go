package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// DefaultMapboxBaseURL is the public Mapbox API host.
const DefaultMapboxBaseURL = "https://api.mapbox.com"

const mapboxPlacesPath = "/geocoding/v5/mapbox.places/"

// MapboxGeocoder implements Geocoder against the Mapbox Geocoding v5 API.
// It is safe for concurrent use.
type MapboxGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
}

// NewMapboxGeocoder constructs a MapboxGeocoder. baseURL may be empty to use
// DefaultMapboxBaseURL; timeout bounds every provider call.
func NewMapboxGeocoder(apiKey, baseURL string, timeout time.Duration) (*MapboxGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("mapbox api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultMapboxBaseURL
	}
	return &MapboxGeocoder{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type mapboxResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"` // [lon, lat]
	} `json:"features"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Forward geocodes a free-text address and returns the best match.
func (m *MapboxGeocoder) Forward(ctx context.Context, query string) (Place, bool, error) {
	q := url.Values{}
	q.Set("limit", "1")
	place, found, err := m.lookup(ctx, url.PathEscape(query), q)
	if err != nil {
		return Place{}, false, fmt.Errorf("geo.MapboxGeocoder.Forward: %w", err)
	}
	return place, found, nil
}

// Reverse returns the nearest place to c. Mapbox rejects "limit" on reverse
// queries without a single "types" filter, so none is sent.
func (m *MapboxGeocoder) Reverse(ctx context.Context, c domain.Coordinate) (Place, bool, error) {
	lonLat := strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
	place, found, err := m.lookup(ctx, lonLat, url.Values{})
	if err != nil {
		return Place{}, false, fmt.Errorf("geo.MapboxGeocoder.Reverse: %w", err)
	}
	return place, found, nil
}

func (m *MapboxGeocoder) lookup(ctx context.Context, escapedSearch string, q url.Values) (Place, bool, error) {
	q.Set("access_token", m.apiKey)
	endpoint := m.baseURL + mapboxPlacesPath + escapedSearch + ".json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Place{}, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.do(req)
	if err != nil {
		return Place{}, false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Place{}, false, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return Place{}, false, nil
	}

	f := decoded.Features[0]
	if len(f.Center) != 2 {
		return Place{}, false, fmt.Errorf("invalid center for %q", f.PlaceName)
	}
	return Place{
		Name:       f.PlaceName,
		Coordinate: domain.Coordinate{Lon: f.Center[0], Lat: f.Center[1]},
	}, true, nil
}

func (m *MapboxGeocoder) do(req *http.Request) (*http.Response, error) {
	resp, err := m.session.Do(req)
	if err != nil {
		// *url.Error repeats the URL, which carries the access token.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
		}
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}
