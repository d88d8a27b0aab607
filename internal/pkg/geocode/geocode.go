package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/absensi-nh/absensi-backend-go/internal/config"
)

// Client resolves coordinates to short human-readable addresses via Nominatim.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(cfg config.GeocodeConfig) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: 5 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road         string `json:"road"`
		Pedestrian   string `json:"pedestrian"`
		Suburb       string `json:"suburb"`
		City         string `json:"city"`
		Town         string `json:"town"`
		Municipality string `json:"municipality"`
		County       string `json:"county"`
	} `json:"address"`
}

// ReverseGeocode returns a short "road, city" address for the coordinates.
// On any failure it falls back to a "lat, lng" string; the display layer
// recognizes that format and renders a map link instead of an address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	addr, err := c.lookup(ctx, lat, lon)
	if err != nil {
		return CoordinateFallback(lat, lon)
	}
	return addr
}

func (c *Client) lookup(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Language", "id-ID")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoding failed: status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	road := firstNonEmpty(body.Address.Road, body.Address.Pedestrian, body.Address.Suburb)
	city := firstNonEmpty(body.Address.City, body.Address.Town, body.Address.Municipality, body.Address.County)

	if road != "" && city != "" {
		return road + ", " + city, nil
	}

	if body.DisplayName == "" {
		return "", fmt.Errorf("empty geocoding result")
	}

	// display_name is usually very long; keep the first three segments
	parts := strings.SplitN(body.DisplayName, ",", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.TrimSpace(strings.Join(parts, ",")), nil
}

// CoordinateFallback formats coordinates as the documented "lat, lng" fallback.
func CoordinateFallback(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

var coordinateRegex = regexp.MustCompile(`^-?\d+(\.\d+)?,\s*-?\d+(\.\d+)?$`)

// IsCoordinateFallback reports whether a stored location string is the raw
// coordinate fallback rather than a resolved address.
func IsCoordinateFallback(location string) bool {
	return coordinateRegex.MatchString(strings.TrimSpace(location))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
