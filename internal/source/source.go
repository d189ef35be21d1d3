// Package source fetches dashboard data from Home Assistant and Ecowitt
// weather stations, falling back to deterministic mock data.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tonhe/inkboard/internal/dashboard"
)

// DefaultTimeout bounds every HTTP request made by this package.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotConfigured means the source lacks the settings to fetch live
	// data; mock data is returned alongside it.
	ErrNotConfigured = errors.New("source not configured")
	ErrNoData        = errors.New("response holds no usable data")
)

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.URL, e.Status, e.Body)
}

// Electricity supplies the price dashboard. On failure implementations
// return fallback data together with the error that caused it.
type Electricity interface {
	FetchElectricity(ctx context.Context, now time.Time) (dashboard.ElectricityData, error)
}

// Weather supplies the weather dashboard, with the same fallback
// contract as Electricity.
type Weather interface {
	FetchWeather(ctx context.Context, now time.Time) (dashboard.WeatherData, error)
}

func newHTTPClient(h *http.Client) *http.Client {
	if h == nil {
		return &http.Client{Timeout: DefaultTimeout}
	}
	return h
}

// getJSON performs a GET and decodes the JSON body into v.
func getJSON(ctx context.Context, h *http.Client, url string, header http.Header, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}
	resp, err := h.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{URL: url, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// number decodes a JSON number or a string holding one. Strings may
// carry a trailing unit ("1013.2 hPa"). Anything else leaves it unset.
type number struct {
	v  float64
	ok bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	v, ok := parseNumber(s)
	n.v, n.ok = v, ok
	return nil
}

func (n number) ptr() *float64 {
	if !n.ok {
		return nil
	}
	v := n.v
	return &v
}

func parseNumber(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "%"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
