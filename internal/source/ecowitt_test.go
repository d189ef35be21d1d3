package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const liveDataJSON = `{
  "common_list": [
    {"id": "0x02", "val": "7.4", "unit": "C"},
    {"id": "3", "val": "5.0", "unit": "C"},
    {"id": "0x07", "val": "81%"},
    {"id": "0x06", "val": "1013.2 hPa"},
    {"id": "0x0A", "val": "12.6 km/h"},
    {"id": "0x0B", "val": "225"},
    {"id": "0x0E", "val": "1.2 mm"},
    {"id": "0x05", "val": "2"},
    {"id": "0x15", "val": "bogus"}
  ]
}`

func TestEcowittLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_livedata_info" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, liveDataJSON)
	}))
	defer srv.Close()

	observed := time.Date(2026, 3, 10, 10, 30, 0, 0, cet)
	st := NewEcowittLocal(strings.TrimPrefix(srv.URL, "http://"), nil)
	st.now = func() time.Time { return observed }

	r, err := st.Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"temperature", r.Temperature, 7.4},
		{"feels like", r.FeelsLike, 5.0},
		{"humidity", r.Humidity, 81},
		{"pressure", r.Pressure, 1013.2},
		{"wind speed", r.WindSpeed, 12.6},
		{"wind direction", r.WindDirection, 225},
		{"rain daily", r.RainDaily, 1.2},
		{"uv", r.UV, 2},
	}
	for _, c := range checks {
		if c.got == nil || *c.got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
	if r.SolarRadiation != nil {
		t.Errorf("expected unparsable solar radiation to stay nil, got %v", *r.SolarRadiation)
	}
	if r.RainRate != nil {
		t.Errorf("expected missing rain rate to stay nil, got %v", *r.RainRate)
	}
	if !r.Observed.Equal(observed) {
		t.Errorf("expected observed %v, got %v", observed, r.Observed)
	}
}

func TestEcowittLocalNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"common_list": []}`)
	}))
	defer srv.Close()

	if _, err := NewEcowittLocal(srv.URL, nil).Read(context.Background()); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestEcowittLocalOutdoorOnly(t *testing.T) {
	r := parseLive([]liveItem{
		{ID: "0x02", Name: "Indoor Temperature", Val: number{v: 21, ok: true}},
		{ID: "0x02", Name: "Outdoor Temperature", Val: number{v: 4, ok: true}},
	})
	if r.Temperature == nil || *r.Temperature != 4 {
		t.Errorf("expected outdoor temperature 4, got %v", r.Temperature)
	}
}

const cloudJSON = `{
  "code": 0,
  "msg": "success",
  "time": "1773135000",
  "data": {
    "outdoor": {
      "temperature": {"time": "1773134940", "unit": "℃", "value": "7.4"},
      "feels_like": {"unit": "℃", "value": "5.0"},
      "humidity": {"unit": "%", "value": "81"}
    },
    "pressure": {"relative": {"unit": "hPa", "value": "1013.2"}},
    "wind": {
      "wind_speed": {"unit": "km/h", "value": "12.6"},
      "wind_direction": {"unit": "º", "value": "225"}
    },
    "rainfall": {"daily": {"unit": "mm", "value": "1.2"}},
    "solar_and_uvi": {"uvi": {"value": "2"}}
  }
}`

func TestEcowittCloud(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("application_key") != "app" || q.Get("api_key") != "key" || q.Get("mac") != "AA:BB" {
			t.Errorf("unexpected credentials in %q", r.URL.RawQuery)
		}
		if q.Get("temp_unitid") != "1" || q.Get("wind_speed_unitid") != "7" {
			t.Errorf("expected metric units in %q", r.URL.RawQuery)
		}
		fmt.Fprint(w, cloudJSON)
	}))
	defer srv.Close()

	r, err := NewEcowittCloud(srv.URL, "app", "key", "AA:BB", nil).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if r.Temperature == nil || *r.Temperature != 7.4 {
		t.Errorf("expected temperature 7.4, got %v", r.Temperature)
	}
	if r.Pressure == nil || *r.Pressure != 1013.2 {
		t.Errorf("expected pressure 1013.2, got %v", r.Pressure)
	}
	if r.WindDirection == nil || *r.WindDirection != 225 {
		t.Errorf("expected direction 225, got %v", r.WindDirection)
	}
	if r.SolarRadiation != nil {
		t.Errorf("expected missing solar radiation to stay nil, got %v", *r.SolarRadiation)
	}
	if r.Observed.Unix() != 1773135000 {
		t.Errorf("expected observed 1773135000, got %d", r.Observed.Unix())
	}
}

func TestEcowittCloudAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code": 40010, "msg": "Illegal Application_Key Parameter", "data": []}`)
	}))
	defer srv.Close()

	_, err := NewEcowittCloud(srv.URL, "app", "key", "AA:BB", nil).Read(context.Background())
	var se *StatusError
	if !errors.As(err, &se) || se.Status != 40010 {
		t.Errorf("expected StatusError 40010, got %v", err)
	}
}

func TestEcowittCloudNotConfigured(t *testing.T) {
	if _, err := NewEcowittCloud("", "", "", "", nil).Read(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
