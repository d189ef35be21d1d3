package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Reading is one set of live station values. Missing values are nil.
type Reading struct {
	Temperature    *float64
	FeelsLike      *float64
	Humidity       *float64
	Pressure       *float64
	WindSpeed      *float64
	WindDirection  *float64
	RainRate       *float64
	RainDaily      *float64
	UV             *float64
	SolarRadiation *float64
	Observed       time.Time
}

// Station reads live weather values.
type Station interface {
	Read(ctx context.Context) (Reading, error)
}

// EcowittLocal reads a gateway's local get_livedata_info endpoint.
type EcowittLocal struct {
	base string
	h    *http.Client
	now  func() time.Time
}

// NewEcowittLocal creates a client for the gateway at host, which may
// be a bare IP or a URL.
func NewEcowittLocal(host string, h *http.Client) *EcowittLocal {
	base := strings.TrimRight(host, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &EcowittLocal{base: base, h: newHTTPClient(h), now: time.Now}
}

type liveItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Val  number `json:"val"`
}

type liveData struct {
	Common []liveItem `json:"common_list"`
}

// Read implements Station.
func (e *EcowittLocal) Read(ctx context.Context) (Reading, error) {
	var data liveData
	if err := getJSON(ctx, e.h, e.base+"/get_livedata_info", nil, &data); err != nil {
		return Reading{}, err
	}
	r := parseLive(data.Common)
	r.Observed = e.now()
	if r.Temperature == nil && r.Humidity == nil && r.Pressure == nil {
		return r, ErrNoData
	}
	return r, nil
}

// parseLive maps common_list ids onto a Reading. Temperature and
// humidity keep the first outdoor entry; unnamed entries count as outdoor.
func parseLive(items []liveItem) Reading {
	var r Reading
	outdoor := func(it liveItem) bool {
		return it.Name == "" || strings.Contains(strings.ToLower(it.Name), "outdoor")
	}
	for _, it := range items {
		v := it.Val.ptr()
		if v == nil {
			continue
		}
		switch strings.ToUpper(it.ID) {
		case "0X02":
			if r.Temperature == nil && outdoor(it) {
				r.Temperature = v
			}
		case "3":
			r.FeelsLike = v
		case "0X07":
			if r.Humidity == nil && outdoor(it) {
				r.Humidity = v
			}
		case "0X06":
			r.Pressure = v
		case "0X0A":
			r.WindSpeed = v
		case "0X0B":
			r.WindDirection = v
		case "0X0D":
			r.RainRate = v
		case "0X0E":
			r.RainDaily = v
		case "0X05":
			r.UV = v
		case "0X15":
			r.SolarRadiation = v
		}
	}
	return r
}

// DefaultEcowittCloudURL is the v3 real-time endpoint.
const DefaultEcowittCloudURL = "https://api.ecowitt.net/api/v3/device/real_time"

// EcowittCloud reads the ecowitt.net real-time API in metric units.
type EcowittCloud struct {
	URL            string
	ApplicationKey string
	APIKey         string
	MAC            string
	h              *http.Client
}

// NewEcowittCloud creates a cloud client. An empty endpoint uses
// DefaultEcowittCloudURL.
func NewEcowittCloud(endpoint, applicationKey, apiKey, mac string, h *http.Client) *EcowittCloud {
	if endpoint == "" {
		endpoint = DefaultEcowittCloudURL
	}
	return &EcowittCloud{URL: endpoint, ApplicationKey: applicationKey, APIKey: apiKey, MAC: mac, h: newHTTPClient(h)}
}

type cloudValue struct {
	Time  string `json:"time"`
	Unit  string `json:"unit"`
	Value number `json:"value"`
}

type cloudData struct {
	Outdoor struct {
		Temperature cloudValue `json:"temperature"`
		FeelsLike   cloudValue `json:"feels_like"`
		Humidity    cloudValue `json:"humidity"`
	} `json:"outdoor"`
	Pressure struct {
		Relative cloudValue `json:"relative"`
	} `json:"pressure"`
	Wind struct {
		Speed     cloudValue `json:"wind_speed"`
		Direction cloudValue `json:"wind_direction"`
	} `json:"wind"`
	Rainfall struct {
		Rate  cloudValue `json:"rain_rate"`
		Daily cloudValue `json:"daily"`
	} `json:"rainfall"`
	Solar struct {
		UVI   cloudValue `json:"uvi"`
		Solar cloudValue `json:"solar"`
	} `json:"solar_and_uvi"`
}

type cloudResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Time number `json:"time"`
	// Data is an empty array on errors, so it is decoded only on success.
	Data json.RawMessage `json:"data"`
}

// Read implements Station.
func (e *EcowittCloud) Read(ctx context.Context) (Reading, error) {
	if e.ApplicationKey == "" || e.APIKey == "" || e.MAC == "" {
		return Reading{}, ErrNotConfigured
	}
	q := url.Values{}
	q.Set("application_key", e.ApplicationKey)
	q.Set("api_key", e.APIKey)
	q.Set("mac", e.MAC)
	q.Set("call_back", "all")
	q.Set("temp_unitid", "1")
	q.Set("pressure_unitid", "3")
	q.Set("wind_speed_unitid", "7")
	q.Set("rainfall_unitid", "12")

	var resp cloudResponse
	if err := getJSON(ctx, e.h, e.URL+"?"+q.Encode(), nil, &resp); err != nil {
		return Reading{}, err
	}
	if resp.Code != 0 {
		return Reading{}, &StatusError{URL: e.URL, Status: resp.Code, Body: resp.Msg}
	}
	var d cloudData
	if err := json.Unmarshal(resp.Data, &d); err != nil {
		return Reading{}, err
	}
	r := Reading{
		Temperature:    d.Outdoor.Temperature.Value.ptr(),
		FeelsLike:      d.Outdoor.FeelsLike.Value.ptr(),
		Humidity:       d.Outdoor.Humidity.Value.ptr(),
		Pressure:       d.Pressure.Relative.Value.ptr(),
		WindSpeed:      d.Wind.Speed.Value.ptr(),
		WindDirection:  d.Wind.Direction.Value.ptr(),
		RainRate:       d.Rainfall.Rate.Value.ptr(),
		RainDaily:      d.Rainfall.Daily.Value.ptr(),
		UV:             d.Solar.UVI.Value.ptr(),
		SolarRadiation: d.Solar.Solar.Value.ptr(),
	}
	if resp.Time.ok {
		r.Observed = time.Unix(int64(resp.Time.v), 0)
	}
	if r.Temperature == nil && r.Humidity == nil && r.Pressure == nil {
		return r, ErrNoData
	}
	return r, nil
}
