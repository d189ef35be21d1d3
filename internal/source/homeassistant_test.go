package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var cet = time.FixedZone("CET", 3600)

// fakeHA serves canned entity states and checks the bearer token.
func fakeHA(t *testing.T, states map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		body, ok := states[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const spotState = `{
  "entity_id": "sensor.spot_electricity_buy_prices",
  "state": "4.12",
  "attributes": {
    "prices": [
      {"2026-03-10T01:00:00+01:00": 3.5},
      {"2026-03-09T23:00:00Z": "2.8"},
      {"2026-03-10T02:00:00": 4.0}
    ]
  }
}`

func TestSpotPrices(t *testing.T) {
	srv := fakeHA(t, map[string]string{"/api/states/sensor.spot_electricity_buy_prices": spotState})
	ha := NewHomeAssistant(srv.URL+"/", "secret-token", cet, nil)

	prices, current, err := ha.SpotPrices(context.Background(), "sensor.spot_electricity_buy_prices")
	if err != nil {
		t.Fatalf("SpotPrices() error: %v", err)
	}
	if current == nil || *current != 4.12 {
		t.Errorf("expected current 4.12, got %v", current)
	}
	if len(prices) != 3 {
		t.Fatalf("expected 3 prices, got %d", len(prices))
	}
	wantValues := []float64{2.8, 3.5, 4.0}
	for i, p := range prices {
		if p.Time.Hour() != i || p.Time.Location() != cet {
			t.Errorf("price %d: expected %02d:00 CET, got %v", i, i, p.Time)
		}
		if p.Value != wantValues[i] {
			t.Errorf("price %d: expected %v, got %v", i, wantValues[i], p.Value)
		}
	}
}

func TestSpotPricesUnauthorized(t *testing.T) {
	srv := fakeHA(t, map[string]string{"/api/states/sensor.spot": spotState})
	ha := NewHomeAssistant(srv.URL, "wrong", cet, nil)

	_, _, err := ha.SpotPrices(context.Background(), "sensor.spot")
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}
}

func TestSpotPricesEmpty(t *testing.T) {
	srv := fakeHA(t, map[string]string{"/api/states/sensor.spot": `{"state": "unknown", "attributes": {}}`})
	ha := NewHomeAssistant(srv.URL, "secret-token", cet, nil)

	_, current, err := ha.SpotPrices(context.Background(), "sensor.spot")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	if current != nil {
		t.Errorf("expected no current price for state 'unknown', got %v", *current)
	}
}

const scheduleStateJSON = `{
  "entity_id": "sensor.p_deferrable0",
  "state": "0.0",
  "attributes": {
    "deferrables_schedule": [
      {"date": "2026-03-10T10:00:00+01:00", "p_deferrable0": "0.0", "p_deferrable1": "1500.0"},
      {"date": "2026-03-10T11:00:00+01:00", "p_deferrable0": "800.0"},
      {"date": "not a date", "p_deferrable0": "800.0"},
      {"date": "2026-03-10T12:00:00+01:00", "p_deferrable0": 800},
      {"date": "2026-03-10T13:00:00+01:00", "p_deferrable0": "0.0"}
    ]
  }
}`

func TestDeferrableSchedule(t *testing.T) {
	srv := fakeHA(t, map[string]string{
		"/api/states/sensor.p_deferrable0": scheduleStateJSON,
		"/api/states/sensor.p_deferrable2": scheduleStateJSON,
	})
	ha := NewHomeAssistant(srv.URL, "secret-token", cet, nil)

	r, ok, err := ha.DeferrableSchedule(context.Background(), "sensor.p_deferrable0")
	if err != nil {
		t.Fatalf("DeferrableSchedule() error: %v", err)
	}
	if !ok {
		t.Fatal("expected a schedule")
	}
	if r.Start.Hour() != 11 || r.End.Hour() != 12 {
		t.Errorf("expected 11:00-12:00, got %v-%v", r.Start, r.End)
	}

	_, ok, err = ha.DeferrableSchedule(context.Background(), "sensor.p_deferrable2")
	if err != nil || ok {
		t.Errorf("expected no schedule for an unpowered key, got ok=%v err=%v", ok, err)
	}
}

func TestHistory(t *testing.T) {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/history/period/2026-03-09T09:00:00Z" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("filter_entity_id"); got != "sensor.outdoor_temperature" {
			t.Errorf("expected filter_entity_id, got %q", got)
		}
		if got := r.URL.Query().Get("end_time"); got != "2026-03-10T09:00:00Z" {
			t.Errorf("expected end_time, got %q", got)
		}
		fmt.Fprint(w, `[[
			{"state": "6.0", "last_changed": "2026-03-09T12:00:00+00:00"},
			{"state": "unavailable", "last_changed": "2026-03-09T11:00:00+00:00"},
			{"state": "5.1", "last_changed": "2026-03-09T10:00:00+00:00"}
		]]`)
	}))
	defer srv.Close()

	ha := NewHomeAssistant(srv.URL, "secret-token", cet, nil)
	samples, err := ha.History(context.Background(), "sensor.outdoor_temperature", start, end)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 numeric samples, got %d", len(samples))
	}
	if samples[0].Value != 5.1 || samples[1].Value != 6.0 {
		t.Errorf("expected ascending [5.1 6.0], got %v", samples)
	}
	if samples[0].Time.Location() != cet {
		t.Errorf("expected samples in CET, got %v", samples[0].Time.Location())
	}
}

func TestScheduleFromEntriesEmpty(t *testing.T) {
	if _, ok := ScheduleFromEntries(nil, "p_deferrable0", cet); ok {
		t.Error("expected no schedule from no entries")
	}
}
