package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tonhe/inkboard/internal/series"
)

// State is an entity as returned by the Home Assistant REST API.
type State struct {
	EntityID    string         `json:"entity_id"`
	State       string         `json:"state"`
	LastChanged time.Time      `json:"last_changed"`
	Attributes  map[string]any `json:"attributes"`
}

// HomeAssistant is a minimal Home Assistant REST client.
type HomeAssistant struct {
	base  string
	token string
	loc   *time.Location
	h     *http.Client
}

// NewHomeAssistant creates a client for base (e.g. http://ha.local:8123).
// Naive timestamps are read in loc. A nil h uses DefaultTimeout.
func NewHomeAssistant(base, token string, loc *time.Location, h *http.Client) *HomeAssistant {
	if loc == nil {
		loc = time.Local
	}
	return &HomeAssistant{base: strings.TrimRight(base, "/"), token: token, loc: loc, h: newHTTPClient(h)}
}

func (c *HomeAssistant) header() http.Header {
	return http.Header{
		"Authorization": {"Bearer " + c.token},
		"Content-Type":  {"application/json"},
	}
}

// State fetches one entity.
func (c *HomeAssistant) State(ctx context.Context, entity string) (*State, error) {
	var st State
	if err := getJSON(ctx, c.h, c.base+"/api/states/"+url.PathEscape(entity), c.header(), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

type priceState struct {
	State      number `json:"state"`
	Attributes struct {
		Prices []map[string]number `json:"prices"`
	} `json:"attributes"`
}

// SpotPrices reads the price list of entity, sorted ascending and
// expressed in the client's zone, plus the state as the current price.
func (c *HomeAssistant) SpotPrices(ctx context.Context, entity string) ([]series.Sample, *float64, error) {
	var st priceState
	if err := getJSON(ctx, c.h, c.base+"/api/states/"+url.PathEscape(entity), c.header(), &st); err != nil {
		return nil, nil, err
	}
	var records []series.Record
	for _, entry := range st.Attributes.Prices {
		for ts, price := range entry {
			if !price.ok {
				continue
			}
			records = append(records, series.Record{Timestamp: ts, Value: price.v})
		}
	}
	samples, err := series.FromRecords(records, c.loc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", entity, err)
	}
	if len(samples) == 0 {
		return nil, st.State.ptr(), fmt.Errorf("%s: %w", entity, ErrNoData)
	}
	return series.Sorted(samples), st.State.ptr(), nil
}

type scheduleState struct {
	Attributes struct {
		Schedule []map[string]any `json:"deferrables_schedule"`
	} `json:"attributes"`
}

// DeferrableSchedule returns the planned run of entity: the first and
// last entries of its deferrables_schedule attribute whose power, keyed
// by the entity id without its domain, is positive.
func (c *HomeAssistant) DeferrableSchedule(ctx context.Context, entity string) (series.ScheduleRange, bool, error) {
	var st scheduleState
	if err := getJSON(ctx, c.h, c.base+"/api/states/"+url.PathEscape(entity), c.header(), &st); err != nil {
		return series.ScheduleRange{}, false, err
	}
	r, ok := ScheduleFromEntries(st.Attributes.Schedule, powerKey(entity), c.loc)
	return r, ok, nil
}

// ScheduleFromEntries scans schedule entries for key. Entries with an
// unparsable date or power are skipped.
func ScheduleFromEntries(entries []map[string]any, key string, loc *time.Location) (series.ScheduleRange, bool) {
	var r series.ScheduleRange
	for _, e := range entries {
		power, ok := anyNumber(e[key])
		if !ok || power <= 0 {
			continue
		}
		date, _ := e["date"].(string)
		t, err := series.ParseTimestamp(date, loc)
		if err != nil {
			continue
		}
		if r.Start.IsZero() {
			r.Start = t
		}
		r.End = t
	}
	return r, !r.Start.IsZero()
}

func powerKey(entity string) string {
	if i := strings.LastIndex(entity, "."); i >= 0 {
		return entity[i+1:]
	}
	return entity
}

func anyNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		return parseNumber(n)
	}
	return 0, false
}

type historyPoint struct {
	State       string    `json:"state"`
	LastChanged time.Time `json:"last_changed"`
}

// History returns the numeric states of entity in [start, end]. States
// such as "unavailable" are skipped.
func (c *HomeAssistant) History(ctx context.Context, entity string, start, end time.Time) ([]series.Sample, error) {
	u := c.base + "/api/history/period/" + url.PathEscape(start.UTC().Format(time.RFC3339))
	q := url.Values{}
	q.Set("filter_entity_id", entity)
	q.Set("end_time", end.UTC().Format(time.RFC3339))
	q.Set("minimal_response", "")
	q.Set("no_attributes", "")
	u += "?" + q.Encode()

	var payload [][]historyPoint
	if err := getJSON(ctx, c.h, u, c.header(), &payload); err != nil {
		return nil, err
	}
	var out []series.Sample
	for _, points := range payload {
		for _, p := range points {
			v, ok := parseNumber(p.State)
			if !ok || p.LastChanged.IsZero() {
				continue
			}
			out = append(out, series.Sample{Time: p.LastChanged.In(c.loc), Value: v})
		}
	}
	return series.Sorted(out), nil
}
