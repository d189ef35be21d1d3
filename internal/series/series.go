// Package series holds the time-series model shared by the dashboards:
// samples, cadences, windows, aggregation and summary statistics.
package series

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrUnsorted is returned when samples are not in ascending time order.
	ErrUnsorted = errors.New("samples not sorted by timestamp")
	// ErrMixedZones is returned when samples carry different time zones.
	ErrMixedZones = errors.New("samples carry mixed time zones")
	// ErrDuplicate is returned when a chart window holds the same timestamp twice.
	ErrDuplicate = errors.New("duplicate timestamp in window")
	// ErrEmptyWindow is returned for a window whose start is not before its end.
	ErrEmptyWindow = errors.New("window start must be before end")
)

// Sample is a single (timestamp, value) observation.
type Sample struct {
	Time  time.Time `toml:"time" json:"time"`
	Value float64   `toml:"value" json:"value"`
}

// Cadence is the fixed interval between consecutive samples of a sequence.
type Cadence int

const (
	QuarterHour Cadence = iota
	Hourly
)

// Duration returns the length of one slot.
func (c Cadence) Duration() time.Duration {
	if c == QuarterHour {
		return 15 * time.Minute
	}
	return time.Hour
}

func (c Cadence) String() string {
	if c == QuarterHour {
		return "15m"
	}
	return "60m"
}

// MarshalText implements encoding.TextMarshaler.
func (c Cadence) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cadence) UnmarshalText(b []byte) error {
	v, err := ParseCadence(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCadence accepts "15m", "quarter", "60m", "1h" or "hourly".
func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "15m", "15", "quarter":
		return QuarterHour, nil
	case "60m", "60", "1h", "hourly", "":
		return Hourly, nil
	}
	return Hourly, fmt.Errorf("unknown cadence %q", s)
}

// DetectCadence infers the cadence from the first two samples,
// defaulting to QuarterHour.
func DetectCadence(samples []Sample) Cadence {
	if len(samples) >= 2 && samples[1].Time.Sub(samples[0].Time) >= time.Hour {
		return Hourly
	}
	return QuarterHour
}

// TimeWindow is the half-open range [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow builds a window, rejecting empty or inverted ranges.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, fmt.Errorf("%w: %s >= %s", ErrEmptyWindow, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeWindow{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Validate checks that samples are ascending and share a single zone.
// Equal timestamps are accepted; they are averaged away by aggregation.
func Validate(samples []Sample) error {
	return validate(samples, false)
}

// ValidateWindow is Validate plus a ban on repeated timestamps, the
// precondition for anything handed to the chart renderer.
func ValidateWindow(samples []Sample) error {
	return validate(samples, true)
}

func validate(samples []Sample, strict bool) error {
	if len(samples) == 0 {
		return nil
	}
	zone := samples[0].Time.Location().String()
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1].Time, samples[i].Time
		if cur.Location().String() != zone {
			return fmt.Errorf("%w: index %d is %s, want %s", ErrMixedZones, i, cur.Location(), zone)
		}
		if cur.Before(prev) {
			return fmt.Errorf("%w: index %d (%s) before index %d (%s)", ErrUnsorted,
				i, cur.Format(time.RFC3339), i-1, prev.Format(time.RFC3339))
		}
		if strict && cur.Equal(prev) {
			return fmt.Errorf("%w: %s", ErrDuplicate, cur.Format(time.RFC3339))
		}
	}
	return nil
}

// Sorted returns an ascending copy of samples. Producers call this before
// handing data to the renderer; the renderer itself never reorders.
func Sorted(samples []Sample) []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// In returns a copy of samples converted to loc.
func In(samples []Sample, loc *time.Location) []Sample {
	out := make([]Sample, len(samples))
	for i, s := range samples {
		out[i] = Sample{Time: s.Time.In(loc), Value: s.Value}
	}
	return out
}

// Values extracts the value column.
func Values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

// Record is the wire form of a sample: an ISO-8601 timestamp and a value.
type Record struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// FromRecords parses records into samples expressed in loc.
// The result keeps input order; use Sorted before validation.
func FromRecords(records []Record, loc *time.Location) ([]Sample, error) {
	out := make([]Sample, 0, len(records))
	for _, r := range records {
		t, err := ParseTimestamp(r.Timestamp, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, Sample{Time: t, Value: r.Value})
	}
	return out, nil
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 timestamp. Values without an offset
// are interpreted in loc; values with one are converted to loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: unrecognised format", s)
}

// ScheduleRange is a planned run of an appliance: the first and last
// powered slot starts. Overlays treat End as inclusive.
type ScheduleRange struct {
	Start time.Time `toml:"start" json:"start"`
	End   time.Time `toml:"end" json:"end"`
}

// Valid reports whether the range is set and ordered.
func (r ScheduleRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}
