package series

import (
	"testing"
	"time"
)

func quarterHours(start time.Time, values ...float64) []Sample {
	out := make([]Sample, len(values))
	for i, v := range values {
		out[i] = Sample{Time: start.Add(time.Duration(i) * 15 * time.Minute), Value: v}
	}
	return out
}

func TestAggregateHourly(t *testing.T) {
	in := quarterHours(at(0, 0), 1, 2, 3, 4, 10, 10, 10, 10, 5)
	got := AggregateHourly(in)
	if len(got) != 3 {
		t.Fatalf("expected 3 hours, got %d", len(got))
	}
	want := []float64{2.5, 10, 5}
	for i, w := range want {
		if got[i].Value != w {
			t.Errorf("hour %d: expected %v, got %v", i, w, got[i].Value)
		}
		if !got[i].Time.Equal(at(i, 0)) {
			t.Errorf("hour %d: expected start %v, got %v", i, at(i, 0), got[i].Time)
		}
	}
}

func TestAggregateHourlyFallBack(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		t.Skipf("zone data unavailable: %v", err)
	}
	// 2026-10-25 has 25 hours; 02:00 occurs in CEST and again in CET.
	start := time.Date(2026, 10, 25, 0, 0, 0, 0, loc)
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i / 4)
	}
	got := AggregateHourly(quarterHours(start, values...))
	if len(got) != 25 {
		t.Fatalf("expected 25 hours, got %d", len(got))
	}
	for i, s := range got {
		if s.Value != float64(i) {
			t.Errorf("hour %d: expected %v, got %v", i, float64(i), s.Value)
		}
		if s.Time.Location() != loc {
			t.Errorf("hour %d: expected zone %v, got %v", i, loc, s.Time.Location())
		}
	}
	if got[2].Time.Hour() != 2 || got[3].Time.Hour() != 2 || got[2].Time.Equal(got[3].Time) {
		t.Errorf("expected two distinct 02:00 hours, got %v and %v", got[2].Time, got[3].Time)
	}
}

func TestHourStart(t *testing.T) {
	half := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2026, 3, 10, 14, 47, 12, 5, half)
	if got, want := HourStart(ts), time.Date(2026, 3, 10, 14, 0, 0, 0, half); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAggregateHourlyDuplicates(t *testing.T) {
	in := []Sample{{at(3, 0), 1}, {at(3, 0), 3}, {at(3, 30), 5}}
	got := AggregateHourly(in)
	if len(got) != 1 || got[0].Value != 3 {
		t.Fatalf("expected a single hour averaging to 3, got %+v", got)
	}
}

func TestAggregateHourlyIdempotent(t *testing.T) {
	in := quarterHours(at(22, 45), 1.1, 2.2, 3.3, 4.4, 5.5, 6.6, 7.7)
	once := AggregateHourly(in)
	twice := AggregateHourly(once)
	if len(once) != len(twice) {
		t.Fatalf("length changed: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if !once[i].Time.Equal(twice[i].Time) || once[i].Value != twice[i].Value {
			t.Errorf("index %d: %+v != %+v", i, once[i], twice[i])
		}
	}
}

func TestAggregateHourlyEmpty(t *testing.T) {
	if got := AggregateHourly(nil); len(got) != 0 {
		t.Errorf("expected empty output, got %d samples", len(got))
	}
}

func TestResampleToCadence(t *testing.T) {
	now := at(12, 0)
	raw := []Sample{
		{at(9, 50), 10},
		{at(10, 20), 11},
		{at(11, 40), 12},
		{at(11, 55), 13},
	}
	got := ResampleToCadence(raw, 1, now, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	want := []struct {
		at    time.Time
		value float64
	}{
		{at(10, 0), 10},
		{at(11, 0), 11},
		{at(12, 0), 13},
	}
	for i, w := range want {
		if !got[i].Time.Equal(w.at) {
			t.Errorf("step %d: expected target %v, got %v", i, w.at, got[i].Time)
		}
		if got[i].Value != w.value {
			t.Errorf("step %d: expected %v, got %v", i, w.value, got[i].Value)
		}
	}

	if got := ResampleToCadence(nil, 1, now, 24); got != nil {
		t.Errorf("expected nil for empty history, got %d samples", len(got))
	}
}
