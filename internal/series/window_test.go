package series

import (
	"testing"
	"time"
)

func hourly(start time.Time, n int) []Sample {
	out := make([]Sample, n)
	for i := range out {
		out[i] = Sample{Time: start.Add(time.Duration(i) * time.Hour), Value: float64(i)}
	}
	return out
}

func TestSelectNext24h(t *testing.T) {
	samples := hourly(at(0, 0), 48)
	got := SelectNext24h(samples, at(5, 30))
	if len(got) != 24 {
		t.Fatalf("expected 24 samples, got %d", len(got))
	}
	if !got[0].Time.Equal(at(6, 0)) {
		t.Errorf("expected window to start at 06:00, got %v", got[0].Time)
	}
	for _, s := range got {
		if s.Time.Before(at(5, 30)) {
			t.Errorf("sample %v precedes now", s.Time)
		}
	}
}

func TestSelectNext24hExactMatch(t *testing.T) {
	samples := hourly(at(0, 0), 30)
	got := SelectNext24h(samples, at(3, 0))
	if !got[0].Time.Equal(at(3, 0)) {
		t.Errorf("expected sample at now to open the window, got %v", got[0].Time)
	}
	if len(got) != 24 {
		t.Errorf("expected 24 samples, got %d", len(got))
	}
}

func TestSelectNext24hStale(t *testing.T) {
	samples := hourly(at(0, 0), 5)
	got := SelectNext24h(samples, at(0, 0).Add(72*time.Hour))
	if len(got) != 1 {
		t.Fatalf("expected only the last sample, got %d", len(got))
	}
	if !got[0].Time.Equal(at(4, 0)) {
		t.Errorf("expected last sample at 04:00, got %v", got[0].Time)
	}
	if got := SelectNext24h(nil, at(0, 0)); len(got) != 0 {
		t.Errorf("expected empty window, got %d", len(got))
	}
}

func TestSelectCalendarRange(t *testing.T) {
	samples := hourly(at(0, 0).Add(-6*time.Hour), 80)
	got := SelectCalendarRange(samples, at(0, 0), 2)
	if len(got) != 48 {
		t.Fatalf("expected 48 samples, got %d", len(got))
	}
	if !got[0].Time.Equal(at(0, 0)) {
		t.Errorf("expected start at midnight, got %v", got[0].Time)
	}
	if SelectCalendarRange(samples, at(0, 0), 0) != nil {
		t.Error("expected nil for zero days")
	}
}

func TestLocalNow(t *testing.T) {
	samples := hourly(at(0, 0), 2)
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	local := LocalNow(samples, now)
	if local.Location() != prague {
		t.Errorf("expected now in sample zone, got %v", local.Location())
	}
	if !local.Equal(now) {
		t.Error("LocalNow() must not shift the instant")
	}
	if StartOfDay(local).Day() != 11 {
		t.Errorf("expected local day 11, got %d", StartOfDay(local).Day())
	}
}

func TestCurrentIndex(t *testing.T) {
	samples := quarterHours(at(10, 0), 1, 2, 3, 4)
	tests := []struct {
		now  time.Time
		want int
	}{
		{at(10, 0), 0},
		{at(10, 14), 0},
		{at(10, 15), 1},
		{at(10, 59), 3},
		{at(11, 0), -1},
		{at(9, 59), -1},
	}
	for _, tt := range tests {
		if got := CurrentIndex(samples, tt.now, QuarterHour); got != tt.want {
			t.Errorf("CurrentIndex(%s) = %d, want %d", tt.now.Format("15:04"), got, tt.want)
		}
	}
	if v, ok := ValueAt(samples, at(10, 20), QuarterHour); !ok || v != 2 {
		t.Errorf("ValueAt() = %v, %v", v, ok)
	}
}
