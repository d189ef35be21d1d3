package series

import "time"

// LocalNow expresses now in the zone carried by samples, so calendar
// arithmetic (start of day, hour labels) happens in the data's zone.
func LocalNow(samples []Sample, now time.Time) time.Time {
	if len(samples) == 0 {
		return now
	}
	return now.In(samples[0].Time.Location())
}

// StartOfDay returns local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SelectNext24h returns the rolling 24 hour window starting at the first
// sample at or after now.
func SelectNext24h(samples []Sample, now time.Time) []Sample {
	return SelectNext(samples, now, 24*time.Hour)
}

// SelectNext returns samples in [start, start+span) where start is the
// first sample at or after now. When every sample is older than now the
// last sample's timestamp is used as start, so stale data yields exactly
// that last sample.
func SelectNext(samples []Sample, now time.Time, span time.Duration) []Sample {
	if len(samples) == 0 {
		return nil
	}
	start := samples[len(samples)-1].Time
	for _, s := range samples {
		if !s.Time.Before(now) {
			start = s.Time
			break
		}
	}
	return Select(samples, TimeWindow{Start: start, End: start.Add(span)})
}

// SelectCalendarRange returns samples in [todayStart, todayStart+numDays*24h).
func SelectCalendarRange(samples []Sample, todayStart time.Time, numDays int) []Sample {
	if numDays <= 0 {
		return nil
	}
	return Select(samples, TimeWindow{Start: todayStart, End: todayStart.Add(time.Duration(numDays) * 24 * time.Hour)})
}

// Select copies the samples that fall inside w.
func Select(samples []Sample, w TimeWindow) []Sample {
	var out []Sample
	for _, s := range samples {
		if w.Contains(s.Time) {
			out = append(out, s)
		}
	}
	return out
}

// CurrentIndex returns the index of the sample whose slot contains now,
// or -1. A slot is [timestamp, timestamp+cadence).
func CurrentIndex(samples []Sample, now time.Time, cadence Cadence) int {
	d := cadence.Duration()
	for i, s := range samples {
		if !now.Before(s.Time) && now.Before(s.Time.Add(d)) {
			return i
		}
	}
	return -1
}

// ValueAt returns the value of the slot containing now.
func ValueAt(samples []Sample, now time.Time, cadence Cadence) (float64, bool) {
	i := CurrentIndex(samples, now, cadence)
	if i < 0 {
		return 0, false
	}
	return samples[i].Value, true
}
