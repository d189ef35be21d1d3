package series

import (
	"math"
	"sort"
	"time"
)

// HourStart returns the instant its clock hour began, in t's own zone.
// The repeated hour of a DST fall-back yields two distinct starts.
func HourStart(t time.Time) time.Time {
	into := time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second + time.Duration(t.Nanosecond())
	return t.Add(-into)
}

// AggregateHourly averages samples per clock hour and returns one sample
// per distinct hour, ascending. It is idempotent on its own output.
func AggregateHourly(samples []Sample) []Sample {
	if len(samples) == 0 {
		return nil
	}
	type bucket struct {
		start time.Time
		sum   float64
		n     int
	}
	buckets := make(map[int64]*bucket)
	for _, s := range samples {
		h := HourStart(s.Time)
		key := h.Unix()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{start: h}
			buckets[key] = b
		}
		b.sum += s.Value
		b.n++
	}
	out := make([]Sample, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Sample{Time: b.start, Value: b.sum / float64(b.n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// ResampleToCadence picks, for each of the last steps targets spaced
// cadenceHours apart and ending at now, the raw sample nearest in time.
// Output samples are stamped with their target instant. An empty raw
// history yields nil; synthesising data is the caller's job.
func ResampleToCadence(raw []Sample, cadenceHours int, now time.Time, steps int) []Sample {
	if len(raw) == 0 || steps <= 0 || cadenceHours <= 0 {
		return nil
	}
	step := time.Duration(cadenceHours) * time.Hour
	out := make([]Sample, 0, steps)
	for k := steps - 1; k >= 0; k-- {
		target := now.Add(-time.Duration(k) * step)
		out = append(out, Sample{Time: target, Value: nearest(raw, target).Value})
	}
	return out
}

// nearest returns the sample closest to target; ties go to the earlier one.
func nearest(raw []Sample, target time.Time) Sample {
	best := raw[0]
	bestDiff := math.Abs(float64(raw[0].Time.Sub(target)))
	for _, s := range raw[1:] {
		d := math.Abs(float64(s.Time.Sub(target)))
		if d < bestDiff {
			best, bestDiff = s, d
		}
	}
	return best
}
