package series

// Stats summarises a window: extremes with their samples and the mean.
type Stats struct {
	Min      Sample
	Max      Sample
	MinIndex int
	MaxIndex int
	Mean     float64
	Count    int
}

// Summarize computes min, max and mean. Ties on min or max go to the
// first occurrence. ok is false for an empty input.
func Summarize(samples []Sample) (Stats, bool) {
	if len(samples) == 0 {
		return Stats{}, false
	}
	st := Stats{Min: samples[0], Max: samples[0], Count: len(samples)}
	sum := 0.0
	for i, s := range samples {
		sum += s.Value
		if s.Value < st.Min.Value {
			st.Min, st.MinIndex = s, i
		}
		if s.Value > st.Max.Value {
			st.Max, st.MaxIndex = s, i
		}
	}
	st.Mean = sum / float64(len(samples))
	return st, true
}

// Mean returns the arithmetic mean of samples, or false when empty.
func Mean(samples []Sample) (float64, bool) {
	st, ok := Summarize(samples)
	return st.Mean, ok
}

// MinMax returns the extremes of values. Empty input returns ok=false.
func MinMax(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}
