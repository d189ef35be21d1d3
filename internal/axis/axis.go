// Package axis derives value-axis ranges for charts.
package axis

import "math"

// minSpan is the span forced onto a degenerate domain.
const minSpan = 1.0

// spanEpsilon is the span below which a domain counts as degenerate.
const spanEpsilon = 1e-9

// Domain is the value range mapped onto a chart's pixel height. Max is
// always strictly greater than Min for domains built by this package.
type Domain struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// Normalize maps v into [0,1] relative to the domain, clamping outliers.
func (d Domain) Normalize(v float64) float64 {
	span := d.Span()
	if span <= 0 {
		return 0
	}
	n := (v - d.Min) / span
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// Contains reports whether v lies inside the domain, bounds included.
func (d Domain) Contains(v float64) bool { return v >= d.Min && v <= d.Max }

// Strategy computes a domain for a series of values.
type Strategy interface {
	Domain(values []float64) Domain
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(values []float64) Domain

// Domain implements Strategy.
func (f StrategyFunc) Domain(values []float64) Domain { return f(values) }

// ComputeDomain applies zero-inclusion and proportional top padding:
// when includeZeroBelow is set and the data minimum lies below it, the
// axis starts at min(0, dataMin); the top is padded by a fraction of the
// resulting span.
func ComputeDomain(values []float64, includeZeroBelow *float64, topPad float64) Domain {
	lo, hi, ok := extremes(values)
	if !ok {
		return Domain{Min: 0, Max: minSpan}
	}
	axisMin := zeroAware(lo, includeZeroBelow)
	return guard(Domain{Min: axisMin, Max: hi + (hi-axisMin)*topPad})
}

// ComputeDomainMaxOnly is ComputeDomain with padding taken off the data
// maximum alone rather than off the span.
func ComputeDomainMaxOnly(values []float64, includeZeroBelow *float64, topPad float64) Domain {
	lo, hi, ok := extremes(values)
	if !ok {
		return Domain{Min: 0, Max: minSpan}
	}
	axisMin := zeroAware(lo, includeZeroBelow)
	return guard(Domain{Min: axisMin, Max: hi + hi*topPad})
}

// ComputeLiftedDomain lowers the floor below the data minimum by
// floorFrac of the data range, never below zero, then pads the top by
// topPad of the resulting span. It keeps small differences visible when
// all values sit far from zero.
func ComputeLiftedDomain(values []float64, floorFrac, topPad float64) Domain {
	lo, hi, ok := extremes(values)
	if !ok {
		return Domain{Min: 0, Max: minSpan}
	}
	axisMin := math.Max(0, lo-(hi-lo)*floorFrac)
	return guard(Domain{Min: axisMin, Max: hi + (hi-axisMin)*topPad})
}

// ComputeRoundedDomain pads both sides by max(minPad, range*padFrac) and
// rounds each bound to the nearest whole unit, half to even.
func ComputeRoundedDomain(values []float64, minPad, padFrac float64) Domain {
	lo, hi, ok := extremes(values)
	if !ok {
		return Domain{Min: 0, Max: minSpan}
	}
	padding := math.Max(minPad, (hi-lo)*padFrac)
	return guard(Domain{
		Min: math.RoundToEven(lo - padding),
		Max: math.RoundToEven(hi + padding),
	})
}

// ZeroAware returns the strategy used by the quarter-hour price chart.
func ZeroAware(includeZeroBelow, topPad float64) Strategy {
	return StrategyFunc(func(values []float64) Domain {
		return ComputeDomainMaxOnly(values, &includeZeroBelow, topPad)
	})
}

// Lifted returns the strategy used by the hourly price chart.
func Lifted(floorFrac, topPad float64) Strategy {
	return StrategyFunc(func(values []float64) Domain {
		return ComputeLiftedDomain(values, floorFrac, topPad)
	})
}

// Temperature returns the rounded strategy used by temperature graphs.
func Temperature() Strategy {
	return StrategyFunc(func(values []float64) Domain {
		return ComputeRoundedDomain(values, 0.5, 0.1)
	})
}

func zeroAware(lo float64, includeZeroBelow *float64) float64 {
	if includeZeroBelow != nil && lo < *includeZeroBelow {
		return math.Min(0, lo)
	}
	return lo
}

func guard(d Domain) Domain {
	if math.IsNaN(d.Min) || math.IsInf(d.Min, 0) {
		d.Min = 0
	}
	if math.IsNaN(d.Max) || math.IsInf(d.Max, 0) || d.Max-d.Min < spanEpsilon {
		d.Max = d.Min + minSpan
	}
	return d
}

func extremes(values []float64) (lo, hi float64, ok bool) {
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}
