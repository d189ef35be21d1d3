package chart

import (
	"time"

	"github.com/tonhe/inkboard/internal/axis"
	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/internal/series"
	"golang.org/x/image/font"
)

// Class is a bar's position relative to the threshold.
type Class int

const (
	Below Class = iota
	Crossing
	Above
)

func (c Class) String() string {
	switch c {
	case Crossing:
		return "crossing"
	case Above:
		return "above"
	}
	return "below"
}

// Bar is one laid out bar. It spans columns X..X+Width and rows
// Top..Bottom, both inclusive.
type Bar struct {
	Index  int
	Sample series.Sample
	X      int
	Width  int
	Top    int
	Bottom int
	Class  Class
	// Split is the row where a crossing bar changes style.
	Split int
}

// Center is the bar's horizontal midpoint.
func (b Bar) Center() int { return b.X + b.Width/2 }

// Segments returns the row ranges drawn solid and light. A range with
// from > to is empty.
func (b Bar) Segments() (solidFrom, solidTo, lightFrom, lightTo int) {
	switch b.Class {
	case Crossing:
		return b.Split, b.Bottom, b.Top, b.Split
	case Above:
		return 1, 0, b.Top, b.Bottom
	}
	return b.Top, b.Bottom, 1, 0
}

// Classifier assigns a Class from a bar's pixel span, the threshold row
// and the underlying values.
type Classifier func(top, bottom, thresholdY int, value, threshold float64) Class

// SplitAtThreshold classifies by pixels: a bar strictly straddling the
// threshold row is Crossing, a bar wholly above it is Above, anything
// else, including a bar touching the row from below, is Below.
func SplitAtThreshold(top, bottom, thresholdY int, _, _ float64) Class {
	switch {
	case top < thresholdY && thresholdY < bottom:
		return Crossing
	case bottom <= thresholdY:
		return Above
	}
	return Below
}

// WholeBar classifies by value only: strictly greater than the threshold
// is Above, otherwise Below. Bars are never split.
func WholeBar(_, _, _ int, value, threshold float64) Class {
	if value > threshold {
		return Above
	}
	return Below
}

// LightStyle is how the above-threshold part of a bar is painted.
type LightStyle int

const (
	// CheckerStyle fills with a 2x2 checkerboard.
	CheckerStyle LightStyle = iota
	// OutlineStyle draws a 2 pixel border around a white interior.
	OutlineStyle
)

func (s LightStyle) String() string {
	if s == OutlineStyle {
		return "outline"
	}
	return "checker"
}

// paint draws the light region spanning rows top..bottom. A Checker
// region excludes its bottom row and right column, as the PIL original did.
func (s LightStyle) paint(dst *raster.Bitmap, x, w, top, bottom int) {
	if s == OutlineStyle {
		dst.OutlineRect(x, top, x+w, bottom, 2, raster.Black, raster.White)
		return
	}
	if bottom-1 < top {
		return
	}
	dst.Checker(x, top, x+w-1, bottom-1, raster.Black)
}

// TickMode selects which bars get a tick mark under the chart.
type TickMode int

const (
	TicksLabeled TickMode = iota
	TicksEveryBar
	TicksNone
)

// LabelRule reports whether bar i, starting at t, gets a time label.
type LabelRule func(i int, t time.Time) bool

// EveryNth labels the first bar and every nth after it.
func EveryNth(n int) LabelRule {
	return func(i int, _ time.Time) bool { return n > 0 && i%n == 0 }
}

// EveryNthHour labels bars starting on a full hour that is either the
// first bar or an hour divisible by n.
func EveryNthHour(n int) LabelRule {
	return func(i int, t time.Time) bool {
		return t.Minute() == 0 && (i == 0 || (n > 0 && t.Hour()%n == 0))
	}
}

// Faces resolves font faces by pixel size.
type Faces interface {
	Face(size int) font.Face
}

// Options parameterise a Renderer.
type Options struct {
	Cadence     series.Cadence
	Spacing     int
	Style       LightStyle
	Classify    Classifier
	Gridlines   bool
	ZeroLine    bool
	GridFormat  string
	Labels      LabelRule
	Ticks       TickMode
	LabelOffset int
	LabelSize   int
	Marker      bool
}

// HourlyOptions is the preset for hourly bars: outlined light style,
// a tick under every bar and a label every third bar.
func HourlyOptions() Options {
	return Options{
		Cadence:     series.Hourly,
		Spacing:     3,
		Style:       OutlineStyle,
		Classify:    SplitAtThreshold,
		GridFormat:  "%.1f",
		Labels:      EveryNth(3),
		Ticks:       TicksEveryBar,
		LabelOffset: 8,
		LabelSize:   14,
		Marker:      true,
	}
}

// QuarterHourOptions is the preset for quarter-hour bars: checkerboard
// light style, dashed min/max gridlines, a solid zero line and a label
// every third full hour.
func QuarterHourOptions() Options {
	return Options{
		Cadence:     series.QuarterHour,
		Spacing:     2,
		Style:       CheckerStyle,
		Classify:    SplitAtThreshold,
		Gridlines:   true,
		ZeroLine:    true,
		GridFormat:  "%.1f",
		Labels:      EveryNthHour(3),
		Ticks:       TicksLabeled,
		LabelOffset: 8,
		LabelSize:   14,
		Marker:      true,
	}
}

// Renderer draws bar charts with a fixed set of Options.
type Renderer struct {
	Options
	Faces Faces
}

// NewRenderer creates a Renderer. A nil Classify defaults to SplitAtThreshold.
func NewRenderer(opts Options, faces Faces) *Renderer {
	if opts.Classify == nil {
		opts.Classify = SplitAtThreshold
	}
	if opts.Labels == nil {
		opts.Labels = EveryNth(3)
	}
	if opts.GridFormat == "" {
		opts.GridFormat = "%.1f"
	}
	if opts.LabelSize == 0 {
		opts.LabelSize = 14
	}
	return &Renderer{Options: opts, Faces: faces}
}

// Layout describes what RenderBars drew.
type Layout struct {
	Geometry   Geometry
	Domain     axis.Domain
	Bars       []Bar
	ThresholdY int
	Current    int
}

// Arrange lays out samples and assigns each bar a class without drawing.
func (r *Renderer) Arrange(g Geometry, samples []series.Sample, d axis.Domain, threshold float64) Layout {
	g.Spacing = r.Spacing
	bars := g.Bars(samples, d)
	ty := g.ValueY(threshold, d)
	for i := range bars {
		b := &bars[i]
		b.Class = r.Classify(b.Top, b.Bottom, ty, b.Sample.Value, threshold)
		if b.Class == Crossing {
			b.Split = ty
		}
	}
	return Layout{Geometry: g, Domain: d, Bars: bars, ThresholdY: ty, Current: -1}
}

// RenderBars draws samples as bars styled against threshold, plus the
// configured gridlines, time ticks and current-slot marker. now may be
// nil to skip the marker. Fewer than two samples draw nothing.
func (r *Renderer) RenderBars(dst *raster.Bitmap, g Geometry, samples []series.Sample, d axis.Domain, threshold float64, now *time.Time) Layout {
	if len(samples) < 2 {
		return Layout{Geometry: g, Domain: d, Current: -1}
	}
	layout := r.Arrange(g, samples, d, threshold)
	g = layout.Geometry

	if r.Gridlines {
		r.drawGridlines(dst, g, d)
	}
	if r.ZeroLine {
		if zy := g.ValueY(0, d); zy >= g.Origin.Y && zy <= g.Bottom() {
			dst.HLine(g.Origin.X, g.Right(), zy, 2, raster.Black)
		}
	}
	for _, b := range layout.Bars {
		r.drawBar(dst, b)
	}
	if now != nil {
		layout.Current = series.CurrentIndex(samples, *now, r.Cadence)
	}
	r.drawTimeAxis(dst, g, layout)
	return layout
}

func (r *Renderer) drawBar(dst *raster.Bitmap, b Bar) {
	right := b.X + b.Width
	switch b.Class {
	case Crossing:
		dst.FillRect(b.X, b.Split, right, b.Bottom, raster.Black)
		r.Style.paint(dst, b.X, b.Width, b.Top, b.Split)
	case Above:
		r.Style.paint(dst, b.X, b.Width, b.Top, b.Bottom)
	default:
		dst.FillRect(b.X, b.Top, right, b.Bottom, raster.Black)
	}
}
