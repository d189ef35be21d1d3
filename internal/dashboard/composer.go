// Package dashboard composes full-canvas dashboards from source data.
package dashboard

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/tonhe/inkboard/internal/assets"
	"github.com/tonhe/inkboard/internal/axis"
	"github.com/tonhe/inkboard/internal/chart"
	"github.com/tonhe/inkboard/internal/panel"
	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/internal/series"
)

// Canvas size of the 7.5" panel.
const (
	DefaultWidth  = 800
	DefaultHeight = 480
)

// maxInfoSections is how many appliances fit in the side column.
const maxInfoSections = 3

var (
	// ErrInvalidSchedule is reported for a schedule whose end precedes its start.
	ErrInvalidSchedule  = errors.New("schedule ends before it starts")
	ErrUnknownDashboard = errors.New("unknown dashboard")
)

// SectionError reports a dashboard section that could not be drawn.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string { return e.Section + ": " + e.Err.Error() }

func (e *SectionError) Unwrap() error { return e.Err }

// Options configure a Composer.
type Options struct {
	Width  int
	Height int
	// Cadence of the price chart. Hourly aggregates the prices and adds
	// the side info column.
	Cadence  series.Cadence
	Style    chart.LightStyle
	Classify chart.Classifier
	Labels   Labels
	// Location is used for the weather dashboard; the price dashboard
	// follows the zone of its samples.
	Location *time.Location
}

// DefaultOptions returns the hourly layout at 800x480.
func DefaultOptions() Options {
	return Options{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Cadence:  series.Hourly,
		Style:    chart.OutlineStyle,
		Classify: chart.SplitAtThreshold,
		Labels:   DefaultLabels(),
		Location: time.Local,
	}
}

// Composer draws dashboards. It holds no per-render state, so one
// Composer may be shared, but each call gets its own canvas.
type Composer struct {
	opts   Options
	assets assets.Provider
	clock  Clock
	logger *slog.Logger
}

// NewComposer creates a Composer. A nil clock reads the system clock.
func NewComposer(opts Options, a assets.Provider, clock Clock, logger *slog.Logger) *Composer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	opts.Labels = opts.Labels.Merge(DefaultLabels())
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Composer{opts: opts, assets: a, clock: clock, logger: logger}
}

// WithClock returns a copy of c reading time from clock.
func (c *Composer) WithClock(clock Clock) *Composer {
	cp := *c
	cp.clock = clock
	return &cp
}

// Options returns the effective options.
func (c *Composer) Options() Options { return c.opts }

// Compose draws the dashboard called name from data, which must be
// ElectricityData or WeatherData.
func (c *Composer) Compose(name string, data any) (*raster.Bitmap, error) {
	switch d := data.(type) {
	case ElectricityData:
		return c.ComposeElectricity(d)
	case *ElectricityData:
		return c.ComposeElectricity(*d)
	case WeatherData:
		return c.ComposeWeather(d)
	case *WeatherData:
		return c.ComposeWeather(*d)
	}
	return raster.New(c.opts.Width, c.opts.Height), &SectionError{Section: name, Err: ErrUnknownDashboard}
}

// ComposeElectricity draws the spot price dashboard. The bitmap is always
// the full canvas; the error joins a SectionError for every section that
// was skipped because of malformed input.
func (c *Composer) ComposeElectricity(in ElectricityData) (*raster.Bitmap, error) {
	dst := raster.New(c.opts.Width, c.opts.Height)
	var errs []error

	prices := in.Prices
	if err := series.Validate(prices); err != nil {
		errs = append(errs, &SectionError{Section: "prices", Err: err})
		prices = nil
	}
	now := series.LocalNow(prices, c.clock.Now().In(c.opts.Location))
	hourly := c.opts.Cadence == series.Hourly

	panel.Header(dst, c.assets, c.opts.Labels.CurrentPrice, now, !hourly)

	// Bars, overlays and stats slots follow the cadence of the charted
	// data, which is the source's own in the quarter-hour layout.
	cadence := series.Hourly
	if !hourly {
		cadence = dataCadence(in.Cadence, prices)
	}

	calendar := series.SelectCalendarRange(prices, series.StartOfDay(now), 2)
	window := series.SelectNext24h(calendar, now)
	if hourly {
		calendar = series.AggregateHourly(calendar)
		window = series.AggregateHourly(window)
	}
	if err := series.ValidateWindow(window); err != nil {
		errs = append(errs, &SectionError{Section: "chart", Err: err})
		window = nil
	}

	current := in.Current
	if current == nil {
		if v, ok := series.ValueAt(prices, now, in.Cadence); ok {
			current = &v
		}
	}
	var mean *float64
	if m, ok := series.Mean(calendar); ok {
		mean = &m
	}
	panel.CurrentValue(dst, c.assets, 20, 55, current, in.Symbol(), mean)

	g := c.priceGeometry(hourly)
	if hourly {
		dst.HLine(20, c.opts.Width-20, g.Baseline(), 2, raster.Black)
	}
	if len(window) >= 2 {
		d := c.priceDomain(hourly).Domain(series.Values(window))
		threshold, _ := series.Mean(window)
		layout := c.renderer(hourly, cadence).RenderBars(dst, g, window, d, threshold, &now)
		for _, a := range in.Appliances {
			if !a.Overlay || a.Schedule.Start.IsZero() {
				continue
			}
			if !a.Schedule.Valid() {
				errs = append(errs, &SectionError{Section: "overlay " + a.Name, Err: ErrInvalidSchedule})
				continue
			}
			layout.RenderScheduleBracket(dst, cadence, a.Schedule, a.Letter, c.assets.Face(16))
		}
	} else {
		c.logger.Debug("chart_skipped", "dashboard", Electricity, "samples", len(window))
	}

	statsLayout := panel.QuarterHourStatsLayout(c.opts.Width)
	if hourly {
		statsLayout = panel.HourlyStatsLayout(c.opts.Width)
	}
	l := c.opts.Labels
	panel.RenderStats(dst, c.assets, window, cadence, in.Currency,
		panel.StatsLabels{Min: l.Min, Avg: l.Avg, Max: l.Max}, statsLayout)

	if hourly {
		var sections []panel.InfoSection
		for i, a := range in.Appliances {
			if i == maxInfoSections {
				break
			}
			sections = append(sections, panel.InfoSection{
				Label: a.Name,
				Schedule: series.ScheduleRange{
					Start: a.Schedule.Start.In(now.Location()),
					End:   a.Schedule.End.In(now.Location()),
				},
			})
		}
		panel.InfoColumn(dst, c.assets, now, l.Weekdays, sections)
	}

	c.logger.Debug("compose_done", "dashboard", Electricity, "window", len(window), "errors", len(errs))
	return dst, errors.Join(errs...)
}

// ComposeWeather draws the weather dashboard.
func (c *Composer) ComposeWeather(in WeatherData) (*raster.Bitmap, error) {
	dst := raster.New(c.opts.Width, c.opts.Height)
	var errs []error
	now := c.clock.Now().In(c.opts.Location)
	l := c.opts.Labels

	panel.WeatherHeader(dst, c.assets, now)
	panel.Temperature(dst, c.assets, in.Temperature, in.FeelsLike, l.FeelsLike)
	panel.Metrics(dst, c.assets, []panel.Metric{
		{Label: l.Humidity, Value: in.Humidity, Format: "%.0f %%"},
		{Label: l.Pressure, Value: in.Pressure, Format: "%.1f hPa"},
		{Label: l.UV, Value: in.UV, Format: "%.1f"},
	})

	history := in.History
	if err := series.Validate(history); err != nil {
		errs = append(errs, &SectionError{Section: "history", Err: err})
		history = nil
	}
	hourlyTemps := series.ResampleToCadence(history, 1, now, 25)
	if len(hourlyTemps) >= 2 {
		d := axis.Temperature().Domain(series.Values(hourlyTemps))
		chart.RenderLine(dst, chart.NewGeometry(30, 245, 400, 70, 0), hourlyTemps, d, chart.LineOptions{
			Gridlines:   true,
			GridFormat:  "%.0f°",
			Labels:      chart.EveryNth(6),
			LabelOffset: 6,
		}, c.assets.Face(12))
	} else {
		c.logger.Debug("chart_skipped", "dashboard", Weather, "samples", len(hourlyTemps))
	}

	panel.WindRain(dst, c.assets, in.WindSpeed, in.WindDirection, in.RainDaily,
		panel.WindRainLabels{Wind: l.Wind, Rain: l.Rain})

	updated := in.Observed
	if updated.IsZero() {
		updated = now
	}
	panel.Footer(dst, c.assets, updated.In(c.opts.Location), l.Updated)

	c.logger.Debug("compose_done", "dashboard", Weather, "history", len(hourlyTemps), "errors", len(errs))
	return dst, errors.Join(errs...)
}

func (c *Composer) priceGeometry(hourly bool) chart.Geometry {
	if hourly {
		return chart.NewGeometry(30, 135, c.opts.Width-200, 225, 3)
	}
	return chart.NewGeometry(10, 135, c.opts.Width-60, 225, 2)
}

func (c *Composer) priceDomain(hourly bool) axis.Strategy {
	if hourly {
		return axis.Lifted(0.15, 0.1)
	}
	return axis.ZeroAware(2.0, 0.1)
}

func (c *Composer) renderer(hourly bool, cadence series.Cadence) *chart.Renderer {
	opts := chart.QuarterHourOptions()
	if hourly {
		opts = chart.HourlyOptions()
	}
	opts.Cadence = cadence
	opts.Style = c.opts.Style
	if c.opts.Classify != nil {
		opts.Classify = c.opts.Classify
	}
	return chart.NewRenderer(opts, c.assets)
}

// dataCadence trusts an explicit hourly cadence and otherwise looks at
// the sample spacing, since QuarterHour is also the zero value.
func dataCadence(declared series.Cadence, prices []series.Sample) series.Cadence {
	if declared == series.Hourly {
		return declared
	}
	return series.DetectCadence(prices)
}
