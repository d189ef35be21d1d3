package panel

import (
	"fmt"

	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/internal/series"
)

// StatsLabels are the three column captions.
type StatsLabels struct {
	Min string
	Avg string
	Max string
}

// StatsLayout places the three-column summary.
type StatsLayout struct {
	// Width is split into three equal columns starting at x=0.
	Width int
	// Y is the value row; captions sit above it and slot times below.
	Y int
	// Rule draws a horizontal line above the columns from RuleLeft.
	Rule      bool
	RuleLeft  int
	LabelSize int
	ValueSize int
	TimeSize  int
}

// HourlyStatsLayout leaves room for the side info column.
func HourlyStatsLayout(canvasWidth int) StatsLayout {
	return StatsLayout{Width: canvasWidth - 180, Y: 423, Rule: true, RuleLeft: 20, LabelSize: 18, ValueSize: 30, TimeSize: 14}
}

// QuarterHourStatsLayout spans the whole canvas.
func QuarterHourStatsLayout(canvasWidth int) StatsLayout {
	return StatsLayout{Width: canvasWidth, Y: 423, LabelSize: 16, ValueSize: 28, TimeSize: 12}
}

// RenderStats draws min, mean and max of samples in three columns with
// separators. Min and max columns also show the slot they occurred in.
// Empty input draws nothing.
func RenderStats(dst *raster.Bitmap, faces Faces, samples []series.Sample, cadence series.Cadence, unit string, labels StatsLabels, l StatsLayout) (series.Stats, bool) {
	st, ok := series.Summarize(samples)
	if !ok {
		return st, false
	}
	section := l.Width / 3
	sepTop := l.Y - 30
	if l.Rule {
		dst.HLine(l.RuleLeft, l.Width, sepTop, 2, raster.Black)
		sepTop += 20
	}
	dst.VLine(section, sepTop, l.Y+40, 2, raster.Black)
	dst.VLine(2*section, sepTop, l.Y+40, 2, raster.Black)

	slot := cadence.Duration()
	columns := []struct {
		label string
		value float64
		when  string
	}{
		{labels.Min, st.Min.Value, FormatSlot(st.Min.Time, slot)},
		{labels.Avg, st.Mean, ""},
		{labels.Max, st.Max.Value, FormatSlot(st.Max.Time, slot)},
	}
	labelFace, valueFace, timeFace := faces.Face(l.LabelSize), faces.Face(l.ValueSize), faces.Face(l.TimeSize)
	for i, c := range columns {
		cx := i*section + section/2
		raster.CenteredText(dst, labelFace, cx, l.Y-28, c.label, raster.Black)

		value := fmt.Sprintf("%.2f", c.value)
		wv := raster.TextWidth(valueFace, value)
		total := wv + raster.TextWidth(labelFace, unit) + 3
		vx := cx - total/2
		raster.Text(dst, valueFace, vx, l.Y-5, value, raster.Black)
		raster.Text(dst, labelFace, vx+wv+3, l.Y+5, unit, raster.Black)

		if c.when != "" {
			raster.CenteredText(dst, timeFace, cx, l.Y+32, c.when, raster.Black)
		}
	}
	return st, true
}
