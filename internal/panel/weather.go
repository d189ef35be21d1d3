package panel

import (
	"math"
	"time"

	"github.com/tonhe/inkboard/internal/assets"
	"github.com/tonhe/inkboard/internal/raster"
)

// compassPoints are the sixteen Czech wind directions, clockwise from north.
var compassPoints = [16]string{
	"S", "SSV", "SV", "VSV", "V", "VJV", "JV", "JJV",
	"J", "JJZ", "JZ", "ZJZ", "Z", "ZSZ", "SZ", "SSZ",
}

// CompassPoint names the 16-point direction nearest to degrees.
func CompassPoint(degrees float64) string {
	i := int(math.RoundToEven(degrees/22.5)) % 16
	if i < 0 {
		i += 16
	}
	return compassPoints[i]
}

// WeatherHeader draws the long date, the time and the rule under them.
func WeatherHeader(dst *raster.Bitmap, faces Faces, now time.Time) {
	raster.Text(dst, faces.Face(24), 20, 20, now.Format("Monday, 02. January 2006"), raster.Black)
	raster.RightText(dst, faces.Face(28), dst.Width()-20, 15, now.Format("15:04"), raster.Black)
	dst.HLine(20, dst.Width()-20, 65, 2, raster.Black)
}

// Temperature draws the large reading at (30, 120) and the feels-like
// line below it when known.
func Temperature(dst *raster.Bitmap, faces Faces, temp, feelsLike *float64, feelsLabel string) {
	const x, y = 30, 120
	big := faces.Face(100)
	text := Placeholder + " °C"
	if temp != nil {
		text = FormatOptional(temp, "%.1f°C")
	}
	raster.Text(dst, big, x, y, text, raster.Black)
	if feelsLike != nil {
		raster.Text(dst, faces.Face(18), x, y+raster.TextHeight(big, text)+5, feelsLabel+": "+FormatOptional(feelsLike, "%.1f°C"), raster.Black)
	}
}

// Metric is one labelled reading in the metric column.
type Metric struct {
	Label  string
	Value  *float64
	Format string
}

// Metrics draws readings in fixed slots down the right half. A missing
// reading leaves its slot empty.
func Metrics(dst *raster.Bitmap, faces Faces, metrics []Metric) {
	const x, y0, spacing = 480, 90, 90
	label, value := faces.Face(20), faces.Face(36)
	for i, m := range metrics {
		if m.Value == nil {
			continue
		}
		y := y0 + i*spacing
		raster.Text(dst, label, x, y, m.Label, raster.Black)
		raster.Text(dst, value, x, y+25, FormatOptional(m.Value, m.Format), raster.Black)
	}
}

// WindRainLabels are the captions of the bottom row.
type WindRainLabels struct {
	Wind string
	Rain string
}

// WindRain draws the rule above the bottom row, wind speed with its
// compass point and an arrow, and the daily rain total.
func WindRain(dst *raster.Bitmap, a assets.Provider, speed, direction, rainDaily *float64, labels WindRainLabels) {
	const y = 360
	dst.HLine(20, dst.Width()-20, y-15, 2, raster.Black)
	label, value := a.Face(18), a.Face(26)

	if speed != nil {
		raster.Text(dst, label, 40, y, labels.Wind, raster.Black)
		text := FormatOptional(speed, "%.1f km/h")
		if direction != nil {
			text += " " + CompassPoint(*direction)
		}
		raster.Text(dst, value, 40, y+25, text, raster.Black)
		if direction != nil {
			a.WindArrow(dst, 40+raster.TextWidth(value, text)+30, y+40, 30, *direction)
		}
	}
	if rainDaily != nil {
		raster.Text(dst, label, 420, y, labels.Rain, raster.Black)
		raster.Text(dst, value, 420, y+25, FormatOptional(rainDaily, "%.1f mm"), raster.Black)
	}
}

// Footer draws "<label>: HH:MM:SS" at the bottom right.
func Footer(dst *raster.Bitmap, faces Faces, now time.Time, label string) {
	raster.RightText(dst, faces.Face(16), dst.Width()-20, dst.Height()-30, label+": "+now.Format("15:04:05"), raster.Black)
}
