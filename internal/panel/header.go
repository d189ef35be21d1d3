package panel

import (
	"time"

	"github.com/tonhe/inkboard/internal/assets"
	"github.com/tonhe/inkboard/internal/raster"
)

// Header draws the title at the top left and, when showClock is set,
// the time at the top right.
func Header(dst *raster.Bitmap, faces Faces, title string, now time.Time, showClock bool) {
	raster.Text(dst, faces.Face(24), 20, 15, title, raster.Black)
	if showClock {
		raster.RightText(dst, faces.Face(36), dst.Width()-20, 10, now.Format("15:04"), raster.Black)
	}
}

// CurrentValue draws the headline value at (x, y) as "<value> <symbol>",
// with "--" for a missing value. When both value and mean are known a
// face follows the text: smiling when value is below mean.
func CurrentValue(dst *raster.Bitmap, a assets.Provider, x, y int, value *float64, symbol string, mean *float64) string {
	text := FormatOptional(value, "%.2f") + " " + symbol
	face := a.Face(60)
	raster.Text(dst, face, x, y, text, raster.Black)
	if value != nil && mean != nil {
		a.Smiley(dst, x+raster.TextWidth(face, text)+25, y+10, 25, *value < *mean)
	}
	return text
}
