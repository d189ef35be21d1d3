package panel

import (
	"fmt"
	"time"

	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/internal/series"
)

// InfoColumnWidth is the width of the black side column.
const InfoColumnWidth = 160

// InfoSection is one appliance entry in the side column.
type InfoSection struct {
	Label    string
	Schedule series.ScheduleRange
}

// InfoColumn fills the right edge with a black column: the clock and
// date on top, then one section per appliance with its planned start
// and end, or "--:--" when nothing is planned. weekdays starts on Monday.
func InfoColumn(dst *raster.Bitmap, faces Faces, now time.Time, weekdays [7]string, sections []InfoSection) {
	w, h := dst.Width(), dst.Height()
	left := w - InfoColumnWidth
	cx := left + InfoColumnWidth/2
	dst.FillRect(left, 0, w, h, raster.Black)

	n := 1 + len(sections)
	sh := h / n

	clock := now.Format("15:04")
	date := DateLabel(now, weekdays)
	big, dateFace := faces.Face(32), faces.Face(20)
	raster.CenteredText(dst, big, cx, sh/2-raster.TextHeight(big, clock)-5, clock, raster.White)
	raster.CenteredText(dst, dateFace, cx, sh/2+5, date, raster.White)

	small, value := faces.Face(14), faces.Face(24)
	for i, s := range sections {
		top := (i + 1) * sh
		dst.HLine(left+10, w-10, top, 2, raster.White)
		raster.CenteredText(dst, small, cx, top+10, s.Label, raster.White)

		mid := top + sh/2
		if !s.Schedule.Valid() {
			empty := FormatClock(time.Time{})
			raster.CenteredText(dst, value, cx, mid-raster.TextHeight(value, empty)/2, empty, raster.White)
			continue
		}
		start, end := FormatClock(s.Schedule.Start), FormatClock(s.Schedule.End)
		raster.CenteredText(dst, value, cx, mid-raster.TextHeight(value, start)-10, start, raster.White)
		raster.CenteredText(dst, value, cx, mid+10, end, raster.White)
	}
}

// DateLabel formats t as "<weekday> <day>.<month>." using weekdays,
// which starts on Monday.
func DateLabel(t time.Time, weekdays [7]string) string {
	return fmt.Sprintf("%s %d.%d.", weekdays[(int(t.Weekday())+6)%7], t.Day(), int(t.Month()))
}
