// Package panel draws the non-chart parts of a dashboard: headers,
// current readings, statistics and the side info column.
package panel

import (
	"fmt"
	"time"

	"golang.org/x/image/font"
)

// Faces resolves font faces by pixel size.
type Faces interface {
	Face(size int) font.Face
}

// Placeholder is drawn in place of a missing number.
const Placeholder = "--"

// FormatOptional renders v with format, or the placeholder when v is nil.
func FormatOptional(v *float64, format string) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf(format, *v)
}

// FormatSlot formats a sample's slot as "HH:MM-HH:MM".
func FormatSlot(start time.Time, length time.Duration) string {
	return start.Format("15:04") + "-" + start.Add(length).Format("15:04")
}

// FormatClock formats t as "HH:MM", or "--:--" for the zero time.
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return Placeholder + ":" + Placeholder
	}
	return t.Format("15:04")
}
