package components

import (
	"fmt"
	"strings"
	"time"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline draws the last width values of data, right aligned.
func Sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(data)))
	spread := hi - lo
	for _, v := range data {
		if spread == 0 {
			sb.WriteRune(blocks[3])
			continue
		}
		idx := int((v - lo) / spread * float64(len(blocks)-1))
		sb.WriteRune(blocks[min(idx, len(blocks)-1)])
	}
	return sb.String()
}

// FormatOffset renders a time-travel offset as "now", "+2h" or "-1h45m".
func FormatOffset(d time.Duration) string {
	if d == 0 {
		return "now"
	}
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	h, m := int(d/time.Hour), int(d%time.Hour/time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%s%dm", sign, m)
	case m == 0:
		return fmt.Sprintf("%s%dh", sign, h)
	}
	return fmt.Sprintf("%s%dh%02dm", sign, h, m)
}
