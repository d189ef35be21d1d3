package server

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/tonhe/inkboard/internal/series"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var errTooFewSamples = errors.New("need at least two samples to chart")

const (
	seriesChartWidth  = 1200
	seriesChartHeight = 400
)

// seriesChart renders the full input series of the latest frame, before
// any windowing or aggregation, as an anti-aliased PNG for debugging.
func (s *Server) seriesChart(w http.ResponseWriter, r *http.Request) {
	f, err := s.frames.Latest(mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := renderSeries(&buf, f.Dashboard, f.Series, f.Rendered); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-ID", f.ID)
	w.Write(buf.Bytes())
}

func renderSeries(buf *bytes.Buffer, name string, samples []series.Sample, now time.Time) error {
	if len(samples) < 2 {
		return errTooFewSamples
	}
	samples = series.Sorted(samples)
	ts := gochart.TimeSeries{
		Name: name,
		Style: gochart.Style{
			StrokeColor: drawing.ColorBlack,
			StrokeWidth: 2,
		},
		XValues: make([]time.Time, len(samples)),
		YValues: make([]float64, len(samples)),
	}
	for i, sm := range samples {
		ts.XValues[i] = sm.Time
		ts.YValues[i] = sm.Value
	}

	graph := gochart.Chart{
		Title:  name,
		Width:  seriesChartWidth,
		Height: seriesChartHeight,
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat("02.01 15:04"),
		},
		YAxis: gochart.YAxis{
			ValueFormatter: func(v any) string {
				return gochart.FloatValueFormatterWithFormat(v, "%.2f")
			},
		},
		Series: []gochart.Series{ts},
	}
	if !now.IsZero() && !now.Before(samples[0].Time) && !now.After(samples[len(samples)-1].Time) {
		graph.Series = append(graph.Series, gochart.TimeSeries{
			Name:    "now",
			Style:   gochart.Style{StrokeColor: drawing.ColorRed, StrokeWidth: 1, StrokeDashArray: []float64{4, 4}},
			XValues: []time.Time{now, now},
			YValues: minMaxPair(samples),
		})
	}
	return graph.Render(gochart.PNG, buf)
}

func minMaxPair(samples []series.Sample) []float64 {
	lo, hi := samples[0].Value, samples[0].Value
	for _, s := range samples[1:] {
		lo = min(lo, s.Value)
		hi = max(hi, s.Value)
	}
	return []float64{lo, hi}
}
