package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/series"
	"github.com/tonhe/inkboard/internal/source"
)

// FetchFunc loads the data for one render. It may return fallback data
// together with an error.
type FetchFunc func(ctx context.Context, now time.Time) (any, error)

// Job is everything needed to render one dashboard repeatedly.
type Job struct {
	Name     string
	Interval time.Duration
	Fetch    FetchFunc
	Composer *dashboard.Composer
	Clock    dashboard.Clock
	// OutputDir, when set, receives <FileBase>.png and, with WriteRaw,
	// <FileBase>.raw after every render.
	OutputDir string
	FileBase  string
	WriteRaw  bool
}

// FetchElectricity adapts a source.Electricity.
func FetchElectricity(src source.Electricity) FetchFunc {
	return func(ctx context.Context, now time.Time) (any, error) {
		return src.FetchElectricity(ctx, now)
	}
}

// FetchWeather adapts a source.Weather.
func FetchWeather(src source.Weather) FetchFunc {
	return func(ctx context.Context, now time.Time) (any, error) {
		return src.FetchWeather(ctx, now)
	}
}

// FetchSnapshot replays a saved snapshot on every render.
func FetchSnapshot(snap *dashboard.Snapshot) FetchFunc {
	return func(context.Context, time.Time) (any, error) {
		return snap.Data(), nil
	}
}

// FileBase names the output files of a dashboard.
func FileBase(name string, cadence series.Cadence) string {
	switch {
	case name == dashboard.Electricity && cadence == series.Hourly:
		return "electricity_display_h"
	case name == dashboard.Electricity:
		return "electricity_display"
	}
	return name + "_display"
}

func (j Job) validate() error {
	switch {
	case j.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidJob)
	case j.Fetch == nil:
		return fmt.Errorf("%w: %s has no fetch", ErrInvalidJob, j.Name)
	case j.Composer == nil:
		return fmt.Errorf("%w: %s has no composer", ErrInvalidJob, j.Name)
	case j.Interval <= 0:
		return fmt.Errorf("%w: %s interval %v", ErrInvalidJob, j.Name, j.Interval)
	}
	return nil
}

// Render fetches, composes and encodes one frame at the job's current
// time. The returned error is only for failures that leave no frame;
// source and compose problems are carried in Frame.Err.
func Render(ctx context.Context, j Job) (*Frame, error) {
	clock := j.Clock
	if clock == nil {
		clock = dashboard.SystemClock{}
	}
	now := clock.Now()

	data, fetchErr := j.Fetch(ctx, now)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	bmp, composeErr := j.Composer.WithClock(dashboard.FixedClock{T: now}).Compose(j.Name, data)

	var buf bytes.Buffer
	if err := bmp.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode %s: %w", j.Name, err)
	}
	f := &Frame{
		ID:        uuid.NewString(),
		Dashboard: j.Name,
		Rendered:  now,
		Bitmap:    bmp,
		PNG:       buf.Bytes(),
		Raw:       bmp.Bytes(),
		Series:    dashboard.PrimarySeries(data),
		Data:      data,
		Err:       errors.Join(fetchErr, composeErr),
	}
	if j.OutputDir != "" {
		base := j.FileBase
		if base == "" {
			base = FileBase(j.Name, j.Composer.Options().Cadence)
		}
		if _, err := WriteFrame(f, filepath.Join(j.OutputDir, base), j.WriteRaw); err != nil {
			return f, err
		}
	}
	return f, nil
}
