package source

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/series"
)

// WeatherSource combines a Station with a temperature history taken
// from Home Assistant or, failing that, from readings it has recorded.
type WeatherSource struct {
	Station           Station
	History           *series.History
	HA                *HomeAssistant
	TemperatureEntity string
	Logger            *slog.Logger
}

// FetchWeather implements Weather. Without a station, or when it cannot
// be read, it returns MockWeather and the cause.
func (s *WeatherSource) FetchWeather(ctx context.Context, now time.Time) (dashboard.WeatherData, error) {
	logger := s.logger()
	if s.Station == nil {
		return MockWeather(now), ErrNotConfigured
	}
	r, err := s.Station.Read(ctx)
	if err != nil {
		logger.Warn("source_fetch_failed", "source", "ecowitt", "error", err)
		return MockWeather(now), err
	}
	if r.Observed.IsZero() {
		r.Observed = now
	}
	if s.History != nil && r.Temperature != nil {
		s.History.Add(series.Sample{Time: r.Observed, Value: *r.Temperature})
	}
	return dashboard.WeatherData{
		Temperature:    r.Temperature,
		FeelsLike:      r.FeelsLike,
		Humidity:       r.Humidity,
		Pressure:       r.Pressure,
		WindSpeed:      r.WindSpeed,
		WindDirection:  r.WindDirection,
		RainRate:       r.RainRate,
		RainDaily:      r.RainDaily,
		UV:             r.UV,
		SolarRadiation: r.SolarRadiation,
		Observed:       r.Observed,
		History:        s.history(ctx, now),
	}, nil
}

func (s *WeatherSource) history(ctx context.Context, now time.Time) []series.Sample {
	if s.HA != nil && s.TemperatureEntity != "" {
		h, err := s.HA.History(ctx, s.TemperatureEntity, now.Add(-24*time.Hour), now)
		if err == nil && len(h) > 0 {
			return h
		}
		if err != nil {
			s.logger().Warn("source_fetch_failed", "source", "home_assistant", "entity", s.TemperatureEntity, "error", err)
		}
	}
	if s.History != nil {
		return s.History.Since(now.Add(-24 * time.Hour))
	}
	return nil
}

func (s *WeatherSource) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}
