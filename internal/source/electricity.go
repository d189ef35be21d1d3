package source

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/series"
)

// ApplianceSpec names a deferrable load and its schedule entity.
type ApplianceSpec struct {
	Name    string
	Entity  string
	Letter  string
	Overlay bool
}

// ElectricitySource reads spot prices and appliance schedules from Home
// Assistant.
type ElectricitySource struct {
	HA         *HomeAssistant
	SpotEntity string
	Currency   string
	Appliances []ApplianceSpec
	Logger     *slog.Logger
}

// FetchElectricity implements Electricity. Without a client or entity,
// or when prices cannot be read, it returns MockElectricity and the
// cause. A failed schedule only leaves that appliance unscheduled.
func (s *ElectricitySource) FetchElectricity(ctx context.Context, now time.Time) (dashboard.ElectricityData, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.HA == nil || s.SpotEntity == "" {
		data := MockElectricity(now, s.Currency)
		data.Appliances = s.appliances()
		return data, ErrNotConfigured
	}

	prices, current, err := s.HA.SpotPrices(ctx, s.SpotEntity)
	if err != nil {
		logger.Warn("source_fetch_failed", "source", "home_assistant", "entity", s.SpotEntity, "error", err)
		data := MockElectricity(now, s.Currency)
		data.Appliances = s.appliances()
		return data, err
	}
	currency := s.Currency
	if currency == "" {
		currency = dashboard.DefaultCurrency
	}
	data := dashboard.ElectricityData{
		Prices:     prices,
		Cadence:    series.DetectCadence(prices),
		Current:    current,
		Currency:   currency,
		Appliances: s.appliances(),
	}
	for i, a := range s.Appliances {
		if a.Entity == "" {
			continue
		}
		r, ok, err := s.HA.DeferrableSchedule(ctx, a.Entity)
		if err != nil {
			logger.Warn("source_fetch_failed", "source", "home_assistant", "entity", a.Entity, "error", err)
			continue
		}
		if ok {
			data.Appliances[i].Schedule = r
		}
	}
	logger.Debug("source_fetched", "source", "home_assistant", "prices", len(prices), "cadence", data.Cadence)
	return data, nil
}

func (s *ElectricitySource) appliances() []dashboard.Appliance {
	out := make([]dashboard.Appliance, len(s.Appliances))
	for i, a := range s.Appliances {
		out[i] = dashboard.Appliance{Name: a.Name, Letter: a.Letter, Overlay: a.Overlay}
	}
	return out
}
