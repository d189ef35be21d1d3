package source

import (
	"hash/fnv"
	"math"
	"time"

	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/series"
)

// MockElectricity returns two days of quarter-hour prices from local
// midnight of now: cheap nights, a day plateau and an evening peak, each
// slot jittered by a hash of its timestamp. The same now always yields
// the same data.
func MockElectricity(now time.Time, currency string) dashboard.ElectricityData {
	if currency == "" {
		currency = dashboard.DefaultCurrency
	}
	start := series.StartOfDay(now)
	prices := make([]series.Sample, 0, 192)
	for i := 0; i < 192; i++ {
		t := start.Add(time.Duration(i) * 15 * time.Minute)
		hour := float64(t.Hour()) + float64(t.Minute())/60
		base := 3.5
		if hour >= 8 && hour < 20 {
			base = 5.0
		}
		if hour >= 16 && hour < 19 {
			base = 6.0
		}
		price := base + float64(jitter(t)%100)/100
		prices = append(prices, series.Sample{Time: t, Value: math.Round(price*1000) / 1000})
	}
	data := dashboard.ElectricityData{Prices: prices, Cadence: series.QuarterHour, Currency: currency}
	if v, ok := series.ValueAt(prices, now, series.QuarterHour); ok {
		data.Current = &v
	}
	return data
}

// MockWeather returns a fixed station reading and a day of hourly
// temperatures following a sine that peaks mid-afternoon.
func MockWeather(now time.Time) dashboard.WeatherData {
	f := func(v float64) *float64 { return &v }
	end := series.HourStart(now)
	history := make([]series.Sample, 0, 25)
	for k := 24; k >= 0; k-- {
		t := end.Add(-time.Duration(k) * time.Hour)
		v := 15 + 7*math.Sin((float64(t.Hour())-9)/24*2*math.Pi)
		history = append(history, series.Sample{Time: t, Value: math.Round(v*10) / 10})
	}
	return dashboard.WeatherData{
		Temperature:    f(22.5),
		FeelsLike:      f(21.8),
		Humidity:       f(65),
		Pressure:       f(1013.2),
		WindSpeed:      f(5.5),
		WindDirection:  f(180),
		RainRate:       f(0),
		RainDaily:      f(2.5),
		UV:             f(3),
		SolarRadiation: f(450),
		Observed:       now,
		History:        history,
	}
}

func jitter(t time.Time) uint32 {
	h := fnv.New32a()
	h.Write([]byte(t.Format(time.RFC3339)))
	return h.Sum32()
}
