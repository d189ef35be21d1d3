package dashboard

import (
	"time"

	"github.com/tonhe/inkboard/internal/series"
)

// Dashboard names.
const (
	Electricity = "electricity"
	Weather     = "weather"
)

// Names lists every dashboard this package can compose.
var Names = []string{Electricity, Weather}

// ElectricityData is everything the price dashboard shows.
type ElectricityData struct {
	// Prices must be ascending and share one zone.
	Prices []series.Sample `toml:"prices"`
	// Cadence of Prices as delivered by the source.
	Cadence    series.Cadence `toml:"cadence"`
	Current    *float64       `toml:"current,omitempty"`
	Currency   string         `toml:"currency"`
	Appliances []Appliance    `toml:"appliances"`
}

// Appliance is a deferrable load with an optional planned run.
type Appliance struct {
	Name     string               `toml:"name"`
	Letter   string               `toml:"letter"`
	Overlay  bool                 `toml:"overlay"`
	Schedule series.ScheduleRange `toml:"schedule"`
}

// Symbol returns the currency up to the first slash, e.g. "Kč" for "Kč/kWh".
func (e ElectricityData) Symbol() string {
	for i, r := range e.Currency {
		if r == '/' {
			return e.Currency[:i]
		}
	}
	return e.Currency
}

// WeatherData is everything the weather dashboard shows. Nil readings
// are drawn as placeholders or left out.
type WeatherData struct {
	Temperature    *float64        `toml:"temperature,omitempty"`
	FeelsLike      *float64        `toml:"feels_like,omitempty"`
	Humidity       *float64        `toml:"humidity,omitempty"`
	Pressure       *float64        `toml:"pressure,omitempty"`
	WindSpeed      *float64        `toml:"wind_speed,omitempty"`
	WindDirection  *float64        `toml:"wind_direction,omitempty"`
	RainRate       *float64        `toml:"rain_rate,omitempty"`
	RainDaily      *float64        `toml:"rain_daily,omitempty"`
	UV             *float64        `toml:"uv,omitempty"`
	SolarRadiation *float64        `toml:"solar_radiation,omitempty"`
	Observed       time.Time       `toml:"observed"`
	History        []series.Sample `toml:"history"`
}

// Labels holds every literal string drawn on the dashboards.
type Labels struct {
	CurrentPrice string    `toml:"current_price"`
	Min          string    `toml:"min"`
	Avg          string    `toml:"avg"`
	Max          string    `toml:"max"`
	Weekdays     [7]string `toml:"weekdays"`
	FeelsLike    string    `toml:"feels_like"`
	Humidity     string    `toml:"humidity"`
	Pressure     string    `toml:"pressure"`
	UV           string    `toml:"uv"`
	Wind         string    `toml:"wind"`
	Rain         string    `toml:"rain"`
	Updated      string    `toml:"updated"`
}

// DefaultLabels returns the Czech label set.
func DefaultLabels() Labels {
	return Labels{
		CurrentPrice: "AKTUÁLNÍ CENA",
		Min:          "minimum",
		Avg:          "průměr",
		Max:          "maximum",
		Weekdays:     [7]string{"Po", "Út", "St", "Čt", "Pá", "So", "Ne"},
		FeelsLike:    "Pocitově",
		Humidity:     "Vlhkost",
		Pressure:     "Tlak",
		UV:           "UV Index",
		Wind:         "Vítr",
		Rain:         "Srážky (dnes)",
		Updated:      "Aktualizováno",
	}
}

// Merge fills empty fields of l from defaults.
func (l Labels) Merge(defaults Labels) Labels {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	l.CurrentPrice = pick(l.CurrentPrice, defaults.CurrentPrice)
	l.Min = pick(l.Min, defaults.Min)
	l.Avg = pick(l.Avg, defaults.Avg)
	l.Max = pick(l.Max, defaults.Max)
	for i := range l.Weekdays {
		l.Weekdays[i] = pick(l.Weekdays[i], defaults.Weekdays[i])
	}
	l.FeelsLike = pick(l.FeelsLike, defaults.FeelsLike)
	l.Humidity = pick(l.Humidity, defaults.Humidity)
	l.Pressure = pick(l.Pressure, defaults.Pressure)
	l.UV = pick(l.UV, defaults.UV)
	l.Wind = pick(l.Wind, defaults.Wind)
	l.Rain = pick(l.Rain, defaults.Rain)
	l.Updated = pick(l.Updated, defaults.Updated)
	return l
}

// PrimarySeries returns the charted series of ElectricityData or
// WeatherData, or nil for anything else.
func PrimarySeries(data any) []series.Sample {
	switch d := data.(type) {
	case ElectricityData:
		return d.Prices
	case *ElectricityData:
		if d != nil {
			return d.Prices
		}
	case WeatherData:
		return d.History
	case *WeatherData:
		if d != nil {
			return d.History
		}
	}
	return nil
}
