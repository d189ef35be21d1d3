package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/tonhe/inkboard/internal/chart"
	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/series"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Timezone           string        `toml:"timezone"`
	RefreshInterval    time.Duration `toml:"-"`
	RefreshIntervalStr string        `toml:"refresh_interval"`
	// HistorySize bounds the in-memory temperature history.
	HistorySize int    `toml:"history_size"`
	Theme       string `toml:"theme"`

	Display       Display          `toml:"display"`
	HomeAssistant HomeAssistant    `toml:"home_assistant"`
	Appliances    []Appliance      `toml:"appliances"`
	Weather       Weather          `toml:"weather"`
	Labels        dashboard.Labels `toml:"labels"`
	Fonts         Fonts            `toml:"fonts"`
	Output        Output           `toml:"output"`
	Server        Server           `toml:"server"`
	Panel         Panel            `toml:"panel"`
	Log           Log              `toml:"log"`
}

type Display struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Cadence    string `toml:"cadence"`
	Style      string `toml:"style"`
	Classifier string `toml:"classifier"`
}

type HomeAssistant struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
	// TokenSecret names a vault entry used when Token is empty.
	TokenSecret       string `toml:"token_secret"`
	SpotPriceEntity   string `toml:"spot_price_entity"`
	TemperatureEntity string `toml:"temperature_entity"`
	Currency          string `toml:"currency"`
}

type Appliance struct {
	Name    string `toml:"name"`
	Entity  string `toml:"entity"`
	Letter  string `toml:"letter"`
	Overlay bool   `toml:"overlay"`
}

type Weather struct {
	UseLocalAPI    bool   `toml:"use_local_api"`
	LocalIP        string `toml:"local_ip"`
	ApplicationKey string `toml:"application_key"`
	APIKey         string `toml:"api_key"`
	// APIKeySecret names a vault entry used when APIKey is empty.
	APIKeySecret string `toml:"api_key_secret"`
	MAC          string `toml:"mac_address"`
}

type Fonts struct {
	Paths []string `toml:"paths"`
}

type Output struct {
	// Folder defaults to the data directory.
	Folder string `toml:"folder"`
}

type Server struct {
	Listen string `toml:"listen"`
}

type Panel struct {
	Enabled bool   `toml:"enabled"`
	SPIPort string `toml:"spi_port"`
	DCPin   string `toml:"dc_pin"`
	RSTPin  string `toml:"rst_pin"`
	BusyPin string `toml:"busy_pin"`
	// Dashboard is what push and serve send to the panel.
	Dashboard string `toml:"dashboard"`
}

type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Timezone:           "Europe/Prague",
		RefreshInterval:    5 * time.Minute,
		RefreshIntervalStr: "5m0s",
		HistorySize:        288,
		Theme:              "paper",
		Display: Display{
			Width:      dashboard.DefaultWidth,
			Height:     dashboard.DefaultHeight,
			Cadence:    "60m",
			Style:      "outline",
			Classifier: "split",
		},
		HomeAssistant: HomeAssistant{
			SpotPriceEntity: "sensor.spot_electricity_buy_prices",
			Currency:        dashboard.DefaultCurrency,
		},
		Appliances: []Appliance{
			{Name: "Myčka", Entity: "sensor.p_deferrable0", Letter: "M", Overlay: true},
			{Name: "Pračka", Entity: "sensor.p_deferrable2", Letter: "P", Overlay: true},
			{Name: "EV Nabíjení", Entity: "sensor.p_deferrable1", Letter: "E"},
		},
		Weather: Weather{UseLocalAPI: true},
		Labels:  dashboard.DefaultLabels(),
		Server:  Server{Listen: ":8080"},
		Panel: Panel{
			SPIPort:   "SPI0.0",
			DCPin:     "GPIO25",
			RSTPin:    "GPIO17",
			BusyPin:   "GPIO24",
			Dashboard: dashboard.Electricity,
		},
		Log: Log{Level: "info"},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.RefreshIntervalStr != "" {
		d, err := time.ParseDuration(cfg.RefreshIntervalStr)
		if err == nil {
			cfg.RefreshInterval = d
		}
	}
	cfg.Labels = cfg.Labels.Merge(dashboard.DefaultLabels())
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	cfg.RefreshIntervalStr = cfg.RefreshInterval.String()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate reports every problem found, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		bad("display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if _, err := series.ParseCadence(c.Display.Cadence); err != nil {
		bad("display.cadence: %v", err)
	}
	if _, err := ParseStyle(c.Display.Style); err != nil {
		bad("display.style: %v", err)
	}
	if _, err := ParseClassifier(c.Display.Classifier); err != nil {
		bad("display.classifier: %v", err)
	}
	if _, err := c.Location(); err != nil {
		bad("timezone: %v", err)
	}
	if c.RefreshInterval <= 0 {
		bad("refresh_interval %v", c.RefreshInterval)
	}
	for i, a := range c.Appliances {
		if a.Entity == "" {
			bad("appliances[%d] %q has no entity", i, a.Name)
		}
	}
	return errors.Join(errs...)
}

// Location loads Timezone, defaulting to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ParseStyle accepts "checker" or "outline".
func ParseStyle(s string) (chart.LightStyle, error) {
	switch s {
	case "checker", "":
		return chart.CheckerStyle, nil
	case "outline":
		return chart.OutlineStyle, nil
	}
	return chart.CheckerStyle, fmt.Errorf("unknown style %q", s)
}

// ParseClassifier accepts "split" or "whole".
func ParseClassifier(s string) (chart.Classifier, error) {
	switch s {
	case "split", "":
		return chart.SplitAtThreshold, nil
	case "whole":
		return chart.WholeBar, nil
	}
	return nil, fmt.Errorf("unknown classifier %q", s)
}

// ComposerOptions translates the display settings for dashboard.NewComposer.
func (c *Config) ComposerOptions() (dashboard.Options, error) {
	if err := c.Validate(); err != nil {
		return dashboard.Options{}, err
	}
	cadence, _ := series.ParseCadence(c.Display.Cadence)
	style, _ := ParseStyle(c.Display.Style)
	classify, _ := ParseClassifier(c.Display.Classifier)
	loc, _ := c.Location()
	return dashboard.Options{
		Width:    c.Display.Width,
		Height:   c.Display.Height,
		Cadence:  cadence,
		Style:    style,
		Classify: classify,
		Labels:   c.Labels,
		Location: loc,
	}, nil
}
