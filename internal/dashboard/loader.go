package dashboard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tonhe/inkboard/internal/series"
)

// DefaultCurrency is used when a snapshot names none.
const DefaultCurrency = "Kč/kWh"

// ErrEmptySnapshot is returned for a snapshot that holds no dashboard data.
var ErrEmptySnapshot = errors.New("snapshot holds no dashboard data")

// Snapshot is the source data of one render, stored as TOML so a frame
// can be reproduced offline.
type Snapshot struct {
	Dashboard string    `toml:"dashboard"`
	Taken     time.Time `toml:"taken"`
	// Timezone is re-applied to every instant on load, since TOML keeps
	// only the UTC offset.
	Timezone    string           `toml:"timezone,omitempty"`
	Electricity *ElectricityData `toml:"electricity,omitempty"`
	Weather     *WeatherData     `toml:"weather,omitempty"`
}

// Data returns the payload matching Dashboard.
func (s *Snapshot) Data() any {
	if s.Dashboard == Weather {
		return s.Weather
	}
	return s.Electricity
}

// LoadSnapshot reads a TOML snapshot. Dashboard defaults to whichever
// section is present and Currency to DefaultCurrency.
func LoadSnapshot(path string) (*Snapshot, error) {
	var snap Snapshot
	if _, err := toml.DecodeFile(path, &snap); err != nil {
		return nil, err
	}
	if snap.Dashboard == "" {
		switch {
		case snap.Electricity != nil:
			snap.Dashboard = Electricity
		case snap.Weather != nil:
			snap.Dashboard = Weather
		}
	}
	switch snap.Dashboard {
	case Electricity:
		if snap.Electricity == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptySnapshot)
		}
	case Weather:
		if snap.Weather == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrEmptySnapshot)
		}
	case "":
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySnapshot)
	default:
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownDashboard, snap.Dashboard)
	}
	if snap.Electricity != nil && snap.Electricity.Currency == "" {
		snap.Electricity.Currency = DefaultCurrency
	}
	if snap.Timezone != "" {
		loc, err := time.LoadLocation(snap.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		snap.localize(loc)
	}
	return &snap, nil
}

// SaveSnapshot writes snap to path as TOML, recording the zone of its
// first instant when Timezone is unset.
func SaveSnapshot(snap *Snapshot, path string) error {
	if snap.Timezone == "" {
		snap.Timezone = snap.zone()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(snap)
}

// ListSnapshots returns the base names (without .toml extension) of all
// TOML files found in dir.
func ListSnapshots(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		}
	}
	return names, nil
}

func (s *Snapshot) zone() string {
	var t time.Time
	switch {
	case s.Electricity != nil && len(s.Electricity.Prices) > 0:
		t = s.Electricity.Prices[0].Time
	case s.Weather != nil && len(s.Weather.History) > 0:
		t = s.Weather.History[0].Time
	default:
		t = s.Taken
	}
	if name := t.Location().String(); name != "" && name != "Local" {
		return name
	}
	return ""
}

func (s *Snapshot) localize(loc *time.Location) {
	s.Taken = s.Taken.In(loc)
	if e := s.Electricity; e != nil {
		e.Prices = series.In(e.Prices, loc)
		for i := range e.Appliances {
			r := &e.Appliances[i].Schedule
			if !r.Start.IsZero() {
				r.Start = r.Start.In(loc)
			}
			if !r.End.IsZero() {
				r.End = r.End.In(loc)
			}
		}
	}
	if w := s.Weather; w != nil {
		w.History = series.In(w.History, loc)
		if !w.Observed.IsZero() {
			w.Observed = w.Observed.In(loc)
		}
	}
}
