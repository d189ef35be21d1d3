package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tonhe/inkboard/internal/assets"
	"github.com/tonhe/inkboard/internal/config"
	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/engine"
	"github.com/tonhe/inkboard/internal/secrets"
	"github.com/tonhe/inkboard/internal/series"
	"github.com/tonhe/inkboard/internal/source"
)

// renderFlags are shared by render, preview and push.
type renderFlags struct {
	dashboard string
	now       string
	snapshot  string
}

func (f *renderFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.dashboard, "dashboard", "", "Dashboard to render: electricity or weather (default: all)")
	fs.StringVar(&f.now, "now", "", "Render as if it were this RFC3339 time")
	fs.StringVar(&f.snapshot, "snapshot", "", "Render a saved snapshot instead of fetching")
}

// clock returns the clock selected by --now.
func (f *renderFlags) clock() (dashboard.Clock, error) {
	if f.now == "" {
		return dashboard.SystemClock{}, nil
	}
	t, err := time.Parse(time.RFC3339, f.now)
	if err != nil {
		return nil, fmt.Errorf("--now: %w", err)
	}
	return dashboard.FixedClock{T: t}, nil
}

// names returns the dashboards selected by --dashboard.
func (f *renderFlags) names() ([]string, error) {
	if f.dashboard == "" {
		return dashboard.Names, nil
	}
	for _, n := range dashboard.Names {
		if n == f.dashboard {
			return []string{n}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", dashboard.ErrUnknownDashboard, f.dashboard)
}

// loadOrDefaultConfig loads the config from disk, falling back to defaults.
func loadOrDefaultConfig() *config.Config {
	path, err := config.GetConfigPath()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// mustConfig loads and validates the config or exits.
func mustConfig() *config.Config {
	cfg := loadOrDefaultConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in config:\n%v\n", err)
		os.Exit(1)
	}
	return cfg
}

// setupLogging returns a text logger writing to console and, when
// configured, appending to the log file. The returned func closes it.
func setupLogging(cfg *config.Config, console io.Writer) (*slog.Logger, io.Writer, func()) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	out, closeFn := console, func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		} else {
			out = io.MultiWriter(console, f)
			closeFn = func() { f.Close() }
		}
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, out, closeFn
}

// needsVault reports whether any credential is configured by name only.
func needsVault(cfg *config.Config) bool {
	return (cfg.HomeAssistant.Token == "" && cfg.HomeAssistant.TokenSecret != "") ||
		(cfg.Weather.APIKey == "" && cfg.Weather.APIKeySecret != "")
}

// openVault opens the secret vault, prompting for the master password if
// needed. Tries empty password first to support no-password vaults.
func openVault() *secrets.FileStore {
	path, err := config.GetSecretsPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	store, err := secrets.NewFileStore(path, []byte(""))
	if err == nil {
		return store
	}
	store, err = secrets.NewFileStore(path, getMasterPassword("Master password: "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening secret vault: %v\n", err)
		os.Exit(1)
	}
	return store
}

// buildJobs wires sources, assets and the composer into one job per
// dashboard. history may be nil. Offline jobs get no fetch function and
// never open the vault; selectJobs fills them from a snapshot.
func buildJobs(cfg *config.Config, logger *slog.Logger, clock dashboard.Clock, history *series.History, offline bool) ([]engine.Job, error) {
	opts, err := cfg.ComposerOptions()
	if err != nil {
		return nil, err
	}
	outDir, err := cfg.OutputDir()
	if err != nil {
		return nil, err
	}

	composer := dashboard.NewComposer(opts, assets.New(cfg.Fonts.Paths, logger), clock, logger)
	var jobs []engine.Job
	for _, name := range dashboard.Names {
		jobs = append(jobs, engine.Job{
			Name:      name,
			Interval:  cfg.RefreshInterval,
			Composer:  composer,
			Clock:     clock,
			OutputDir: outDir,
			FileBase:  engine.FileBase(name, opts.Cadence),
			WriteRaw:  name == dashboard.Electricity,
		})
	}
	if offline {
		return jobs, nil
	}

	var vault secrets.Provider
	if needsVault(cfg) {
		vault = openVault()
	}
	haToken, err := secrets.Resolve(vault, cfg.HomeAssistant.Token, cfg.HomeAssistant.TokenSecret)
	if err != nil {
		return nil, err
	}
	apiKey, err := secrets.Resolve(vault, cfg.Weather.APIKey, cfg.Weather.APIKeySecret)
	if err != nil {
		return nil, err
	}

	var ha *source.HomeAssistant
	if cfg.HomeAssistant.URL != "" {
		ha = source.NewHomeAssistant(cfg.HomeAssistant.URL, haToken, opts.Location, nil)
	}
	elec := &source.ElectricitySource{
		HA:         ha,
		SpotEntity: cfg.HomeAssistant.SpotPriceEntity,
		Currency:   cfg.HomeAssistant.Currency,
		Logger:     logger,
	}
	for _, a := range cfg.Appliances {
		elec.Appliances = append(elec.Appliances, source.ApplianceSpec{Name: a.Name, Entity: a.Entity, Letter: a.Letter, Overlay: a.Overlay})
	}

	if history == nil {
		history = series.NewHistory(cfg.HistorySize)
	}
	weather := &source.WeatherSource{
		History:           history,
		HA:                ha,
		TemperatureEntity: cfg.HomeAssistant.TemperatureEntity,
		Logger:            logger,
	}
	switch w := cfg.Weather; {
	case w.UseLocalAPI && w.LocalIP != "":
		weather.Station = source.NewEcowittLocal(w.LocalIP, nil)
	case apiKey != "" && w.ApplicationKey != "" && w.MAC != "":
		weather.Station = source.NewEcowittCloud("", w.ApplicationKey, apiKey, w.MAC, nil)
	}

	fetch := map[string]engine.FetchFunc{
		dashboard.Electricity: engine.FetchElectricity(elec),
		dashboard.Weather:     engine.FetchWeather(weather),
	}
	for i := range jobs {
		jobs[i].Fetch = fetch[jobs[i].Name]
	}
	return jobs, nil
}

// jobsFor builds the jobs selected by f.
func jobsFor(cfg *config.Config, logger *slog.Logger, f *renderFlags) ([]engine.Job, error) {
	clock, err := f.clock()
	if err != nil {
		return nil, err
	}
	jobs, err := buildJobs(cfg, logger, clock, nil, f.snapshot != "")
	if err != nil {
		return nil, err
	}
	return selectJobs(jobs, f)
}

// selectJobs applies --dashboard and --snapshot to jobs.
func selectJobs(jobs []engine.Job, f *renderFlags) ([]engine.Job, error) {
	names, err := f.names()
	if err != nil {
		return nil, err
	}
	var snap *dashboard.Snapshot
	if f.snapshot != "" {
		if snap, err = dashboard.LoadSnapshot(f.snapshot); err != nil {
			return nil, err
		}
		names = []string{snap.Dashboard}
	}
	var out []engine.Job
	for _, j := range jobs {
		if !contains(names, j.Name) {
			continue
		}
		if snap != nil {
			j.Fetch = engine.FetchSnapshot(snap)
			if f.now == "" && !snap.Taken.IsZero() {
				j.Clock = dashboard.FixedClock{T: snap.Taken}
			}
		}
		out = append(out, j)
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
