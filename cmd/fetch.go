package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tonhe/inkboard/internal/config"
	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/panel"
	"github.com/tonhe/inkboard/internal/series"
)

const fetchTimeout = 30 * time.Second

func fetchCmd(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	var rf renderFlags
	fs.StringVar(&rf.dashboard, "dashboard", "", "Dashboard to fetch: electricity or weather (default: all)")
	fs.StringVar(&rf.now, "now", "", "Fetch as if it were this RFC3339 time")
	save := fs.String("save", "", "Save a snapshot under this name or path")
	list := fs.Bool("list", false, "List saved snapshots")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: inkboard fetch [--dashboard NAME] [--now RFC3339] [--save NAME|PATH] [--list]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *list {
		listSnapshots()
		return
	}

	cfg := mustConfig()
	logger, _, closeLog := setupLogging(cfg, os.Stderr)
	defer closeLog()

	jobs, err := jobsFor(cfg, logger, &rf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *save != "" && len(jobs) != 1 {
		fmt.Fprintln(os.Stderr, "Error: --save needs --dashboard")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	for _, j := range jobs {
		now := j.Clock.Now()
		data, err := j.Fetch(ctx, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", j.Name, err)
		}
		snap := &dashboard.Snapshot{Dashboard: j.Name, Taken: now}
		switch d := data.(type) {
		case dashboard.ElectricityData:
			snap.Electricity = &d
		case dashboard.WeatherData:
			snap.Weather = &d
		}
		printSnapshot(snap)

		if *save == "" {
			continue
		}
		path, err := snapshotPath(*save)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cfg.Timezone != "" {
			snap.Timezone = cfg.Timezone
		}
		if err := dashboard.SaveSnapshot(snap, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %s\n", path)
	}
}

// snapshotPath resolves a bare name into the snapshots directory.
func snapshotPath(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || filepath.Ext(name) == ".toml" {
		return name, nil
	}
	if err := config.EnsureDirs(); err != nil {
		return "", err
	}
	dir, err := config.GetSnapshotsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".toml"), nil
}

func listSnapshots() {
	dir, err := config.GetSnapshotsDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	names, err := dashboard.ListSnapshots(dir)
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error listing snapshots: %v\n", err)
		os.Exit(1)
	}
	if len(names) == 0 {
		fmt.Println("No snapshots saved.")
		return
	}
	for _, n := range names {
		fmt.Println(filepath.Join(dir, n+".toml"))
	}
}

func printSnapshot(s *dashboard.Snapshot) {
	fmt.Printf("%s at %s\n", s.Dashboard, s.Taken.Format(time.RFC3339))
	if e := s.Electricity; e != nil {
		fmt.Printf("  prices:   %d samples (%s)%s\n", len(e.Prices), e.Cadence, spanOf(e.Prices))
		if st, ok := series.Summarize(e.Prices); ok {
			fmt.Printf("  min/avg/max: %.2f / %.2f / %.2f %s\n", st.Min.Value, st.Mean, st.Max.Value, e.Currency)
		}
		fmt.Printf("  current:  %s\n", formatPtr(e.Current))
		for _, a := range e.Appliances {
			fmt.Printf("  %-12s %s\n", a.Name, formatRange(a.Schedule))
		}
	}
	if w := s.Weather; w != nil {
		fmt.Printf("  temperature: %s  humidity: %s  pressure: %s\n", formatPtr(w.Temperature), formatPtr(w.Humidity), formatPtr(w.Pressure))
		fmt.Printf("  history:  %d samples%s\n", len(w.History), spanOf(w.History))
	}
}

func spanOf(s []series.Sample) string {
	if len(s) == 0 {
		return ""
	}
	return fmt.Sprintf(" %s .. %s", s[0].Time.Format("02.01 15:04"), s[len(s)-1].Time.Format("02.01 15:04"))
}

func formatPtr(v *float64) string {
	return panel.FormatOptional(v, "%.2f")
}

func formatRange(r series.ScheduleRange) string {
	if !r.Valid() {
		return "not planned"
	}
	return panel.FormatClock(r.Start) + "-" + panel.FormatClock(r.End)
}
