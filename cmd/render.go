package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/engine"
)

func renderCmd(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var rf renderFlags
	rf.register(fs)
	out := fs.String("out", "", "Output folder (default: config output folder)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: inkboard render [--dashboard NAME] [--now RFC3339] [--snapshot FILE] [--out DIR]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := mustConfig()
	logger, _, closeLog := setupLogging(cfg, os.Stderr)
	defer closeLog()

	jobs, err := jobsFor(cfg, logger, &rf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, j := range jobs {
		if *out != "" {
			j.OutputDir = *out
		}
		f, err := engine.Render(context.Background(), j)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", j.Name, err)
			failed = true
			continue
		}
		if f.Err != nil {
			logger.Warn("render_degraded", "dashboard", j.Name, "error", f.Err)
			var se *dashboard.SectionError
			if errors.As(f.Err, &se) {
				failed = true
			}
		}
		fmt.Printf("%s: rendered %s at %s\n", j.Name, f.ID, f.Rendered.Format("2006-01-02 15:04"))
	}
	if failed {
		os.Exit(2)
	}
}
