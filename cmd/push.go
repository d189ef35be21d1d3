package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tonhe/inkboard/internal/engine"
	"github.com/tonhe/inkboard/internal/epd"
)

func pushCmd(args []string) {
	fs := flag.NewFlagSet("push", flag.ExitOnError)
	var rf renderFlags
	rf.register(fs)
	blank := fs.Bool("clear", false, "Blank the panel instead of drawing a dashboard")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: inkboard push [--dashboard NAME] [--now RFC3339] [--snapshot FILE] [--clear]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := mustConfig()
	logger, _, closeLog := setupLogging(cfg, os.Stderr)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var frame *engine.Frame
	if !*blank {
		if rf.dashboard == "" && rf.snapshot == "" {
			rf.dashboard = cfg.Panel.Dashboard
		}
		jobs, err := jobsFor(cfg, logger, &rf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(jobs) != 1 {
			fmt.Fprintln(os.Stderr, "Error: push shows exactly one dashboard")
			os.Exit(1)
		}
		if frame, err = engine.Render(ctx, jobs[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", jobs[0].Name, err)
			os.Exit(1)
		}
		if frame.Err != nil {
			logger.Warn("render_degraded", "dashboard", frame.Dashboard, "error", frame.Err)
		}
	}

	dev, closePort, err := epd.Open(panelPins(cfg), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening panel: %v\n", err)
		os.Exit(1)
	}
	defer closePort()

	if *blank {
		err = clearPanel(ctx, dev)
	} else {
		err = showFrame(ctx, dev, frame)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating panel: %v\n", err)
		os.Exit(1)
	}
	if frame != nil {
		fmt.Printf("%s: pushed %s\n", frame.Dashboard, frame.ID)
	} else {
		fmt.Println("Panel cleared.")
	}
}

func clearPanel(ctx context.Context, dev *epd.Dev) error {
	if err := dev.Init(ctx); err != nil {
		return err
	}
	if err := dev.Clear(ctx); err != nil {
		return err
	}
	return dev.Sleep(ctx)
}
