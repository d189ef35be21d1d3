package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tonhe/inkboard/internal/config"
	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/engine"
	"github.com/tonhe/inkboard/internal/epd"
	"github.com/tonhe/inkboard/internal/series"
	"github.com/tonhe/inkboard/internal/server"
)

const panelCheckInterval = time.Minute

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", "", "HTTP listen address (default: config server.listen)")
	noPanel := fs.Bool("no-panel", false, "Do not drive the e-paper panel")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := mustConfig()
	logger, logOut, closeLog := setupLogging(cfg, os.Stdout)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := engine.NewManager(logger)
	defer mgr.StopAll()
	history := series.NewHistory(cfg.HistorySize)
	if err := startJobs(mgr, cfg, logger, history); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	if cfgPath, err := config.GetConfigPath(); err == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			active := cfg
			err := config.Watch(ctx, cfgPath, logger, func(next *config.Config) {
				mgr.StopAll()
				if err := startJobs(mgr, next, logger, history); err != nil {
					logger.Error("config_reload_failed", "error", err)
					mgr.StopAll()
					startJobs(mgr, active, logger, history)
					return
				}
				active = next
			})
			if err != nil {
				logger.Warn("config_watch_error", "error", err)
			}
		}()
	}

	if cfg.Panel.Enabled && !*noPanel {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := drivePanel(ctx, mgr, cfg, logger); err != nil {
				logger.Error("panel_failed", "error", err)
			}
		}()
	}

	addr := cfg.Server.Listen
	if *listen != "" {
		addr = *listen
	}
	srv := server.New(mgr, logger, logOut)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		logger.Error("server_failed", "error", err)
		stop()
		wg.Wait()
		os.Exit(1)
	}
	wg.Wait()
}

// startJobs builds fresh jobs from cfg and starts one poller per dashboard.
func startJobs(mgr *engine.Manager, cfg *config.Config, logger *slog.Logger, history *series.History) error {
	jobs, err := buildJobs(cfg, logger, dashboard.SystemClock{}, history, false)
	if err != nil {
		return err
	}
	var errs []error
	for _, j := range jobs {
		errs = append(errs, mgr.Start(j))
	}
	return errors.Join(errs...)
}

// drivePanel pushes every new frame of the panel dashboard to the
// display, sleeping the controller between refreshes. A config reload
// replaces the pollers, so a periodic check catches frames the old
// subscription will never see and subscribes again.
func drivePanel(ctx context.Context, mgr *engine.Manager, cfg *config.Config, logger *slog.Logger) error {
	dev, closePort, err := epd.Open(panelPins(cfg), logger)
	if err != nil {
		return err
	}
	defer closePort()

	name := cfg.Panel.Dashboard
	events, _ := mgr.Subscribe(name)
	ticker := time.NewTicker(panelCheckInterval)
	defer ticker.Stop()

	var lastID string
	show := func(f *engine.Frame) {
		if f == nil || f.ID == lastID {
			return
		}
		if err := showFrame(ctx, dev, f); err != nil {
			logger.Error("panel_push_failed", "frame", f.ID, "error", err)
			return
		}
		lastID = f.ID
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			show(ev.Frame)
		case <-ticker.C:
			f, err := mgr.Latest(name)
			if err != nil || f.ID == lastID {
				continue
			}
			show(f)
			events, _ = mgr.Subscribe(name)
		}
	}
}

func panelPins(cfg *config.Config) epd.Pins {
	return epd.Pins{SPIPort: cfg.Panel.SPIPort, DC: cfg.Panel.DCPin, RST: cfg.Panel.RSTPin, Busy: cfg.Panel.BusyPin}
}

// showFrame wakes the panel, draws f and puts it back to sleep.
func showFrame(ctx context.Context, dev *epd.Dev, f *engine.Frame) error {
	if err := dev.Init(ctx); err != nil {
		return err
	}
	if err := dev.Display(ctx, f.Bitmap); err != nil {
		return err
	}
	return dev.Sleep(ctx)
}
