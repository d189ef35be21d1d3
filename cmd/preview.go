package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/inkboard/tui"
)

func previewCmd(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	var rf renderFlags
	rf.register(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: inkboard preview [--dashboard NAME] [--now RFC3339] [--snapshot FILE]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := mustConfig()
	// The terminal belongs to the preview, so only the log file is written.
	logger, _, closeLog := setupLogging(cfg, io.Discard)
	defer closeLog()

	jobs, err := jobsFor(cfg, logger, &rf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewAppModel(cfg, jobs, Version), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
