package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/tonhe/inkboard/internal/config"
	"github.com/tonhe/inkboard/tui/styles"
)

func configCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inkboard config <path|show|init|theme>")
		os.Exit(1)
	}

	switch args[0] {
	case "path":
		configPath()
	case "show":
		configShow()
	case "init":
		configInit(len(args) > 1 && args[1] == "--force")
	case "theme":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: inkboard config theme NAME")
			os.Exit(1)
		}
		configSetTheme(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: inkboard config <path|show|init|theme>")
		os.Exit(1)
	}
}

func configPath() {
	path, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(path)
}

func configShow() {
	cfg := loadOrDefaultConfig()
	cfg.RefreshIntervalStr = cfg.RefreshInterval.String()
	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "\nProblems:\n%v\n", err)
		os.Exit(1)
	}
}

func configInit(force bool) {
	path, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", path)
		os.Exit(1)
	}
	saveConfig(config.DefaultConfig())
	fmt.Printf("Wrote %s\n", path)
}

func configSetTheme(name string) {
	if styles.GetThemeByName(name) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'inkboard themes' to see available themes.")
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig()
	cfg.Theme = name
	saveConfig(cfg)

	fmt.Printf("Preview theme set to %q.\n", name)
}

func themesCmd() {
	for _, name := range styles.ListThemes() {
		fmt.Println(name)
	}
}

// saveConfig writes the config to disk, creating directories as needed.
func saveConfig(cfg *config.Config) {
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
}
