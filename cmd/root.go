package cmd

import (
	"fmt"
	"os"
	"strings"
)

// Version is the release reported by "inkboard version".
const Version = "0.1.0"

// knownSubcommands is the set of CLI subcommands.
var knownSubcommands = map[string]bool{
	"render":  true,
	"serve":   true,
	"preview": true,
	"push":    true,
	"fetch":   true,
	"secret":  true,
	"config":  true,
	"themes":  true,
	"version": true,
	"help":    true,
}

// IsSubcommand returns true if the argument is a known CLI subcommand.
func IsSubcommand(arg string) bool {
	return knownSubcommands[arg]
}

// Execute dispatches to the appropriate CLI subcommand handler. Without
// a subcommand the arguments are render flags.
func Execute(args []string) {
	if len(args) == 0 || (!IsSubcommand(args[0]) && strings.HasPrefix(args[0], "-") && args[0] != "-h" && args[0] != "--help") {
		renderCmd(args)
		return
	}

	switch args[0] {
	case "render":
		renderCmd(args[1:])
	case "serve":
		serveCmd(args[1:])
	case "preview":
		previewCmd(args[1:])
	case "push":
		pushCmd(args[1:])
	case "fetch":
		fetchCmd(args[1:])
	case "secret":
		secretCmd(args[1:])
	case "config":
		configCmd(args[1:])
	case "themes":
		themesCmd()
	case "version":
		fmt.Println("inkboard v" + Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`inkboard - e-ink dashboard renderer

Usage:
  inkboard [flags]                 Render all dashboards once
  inkboard render [flags]          Render dashboards to the output folder
  inkboard serve                   Re-render on a schedule and serve over HTTP
  inkboard preview [flags]         Preview dashboards in the terminal
  inkboard push [flags]            Render once and show it on the panel
  inkboard fetch [flags]           Fetch source data, optionally saving a snapshot
  inkboard secret <cmd>            Manage stored tokens
  inkboard config <cmd>            Manage configuration
  inkboard themes                  List preview themes
  inkboard version                 Show version
  inkboard help                    Show this help

Render / Preview / Push flags:
  --dashboard NAME                 electricity or weather (default: all)
  --now RFC3339                    Render as if it were this time
  --snapshot FILE                  Use saved data instead of fetching

Secret Commands:
  inkboard secret list             List stored secrets
  inkboard secret add              Add a secret (interactive)
  inkboard secret remove NAME      Remove a secret
  inkboard secret passwd           Change the vault password

Config Commands:
  inkboard config path             Show config file path
  inkboard config show             Print the effective config
  inkboard config init             Write the default config
  inkboard config theme NAME       Set the preview theme`)
}
