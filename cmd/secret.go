package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/tonhe/inkboard/internal/secrets"
	"golang.org/x/term"
)

func secretCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inkboard secret <list|add|remove|passwd>")
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		secretList()
	case "add":
		secretAdd()
	case "remove":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: inkboard secret remove NAME")
			os.Exit(1)
		}
		secretRemove(args[1])
	case "passwd":
		secretPasswd()
	default:
		fmt.Fprintf(os.Stderr, "Unknown secret command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: inkboard secret <list|add|remove|passwd>")
		os.Exit(1)
	}
}

// getMasterPassword reads the master password from INKBOARD_MASTER_KEY or prompts.
func getMasterPassword(prompt string) []byte {
	if key := os.Getenv("INKBOARD_MASTER_KEY"); key != "" {
		return []byte(key)
	}
	return readHidden(prompt)
}

func readHidden(prompt string) []byte {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
	return b
}

func secretList() {
	store := openVault()
	summaries, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing secrets: %v\n", err)
		os.Exit(1)
	}

	if len(summaries) == 0 {
		fmt.Println("No secrets stored.")
		return
	}

	for _, s := range summaries {
		line := fmt.Sprintf("%-24s  %-24s  %s", s.Name, s.Kind, s.Hint)
		if s.Note != "" {
			line += "  # " + s.Note
		}
		fmt.Println(line)
	}
}

func secretAdd() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Secret name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: name is required")
		os.Exit(1)
	}

	fmt.Printf("Kind (%s) [%s]: ", strings.Join(secrets.Kinds, ", "), secrets.KindGeneric)
	kind, _ := reader.ReadString('\n')
	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = secrets.KindGeneric
	}
	if !slices.Contains(secrets.Kinds, kind) {
		fmt.Fprintf(os.Stderr, "Error: kind must be one of %s\n", strings.Join(secrets.Kinds, ", "))
		os.Exit(1)
	}

	value := readHidden("Value: ")
	if len(value) == 0 {
		fmt.Fprintln(os.Stderr, "Error: value is required")
		os.Exit(1)
	}

	fmt.Print("Note (optional): ")
	note, _ := reader.ReadString('\n')

	store := openVault()
	err := store.Add(secrets.Secret{
		Name:  name,
		Kind:  kind,
		Value: string(value),
		Note:  strings.TrimSpace(note),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Secret %q added. Refer to it from config.toml by name.\n", name)
}

func secretRemove(name string) {
	store := openVault()
	if err := store.Remove(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing secret: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Secret %q removed.\n", name)
}

func secretPasswd() {
	store := openVault()

	password := readHidden("New master password (empty for none): ")
	confirm := readHidden("Confirm: ")
	if !bytes.Equal(password, confirm) {
		fmt.Fprintln(os.Stderr, "Error: passwords do not match")
		os.Exit(1)
	}

	if err := store.ChangePassword(password); err != nil {
		fmt.Fprintf(os.Stderr, "Error changing password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Master password changed.")
}
