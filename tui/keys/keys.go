package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the preview.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding
	Earlier key.Binding
	Later   key.Binding
	Back    key.Binding
	Forward key.Binding
	Now     key.Binding
	Next    key.Binding
	Invert  key.Binding
	Escape  key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch")),
	Earlier: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "-1h")),
	Later:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right/l", "+1h")),
	Back:    key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "-15m")),
	Forward: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "+15m")),
	Now:     key.NewBinding(key.WithKeys("n", "0"), key.WithHelp("n", "now")),
	Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next dashboard")),
	Invert:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invert")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
}
