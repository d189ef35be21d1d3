package styles

// Themes holds the built-in preview palettes by slug.
var Themes = map[string]Theme{
	"paper": {
		Name:   "Paper",
		Paper:  "#f2efe6", Ink: "#2b2a26", Bar: "#e0dccf", Rule: "#9c9686", Muted: "#6e695c",
		Accent: "#2f5a8a", Title: "#6f4a8a", Trend: "#2f7a78",
		OK:     "#4f7a2b", Warn: "#9a7b16", Err: "#a33b2f",
	},
	"solarized-dark": {
		Name:   "Solarized Dark",
		Paper:  "#002b36", Ink: "#93a1a1", Bar: "#073642", Rule: "#657b83", Muted: "#839496",
		Accent: "#268bd2", Title: "#6c71c4", Trend: "#2aa198",
		OK:     "#859900", Warn: "#b58900", Err: "#dc322f",
	},
	"solarized-light": {
		Name:   "Solarized Light",
		Paper:  "#fdf6e3", Ink: "#586e75", Bar: "#eee8d5", Rule: "#839496", Muted: "#657b83",
		Accent: "#268bd2", Title: "#6c71c4", Trend: "#2aa198",
		OK:     "#859900", Warn: "#b58900", Err: "#dc322f",
	},
	"gruvbox-dark": {
		Name:   "Gruvbox Dark",
		Paper:  "#282828", Ink: "#d5c4a1", Bar: "#3c3836", Rule: "#665c54", Muted: "#bdae93",
		Accent: "#83a598", Title: "#d3869b", Trend: "#8ec07c",
		OK:     "#b8bb26", Warn: "#fabd2f", Err: "#fb4934",
	},
	"nord": {
		Name:   "Nord",
		Paper:  "#2e3440", Ink: "#e5e9f0", Bar: "#3b4252", Rule: "#4c566a", Muted: "#d8dee9",
		Accent: "#81a1c1", Title: "#b48ead", Trend: "#88c0d0",
		OK:     "#a3be8c", Warn: "#ebcb8b", Err: "#bf616a",
	},
}
