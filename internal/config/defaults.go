package config

// KeyBindings defines the mapping of actions to keys.
// Kept separate so it can later be made configurable via config file.
type KeyBindings struct {
	Quit     string
	Help     string
	Refresh  string
	Up       string
	Down     string
	PageUp   string
	PageDown string
	Top      string
	Bottom   string
	LoadMore string
	Sections string
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:     "q",
		Help:     "?",
		Refresh:  "r",
		Up:       "k",
		Down:     "j",
		PageUp:   "b",
		PageDown: "f",
		Top:      "g",
		Bottom:   "G",
		LoadMore: "n",
		Sections: "s",
	}
}
