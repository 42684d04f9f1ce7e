package slider

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings of the control
type KeyMap struct {
	Slide   key.Binding
	Release key.Binding
	Reset   key.Binding
}

// DefaultKeyMap returns the default bindings. Sliding follows the visual
// direction of the track, so right-to-left controls slide with left.
func DefaultKeyMap(rtl bool) KeyMap {
	slide := key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "slide"),
	)
	if rtl {
		slide = key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "slide"),
		)
	}

	return KeyMap{
		Slide: slide,
		Release: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "release"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Slide, k.Release, k.Reset}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
