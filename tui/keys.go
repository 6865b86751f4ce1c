package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the host consumes before forwarding a key
// to the visible screen.
type KeyMap struct {
	// Back dismisses the topmost modal, or pops the stack when nothing
	// is presented.
	Back key.Binding
	// Quit ends the program.
	Quit key.Binding
}

// DefaultKeyMap mirrors the common terminal conventions.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
