package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the consult screen.
type KeyMap struct {
	NextField     key.Binding
	PreviousField key.Binding

	Search        key.Binding
	Clear         key.Binding
	NextCandidate key.Binding

	// Row actions, active while the table has focus.
	LookupClient key.Binding
	Edit         key.Binding
	Delete       key.Binding

	// Delete dialog.
	Confirm key.Binding
	Cancel  key.Binding

	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PreviousField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Search: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	NextCandidate: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "next client"),
	),
	LookupClient: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "client name"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
