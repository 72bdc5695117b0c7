package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	Focus    key.Binding
	Quit     key.Binding
	ChatUp   key.Binding
	ChatDown key.Binding
	Copy     key.Binding
	Open     key.Binding
	Quick    []key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "url/question"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	ChatUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll up"),
	),
	ChatDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "scroll down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "copy answer"),
	),
	Open: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("C-o", "open in YouTube"),
	),
	Quick: []key.Binding{
		key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "")),
		key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "")),
		key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "")),
		key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "")),
	},
}
