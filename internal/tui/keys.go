package tui

import "github.com/charmbracelet/bubbles/key"

type typingKeyMap struct {
	Backspace key.Binding
	Cancel    key.Binding
}

type resultsKeyMap struct {
	Quit key.Binding
}

func newTypingKeyMap() typingKeyMap {
	return typingKeyMap{
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "delete", "ctrl+h"),
			key.WithHelp("⌫", "delete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "abort"),
		),
	}
}

func newResultsKeyMap() resultsKeyMap {
	return resultsKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k typingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Backspace, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k typingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ShortHelp implements help.KeyMap.
func (k resultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp implements help.KeyMap.
func (k resultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
