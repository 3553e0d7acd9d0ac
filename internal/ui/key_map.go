package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the selection TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	toggle   key.Binding
	moveUp   key.Binding
	moveDown key.Binding
	confirm  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		moveUp:   key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "move up")),
		moveDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "move down")),
		confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "abort")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.moveUp, k.moveDown, k.confirm, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle},
		{k.moveUp, k.moveDown},
		{k.confirm, k.quit},
	}
}
