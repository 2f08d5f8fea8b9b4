package components

import "github.com/charmbracelet/bubbles/key"

// ModalKeyMap defines key bindings shared by the search and filter modals
type ModalKeyMap struct {
	Escape key.Binding
	Enter  key.Binding
	Up     key.Binding
	Down   key.Binding
}

// DefaultModalKeyMap returns the default modal key bindings
func DefaultModalKeyMap() ModalKeyMap {
	return ModalKeyMap{
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/C-p", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/C-n", "next"),
		),
	}
}

// DetailKeyMap defines key bindings for the detail overlay
type DetailKeyMap struct {
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultDetailKeyMap returns the default detail overlay key bindings
func DefaultDetailKeyMap() DetailKeyMap {
	return DetailKeyMap{
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
	}
}

// Package-level key map instances
var (
	ModalKeys  = DefaultModalKeyMap()
	DetailKeys = DefaultDetailKeyMap()
)
