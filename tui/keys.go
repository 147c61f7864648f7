package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Kind  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Add   key.Binding
	Clear key.Binding
	Write key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Kind, k.Add, k.Clear, k.Write, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Kind, k.Next, k.Prev},
		{k.Add, k.Clear, k.Write},
		{k.Help, k.Quit},
	}
}

func defaultKeys() keyMap {
	return keyMap{
		Kind:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "piece kind")),
		Next:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
		Prev:  key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "previous field")),
		Add:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add piece")),
		Clear: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Write: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write png")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}
