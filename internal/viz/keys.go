package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle     key.Binding
	Regenerate key.Binding
	CycleSort  key.Binding
	Ascending  key.Binding
	Descending key.Binding
	Unsorted   key.Binding
	Faster     key.Binding
	Slower     key.Binding
	Theme      key.Binding
	Transition key.Binding
	Export     key.Binding
	Snapshot   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "start/stop")),
		Regenerate: key.NewBinding(key.WithKeys("g", "r"), key.WithHelp("g/r", "new data")),
		CycleSort:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Ascending:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ascending")),
		Descending: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "descending")),
		Unsorted:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "unsorted")),
		Faster:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Transition: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "transition")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export svg")),
		Snapshot:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "snapshot")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Regenerate, k.CycleSort, k.Faster, k.Slower, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Regenerate, k.Faster, k.Slower},
		{k.CycleSort, k.Ascending, k.Descending, k.Unsorted},
		{k.Theme, k.Transition, k.Export, k.Snapshot},
		{k.Help, k.Quit},
	}
}
