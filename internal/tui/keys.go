package tui

import "github.com/charmbracelet/bubbles/key"

type fieldKeys struct {
	Left      key.Binding
	Right     key.Binding
	Advance   key.Binding
	Switch    key.Binding
	Select    key.Binding
	Save      key.Binding
	Load      key.Binding
	Inventory key.Binding
	Quit      key.Binding
}

func (k fieldKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Advance, k.Switch, k.Select, k.Inventory, k.Quit}
}

func (k fieldKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Advance, k.Switch},
		{k.Select, k.Save, k.Load, k.Inventory, k.Quit},
	}
}

type selectKeys struct {
	P1Left, P1Right, P1Up, P1Down, P1Confirm key.Binding
	P2Left, P2Right, P2Up, P2Down, P2Confirm key.Binding
	Back                                     key.Binding
	Quit                                     key.Binding
}

func (k selectKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Confirm, k.P2Confirm, k.Back, k.Quit}
}

func (k selectKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Left, k.P1Right, k.P1Up, k.P1Down, k.P1Confirm},
		{k.P2Left, k.P2Right, k.P2Up, k.P2Down, k.P2Confirm},
		{k.Back, k.Quit},
	}
}

type fightKeys struct {
	Back key.Binding
	Quit key.Binding
}

func (k fightKeys) ShortHelp() []key.Binding { return []key.Binding{k.Back, k.Quit} }

func (k fightKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type keyMap struct {
	field  fieldKeys
	sel    selectKeys
	fight  fightKeys
	prompt promptKeys
}

type promptKeys struct {
	Accept key.Binding
	Cancel key.Binding
}

func (k promptKeys) ShortHelp() []key.Binding { return []key.Binding{k.Accept, k.Cancel} }

func (k promptKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultKeys() keyMap {
	quit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	return keyMap{
		field: fieldKeys{
			Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "walk left")),
			Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "walk right")),
			Advance:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "next line")),
			Switch:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "switch body")),
			Select:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "character select")),
			Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
			Load:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "load")),
			Inventory: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "list inventory")),
			Quit:      quit,
		},
		sel: selectKeys{
			P1Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "P1 left")),
			P1Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "P1 right")),
			P1Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "P1 up")),
			P1Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "P1 down")),
			P1Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "P1 confirm")),
			P2Left:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "P2 left")),
			P2Right:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "P2 right")),
			P2Up:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "P2 up")),
			P2Down:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "P2 down")),
			P2Confirm: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "P2 confirm")),
			Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
			Quit:      quit,
		},
		fight: fightKeys{
			Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to the field")),
			Quit: quit,
		},
		prompt: promptKeys{
			Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
			Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		},
	}
}
