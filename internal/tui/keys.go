package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	FarLeft  key.Binding
	FarRight key.Binding
	FarUp    key.Binding
	FarDown  key.Binding
	Open     key.Binding
	ToTray   key.Binding
	DropHere key.Binding
	Delete   key.Binding
	New      key.Binding
	Add      key.Binding
	Edit     key.Binding
	Color    key.Binding
	Tear     key.Binding
	Bin      key.Binding
	Help     key.Binding
	Quit     key.Binding

	// Overlays.
	Close   key.Binding
	Submit  key.Binding
	Switch  key.Binding
	Restore key.Binding
	Purge   key.Binding
	Empty   key.Binding
	Yes     key.Binding
	No      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "drag")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "drag")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "drag")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "drag")),
		FarLeft:  key.NewBinding(key.WithKeys("shift+left", "H")),
		FarRight: key.NewBinding(key.WithKeys("shift+right", "L")),
		FarUp:    key.NewBinding(key.WithKeys("shift+up", "K")),
		FarDown:  key.NewBinding(key.WithKeys("shift+down", "J")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		ToTray:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "to tray")),
		DropHere: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "drop")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sticky")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Color:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "colour")),
		Tear:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "tear page")),
		Bin:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bin")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Close:   key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "close")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
		Switch:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "kind")),
		Restore: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "restore")),
		Purge:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "purge")),
		Empty:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "empty")),
		Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

func (k keyMap) deskHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Open, k.ToTray, k.DropHere, k.Delete, k.New, k.Add, k.Edit, k.Bin, k.Help, k.Quit}
}

func helpLine(bs []key.Binding) string {
	out := ""
	for i, b := range bs {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if i > 0 {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
