package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Overall   key.Binding
	Last      key.Binding
	Clear     key.Binding
	Quit      key.Binding
	ReportUp  key.Binding
	ReportDn  key.Binding
	ReportPgU key.Binding
	ReportPgD key.Binding
}

var keys = keyMap{
	Prev:      key.NewBinding(key.WithKeys("up", "ctrl+p", "ctrl+k"), key.WithHelp("up", "previous sender")),
	Next:      key.NewBinding(key.WithKeys("down", "ctrl+n", "ctrl+j"), key.WithHelp("dn", "next sender")),
	Overall:   key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "overall")),
	Last:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last sender")),
	Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("C-l", "clear filter")),
	Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	ReportUp:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "report half page up")),
	ReportDn:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("C-d", "report half page down")),
	ReportPgU: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "report page up")),
	ReportPgD: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "report page down")),
}
