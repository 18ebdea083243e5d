package model

import "github.com/charmbracelet/bubbles/key"

type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Signup key.Binding
	Login  key.Binding
}

var formKeys = formKeyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up")),
	Submit: key.NewBinding(key.WithKeys("enter", "ctrl+s")),
	Signup: key.NewBinding(key.WithKeys("ctrl+n")),
	Login:  key.NewBinding(key.WithKeys("ctrl+l")),
}

type notesKeyMap struct {
	Open    key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Search  key.Binding
	Clear   key.Binding
	Refresh key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

func (k notesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Add, k.Edit, k.Delete, k.Search, k.Refresh, k.Logout, k.Quit}
}

func (k notesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Add, k.Edit, k.Delete},
		{k.Search, k.Clear, k.Refresh, k.Logout, k.Quit},
	}
}

var notesKeys = notesKeyMap{
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Add:     key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "trash")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Logout:  key.NewBinding(key.WithKeys("L", "ctrl+o"), key.WithHelp("L", "logout")),
	Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

type cardKeyMap struct {
	Close   key.Binding
	Copy    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var cardKeys = cardKeyMap{
	Close:   key.NewBinding(key.WithKeys("esc", "q", "x", "b"), key.WithHelp("esc", "close")),
	Copy:    key.NewBinding(key.WithKeys("y", "c"), key.WithHelp("y", "copy")),
	Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete")),
	Cancel:  key.NewBinding(key.WithKeys("n", "esc", "q"), key.WithHelp("n", "cancel")),
}

func (k cardKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Close, k.Copy} }
func (k cardKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type modalKeyMap struct {
	Switch key.Binding
	Save   key.Binding
	Editor key.Binding
	Cancel key.Binding
}

var modalKeys = modalKeyMap{
	Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
	Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Editor: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "$EDITOR")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

func (k modalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Save, k.Editor, k.Cancel}
}
func (k modalKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
