package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Focus      key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	New        key.Binding
	Refresh    key.Binding
	Delete     key.Binding
	Login      key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Send       key.Binding
	Web        key.Binding
	Model      key.Binding
	Attach     key.Binding
	Detach     key.Binding
	Expand     key.Binding
	Generate   key.Binding
	Bottom     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Back       key.Binding
	NewlineAlt key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("C-c", "quit")),
	Focus:      key.NewBinding(key.WithKeys("tab", "ctrl+s"), key.WithHelp("tab", "conversations")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	New:        key.NewBinding(key.WithKeys("n", "ctrl+n"), key.WithHelp("n", "new chat")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Login:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
	Confirm:    key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
	Cancel:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
	Send:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Web:        key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("C-w", "web")),
	Model:      key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("C-b", "model")),
	Attach:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("C-o", "attach")),
	Detach:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("C-x", "detach")),
	Expand:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("C-e", "editor")),
	Generate:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("C-p", "generate")),
	Bottom:     key.NewBinding(key.WithKeys("ctrl+g", "end"), key.WithHelp("C-g", "bottom")),
	PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	NewlineAlt: key.NewBinding(key.WithKeys("shift+enter", "ctrl+j", "alt+enter"), key.WithHelp("C-j", "newline")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Focus, k.Web, k.Model, k.Attach, k.Bottom, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.NewlineAlt, k.Expand, k.Attach, k.Detach},
		{k.Up, k.Down, k.Select, k.New, k.Refresh, k.Delete, k.Login},
		{k.Web, k.Model, k.Generate, k.Bottom, k.PageUp, k.PageDown, k.Quit},
	}
}
