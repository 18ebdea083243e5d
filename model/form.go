package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 36
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

type field struct {
	label string
	input textinput.Model
}

// form is a vertical stack of text inputs with one focused at a time.
type form struct {
	fields []field
	focus  int
}

func newForm(fields ...field) form {
	f := form{fields: fields}
	f.fields[0].input.Focus()
	return f
}

func (f *form) move(delta int) tea.Cmd {
	n := len(f.fields)
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + n) % n
	return f.fields[f.focus].input.Focus()
}

func (f form) onLast() bool { return f.focus == len(f.fields)-1 }

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f form) value(i int) string { return f.fields[i].input.Value() }

func (f form) view() string {
	var b strings.Builder
	for _, fl := range f.fields {
		b.WriteString(labelStyle.Render(fl.label))
		b.WriteString(fl.input.View())
		b.WriteString("\n")
	}
	return b.String()
}
