package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/electr1fy0/smartnotes/api"
)

const (
	focusTitle = iota
	focusContent
)

// editorModal creates a note (editingID empty) or edits one.
type editorModal struct {
	open      bool
	editingID string
	title     textinput.Model
	content   textarea.Model
	focus     int
	saving    bool
}

func newEditorModal(n api.Note, width, height int) editorModal {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.SetValue(n.Title)

	content := textarea.New()
	content.Placeholder = "Write your note in markdown..."
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.SetValue(n.Content)

	e := editorModal{open: true, editingID: n.ID, title: title, content: content}
	e.resize(width, height)
	e.title.Focus()
	return e
}

func (e *editorModal) resize(width, height int) {
	w := width - 10
	if w < 30 {
		w = 30
	}
	h := height - 14
	if h < 5 {
		h = 5
	}
	e.title.Width = w
	e.content.SetWidth(w)
	e.content.SetHeight(h)
}

func (e *editorModal) toggleFocus() tea.Cmd {
	if e.focus == focusTitle {
		e.focus = focusContent
		e.title.Blur()
		return e.content.Focus()
	}
	e.focus = focusTitle
	e.content.Blur()
	return e.title.Focus()
}

func (e *editorModal) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.focus == focusTitle {
		e.title, cmd = e.title.Update(msg)
	} else {
		e.content, cmd = e.content.Update(msg)
	}
	return cmd
}

// input returns the fields as typed. ok is false when either is blank once
// trimmed; the text itself is sent untouched so markdown indentation survives.
func (e editorModal) input() (api.NoteInput, bool) {
	in := api.NoteInput{
		Title:   e.title.Value(),
		Content: e.content.Value(),
	}
	return in, strings.TrimSpace(in.Title) != "" && strings.TrimSpace(in.Content) != ""
}

func (e editorModal) view() string {
	heading := "New note"
	if e.editingID != "" {
		heading = "Edit note"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(e.title.View())
	b.WriteString("\n\n")
	b.WriteString(e.content.View())
	if e.saving {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Saving..."))
	}
	return panelStyle.Render(b.String())
}
