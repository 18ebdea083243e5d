package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/electr1fy0/smartnotes/api"
	"github.com/electr1fy0/smartnotes/notebook"
	"github.com/electr1fy0/smartnotes/utils"
)

type notesView struct {
	book   *notebook.Notebook
	user   api.User
	list   list.Model
	search textinput.Model
	detail viewport.Model
	help   help.Model
	card   card
	modal  editorModal

	searching bool
	loading   bool
	width     int
	height    int
}

func newNotesView(user api.User, width, height int) notesView {
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search titles"
	search.CharLimit = 100

	nv := notesView{
		book:   notebook.New(),
		user:   user,
		list:   l,
		search: search,
		detail: viewport.New(width, height),
		help:   help.New(),
	}
	nv.resize(width, height)
	return nv
}

func (nv *notesView) resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	nv.width, nv.height = width, height
	body := height - 8
	if body < 3 {
		body = 3
	}
	nv.list.SetSize(width, body)
	nv.search.Width = width - 4
	nv.detail.Width = width - 6
	nv.detail.Height = body - 4
	nv.help.Width = width
	if nv.modal.open {
		nv.modal.resize(width, height)
	}
}

// refresh rebuilds the list from the notebook, filtered by the search term.
func (nv *notesView) refresh() {
	visible := nv.book.Filter(nv.search.Value())
	items := make([]list.Item, len(visible))
	for i, n := range visible {
		items[i] = noteItem{note: n}
	}
	nv.list.SetItems(items)
	if len(items) > 0 && nv.list.Index() >= len(items) {
		nv.list.Select(len(items) - 1)
	}
}

func (nv notesView) visible() []api.Note {
	items := nv.list.Items()
	out := make([]api.Note, 0, len(items))
	for _, it := range items {
		out = append(out, it.(noteItem).note)
	}
	return out
}

func (nv notesView) selected() (api.Note, bool) {
	it, ok := nv.list.SelectedItem().(noteItem)
	if !ok {
		return api.Note{}, false
	}
	return it.note, true
}

func (m Model) fetchNotes() tea.Cmd {
	epoch, client := m.epoch, m.deps.API
	return func() tea.Msg {
		notes, err := client.ListNotes(context.Background())
		return notesLoadedMsg{epoch: epoch, notes: notes, err: err}
	}
}

func (m Model) updateNotes(msg tea.Msg) (Model, tea.Cmd) {
	nv := &m.notes
	switch msg := msg.(type) {
	case notesLoadedMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		nv.loading = false
		if msg.err != nil {
			m.deps.Logger.Warn().Err(msg.err).Msg("fetch notes")
			return m.notify(failure("Failed to fetch notes", msg.err))
		}
		nv.book.Reset(msg.notes)
		nv.refresh()
		m.deps.Logger.Debug().Int("count", nv.book.Len()).Msg("notes loaded")
		return m, nil

	case noteSavedMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		nv.modal.saving = false
		if msg.err != nil {
			m.deps.Logger.Warn().Err(msg.err).Str("id", msg.editingID).Msg("save note")
			return m.notify(failure("Failed to save note", msg.err))
		}
		text := "Note updated"
		if msg.editingID == "" {
			nv.book.Insert(*msg.note)
			text = "Note created"
		} else {
			nv.book.Replace(msg.editingID, *msg.note)
		}
		nv.modal = editorModal{}
		nv.refresh()
		return m.notify(success(text))

	case noteDeletedMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		if msg.err != nil {
			m.deps.Logger.Warn().Err(msg.err).Str("id", msg.id).Msg("delete note")
			return m.notify(failure("Failed to delete note", msg.err))
		}
		nv.book.Remove(msg.id)
		nv.refresh()
		return m.notify(success("Note deleted"))

	case editorDoneMsg:
		if msg.epoch != m.epoch || !nv.modal.open {
			return m, nil
		}
		if msg.err != nil {
			m.deps.Logger.Warn().Err(msg.err).Msg("external editor")
			return m.notify(failure("Editor failed", msg.err))
		}
		nv.modal.content.SetValue(strings.TrimRight(msg.content, "\n"))
		return m, nil

	case tea.KeyMsg:
		switch {
		case nv.modal.open:
			return m.updateModal(msg)
		case nv.searching:
			return m.updateSearch(msg)
		case nv.card.state == cardExpanded:
			return m.updateExpanded(msg)
		case nv.card.state == cardConfirmingDelete:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	switch {
	case nv.modal.open:
		cmd = nv.modal.update(msg)
	case nv.searching:
		nv.search, cmd = nv.search.Update(msg)
	default:
		nv.list, cmd = nv.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	nv := &m.notes
	switch {
	case key.Matches(msg, notesKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, notesKeys.Search):
		nv.searching = true
		cmd := nv.search.Focus()
		return m, cmd

	case key.Matches(msg, notesKeys.Clear):
		if nv.search.Value() != "" {
			nv.search.SetValue("")
			nv.refresh()
		}
		return m, nil

	case key.Matches(msg, notesKeys.Add):
		nv.modal = newEditorModal(api.Note{}, nv.width, nv.height)
		return m, textinput.Blink

	case key.Matches(msg, notesKeys.Edit):
		if n, ok := nv.selected(); ok {
			if n, ok := nv.card.edit(n); ok {
				nv.modal = newEditorModal(n, nv.width, nv.height)
				return m, textinput.Blink
			}
		}
		return m, nil

	case key.Matches(msg, notesKeys.Delete):
		if n, ok := nv.selected(); ok {
			nv.card.trash(n)
		}
		return m, nil

	case key.Matches(msg, notesKeys.Open):
		if n, ok := nv.selected(); ok && nv.card.open(n) {
			nv.card.rendered = renderNote(n.Content, nv.width, m.deps.MarkdownStyle)
			nv.detail.SetContent(nv.card.rendered)
			nv.detail.GotoTop()
		}
		return m, nil

	case key.Matches(msg, notesKeys.Refresh):
		nv.loading = true
		return m, m.fetchNotes()

	case key.Matches(msg, notesKeys.Logout):
		return m.logout()
	}

	var cmd tea.Cmd
	nv.list, cmd = nv.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	nv := &m.notes
	switch msg.Type {
	case tea.KeyEnter:
		nv.searching = false
		nv.search.Blur()
		return m, nil
	case tea.KeyEsc:
		nv.searching = false
		nv.search.Blur()
		nv.search.SetValue("")
		nv.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	nv.search, cmd = nv.search.Update(msg)
	nv.refresh()
	return m, cmd
}

func (m Model) updateExpanded(msg tea.KeyMsg) (Model, tea.Cmd) {
	nv := &m.notes
	switch {
	case key.Matches(msg, cardKeys.Copy):
		if err := m.deps.Clipboard(nv.card.note.Content); err != nil {
			m.deps.Logger.Warn().Err(err).Msg("clipboard")
			return m.notify(failure("Copy failed", err))
		}
		return m.notify(success("Copied to clipboard"))
	case key.Matches(msg, cardKeys.Close):
		nv.card.close()
		return m, nil
	}
	var cmd tea.Cmd
	nv.detail, cmd = nv.detail.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (Model, tea.Cmd) {
	nv := &m.notes
	switch {
	case key.Matches(msg, cardKeys.Confirm):
		id, ok := nv.card.confirm()
		if !ok {
			return m, nil
		}
		epoch, client := m.epoch, m.deps.API
		return m, func() tea.Msg {
			_, err := client.DeleteNote(context.Background(), id)
			return noteDeletedMsg{epoch: epoch, id: id, err: err}
		}
	case key.Matches(msg, cardKeys.Cancel):
		nv.card.cancel()
	}
	return m, nil
}

func (m Model) updateModal(msg tea.KeyMsg) (Model, tea.Cmd) {
	nv := &m.notes
	switch {
	case key.Matches(msg, modalKeys.Cancel):
		if !nv.modal.saving {
			nv.modal = editorModal{}
		}
		return m, nil
	case key.Matches(msg, modalKeys.Switch):
		cmd := nv.modal.toggleFocus()
		return m, cmd
	case key.Matches(msg, modalKeys.Save):
		return m.saveNote()
	case key.Matches(msg, modalKeys.Editor):
		return m.openExternalEditor()
	}
	cmd := nv.modal.update(msg)
	return m, cmd
}

func (m Model) saveNote() (Model, tea.Cmd) {
	md := &m.notes.modal
	if md.saving {
		return m, nil
	}
	in, ok := md.input()
	if !ok {
		return m, nil
	}
	md.saving = true

	epoch, client, id := m.epoch, m.deps.API, md.editingID
	return m, func() tea.Msg {
		ctx := context.Background()
		var (
			note *api.Note
			err  error
		)
		if id == "" {
			note, err = client.CreateNote(ctx, in)
		} else {
			note, err = client.UpdateNote(ctx, id, in)
		}
		return noteSavedMsg{epoch: epoch, editingID: id, note: note, err: err}
	}
}

func (m Model) openExternalEditor() (Model, tea.Cmd) {
	sess, err := utils.PrepareEditor(m.notes.modal.content.Value())
	if err != nil {
		return m.notify(failure("Editor failed", err))
	}
	epoch := m.epoch
	return m, tea.ExecProcess(sess.Cmd, func(err error) tea.Msg {
		if err != nil {
			sess.Discard()
			return editorDoneMsg{epoch: epoch, err: err}
		}
		content, err := sess.Result()
		return editorDoneMsg{epoch: epoch, content: content, err: err}
	})
}

func (m Model) logout() (Model, tea.Cmd) {
	if err := m.deps.Session.Clear(); err != nil {
		m.deps.Logger.Error().Err(err).Msg("clear session")
	}
	m.deps.Logger.Info().Msg("logged out")
	next, cmd := m.navigate(viewLogin)
	bye := next.notice.push(info("Logged out"))
	return next, tea.Batch(cmd, bye)
}

func (nv notesView) header() string {
	count := fmt.Sprintf("%d notes", nv.book.Len())
	if nv.book.Len() == 1 {
		count = "1 note"
	}
	return titleStyle.Render("Smart Notes") + "  " +
		avatarStyle.Render(initials(nv.user.Name)) + " " +
		accentStyle.Render(displayName(nv.user)) + "  " +
		helpStyle.Render(count)
}

func (nv notesView) view() string {
	var b strings.Builder
	b.WriteString(nv.header())
	b.WriteString("\n\n")

	switch {
	case nv.modal.open:
		b.WriteString(nv.modal.view())
		b.WriteString("\n")
		b.WriteString(nv.help.View(modalKeys))
		return b.String()

	case nv.card.state == cardExpanded:
		n := nv.card.note
		body := titleStyle.Render(n.Title) + "  " + dateStyle.Render(formatDate(n.CreatedAt)) +
			"\n\n" + nv.detail.View()
		b.WriteString(panelStyle.Render(body))
		b.WriteString("\n")
		b.WriteString(nv.help.View(cardKeys))
		return b.String()

	case nv.card.state == cardConfirmingDelete:
		body := warningStyle.Render("Delete this note?") + "\n\n" +
			titleStyle.Render(nv.card.note.Title) + "\n\n" +
			helpStyle.Render("y: delete • n: cancel")
		b.WriteString(dangerPanelStyle.Render(body))
		return b.String()
	}

	if nv.searching || nv.search.Value() != "" {
		b.WriteString(nv.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case nv.loading && nv.book.Len() == 0:
		b.WriteString(helpStyle.Render("Loading notes..."))
	case nv.book.Len() == 0:
		b.WriteString(helpStyle.Render("No notes yet. Press a to add one."))
	case len(nv.list.Items()) == 0:
		b.WriteString(helpStyle.Render("No notes match your search."))
	default:
		b.WriteString(nv.list.View())
	}
	b.WriteString("\n")
	b.WriteString(nv.help.View(notesKeys))
	return b.String()
}
