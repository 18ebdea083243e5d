package model

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultRedirectDelay = 2 * time.Second

// New builds the root model. The first view is the notes list when the
// store already holds a token, login otherwise.
func New(deps Deps) Model {
	if deps.RedirectDelay <= 0 {
		deps.RedirectDelay = defaultRedirectDelay
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	if deps.MarkdownStyle == "" {
		deps.MarkdownStyle = "auto"
	}

	m := Model{deps: deps}
	m, cmd := m.navigate(viewNotes)
	m.initCmd = cmd
	return m
}

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// navigate switches views through the guard. Every switch bumps the epoch
// so replies to requests started by the previous view are ignored.
func (m Model) navigate(target viewID) (Model, tea.Cmd) {
	resolved := guard(target, m.deps.Session)
	if resolved != target {
		m.deps.Logger.Debug().Str("target", target.String()).Msg("no session, redirecting to login")
	}
	m.epoch++
	m.view = resolved

	switch resolved {
	case viewSignup:
		m.signup = newSignupView()
		return m, textinput.Blink
	case viewNotes:
		sess, _ := m.deps.Session.Get()
		m.notes = newNotesView(sess.User, m.width, m.height)
		m.notes.loading = true
		return m, m.fetchNotes()
	default:
		m.login = newLoginView()
		return m, textinput.Blink
	}
}

func (m Model) notify(r Result) (Model, tea.Cmd) {
	cmd := m.notice.push(r)
	return m, cmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.view != viewNotes {
			return m, nil
		}
		m.notes.resize(msg.Width, msg.Height)
		if m.notes.card.state == cardExpanded {
			m.notes.card.rendered = renderNote(m.notes.card.note.Content, msg.Width, m.deps.MarkdownStyle)
			m.notes.detail.SetContent(m.notes.card.rendered)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case noticeExpiredMsg:
		m.notice.expire(msg.seq)
		return m, nil

	case redirectMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		return m.navigate(msg.to)
	}

	var (
		next Model
		cmd  tea.Cmd
	)
	switch m.view {
	case viewSignup:
		next, cmd = m.updateSignup(msg)
	case viewNotes:
		next, cmd = m.updateNotes(msg)
	default:
		next, cmd = m.updateLogin(msg)
	}
	return next, cmd
}

func (m Model) View() string {
	var b strings.Builder
	switch m.view {
	case viewSignup:
		b.WriteString(m.signup.view())
	case viewNotes:
		b.WriteString(m.notes.view())
	default:
		b.WriteString(m.login.view())
	}
	if n := m.notice.view(); n != "" {
		b.WriteString("\n\n")
		b.WriteString(n)
	}
	return appStyle.Render(b.String())
}
