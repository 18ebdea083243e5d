package model

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/electr1fy0/smartnotes/api"
	"github.com/electr1fy0/smartnotes/session"
)

const (
	loginEmail = iota
	loginPassword
)

type loginView struct {
	form       form
	submitting bool
}

func newLoginView() loginView {
	return loginView{form: newForm(
		field{"Email", newInput("you@example.com", false)},
		field{"Password", newInput("password", true)},
	)}
}

func (m Model) updateLogin(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.login.submitting = false
		if msg.err != nil {
			m.deps.Logger.Warn().Err(msg.err).Str("kind", api.KindOf(msg.err).String()).Msg("login failed")
			return m.notify(failure("Login failed", msg.err))
		}
		sess := session.Session{Token: msg.resp.Token, User: msg.resp.User}
		if err := m.deps.Session.Set(sess); err != nil {
			m.deps.Logger.Error().Err(err).Msg("store session")
			return m.notify(failure("Could not save session", err))
		}
		m.deps.Logger.Info().Str("email", sess.User.Email).Msg("logged in")
		next, cmd := m.navigate(viewNotes)
		welcome := next.notice.push(success("Welcome back, " + displayName(sess.User)))
		return next, tea.Batch(cmd, welcome)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, formKeys.Signup):
			return m.navigate(viewSignup)
		case key.Matches(msg, formKeys.Next):
			cmd := m.login.form.move(1)
			return m, cmd
		case key.Matches(msg, formKeys.Prev):
			cmd := m.login.form.move(-1)
			return m, cmd
		case key.Matches(msg, formKeys.Submit):
			if msg.Type == tea.KeyEnter && !m.login.form.onLast() {
				cmd := m.login.form.move(1)
				return m, cmd
			}
			return m.submitLogin()
		}
	}
	cmd := m.login.form.update(msg)
	return m, cmd
}

func (m Model) submitLogin() (Model, tea.Cmd) {
	if m.login.submitting {
		return m, nil
	}
	creds := api.Credentials{
		Email:    strings.TrimSpace(m.login.form.value(loginEmail)),
		Password: m.login.form.value(loginPassword),
	}
	if creds.Email == "" || creds.Password == "" {
		return m.notify(invalid("Email and password are required"))
	}

	m.login.submitting = true
	epoch, client := m.epoch, m.deps.API
	return m, func() tea.Msg {
		resp, err := client.Login(context.Background(), creds)
		return loginDoneMsg{epoch: epoch, resp: resp, err: err}
	}
}

func (l loginView) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Log in"))
	b.WriteString("\n\n")
	b.WriteString(l.form.view())
	b.WriteString("\n")
	if l.submitting {
		b.WriteString(warningStyle.Render("Logging in..."))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab: next field • enter: log in • ctrl+n: create an account • ctrl+c: quit"))
	return b.String()
}

func displayName(u api.User) string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Email
}
