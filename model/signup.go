package model

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/electr1fy0/smartnotes/api"
)

const (
	signupName = iota
	signupEmail
	signupPassword
	signupConfirm
)

type signupView struct {
	form       form
	submitting bool
	done       bool
}

func newSignupView() signupView {
	return signupView{form: newForm(
		field{"Name", newInput("Ada Lovelace", false)},
		field{"Email", newInput("you@example.com", false)},
		field{"Password", newInput("password", true)},
		field{"Confirm password", newInput("password again", true)},
	)}
}

func (m Model) updateSignup(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signupDoneMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.signup.submitting = false
		if msg.err != nil {
			m.deps.Logger.Warn().Err(msg.err).Str("kind", api.KindOf(msg.err).String()).Msg("signup failed")
			return m.notify(failure("Signup failed", msg.err))
		}
		m.signup.done = true
		epoch := m.epoch
		redirect := tea.Tick(m.deps.RedirectDelay, func(time.Time) tea.Msg {
			return redirectMsg{epoch: epoch, to: viewLogin}
		})
		done := m.notice.push(success("Account created successfully! Redirecting to login..."))
		return m, tea.Batch(done, redirect)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, formKeys.Login):
			return m.navigate(viewLogin)
		case key.Matches(msg, formKeys.Next):
			cmd := m.signup.form.move(1)
			return m, cmd
		case key.Matches(msg, formKeys.Prev):
			cmd := m.signup.form.move(-1)
			return m, cmd
		case key.Matches(msg, formKeys.Submit):
			if msg.Type == tea.KeyEnter && !m.signup.form.onLast() {
				cmd := m.signup.form.move(1)
				return m, cmd
			}
			return m.submitSignup()
		}
	}
	cmd := m.signup.form.update(msg)
	return m, cmd
}

func (m Model) submitSignup() (Model, tea.Cmd) {
	if m.signup.submitting || m.signup.done {
		return m, nil
	}
	f := m.signup.form
	reg := api.Registration{
		Name:     strings.TrimSpace(f.value(signupName)),
		Email:    strings.TrimSpace(f.value(signupEmail)),
		Password: f.value(signupPassword),
	}
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return m.notify(invalid("Name, email and password are required"))
	}
	if reg.Password != f.value(signupConfirm) {
		return m.notify(invalid("Passwords do not match!"))
	}

	m.signup.submitting = true
	epoch, client := m.epoch, m.deps.API
	return m, func() tea.Msg {
		_, err := client.Signup(context.Background(), reg)
		return signupDoneMsg{epoch: epoch, err: err}
	}
}

func (s signupView) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create an account"))
	b.WriteString("\n\n")
	b.WriteString(s.form.view())
	b.WriteString("\n")
	if s.submitting {
		b.WriteString(warningStyle.Render("Creating account..."))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab: next field • enter: sign up • ctrl+l: back to login • ctrl+c: quit"))
	return b.String()
}
