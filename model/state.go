package model

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/electr1fy0/smartnotes/api"
	"github.com/electr1fy0/smartnotes/session"
)

type viewID int

const (
	viewLogin viewID = iota
	viewSignup
	viewNotes
)

func (v viewID) String() string {
	switch v {
	case viewSignup:
		return "signup"
	case viewNotes:
		return "notes"
	default:
		return "login"
	}
}

// API is the subset of *api.Client the views call.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	Signup(ctx context.Context, reg api.Registration) (*api.Ack, error)
	ListNotes(ctx context.Context) ([]api.Note, error)
	CreateNote(ctx context.Context, in api.NoteInput) (*api.Note, error)
	UpdateNote(ctx context.Context, id string, in api.NoteInput) (*api.Note, error)
	DeleteNote(ctx context.Context, id string) (*api.Ack, error)
}

type Deps struct {
	API     API
	Session session.Store
	Logger  zerolog.Logger

	// MarkdownStyle is a glamour style name, or "auto".
	MarkdownStyle string
	// RedirectDelay is how long the signup success message stays up before
	// returning to login. Defaults to 2s.
	RedirectDelay time.Duration
	// Clipboard defaults to atotto/clipboard.
	Clipboard func(string) error
}

// Async results. Each carries the epoch of the view that started it; a
// result for an older epoch is dropped.
type (
	loginDoneMsg struct {
		epoch int
		resp  *api.AuthResponse
		err   error
	}
	signupDoneMsg struct {
		epoch int
		err   error
	}
	redirectMsg struct {
		epoch int
		to    viewID
	}
	notesLoadedMsg struct {
		epoch int
		notes []api.Note
		err   error
	}
	noteSavedMsg struct {
		epoch     int
		editingID string
		note      *api.Note
		err       error
	}
	noteDeletedMsg struct {
		epoch int
		id    string
		err   error
	}
	editorDoneMsg struct {
		epoch   int
		content string
		err     error
	}
	noticeExpiredMsg struct {
		seq int
	}
)

type Model struct {
	deps Deps

	view  viewID
	epoch int

	width  int
	height int

	initCmd tea.Cmd

	login  loginView
	signup signupView
	notes  notesView
	notice notifier
}
