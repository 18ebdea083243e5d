package model

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/electr1fy0/smartnotes/api"
	"github.com/electr1fy0/smartnotes/session"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	notes     []api.Note
	nextID    int
	loginResp *api.AuthResponse

	loginErr  error
	signupErr error
	listErr   error
	saveErr   error
	deleteErr error

	lastInput api.NoteInput
	lastID    string
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Login(_ context.Context, _ api.Credentials) (*api.AuthResponse, error) {
	f.record("Login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) Signup(_ context.Context, _ api.Registration) (*api.Ack, error) {
	f.record("Signup")
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &api.Ack{Message: "User registered successfully"}, nil
}

func (f *fakeAPI) ListNotes(context.Context) ([]api.Note, error) {
	f.record("ListNotes")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]api.Note(nil), f.notes...), nil
}

func (f *fakeAPI) CreateNote(_ context.Context, in api.NoteInput) (*api.Note, error) {
	f.record("CreateNote")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastInput = in
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.nextID++
	return &api.Note{ID: fmt.Sprintf("new-%d", f.nextID), Title: in.Title, Content: in.Content, CreatedAt: time.Now()}, nil
}

func (f *fakeAPI) UpdateNote(_ context.Context, id string, in api.NoteInput) (*api.Note, error) {
	f.record("UpdateNote")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastID, f.lastInput = id, in
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &api.Note{ID: id, Title: in.Title, Content: in.Content}, nil
}

func (f *fakeAPI) DeleteNote(_ context.Context, id string) (*api.Ack, error) {
	f.record("DeleteNote")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastID = id
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &api.Ack{Message: "Note deleted"}, nil
}

var errOffline = &api.Error{Op: "test", Kind: api.KindNetwork, Err: errors.New("connection refused")}

// cmdTimeout bounds how long a command may run before it is treated as a
// timer (cursor blink, notice expiry) and dropped.
const cmdTimeout = 150 * time.Millisecond

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		batch, ok := msg.(tea.BatchMsg)
		if !ok {
			if msg == nil {
				return nil
			}
			return []tea.Msg{msg}
		}
		results := make([][]tea.Msg, len(batch))
		var wg sync.WaitGroup
		for i, c := range batch {
			wg.Add(1)
			go func(i int, c tea.Cmd) {
				defer wg.Done()
				results[i] = collect(c)
			}(i, c)
		}
		wg.Wait()
		var out []tea.Msg
		for _, r := range results {
			out = append(out, r...)
		}
		return out
	case <-time.After(cmdTimeout):
		return nil
	}
}

// settle runs cmd and feeds everything it produces back into the model
// until nothing quick is left.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for depth := 0; cmd != nil && depth < 10; depth++ {
		var cmds []tea.Cmd
		for _, msg := range collect(cmd) {
			next, c := m.Update(msg)
			m = next.(Model)
			cmds = append(cmds, c)
		}
		cmd = tea.Batch(cmds...)
	}
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = settle(t, next.(Model), cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func keyOf(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func testDeps(a API, store session.Store) Deps {
	return Deps{
		API:           a,
		Session:       store,
		Logger:        zerolog.Nop(),
		MarkdownStyle: "notty",
		RedirectDelay: 10 * time.Millisecond,
		Clipboard:     func(string) error { return nil },
	}
}

func start(t *testing.T, deps Deps) Model {
	t.Helper()
	m := New(deps)
	return settle(t, m, m.Init())
}

func loggedIn(t *testing.T, notes ...api.Note) (*fakeAPI, session.Store) {
	t.Helper()
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(session.Session{Token: "tok", User: api.User{Name: "Ada Lovelace", Email: "ada@example.com"}}))
	return &fakeAPI{notes: notes}, store
}

func titles(notes []api.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}
