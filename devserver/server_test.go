package devserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/electr1fy0/smartnotes/api"
	"github.com/electr1fy0/smartnotes/devserver"
	"github.com/electr1fy0/smartnotes/session"
)

func startServer(t *testing.T) string {
	t.Helper()
	clock := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	srv := httptest.NewServer(devserver.New(
		zerolog.Nop(),
		devserver.WithBcryptCost(bcrypt.MinCost),
		devserver.WithClock(func() time.Time { return clock }),
	))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func TestSignupLoginAndCRUD(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	c := api.New(startServer(t), store)

	_, err := c.Signup(ctx, api.Registration{Name: "Ada Lovelace", Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	_, err = c.Signup(ctx, api.Registration{Name: "Ada", Email: "A@B.com", Password: "other"})
	require.Error(t, err)
	assert.Equal(t, api.KindValidation, api.KindOf(err))
	assert.Equal(t, "User already exists", api.MessageOf(err))

	_, err = c.Login(ctx, api.Credentials{Email: "a@b.com", Password: "wrong"})
	assert.Equal(t, api.KindAuth, api.KindOf(err))

	_, err = c.ListNotes(ctx)
	assert.Equal(t, api.KindAuth, api.KindOf(err), "no token yet")

	auth, err := c.Login(ctx, api.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, api.User{Name: "Ada Lovelace", Email: "a@b.com"}, auth.User)
	require.NoError(t, store.Set(session.Session{Token: auth.Token, User: auth.User}))

	first, err := c.CreateNote(ctx, api.NoteInput{Title: "First", Content: "one"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), first.CreatedAt.UTC())

	second, err := c.CreateNote(ctx, api.NoteInput{Title: "Second", Content: "two"})
	require.NoError(t, err)

	updated, err := c.UpdateNote(ctx, first.ID, api.NoteInput{Title: "First!", Content: "uno"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "First!", updated.Title)

	_, err = c.DeleteNote(ctx, second.ID)
	require.NoError(t, err)

	notes, err := c.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, *updated, notes[0])

	_, err = c.DeleteNote(ctx, second.ID)
	assert.Equal(t, api.KindServer, api.KindOf(err))
}

func TestNotesArePerUser(t *testing.T) {
	ctx := context.Background()
	url := startServer(t)

	login := func(email string) *api.Client {
		store := session.NewMemoryStore()
		c := api.New(url, store)
		_, err := c.Signup(ctx, api.Registration{Name: email, Email: email, Password: "pw"})
		require.NoError(t, err)
		auth, err := c.Login(ctx, api.Credentials{Email: email, Password: "pw"})
		require.NoError(t, err)
		require.NoError(t, store.Set(session.Session{Token: auth.Token, User: auth.User}))
		return c
	}

	alice := login("alice@example.com")
	bob := login("bob@example.com")

	n, err := alice.CreateNote(ctx, api.NoteInput{Title: "private", Content: "x"})
	require.NoError(t, err)

	notes, err := bob.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = bob.DeleteNote(ctx, n.ID)
	assert.Error(t, err)
}

func TestRejectsEmptyNotes(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	c := api.New(startServer(t), store)
	_, err := c.Signup(ctx, api.Registration{Name: "n", Email: "n@x", Password: "pw"})
	require.NoError(t, err)
	auth, err := c.Login(ctx, api.Credentials{Email: "n@x", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, store.Set(session.Session{Token: auth.Token, User: auth.User}))

	_, err = c.CreateNote(ctx, api.NoteInput{Title: "  ", Content: "x"})
	assert.Equal(t, api.KindValidation, api.KindOf(err))
}

func TestUnknownBearer(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, startServer(t)+"/notes", strings.NewReader(""))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer nope")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
