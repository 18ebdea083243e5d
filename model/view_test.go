package model

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/electr1fy0/smartnotes/api"
)

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Ada Lovelace":          "AL",
		"grace brewster hopper": "GB",
		"cher":                  "C",
		"  ":                    "MD",
		"":                      "MD",
		"élodie durand":         "ÉD",
	}
	for in, want := range cases {
		assert.Equal(t, want, initials(in), in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "31/12/2023", formatDate(time.Date(2023, 12, 31, 10, 0, 0, 0, time.Local)))
	assert.Equal(t, "--/--/----", formatDate(time.Time{}))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "second", preview("\n  \nsecond\nthird", 20))
	assert.Equal(t, "abcd…", preview("abcdefgh", 5))
	assert.Equal(t, "", preview("", 5))
}

func TestFailureText(t *testing.T) {
	r := failure("Failed to save note", &api.Error{Kind: api.KindValidation, Status: 400, Message: "Title is required"})
	assert.Equal(t, LevelError, r.Level)
	assert.Equal(t, "Failed to save note: Title is required", r.Text)

	r = failure("Failed to fetch notes", errOffline)
	assert.Equal(t, api.KindNetwork, r.Kind)
	assert.Contains(t, r.Text, "cannot reach the server")

	r = failure("Login failed", &api.Error{Kind: api.KindAuth, Status: 401})
	assert.Contains(t, r.Text, "credentials")

	r = failure("Oops", errors.New("boom"))
	assert.Equal(t, api.KindUnknown, r.Kind)
	assert.Equal(t, "Oops: boom", r.Text)
}

func TestRenderNoteFallsBack(t *testing.T) {
	out := renderNote("# Heading\n\nbody text", 80, "no-such-style")
	assert.Contains(t, out, "body text")

	out = renderNote("plain words", 80, "notty")
	assert.Contains(t, out, "plain words")
}
