package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEditorHonoursArgs(t *testing.T) {
	t.Setenv("EDITOR", "code --wait")
	assert.Equal(t, []string{"code", "--wait"}, ResolveEditor())
}

func TestPrepareEditorRoundTrip(t *testing.T) {
	t.Setenv("EDITOR", "true")

	s, err := PrepareEditor("draft body")
	require.NoError(t, err)
	assert.Equal(t, []string{"true", s.Path}, s.Cmd.Args)

	// stand-in for the user saving the file
	require.NoError(t, os.WriteFile(s.Path, []byte("edited body"), 0o600))

	got, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, "edited body", got)

	_, err = os.Stat(s.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestDiscard(t *testing.T) {
	t.Setenv("EDITOR", "true")
	s, err := PrepareEditor("x")
	require.NoError(t, err)
	s.Discard()
	_, err = os.Stat(s.Path)
	assert.True(t, os.IsNotExist(err))
}
