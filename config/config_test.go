package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"SMARTNOTES_CONFIG", "SMARTNOTES_API_URL", "SMARTNOTES_SESSION_FILE",
		"SMARTNOTES_SESSION_SECRET", "SMARTNOTES_SECRET_FILE", "SMARTNOTES_LOG_FILE",
		"SMARTNOTES_LOG_LEVEL", "SMARTNOTES_MARKDOWN_STYLE", "SMARTNOTES_DEV_ADDR",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, filepath.Join(home, ".smartnotes", "session"), cfg.SessionFile)
	assert.Equal(t, filepath.Join(home, ".smartnotes", "session.key"), cfg.SecretFile)
	assert.Equal(t, filepath.Join(home, ".smartnotes", "smartnotes.log"), cfg.LogFile)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultMarkdownStyle, cfg.MarkdownStyle)
	assert.Equal(t, DefaultDevAddr, cfg.DevAddr)
	assert.Empty(t, cfg.SessionSecret)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url: https://notes.example.com/api
log_level: debug
markdown_style: dark
`), 0o600))
	t.Setenv("SMARTNOTES_CONFIG", path)
	t.Setenv("SMARTNOTES_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://notes.example.com/api", cfg.APIURL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "dark", cfg.MarkdownStyle)
}

func TestLoadBadYAML(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [unclosed"), 0o600))
	t.Setenv("SMARTNOTES_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := Config{APIURL: "http://localhost:5000/api", LogLevel: "info"}
	assert.NoError(t, ok.Validate())

	for _, bad := range []Config{
		{APIURL: "localhost:5000", LogLevel: "info"},
		{APIURL: "ftp://host/api", LogLevel: "info"},
		{APIURL: "http://", LogLevel: "info"},
		{APIURL: "http://localhost", LogLevel: "loud"},
	} {
		assert.Error(t, bad.Validate(), "%+v", bad)
	}
}
