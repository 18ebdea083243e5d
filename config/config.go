package config

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL        = "http://localhost:5000/api"
	DefaultLogLevel      = "info"
	DefaultMarkdownStyle = "auto"
	DefaultDevAddr       = ":5000"
)

type Config struct {
	APIURL        string `yaml:"api_url"`
	SessionFile   string `yaml:"session_file"`
	SessionSecret string `yaml:"session_secret"`
	SecretFile    string `yaml:"secret_file"`
	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`
	MarkdownStyle string `yaml:"markdown_style"`
	DevAddr       string `yaml:"dev_addr"`
}

// Load reads .env from the working directory, then the YAML config file,
// then SMARTNOTES_* variables, and fills defaults for anything left empty.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	base := baseDir()
	var cfg Config

	path := envOr("SMARTNOTES_CONFIG", filepath.Join(base, "config.yaml"))
	if err := readFile(path, &cfg); err != nil {
		return Config{}, err
	}

	override(&cfg.APIURL, "SMARTNOTES_API_URL")
	override(&cfg.SessionFile, "SMARTNOTES_SESSION_FILE")
	override(&cfg.SessionSecret, "SMARTNOTES_SESSION_SECRET")
	override(&cfg.SecretFile, "SMARTNOTES_SECRET_FILE")
	override(&cfg.LogFile, "SMARTNOTES_LOG_FILE")
	override(&cfg.LogLevel, "SMARTNOTES_LOG_LEVEL")
	override(&cfg.MarkdownStyle, "SMARTNOTES_MARKDOWN_STYLE")
	override(&cfg.DevAddr, "SMARTNOTES_DEV_ADDR")

	fallback(&cfg.APIURL, DefaultAPIURL)
	fallback(&cfg.SessionFile, filepath.Join(base, "session"))
	fallback(&cfg.SecretFile, filepath.Join(base, "session.key"))
	fallback(&cfg.LogFile, filepath.Join(base, "smartnotes.log"))
	fallback(&cfg.LogLevel, DefaultLogLevel)
	fallback(&cfg.MarkdownStyle, DefaultMarkdownStyle)
	fallback(&cfg.DevAddr, DefaultDevAddr)
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return errors.Wrapf(err, "invalid api url %q", c.APIURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("invalid api url %q: want http(s)://host[/path]", c.APIURL)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".smartnotes"
	}
	return filepath.Join(home, ".smartnotes")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func override(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}

func fallback(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
