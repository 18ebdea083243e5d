package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/electr1fy0/smartnotes/api"
	"github.com/electr1fy0/smartnotes/config"
	"github.com/electr1fy0/smartnotes/logging"
	"github.com/electr1fy0/smartnotes/model"
	"github.com/electr1fy0/smartnotes/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "smartnotes:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	apiURL := flag.String("api", cfg.APIURL, "backend base URL")
	ephemeral := flag.Bool("ephemeral", false, "keep the session in memory only")
	flag.Parse()
	cfg.APIURL = *apiURL

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := openStore(cfg, *ephemeral, log)
	if err != nil {
		return err
	}

	client := api.New(cfg.APIURL, store, api.WithLogger(log))
	log.Info().Str("api", client.BaseURL()).Bool("ephemeral", *ephemeral).Msg("starting")

	m := model.New(model.Deps{
		API:           client,
		Session:       store,
		Logger:        log,
		MarkdownStyle: cfg.MarkdownStyle,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return errors.Wrap(err, "run program")
	}
	return nil
}

func openStore(cfg config.Config, ephemeral bool, log zerolog.Logger) (session.Store, error) {
	if ephemeral {
		return session.NewMemoryStore(), nil
	}
	secret := cfg.SessionSecret
	if secret == "" {
		var err error
		if secret, err = session.LoadOrCreateSecret(cfg.SecretFile); err != nil {
			return nil, err
		}
	}
	return session.Open(cfg.SessionFile, secret, log)
}

