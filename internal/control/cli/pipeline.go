package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/edkeys/internal/config"
	"github.com/ja-he/edkeys/internal/input/escape"
	"github.com/ja-he/edkeys/internal/input/shift"
	"github.com/ja-he/edkeys/internal/terminal"
)

// loadConfig reads the config file and resolves the input configuration.
func loadConfig() (config.Config, config.ResolvedInput, error) {
	configData, err := config.Load(config.BaseDir())
	if err != nil {
		return configData, config.ResolvedInput{}, fmt.Errorf("can't load config (%w)", err)
	}
	inputConfig, err := configData.Input.Resolve()
	if err != nil {
		return configData, config.ResolvedInput{}, fmt.Errorf("invalid input config (%w)", err)
	}
	return configData, inputConfig, nil
}

// escapeTable returns the default escape table, patched with the terminal's
// capabilities if so configured.
func escapeTable(cfg config.ResolvedInput, logger zerolog.Logger) *escape.Table {
	table := escape.Default()
	if !cfg.Terminfo || cfg.Term == "" {
		return table
	}

	db, err := escape.LookupTerminfo(cfg.Term)
	if err != nil {
		log.Warn().Err(err).Str("term", cfg.Term).Msg("no terminfo, using built-in sequences only")
		return table
	}
	patched, err := table.Patch(db, logger)
	if err != nil {
		log.Warn().Err(err).Str("term", cfg.Term).Msg("could not patch escape table from terminfo")
		return table
	}
	log.Debug().Str("term", db.Name()).Int("entries", patched.Len()).Msg("patched escape table from terminfo")
	return patched
}

// openSession switches the controlling terminal to raw mode and sets up the
// decoding session on it. The returned TTY must be closed to restore the
// terminal.
func openSession(cfg config.ResolvedInput, logger zerolog.Logger) (*terminal.TTY, *terminal.Session, error) {
	tty, err := terminal.OpenTTY(os.Stdin)
	if err != nil {
		return nil, nil, err
	}

	matcher := escape.NewMatcher(escapeTable(cfg, logger), shift.NewConsole(tty.Fd()), logger)
	session, err := terminal.NewSession(
		tty,
		matcher,
		terminal.SessionConfig{
			EscapeTimeout:    cfg.EscapeTimeout,
			Tick:             cfg.Tick,
			RecoveryInterval: cfg.RecoveryInterval,
		},
		terminal.WithLogger(logger),
	)
	if err != nil {
		tty.Close()
		return nil, nil, err
	}
	return tty, session, nil
}
