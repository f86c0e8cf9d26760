package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/calebyang/lazyjson/internal/app"
	"github.com/calebyang/lazyjson/internal/config"
	"github.com/calebyang/lazyjson/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Warn("could not load config, using defaults", "error", err)
		cfg = config.GetDefaults()
	}

	setupLogging(cfg)

	var store *session.Store
	if cfg.Session.Enabled {
		if path, perr := session.DefaultPath(); perr != nil {
			log.Warn("session store unavailable", "error", perr)
		} else if store, err = session.NewStore(path); err != nil {
			log.Warn("session store unavailable", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	// Remaining arguments are files to open
	files := os.Args[1:]

	a := app.New(cfg, store, files)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(a, opts...)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends logs to the configured file. The terminal belongs to
// the TUI, so without a log file logging is disabled entirely.
func setupLogging(cfg *config.Config) {
	if cfg.Log.File == "" {
		log.SetLevel(log.FatalLevel + 1)
		return
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetLevel(log.FatalLevel + 1)
		return
	}
	log.SetOutput(f)

	switch cfg.Log.Level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
