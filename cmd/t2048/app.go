package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/session"
	"github.com/vovakirdan/t2048/internal/storage"
)

// app holds what every command needs: config, logger and store.
type app struct {
	cfg     config.Config
	log     *log.Logger
	store   storage.Repository
	logFile *os.File
}

// openApp loads configuration, applies flags, and opens logging and storage.
// The interactive UI owns the terminal, so it logs to a file and carries on
// in memory when the database cannot be opened; headless commands log to
// stderr and fail instead.
func openApp(interactive bool) (*app, error) {
	if err := config.LoadDotEnv(""); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if err := a.openLog(interactive); err != nil {
		return nil, err
	}

	if flagNoSave {
		a.store = storage.NewMemory()
		return a, nil
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		if !interactive {
			a.Close()
			return nil, err
		}
		a.log.Warn("could not open game database, progress will not be saved", "error", err)
		a.store = storage.NewMemory()
		return a, nil
	}
	a.store = store
	return a, nil
}

func (a *app) openLog(interactive bool) error {
	level, err := log.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
		if f, err := openLogFile(a.cfg.Log.File); err == nil {
			a.logFile = f
			w = f
		}
	}

	a.log = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	})
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// session restores the saved game.
func (a *app) session() *session.Session {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return session.Open(session.Options{
		Size:                a.cfg.Board.Size,
		Spawn:               a.cfg.Spawn.Engine(),
		Rand:                rand.New(rand.NewSource(seed)),
		Store:               a.store,
		Logger:              a.log,
		LeaderboardCapacity: a.cfg.Leaderboard.Capacity,
		DateLayout:          a.cfg.Leaderboard.DateLayout,
	})
}

// Close releases the store and the log file.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("could not close game database", "error", err)
		}
	}
	if a.logFile != nil {
		//nolint:errcheck // Best-effort close on exit
		a.logFile.Close()
	}
}
