package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

// Save backends selectable with --backend.
const (
	backendSQLite = "sqlite"
	backendGdata  = "gdata"
	backendMemory = "memory"
)

// gdataApp names the gdata save directory.
const gdataApp = "aether_knight"

// stores bundles the score table and the save store of a command.
type stores struct {
	scores *storage.Store // nil when the database cannot be opened
	saves  storage.KV
}

// Close releases the database.
func (s stores) Close() {
	if s.scores != nil {
		s.scores.Close()
	}
}

// openStores opens the database and the save backend chosen by --backend.
// A database failure is reported and play continues without persistence.
func openStores(logger *log.Logger) (stores, error) {
	var st stores

	db, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
	} else {
		st.scores = db
	}

	switch flagBackend {
	case backendSQLite:
		if st.scores != nil {
			st.saves = st.scores
		} else {
			st.saves = storage.NewMemoryKV()
		}
	case backendGdata:
		kv, gdErr := storage.OpenGdata(gdataApp)
		if gdErr != nil {
			st.Close()
			return stores{}, gdErr
		}
		st.saves = kv
	case backendMemory:
		st.saves = storage.NewMemoryKV()
	default:
		st.Close()
		return stores{}, fmt.Errorf("unknown backend %q (want sqlite, gdata or memory)", flagBackend)
	}

	logger.Info("storage ready", "backend", flagBackend, "db", flagDBPath)
	return st, nil
}

// newFileLogger logs to ~/.aether/aether.log since the terminal belongs to
// the game. Falls back to discarding output.
func newFileLogger() (*log.Logger, io.Closer) {
	discard := log.New(io.Discard)

	path, err := storage.ExpandHome("~/.aether/aether.log")
	if err != nil {
		return discard, io.NopCloser(nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard, io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return discard, io.NopCloser(nil)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "aether",
	})
	return logger, f
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playerName labels recorded scores.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
