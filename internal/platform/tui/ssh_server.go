package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the host key file, generated on first start.
	// Empty means ~/.aether/host_key.
	HostKeyPath string

	// DBPath is the database holding scores and every user's save slots.
	DBPath string

	// TickRate is the simulation rate of every session.
	TickRate int

	// IdleTimeout closes connections without traffic.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns the config used by "aether serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.aether/aether.db",
		TickRate:    60,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the variant menu over SSH. Each user plays in their own
// save namespace and may hold one session at a time.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu     sync.Mutex
	active map[string]bool
}

// NewSSHServer opens the database and prepares the listener. A nil logger
// logs to stderr. Without a database, saves only live as long as a session.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "aether-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
		active: make(map[string]bool),
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("database unavailable, saves will not persist", "error", err)
	} else {
		srv.store = store
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		// Last middleware runs first.
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.singleSession,
			activeterm.Middleware(),
			srv.logSession,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// hostKeyPath resolves the host key location and creates its directory.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".aether", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	return NewSessionModel(s.sessionOptions(cfg, sess.User())), []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionOptions builds the game options of one SSH user.
func (s *SSHServer) sessionOptions(cfg core.RuntimeConfig, user string) Options {
	opts := Options{
		Config: cfg,
		Player: user,
		Logger: s.logger.With("user", user),
	}
	if s.store != nil {
		opts.Scores = s.store
		opts.Saves = storage.Prefixed(s.store, UserPrefix(user))
	} else {
		opts.Saves = storage.NewMemoryKV()
	}
	return opts
}

// UserPrefix returns the key prefix isolating a user's save data.
func UserPrefix(user string) string {
	if user == "" {
		user = "anonymous"
	}
	return "user/" + user + "/"
}

// claim marks user as playing. It fails if the user already is.
func (s *SSHServer) claim(user string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[user] {
		return false
	}
	s.active[user] = true
	return true
}

func (s *SSHServer) release(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, user)
}

func (s *SSHServer) singleSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		user := sess.User()
		if !s.claim(user) {
			s.logger.Warn("rejected second session", "user", user)
			wish.Fatalln(sess, "You are already playing in another session.")
			return
		}
		defer s.release(user)
		next(sess)
	}
}

func (s *SSHServer) logSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("session started", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", remote,
			"duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is cancelled or the listener fails, then
// shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown()
	}
}

// Shutdown stops accepting sessions and waits up to 10s for open ones.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("cannot close database", "error", err)
	}
	s.store = nil
}
