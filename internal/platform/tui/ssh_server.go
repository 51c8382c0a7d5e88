package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/focustile/internal/canvas"
	"github.com/vovakirdan/focustile/internal/metrics"
	"github.com/vovakirdan/focustile/internal/snapshot"
	"github.com/vovakirdan/focustile/internal/storage"
)

// userNamespace prefixes the storage keys of one SSH user.
const userNamespace = "user:"

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.focustile/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MetricsAddr enables the Prometheus endpoint when set.
	MetricsAddr string

	// Canvas configures every user's controller. Owner and Logger are
	// set per session.
	Canvas canvas.Options

	// DismissAfter is how long notifications stay on screen.
	DismissAfter time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":23235",
		IdleTimeout:  30 * time.Minute,
		Canvas:       canvas.DefaultOptions(),
		DismissAfter: 3 * time.Second,
	}
}

// SSHServer serves one canvas per SSH user over Wish. All users share the
// store; each user's keys live under their own namespace.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	kv      storage.KV
	history storage.History
	metrics *metrics.Exporter
	logger  *log.Logger

	mu     sync.Mutex
	active map[string]bool // Users with an open canvas
}

// NewSSHServer creates a new SSH server over the given store. history may
// be nil when the backend keeps none.
func NewSSHServer(cfg SSHServerConfig, kv storage.KV, history storage.History, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "focustile-ssh",
		})
	}

	srv := &SSHServer{
		config:  cfg,
		kv:      kv,
		history: history,
		metrics: metrics.New(),
		logger:  logger,
		active:  make(map[string]bool),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".focustile", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: logging wraps the single-canvas
	// guard, which wraps the Bubble Tea program.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.singleCanvasMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// Metrics returns the exporter fed by every session.
func (s *SSHServer) Metrics() *metrics.Exporter { return s.metrics }

// sessionOptions builds the model options for one SSH user.
func (s *SSHServer) sessionOptions(user, sessionID string, width, height int) Options {
	canvasOpts := s.config.Canvas
	canvasOpts.Owner = user
	canvasOpts.Logger = s.logger.With("user", user, "session", sessionID)

	var repo *snapshot.Repo
	if s.kv != nil {
		repo = snapshot.NewRepo(storage.NewNamespaced(s.kv, userNamespace+user))
	}

	return Options{
		Repo:         repo,
		History:      s.history,
		Canvas:       canvasOpts,
		DismissAfter: s.config.DismissAfter,
		Listeners:    []canvas.Listener{s.metrics},
		Width:        width,
		Height:       height,
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	sessionID := uuid.NewString()
	model := NewModel(s.sessionOptions(sshSession.User(), sessionID, pty.Window.Width, pty.Window.Height))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// acquire marks user as having an open canvas. Returns false if one is
// already open.
func (s *SSHServer) acquire(user string) bool {
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

// singleCanvasMiddleware refuses a second concurrent session for the same
// user, since both would write the same saved state.
func (s *SSHServer) singleCanvasMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		user := sshSession.User()
		if !s.acquire(user) {
			s.logger.Warn("canvas already open", "user", user)
			wish.Fatalln(sshSession, "focustile: your canvas is already open in another session")
			return
		}
		defer s.release(user)

		s.metrics.CanvasOpened()
		defer s.metrics.CanvasClosed()
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server, and the metrics endpoint when
// configured, and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.config.MetricsAddr != "" {
		go func() {
			if err := s.metrics.Serve(ctx, s.config.MetricsAddr, s.logger); err != nil {
				s.logger.Error("metrics server error", "error", err)
			}
		}()
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. The store is owned by the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
