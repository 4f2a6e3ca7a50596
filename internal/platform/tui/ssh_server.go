package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/registry"
	"github.com/vovakirdan/chorpolice/internal/storage"
)

// DefaultHostKeyPath is where the server keeps its generated host key.
const DefaultHostKeyPath = "~/.chorpolice/host_key"

// SSHServerConfig configures the SSH server. Zero fields take the values of
// DefaultSSHServerConfig.
type SSHServerConfig struct {
	Address     string // host:port to listen on
	HostKeyPath string // Generated on first start when missing
	DBPath      string // Scores database shared by every connection
	IdleTimeout time.Duration
	TickRate    int
	MaxSessions int // Concurrent players; further connections are turned away
}

// DefaultSSHServerConfig returns the defaults used by `chorpolice serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		HostKeyPath: DefaultHostKeyPath,
		DBPath:      "~/.chorpolice/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		MaxSessions: 16,
	}
}

func (c SSHServerConfig) withDefaults() SSHServerConfig {
	d := DefaultSSHServerConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.HostKeyPath == "" {
		c.HostKeyPath = d.HostKeyPath
	}
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = d.MaxSessions
	}
	return c
}

// SSHServer gives every connection its own single-player session. Sessions
// share only the scores database.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer creates the server. An unusable scores database is logged and
// play continues without persistence; a bad host key location is an error.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = log.New(io.Discard)
	}

	hostKey, err := storage.ExpandHome(cfg.HostKeyPath)
	if err != nil {
		return nil, fmt.Errorf("tui: host key path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(hostKey), 0o700); err != nil {
		return nil, fmt.Errorf("tui: host key directory: %w", err)
	}

	srv := &SSHServer{config: cfg, logger: logger}
	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("scores disabled, could not open database", "path", cfg.DBPath, "error", err)
		srv.store = nil
	}

	// The last middleware runs first: admit, then require a terminal, then play.
	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.admit,
		),
	)
	if err != nil {
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("tui: create SSH server: %w", err)
	}
	return srv, nil
}

// teaHandler builds the program for one connection, sized to its PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewSessionModel(s.store, cfg, s.logger.With("user", sess.User()))
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// admit enforces MaxSessions and logs each connection's lifetime.
func (s *SSHServer) admit(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

		if n := s.active.Add(1); int(n) > s.config.MaxSessions {
			s.active.Add(-1)
			logger.Warn("connection refused, server full", "max", s.config.MaxSessions)
			wish.Fatalln(sess, "The police station is full. Try again in a minute.")
			return
		}
		defer s.active.Add(-1)

		start := time.Now()
		logger.Info("session started", "active", s.active.Load())
		next(sess)
		logger.Info("session ended", "played", time.Since(start).Round(time.Second))
	}
}

// Active returns the number of connected players.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// ListenAndServe serves until ctx is cancelled or the listener fails, then
// shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "max_sessions", s.config.MaxSessions)

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
		return fmt.Errorf("tui: serve: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down", "active", s.Active())
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections, waits up to ten seconds for
// sessions to end and closes the scores database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is what a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the flow of one connection: menu, game and
// scoreboard, all inside a single Bubble Tea program.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	logger   *log.Logger
	screen   sessionScreen
	menu     MenuModel
	game     Model
	board    ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates while the menu is shown. The menu's own quit
// commands are swallowed; only a real quit ends the connection.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.board = NewScoreboardModel(m.store, "", m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.board.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			m.logger.Error("could not create game", "error", err)
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}
		cfg := m.config
		cfg.Seed = time.Now().UnixNano()
		m.game = NewModel(game, cfg, Options{
			Store:    m.store,
			Logger:   m.logger,
			Embedded: true,
		})
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates while a game runs.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates while the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so best scores are current. Ticks still in
// flight from a finished game arrive at the menu and are ignored.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	default:
		return m.menu.View()
	}
}
