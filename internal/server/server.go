package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/edtable/internal/config"
	"github.com/muurk/edtable/internal/discovery"
	"github.com/muurk/edtable/internal/host"
	"github.com/muurk/edtable/internal/logging"
	"github.com/muurk/edtable/internal/version"
	"go.uber.org/zap"
)

// shutdownTimeout bounds the wait for open sessions on shutdown
const shutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Host     string
	Port     int
	CertPath string // Path to certificate file (TLS is enabled when both paths are set)
	KeyPath  string // Path to private key file
	LogLevel string // Initializes logging when non-empty

	// Args are the mount arguments every browser session starts from
	Args *config.Args
	// Title is the page title
	Title string
	// Sink receives the reports of every session (may be nil)
	Sink host.Host

	// Advertise registers the server over mDNS as InstanceName
	Advertise    bool
	InstanceName string
}

// Server serves the editable table to browsers. Each websocket connection
// gets its own controller mounted from Config.Args.
type Server struct {
	config     *Config
	httpServer *http.Server
	listener   net.Listener
	tlsConfig  *tls.Config
	upgrader   websocket.Upgrader
	wg         sync.WaitGroup
	mu         sync.Mutex
	sessions   map[string]*session
	cancel     context.CancelFunc
	advertised <-chan struct{}
}

// New creates a new Server instance
func New(cfg *Config) (*Server, error) {
	if cfg.LogLevel != "" {
		if err := logging.Initialize(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("failed to initialize logging: %w", err)
		}
	}
	if cfg.Args == nil {
		cfg.Args = &config.Args{}
	}

	var tlsConfig *tls.Config
	if cfg.CertPath != "" || cfg.KeyPath != "" {
		if cfg.CertPath == "" || cfg.KeyPath == "" {
			return nil, errors.New("both a certificate and a key are required for TLS")
		}
		var err error
		tlsConfig, err = NewTLSConfig(cfg.CertPath, cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	s := &Server{
		config:    cfg,
		tlsConfig: tlsConfig,
		sessions:  make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: writeWait,
	}
	return s, nil
}

// Handler returns the HTTP handler serving the page and the websocket
// endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return logRequests(mux)
}

// Listen binds the listening socket. Start calls it when needed.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if s.tlsConfig != nil {
		listener = tls.NewListener(listener, s.tlsConfig)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	scheme := "http"
	if s.tlsConfig != nil {
		scheme = "https"
		logging.Info("TLS Configuration", zap.Any("tls_info", GetTLSInfo(s.tlsConfig)))
	}
	logging.Info("Starting editable table server",
		zap.String("addr", s.listener.Addr().String()),
		zap.String("scheme", scheme),
		zap.Int("rows", len(s.config.Args.Data)),
		zap.Bool("disabled", s.config.Args.Disabled),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	if s.config.Advertise {
		if err := s.advertise(ctx, scheme); err != nil {
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		}
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

func (s *Server) advertise(ctx context.Context, scheme string) error {
	port := s.config.Port
	if tcp, ok := s.listener.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	name := s.config.InstanceName
	if name == "" {
		name = config.DefaultInstanceName
	}

	done, err := discovery.Advertise(ctx, name, port, map[string]string{
		discovery.TxtVersion:  version.Version,
		discovery.TxtPath:     "/",
		discovery.TxtScheme:   scheme,
		discovery.TxtDisabled: strconv.FormatBool(s.config.Args.Disabled),
	})
	if err != nil {
		return err
	}
	s.advertised = done
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Error("Error stopping HTTP server", zap.Error(err))
	}

	// Hijacked websocket connections are not tracked by http.Server
	s.mu.Lock()
	for addr, sess := range s.sessions {
		logging.Info("Closing active session", zap.String("remote_addr", addr))
		sess.close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All sessions closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	if s.advertised != nil {
		<-s.advertised
	}

	logging.Sync()
	return nil
}

// GetActiveSessions returns the number of open websocket sessions
func (s *Server) GetActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) track(sess *session) {
	s.mu.Lock()
	s.sessions[sess.remoteAddr] = sess
	s.mu.Unlock()
}

func (s *Server) untrack(sess *session) {
	s.mu.Lock()
	if s.sessions[sess.remoteAddr] == sess {
		delete(s.sessions, sess.remoteAddr)
	}
	s.mu.Unlock()
}
