package devserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrymomot/emailkit/pkg/logger"
)

// DefaultPort is the preview port used when none is given.
const DefaultPort = 5173

// ServerOption configures Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	addr            string
	readTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	startHooks      []func(addr string)
}

// WithAddr sets the listen address.
func WithAddr(addr string) ServerOption {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *serverConfig) { c.addr = addr }
}

// WithPort listens on all interfaces at port.
func WithPort(port int) ServerOption {
	if port <= 0 || port > 65535 {
		panic("WithPort: port out of range")
	}
	return WithAddr(":" + strconv.Itoa(port))
}

// WithShutdownTimeout sets the time allowed for graceful shutdown.
func WithShutdownTimeout(d time.Duration) ServerOption {
	if d <= 0 {
		panic("WithShutdownTimeout: duration must be > 0")
	}
	return func(c *serverConfig) { c.shutdownTimeout = d }
}

// WithServerLogger sets the logger.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStartHook registers a callback that runs once the listener is bound.
// It receives the bound address.
func WithStartHook(h func(addr string)) ServerOption {
	if h == nil {
		panic("WithStartHook: nil hook")
	}
	return func(c *serverConfig) {
		c.startHooks = append(c.startHooks, h)
	}
}

// Server serves the preview with graceful shutdown.
type Server struct {
	cfg  *serverConfig
	mu   sync.Mutex
	srv  *http.Server
	once sync.Once
}

// NewServer returns a server listening on DefaultPort unless configured otherwise.
func NewServer(opts ...ServerOption) *Server {
	cfg := &serverConfig{
		addr:            ":" + strconv.Itoa(DefaultPort),
		readTimeout:     10 * time.Second,
		shutdownTimeout: 5 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Server{cfg: cfg}
}

// Run serves handler until ctx is done or Shutdown is called.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	// Request contexts end when shutdown starts, so streams held open by
	// the live reload handler return instead of running into the timeout.
	baseCtx, cancelRequests := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelRequests()
	srv := &http.Server{
		Addr:              s.cfg.addr,
		Handler:           handler,
		ReadHeaderTimeout: s.cfg.readTimeout,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelRequests)
	s.srv = srv
	s.mu.Unlock()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	addr := ln.Addr().String()
	s.cfg.logger.InfoContext(ctx, "preview server listening", slog.String("addr", addr))
	for _, h := range s.cfg.startHooks {
		h(addr)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	var runErr error
	select {
	case <-ctx.Done():
		if err := s.Shutdown(context.Background()); err != nil {
			s.cfg.logger.ErrorContext(ctx, "preview server shutdown failed", logger.Error(err))
		}
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// Shutdown stops the server gracefully. It is safe for repeated calls.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)
		s.cfg.logger.InfoContext(ctx, "preview server stopped")
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
