// Package server accepts TCP connections and answers each with one static
// file response.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"golang.org/x/net/netutil"

	"github.com/f4ah6o/webserver-go/internal/config"
	srverrors "github.com/f4ah6o/webserver-go/internal/errors"
)

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Server serves files from a root directory, one goroutine per connection.
// Its configuration is fixed at construction and shared read-only by all
// handlers.
type Server struct {
	cfg    config.Config
	logger *log.Logger
}

// New creates a Server. A nil logger means log.Default().
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, logger: logger}
}

// Listen binds the configured address. When MaxConnections is positive the
// returned listener stops accepting while that many connections are open.
func (s *Server) Listen() (net.Listener, error) {
	lc := net.ListenConfig{}
	if s.cfg.ReusePort {
		lc.Control = reusePortControl
	}

	ln, err := lc.Listen(context.Background(), "tcp", s.cfg.ListenAddr())
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", s.cfg.ListenAddr(), err)
	}

	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}
	return ln, nil
}

// Serve accepts connections on ln until ln is closed, handing each one to a
// new goroutine without waiting for it. Accept errors are logged and the loop
// continues after a short back-off. Serve returns nil once ln is closed.
func (s *Server) Serve(ln net.Listener) error {
	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Printf("Error accepting connection: %v", srverrors.New(srverrors.AcceptFailure, err))

			delay = nextDelay(delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		go s.ServeConn(conn)
	}
}

// ListenAndServe binds and then serves forever.
func (s *Server) ListenAndServe() error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	return s.Serve(ln)
}

func nextDelay(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptDelay
	}
	return min(d*2, maxAcceptDelay)
}
