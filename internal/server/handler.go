package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/google/uuid"

	srverrors "github.com/f4ah6o/webserver-go/internal/errors"
	"github.com/f4ah6o/webserver-go/internal/request"
	"github.com/f4ah6o/webserver-go/internal/static"
)

// ServeConn answers exactly one request on conn and closes it. Failures,
// including panics, end only this connection and are logged.
func (s *Server) ServeConn(conn net.Conn) {
	id := uuid.NewString()
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("[%s] %v", id, srverrors.New(srverrors.HandlerPanic, fmt.Errorf("%v", r)))
		}
	}()

	if err := s.handle(id, conn); err != nil {
		s.logger.Printf("[%s] %v", id, err)
	}
}

func (s *Server) handle(id string, rw io.ReadWriter) error {
	buf, err := request.Read(rw)
	if err != nil {
		return classify(srverrors.ReadFailure, err)
	}

	text := request.Decode(buf)
	s.logf(id, "Received request:\n%s", strings.TrimRight(text, "\x00"))

	requestedPath := request.Path(text)
	s.logf(id, "Extracted Requested Path: %s", requestedPath)

	resp, resolved := static.Respond(s.cfg.Root, requestedPath)
	s.logf(id, "Full Path:\n%s", resolved)
	s.logf(id, "Response:\n%s", resp)

	w := bufio.NewWriter(rw)
	if _, err := w.Write(resp); err != nil {
		return classify(srverrors.WriteFailure, err)
	}
	if err := w.Flush(); err != nil {
		return classify(srverrors.WriteFailure, err)
	}
	return nil
}

func (s *Server) logf(id, format string, args ...any) {
	if !s.cfg.LogRequests {
		return
	}
	s.logger.Printf("[%s] "+format, append([]any{id}, args...)...)
}

// classify maps a socket error to its kind, reporting a peer that went away
// as ConnectionClosed.
func classify(kind srverrors.Kind, err error) *srverrors.Error {
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return srverrors.New(srverrors.ConnectionClosed, err)
	}
	return srverrors.New(kind, err)
}
