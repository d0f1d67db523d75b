// Package lineproto is the byte-oriented, timeout-bounded line reader
// behind the setup portal and the status page. One text line is
// accumulated per connection; a complete line is dispatched through a
// path and parameter table, then the connection is closed.
package lineproto

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/NathanReed/tempsentry/internal/metrics"
)

type Server struct {
	name        string
	table       *Table
	idleTimeout time.Duration
	metrics     *metrics.Metrics
}

func NewServer(name string, table *Table, idleTimeout time.Duration, m *metrics.Metrics) *Server {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}

	return &Server{
		name:        name,
		table:       table,
		idleTimeout: idleTimeout,
		metrics:     m,
	}
}

// Serve accepts connections one at a time until the listener closes.
// Serving a connection is synchronous: the surface handles a single
// client per listener, mirroring the monitor's cooperative loop.
func (s *Server) Serve(ln net.Listener) error {
	slog.Info(">>Serve", "surface", s.name, "addr", ln.Addr())
	defer slog.Info("<<Serve", "surface", s.name)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return err
		}

		s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	slog.Debug("connection accepted", "surface", s.name, "remote", conn.RemoteAddr())

	line, err := s.readLine(conn)
	if err != nil {
		// an idle client is a normal termination, not an error
		if errors.Is(err, os.ErrDeadlineExceeded) {
			slog.Debug("connection idle, closing", "surface", s.name)
			s.countRequest("timeout")
		} else {
			slog.Debug("connection closed before line complete", "surface", s.name, "error", err)
			s.countRequest("aborted")
		}

		return
	}

	s.dispatch(conn, line)
}

// readLine accumulates one text line byte by byte. Carriage returns
// are dropped, a newline completes the line, and anything past
// MaxLineLen is discarded. A gap longer than the idle timeout between
// bytes abandons the connection without dispatching.
func (s *Server) readLine(conn net.Conn) (string, error) {
	buf := make([]byte, 0, MaxLineLen)
	one := make([]byte, 1)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
			return "", err
		}

		n, err := conn.Read(one)
		if err != nil {
			return "", err
		}

		if n == 0 {
			continue
		}

		switch one[0] {
		case '\r':
			// dropped
		case '\n':
			return string(buf), nil
		default:
			if len(buf) < MaxLineLen {
				buf = append(buf, one[0])
			}
		}
	}
}

// dispatch parses "VERB /path?key=value&key=value ..." and routes it
// through the table. Parameter handlers run before the path handler
// renders; unknown parameter keys are logged and ignored.
func (s *Server) dispatch(conn net.Conn, line string) {
	verb, rest, _ := strings.Cut(line, " ")
	if verb != Verb {
		slog.Debug("ignoring request verb", "surface", s.name, "verb", verb)
		s.countRequest("bad_verb")
		return
	}

	tokens := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '?' || r == '&' || r == ' '
	})

	if len(tokens) == 0 {
		slog.Debug("empty request line", "surface", s.name)
		s.countRequest("bad_request")
		return
	}

	path := tokens[0]
	params := s.dispatchParams(tokens[1:])

	for _, h := range s.table.Paths {
		if h.Path == path {
			slog.Debug("dispatching request", "surface", s.name, "path", path)
			h.Fn(conn, params)
			s.countRequest("ok")
			return
		}
	}

	slog.Debug("no handler for path", "surface", s.name, "path", path)
	WriteNotFound(conn)
	s.countRequest("not_found")
}

func (s *Server) dispatchParams(tokens []string) []Param {
	params := make([]Param, 0, len(tokens))

	for _, tok := range tokens {
		key, value, found := strings.Cut(tok, "=")
		if !found {
			// protocol version tokens and other noise end up here
			continue
		}

		params = append(params, Param{Key: key, Value: value})

		matched := false
		for _, h := range s.table.Params {
			if h.Key == key {
				h.Fn(value)
				matched = true
				break
			}
		}

		if !matched {
			slog.Debug("ignoring unknown parameter", "surface", s.name, "key", key)
		}
	}

	return params
}

func (s *Server) countRequest(status string) {
	if s.metrics != nil {
		s.metrics.LineRequests.WithLabelValues(status).Inc()
	}
}

// WriteOK writes a minimal success response around a page body.
func WriteOK(w io.Writer, contentType, body string) {
	fmt.Fprintf(w, "HTTP/1.1 200 OK\r\nContent-Type: %s\r\nConnection: close\r\n\r\n%s", contentType, body)
}

// WriteNotFound writes the not-found response used for unknown paths.
func WriteNotFound(w io.Writer) {
	fmt.Fprint(w, "HTTP/1.1 404 Not Found\r\nConnection: close\r\n\r\n")
}
