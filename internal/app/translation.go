package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"

	"hancompose/internal/common"
	"hancompose/internal/layout"
)

const (
	replyOK    = "ok"
	replyError = "err"
)

// ErrRemote is returned by ComposeViaSocket when the server rejected the line.
var ErrRemote = errors.New("server rejected line")

// TranslationServer answers one reply line per request line on a unix socket.
// Close shuts down the listener and every open connection.
type TranslationServer struct {
	listener net.Listener
	socket   string
	errCh    chan error
	layout   *layout.Layout
	mode     Mode
	logger   *slog.Logger

	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

func StartTranslationServer(path string, l *layout.Layout, mode Mode, logger *slog.Logger) (*TranslationServer, error) {
	if path == "" {
		return nil, nil
	}
	if err := common.EnsureSocketDir(path); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o660); err != nil && !errors.Is(err, os.ErrNotExist) {
		listener.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("chmod socket: %w", err)
	}
	srv := &TranslationServer{
		listener: listener,
		socket:   path,
		errCh:    make(chan error, 1),
		layout:   l,
		mode:     mode,
		logger:   logger,
		conns:    make(map[net.Conn]struct{}),
	}
	go func() {
		srv.errCh <- srv.serve()
		close(srv.errCh)
	}()
	logger.Info("compose server listening", "socket", path, "layout", l.Name(), "mode", mode)
	return srv, nil
}

func (s *TranslationServer) Addr() string {
	if s == nil {
		return ""
	}
	return s.socket
}

// Close stops accepting, closes open connections and waits for their
// handlers to return.
func (s *TranslationServer) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.closed = true
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.listener.Close()
	for range s.errCh {
	}
	s.wg.Wait()
	_ = os.Remove(s.socket)
}

func (s *TranslationServer) Err() <-chan error {
	if s == nil {
		return nil
	}
	return s.errCh
}

func (s *TranslationServer) serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		if !s.track(conn) {
			conn.Close()
			return nil
		}
		go func(c net.Conn) {
			defer s.untrack(c)
			if err := handleTranslationConnection(c, s.layout, s.mode, s.logger); err != nil {
				s.logger.Warn("translation connection failed", "err", err)
			}
		}(conn)
	}
}

// track registers conn unless the server is closing.
func (s *TranslationServer) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *TranslationServer) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
	s.wg.Done()
}

func handleTranslationConnection(conn net.Conn, l *layout.Layout, mode Mode, logger *slog.Logger) error {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	writer := bufio.NewWriter(conn)
	for scanner.Scan() {
		line := scanner.Text()
		response, err := mode.Apply(l, line)
		status := replyOK
		if err != nil {
			logger.Debug("rejected line", "line", line, "err", err)
			status, response = replyError, err.Error()
		}
		if _, err := writer.WriteString(status + "\t" + response + "\n"); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	}
	return nil
}

// ComposeViaSocket sends each line to the server at socketPath over one
// connection and returns the replies in order.
func ComposeViaSocket(ctx context.Context, socketPath string, lines []string) ([]string, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	reader := bufio.NewReader(conn)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, err := fmt.Fprintln(conn, line); err != nil {
			return out, err
		}
		response, err := reader.ReadString('\n')
		if err != nil {
			return out, err
		}
		status, body, found := strings.Cut(strings.TrimSuffix(response, "\n"), "\t")
		if !found {
			return out, fmt.Errorf("malformed reply %q", response)
		}
		if status != replyOK {
			return out, fmt.Errorf("%w: %s", ErrRemote, body)
		}
		out = append(out, body)
	}
	return out, nil
}
