package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/eiannone/keyboard"
	"github.com/mattn/go-runewidth"

	"hancompose/internal/layout"
	"hancompose/pkg/ime"
)

// Session drives an ime.Composer from raw key events and keeps the terminal
// line in sync with the text being typed.
type Session struct {
	composer *ime.Composer
	out      io.Writer
	logger   *slog.Logger
	mode     Mode
	// OnCommit receives every line finished with Enter.
	OnCommit func(line string)

	drawn int
}

func NewSession(l *layout.Layout, out io.Writer, mode Mode, logger *slog.Logger) *Session {
	return &Session{composer: ime.NewComposer(l), out: out, logger: logger, mode: mode}
}

// Text is the line being typed.
func (s *Session) Text() (string, error) { return s.composer.Text() }

// Run consumes events until Esc, Ctrl-C, a closed channel or ctx is done.
// The pending line is committed before returning.
func (s *Session) Run(ctx context.Context, events <-chan keyboard.KeyEvent) error {
	defer s.finish()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return fmt.Errorf("read key: %w", ev.Err)
			}
			if done := s.handle(ev); done {
				return nil
			}
		}
	}
}

func (s *Session) handle(ev keyboard.KeyEvent) bool {
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC, keyboard.KeyCtrlD:
		return true
	case keyboard.KeyEnter:
		s.commit()
		return false
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		if !s.composer.Backspace() {
			s.logger.Debug("backspace on empty line")
		}
	case keyboard.KeySpace:
		s.composer.Space()
	case keyboard.KeyTab:
		s.composer.AppendLiteral('\t')
	default:
		if ev.Rune == 0 {
			s.logger.Debug("ignored key", "key", uint16(ev.Key))
			return false
		}
		if err := s.composer.TypeKey(ev.Rune); err != nil {
			s.logger.Debug("rejected key", "key", string(ev.Rune), "err", err)
		}
	}
	s.redraw()
	return false
}

// redraw rewrites the current terminal line, padding with spaces so a line
// that got narrower leaves nothing behind. A line that fails to render is
// left on screen as last drawn.
func (s *Session) redraw() {
	current, err := s.composer.Text()
	if err != nil {
		s.logger.Warn("render failed", "err", err)
		return
	}
	width := runewidth.StringWidth(current)
	pad := ""
	if s.drawn > width {
		pad = strings.Repeat(" ", s.drawn-width)
	}
	fmt.Fprintf(s.out, "\r%s%s\r%s", current, pad, current)
	s.drawn = width
}

func (s *Session) commit() {
	line, err := s.composer.Enter()
	if err != nil {
		s.logger.Warn("commit failed", "err", err)
		return
	}
	line = s.mode.render(line)
	s.drawn = 0
	fmt.Fprint(s.out, "\r\n")
	if s.mode != ModeCompose {
		fmt.Fprintf(s.out, "%s\r\n", line)
	}
	s.logger.Debug("committed line", "text", line)
	if s.OnCommit != nil {
		s.OnCommit(line)
	}
}

func (s *Session) finish() {
	if !s.composer.Empty() {
		s.commit()
	}
}

// RunInteractive puts the terminal in raw mode and runs a Session on it
// until the user quits.
func RunInteractive(ctx context.Context, l *layout.Layout, out io.Writer, mode Mode, logger *slog.Logger, onCommit func(string)) error {
	events, err := keyboard.GetKeys(16)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); err != nil {
			logger.Debug("close keyboard", "err", err)
		}
	}()

	logger.Debug("interactive session started", "layout", l.Name())
	session := NewSession(l, out, mode, logger)
	session.OnCommit = onCommit
	return session.Run(ctx, events)
}
