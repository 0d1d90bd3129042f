package app

import (
	"fmt"
	"strings"

	"hancompose/internal/layout"
	"hancompose/pkg/ime"
	"hancompose/pkg/text"
)

// Mode selects how a line of input is transformed.
type Mode int

const (
	ModeCompose Mode = iota
	ModeDecompose
	// composed text, a tab, then its jamo spelling
	ModeAnnotate
)

func (m Mode) String() string {
	switch m {
	case ModeCompose:
		return "compose"
	case ModeDecompose:
		return "decompose"
	case ModeAnnotate:
		return "annotate"
	default:
		return "unknown"
	}
}

func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "compose":
		return ModeCompose, nil
	case "decompose", "spell":
		return ModeDecompose, nil
	case "annotate":
		return ModeAnnotate, nil
	default:
		return ModeCompose, fmt.Errorf("unknown mode %q", name)
	}
}

// Apply transforms one line. Compose types the line through l; a key the
// composer rejects aborts the line with an error naming its offset.
func (m Mode) Apply(l *layout.Layout, line string) (string, error) {
	switch m {
	case ModeDecompose:
		return text.DecomposeString(line), nil
	case ModeCompose, ModeAnnotate:
		composed, err := composeLine(l, line)
		if err != nil {
			return "", err
		}
		return m.render(composed), nil
	default:
		return "", fmt.Errorf("unknown mode %d", int(m))
	}
}

// render presents text that is already composed.
func (m Mode) render(composed string) string {
	switch m {
	case ModeDecompose:
		return text.DecomposeString(composed)
	case ModeAnnotate:
		return composed + "\t" + text.DecomposeString(composed)
	default:
		return composed
	}
}

func composeLine(l *layout.Layout, line string) (string, error) {
	composer := ime.NewComposer(l)
	offset := 0
	for _, key := range line {
		if err := composer.TypeKey(key); err != nil {
			return "", fmt.Errorf("offset %d: %w", offset, err)
		}
		offset++
	}
	return composer.Enter()
}
