// Package word composes a run of Hangul jamo into consecutive syllable
// blocks.
package word

import (
	"fmt"
	"strings"

	"hancompose/pkg/block"
	"hancompose/pkg/jamo"
)

type editKind uint8

const (
	// pushed into the active block
	editAppend editKind = iota
	// active block was closed and a fresh one opened with the jamo
	editNewBlock
	// a final moved from the active block to a fresh one
	editResyllabify
)

type edit struct {
	kind  editKind
	input jamo.Jamo
	// active block before the push; unused for editAppend
	saved *block.Composer
}

// Composer holds the finished blocks of a word and the block being typed.
// Finished blocks keep their push history so Pop can reopen them.
type Composer struct {
	blocks  []*block.Composer
	active  *block.Composer
	history []edit
}

func NewComposer() *Composer {
	return &Composer{active: block.NewComposer()}
}

// Push routes j to the active block, opening a new block when the active
// one is finished. A rejected jamo leaves the word unchanged.
func (w *Composer) Push(j jamo.Jamo) error {
	signal, err := w.active.Push(j)
	if err != nil {
		return err
	}
	switch signal {
	case block.Accepted:
		w.history = append(w.history, edit{kind: editAppend, input: j})
		return nil
	case block.StartNext:
		return w.startNext(j)
	case block.Resyllabify:
		return w.resyllabify(j)
	default:
		return fmt.Errorf("word: unexpected block signal %v", signal)
	}
}

func (w *Composer) startNext(j jamo.Jamo) error {
	next := block.NewComposer()
	if _, err := next.Push(j); err != nil {
		return fmt.Errorf("word: %q cannot start a block: %w", j.String(), err)
	}
	w.commit(edit{kind: editNewBlock, input: j, saved: w.active}, w.active, next)
	return nil
}

// resyllabify takes back the last final pushed into the active block and
// makes it the initial of a new block carrying the vowel. A cluster pushed
// as one unit (ㄳ) has no initial form and is split instead.
func (w *Composer) resyllabify(vowel jamo.Jamo) error {
	kept := w.active.Clone()
	moved, err := kept.Pop()
	if err != nil {
		return fmt.Errorf("word: resyllabify: %w", err)
	}

	initial, ok := moved.Initial()
	if !ok {
		first, second, split := jamo.DecomposeComposite(moved)
		if !split {
			return fmt.Errorf("word: final %q cannot move: %w", moved.String(), jamo.ErrInvalidCombination)
		}
		if _, err := kept.Push(first); err != nil {
			return fmt.Errorf("word: resyllabify: %w", err)
		}
		if initial, ok = second.Initial(); !ok {
			return fmt.Errorf("word: final %q cannot move: %w", second.String(), jamo.ErrInvalidCombination)
		}
	}

	next := block.NewComposer()
	if _, err := next.Push(initial.Jamo()); err != nil {
		return fmt.Errorf("word: resyllabify: %w", err)
	}
	if _, err := next.Push(vowel); err != nil {
		return fmt.Errorf("word: resyllabify: %w", err)
	}
	w.commit(edit{kind: editResyllabify, input: vowel, saved: w.active}, kept, next)
	return nil
}

func (w *Composer) commit(e edit, finished, next *block.Composer) {
	w.blocks = append(w.blocks, finished)
	w.active = next
	w.history = append(w.history, e)
}

// Pop undoes the most recent successful Push, including a block boundary
// or a resyllabification, and returns the jamo that push applied.
func (w *Composer) Pop() (jamo.Jamo, error) {
	if len(w.history) == 0 {
		return jamo.Jamo{}, block.ErrEmptyPop
	}
	last := w.history[len(w.history)-1]
	w.history = w.history[:len(w.history)-1]

	if last.kind == editAppend {
		return w.active.Pop()
	}
	w.active = last.saved
	w.blocks = w.blocks[:len(w.blocks)-1]
	return last.input, nil
}

// Empty reports whether nothing has been pushed (or everything popped).
func (w *Composer) Empty() bool { return len(w.history) == 0 }

// Len is the number of pushes Pop can undo.
func (w *Composer) Len() int { return len(w.history) }

// Blocks returns the finished blocks in order.
func (w *Composer) Blocks() []block.Block {
	out := make([]block.Block, 0, len(w.blocks))
	for _, c := range w.blocks {
		if b, ok := c.Block(); ok {
			out = append(out, b)
		}
	}
	return out
}

// Active returns a copy of the block being typed.
func (w *Composer) Active() *block.Composer { return w.active.Clone() }

// Text renders finished blocks as syllables followed by the active block,
// which shows as a lone jamo while it only holds an initial.
func (w *Composer) Text() (string, error) {
	var sb strings.Builder
	for i, c := range w.blocks {
		r, err := c.Rune()
		if err != nil {
			return "", fmt.Errorf("word: block %d: %w", i, err)
		}
		sb.WriteRune(r)
	}
	sb.WriteString(w.active.String())
	return sb.String(), nil
}

func (w *Composer) Reset() {
	w.blocks = nil
	w.active = block.NewComposer()
	w.history = nil
}
