// Package text composes mixed Hangul and non-Hangul input one code point at
// a time. Consecutive jamo accumulate into a word; any other code point is
// kept verbatim and closes the word before it.
package text

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"hancompose/pkg/block"
	"hancompose/pkg/jamo"
	"hancompose/pkg/word"
)

// segment is either an open or closed word, or a literal code point.
type segment struct {
	word    *word.Composer
	literal rune
}

func (s segment) isWord() bool { return s.word != nil }

// Unit is what Pop removed: a literal code point, or one jamo from a word
// (Rune is then the modern jamo code point).
type Unit struct {
	Literal bool
	Rune    rune
	Jamo    jamo.Jamo
}

type Composer struct {
	segments []segment
}

func NewComposer() *Composer {
	return &Composer{}
}

// Push classifies r. Modern and compatibility jamo go to the word at the end
// of the text, opening one if the last segment is a literal. Everything else
// is appended as a literal. A rejected jamo leaves the text unchanged.
func (c *Composer) Push(r rune) error {
	ch := jamo.Classify(r)
	if ch.Category == jamo.Other {
		c.PushLiteral(r)
		return nil
	}
	j, ok := ch.Modern()
	if !ok {
		return fmt.Errorf("text: %U: %w", r, jamo.ErrNotHangul)
	}

	if w := c.openWord(); w != nil {
		return w.Push(j)
	}
	w := word.NewComposer()
	if err := w.Push(j); err != nil {
		return err
	}
	c.segments = append(c.segments, segment{word: w})
	return nil
}

// PushLiteral appends r verbatim, even when r is a jamo.
func (c *Composer) PushLiteral(r rune) {
	c.segments = append(c.segments, segment{literal: r})
}

// PushString pushes every code point of s, stopping at the first rejection.
// The error names the rune offset; earlier code points stay applied.
func (c *Composer) PushString(s string) error {
	i := 0
	for _, r := range s {
		if err := c.Push(r); err != nil {
			return fmt.Errorf("text: rune %d (%q): %w", i, r, err)
		}
		i++
	}
	return nil
}

func (c *Composer) openWord() *word.Composer {
	if len(c.segments) == 0 {
		return nil
	}
	last := c.segments[len(c.segments)-1]
	if !last.isWord() {
		return nil
	}
	return last.word
}

// Pop removes the most recent unit. A word emptied by the pop disappears, so
// the word before a literal is open again once that literal is popped.
func (c *Composer) Pop() (Unit, error) {
	if len(c.segments) == 0 {
		return Unit{}, block.ErrEmptyPop
	}
	idx := len(c.segments) - 1
	last := c.segments[idx]
	if !last.isWord() {
		c.segments = c.segments[:idx]
		return Unit{Literal: true, Rune: last.literal}, nil
	}

	j, err := last.word.Pop()
	if err != nil {
		return Unit{}, err
	}
	if last.word.Empty() {
		c.segments = c.segments[:idx]
	}
	return Unit{Rune: j.Rune(), Jamo: j}, nil
}

func (c *Composer) Empty() bool { return len(c.segments) == 0 }

// Text renders every segment in order.
func (c *Composer) Text() (string, error) {
	var sb strings.Builder
	for i, seg := range c.segments {
		if !seg.isWord() {
			sb.WriteRune(seg.literal)
			continue
		}
		rendered, err := seg.word.Text()
		if err != nil {
			return "", fmt.Errorf("text: segment %d: %w", i, err)
		}
		sb.WriteString(rendered)
	}
	return sb.String(), nil
}

// Flush returns the rendered text and clears the composer. On error the
// composer is left as it was.
func (c *Composer) Flush() (string, error) {
	out, err := c.Text()
	if err != nil {
		return "", err
	}
	c.Reset()
	return out, nil
}

func (c *Composer) Reset() {
	c.segments = nil
}

// Compose runs s through a fresh Composer.
func Compose(s string) (string, error) {
	c := NewComposer()
	if err := c.PushString(s); err != nil {
		return "", err
	}
	return c.Text()
}

// DecomposeString spells each precomposed syllable in s as the compatibility
// jamo that type it. Runs of conjoining jamo are composed first; every other
// code point is copied unchanged. For text made of syllables and non-jamo
// literals, Compose(DecomposeString(s)) == s.
func DecomposeString(s string) string {
	s = composeConjoining(s)
	var sb strings.Builder
	sb.Grow(len(s) * 2)
	for _, r := range s {
		parts, err := block.Decompose(r)
		if err != nil {
			sb.WriteRune(r)
			continue
		}
		for _, j := range parts {
			sb.WriteString(splitForTyping(j))
		}
	}
	return sb.String()
}

// isConjoining reports whether r is in the Hangul Jamo block.
func isConjoining(r rune) bool {
	return r >= 0x1100 && r <= 0x11FF
}

// composeConjoining applies NFC only to runs of conjoining jamo, each
// optionally led by a syllable the run extends.
func composeConjoining(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(runes); {
		end := i
		if isConjoining(runes[i]) || block.IsSyllable(runes[i]) {
			end++
			for end < len(runes) && isConjoining(runes[end]) {
				end++
			}
		}
		if end-i < 2 {
			sb.WriteRune(runes[i])
			i++
			continue
		}
		sb.WriteString(norm.NFC.String(string(runes[i:end])))
		i = end
	}
	return sb.String()
}

// splitForTyping spells clusters and diphthongs as the keys that build them;
// doubled initials stay whole so they still lead their block.
func splitForTyping(j jamo.Jamo) string {
	if j.Kind() == jamo.KindInitial {
		return j.String()
	}
	first, second, ok := jamo.DecomposeComposite(j)
	if !ok {
		return j.String()
	}
	return first.String() + second.String()
}
