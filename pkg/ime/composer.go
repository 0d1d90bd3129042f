// Package ime turns latin key presses into composed Hangul text through a
// keyboard layout.
package ime

import (
	"fmt"

	"hancompose/internal/layout"
	"hancompose/pkg/jamo"
	"hancompose/pkg/text"
)

type Composer struct {
	layout *layout.Layout
	buffer *text.Composer
	// roles has one entry per unit in buffer, oldest first.
	roles []layout.Role
}

// NewComposer binds a layout. A nil layout passes every key through, so
// jamo typed directly still compose.
func NewComposer(l *layout.Layout) *Composer {
	return &Composer{layout: l, buffer: text.NewComposer()}
}

// TypeKey translates key and pushes the result. Keys outside the layout are
// pushed as typed. A rejected jamo leaves the buffer unchanged and the error
// wraps the composer's reason. A consonant placed by a final key stays in its
// block: a vowel typed right after it is rejected instead of taking it over.
func (c *Composer) TypeKey(key rune) error {
	symbol := c.layout.Translate(key)
	if symbol == nil {
		return c.push(key, layout.RoleAuto)
	}
	switch symbol.Kind {
	case layout.SymbolJamo:
		r, err := symbol.Rune()
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		if c.lastRole() == layout.RoleTrailing && isVowel(r) {
			return fmt.Errorf("key %q: vowel after a final key: %w", key, jamo.ErrInvalidCombination)
		}
		return c.push(r, symbol.Role)
	case layout.SymbolText:
		for _, r := range symbol.Text {
			c.AppendLiteral(r)
		}
		return nil
	default:
		c.AppendLiteral(key)
		return nil
	}
}

func (c *Composer) push(r rune, role layout.Role) error {
	if err := c.buffer.Push(r); err != nil {
		return fmt.Errorf("key %q: %w", r, err)
	}
	c.roles = append(c.roles, role)
	return nil
}

func (c *Composer) lastRole() layout.Role {
	if len(c.roles) == 0 {
		return layout.RoleAuto
	}
	return c.roles[len(c.roles)-1]
}

func isVowel(r rune) bool {
	j, ok := jamo.Classify(r).Modern()
	return ok && j.IsVowel()
}

// AppendLiteral adds r verbatim, closing the word being typed.
func (c *Composer) AppendLiteral(r rune) {
	c.buffer.PushLiteral(r)
	c.roles = append(c.roles, layout.RoleAuto)
}

func (c *Composer) Space() {
	c.AppendLiteral(' ')
}

// Backspace removes the most recent jamo or literal. It reports false when
// there was nothing to remove.
func (c *Composer) Backspace() bool {
	if _, err := c.buffer.Pop(); err != nil {
		return false
	}
	c.roles = c.roles[:len(c.roles)-1]
	return true
}

// Enter returns the line typed so far and starts a new one.
func (c *Composer) Enter() (string, error) {
	out, err := c.buffer.Flush()
	if err != nil {
		return "", err
	}
	c.roles = c.roles[:0]
	return out, nil
}

// Text renders the line, including the syllable being typed.
func (c *Composer) Text() (string, error) {
	return c.buffer.Text()
}

func (c *Composer) Empty() bool { return c.buffer.Empty() }

func (c *Composer) Reset() {
	c.buffer.Reset()
	c.roles = c.roles[:0]
}

// TypeString feeds every rune of keys through TypeKey, stopping at the first
// rejected key.
func (c *Composer) TypeString(keys string) error {
	for _, r := range keys {
		if err := c.TypeKey(r); err != nil {
			return err
		}
	}
	return nil
}
