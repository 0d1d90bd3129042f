// Package block assembles a single Hangul syllable block from jamo.
package block

import (
	"errors"
	"fmt"
	"strings"

	"hancompose/pkg/jamo"
)

const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	medialCount   = 21
	trailingCount = 28
)

var (
	ErrIncompleteBlock = errors.New("block: incomplete block")
	ErrEmptyPop        = errors.New("block: nothing to pop")
	ErrNotSyllable     = fmt.Errorf("block: not a precomposed syllable: %w", jamo.ErrNotHangul)
)

// Block is one complete syllable. Final is jamo.NoFinal for open syllables.
type Block struct {
	Initial jamo.Initial
	Vowel   jamo.Vowel
	Final   jamo.Final
}

func (b Block) HasFinal() bool { return b.Final != jamo.NoFinal }

// Rune computes the precomposed syllable
// 0xAC00 + (initial*21 + vowel)*28 + final.
func (b Block) Rune() (rune, error) {
	if !b.Initial.Valid() || !b.Vowel.Valid() || !b.Final.Valid() {
		return 0, fmt.Errorf("block %d/%d/%d: %w", b.Initial, b.Vowel, b.Final, jamo.ErrNotHangul)
	}
	offset := (b.Initial.Index()*medialCount+b.Vowel.Index())*trailingCount + b.Final.Index()
	return syllableBase + rune(offset), nil
}

// Jamo returns the constituents in order: initial, vowel and, when present,
// final.
func (b Block) Jamo() []jamo.Jamo {
	out := []jamo.Jamo{b.Initial.Jamo(), b.Vowel.Jamo()}
	if b.HasFinal() {
		out = append(out, b.Final.Jamo())
	}
	return out
}

func (b Block) String() string {
	if r, err := b.Rune(); err == nil {
		return string(r)
	}
	var sb strings.Builder
	for _, j := range b.Jamo() {
		sb.WriteString(j.String())
	}
	return sb.String()
}

func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// FromRune inverts Rune.
func FromRune(r rune) (Block, error) {
	if !IsSyllable(r) {
		return Block{}, fmt.Errorf("%U: %w", r, ErrNotSyllable)
	}
	offset := int(r - syllableBase)
	return Block{
		Initial: jamo.Initial(offset / (medialCount * trailingCount)),
		Vowel:   jamo.Vowel((offset / trailingCount) % medialCount),
		Final:   jamo.Final(offset % trailingCount),
	}, nil
}

// Decompose splits a precomposed syllable into two or three modern jamo.
func Decompose(r rune) ([]jamo.Jamo, error) {
	b, err := FromRune(r)
	if err != nil {
		return nil, err
	}
	return b.Jamo(), nil
}
