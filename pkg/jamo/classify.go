package jamo

import "fmt"

// Category is the coarse class of an input code point.
type Category uint8

const (
	Other Category = iota
	Hangul
	Compatibility
)

func (c Category) String() string {
	switch c {
	case Hangul:
		return "hangul"
	case Compatibility:
		return "compatibility"
	default:
		return "other"
	}
}

// Character is the result of Classify. Jamo is set for Hangul; Rune always
// holds the classified code point.
type Character struct {
	Category Category
	Jamo     Jamo
	Rune     rune
}

// Modern returns the modern jamo the character stands for. Compatibility
// jamo resolve to their default form (see Modernize).
func (c Character) Modern() (Jamo, bool) {
	switch c.Category {
	case Hangul:
		return c.Jamo, true
	case Compatibility:
		j, err := Modernize(c.Rune)
		return j, err == nil
	default:
		return Jamo{}, false
	}
}

// Classify is total over all code points. Only the modern jamo used by the
// syllable formula count as Hangul; archaic conjoining jamo, the Hangul
// filler and archaic compatibility letters are Other.
func Classify(r rune) Character {
	switch {
	case r >= modernInitialBase && r < modernInitialBase+initialCount:
		return Character{Category: Hangul, Jamo: Initial(r - modernInitialBase).Jamo(), Rune: r}
	case r >= modernVowelBase && r < modernVowelBase+vowelCount:
		return Character{Category: Hangul, Jamo: Vowel(r - modernVowelBase).Jamo(), Rune: r}
	case r > modernFinalBase && r < modernFinalBase+finalCount:
		return Character{Category: Hangul, Jamo: Final(r - modernFinalBase).Jamo(), Rune: r}
	case IsCompatibility(r):
		return Character{Category: Compatibility, Rune: r}
	default:
		return Character{Category: Other, Rune: r}
	}
}

// IsCompatibility reports whether r lies in the modern part of the Hangul
// Compatibility Jamo block (U+3131..U+3163).
func IsCompatibility(r rune) bool {
	return r >= compatFirst && r <= compatLast
}

// Modernize maps a compatibility jamo to its default modern form: vowels to
// Vowel, consonants that can lead a syllable to Initial, and clusters that
// only occur in final position (ㄳ, ㄵ, ...) to Final. Composition layers
// reinterpret consonants positionally through Jamo.Initial and Jamo.Final.
func Modernize(r rune) (Jamo, error) {
	if idx, ok := vowelIndex[r]; ok {
		return Vowel(idx).Jamo(), nil
	}
	if idx, ok := initialIndex[r]; ok {
		return Initial(idx).Jamo(), nil
	}
	if idx, ok := finalIndex[r]; ok {
		return Final(idx).Jamo(), nil
	}
	return Jamo{}, fmt.Errorf("modernize %U: %w", r, ErrNotHangul)
}

func ModernizeInitial(r rune) (Initial, error) {
	idx, ok := initialIndex[r]
	if !ok {
		return 0, fmt.Errorf("modernize initial %U: %w", r, ErrNotHangul)
	}
	return Initial(idx), nil
}

func ModernizeVowel(r rune) (Vowel, error) {
	idx, ok := vowelIndex[r]
	if !ok {
		return 0, fmt.Errorf("modernize vowel %U: %w", r, ErrNotHangul)
	}
	return Vowel(idx), nil
}

func ModernizeFinal(r rune) (Final, error) {
	idx, ok := finalIndex[r]
	if !ok {
		return NoFinal, fmt.Errorf("modernize final %U: %w", r, ErrNotHangul)
	}
	return Final(idx), nil
}

// Parse accepts either a modern or a compatibility jamo.
func Parse(r rune) (Jamo, error) {
	ch := Classify(r)
	if j, ok := ch.Modern(); ok {
		return j, nil
	}
	return Jamo{}, fmt.Errorf("parse %U: %w", r, ErrNotHangul)
}
