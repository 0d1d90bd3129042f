// Package jamo classifies Unicode code points as Hangul letters and converts
// between the compatibility jamo used for display and input and the modern
// (conjoining) jamo used for syllable composition.
//
// Three closed categories of modern jamo exist: Initial, Vowel and Final.
// Each value is the letter's index in the syllable composition formula,
// so the zero Initial is ㄱ and the zero Final is NoFinal.
package jamo

import (
	"errors"
	"fmt"
)

var (
	ErrNotHangul          = errors.New("jamo: not a hangul jamo")
	ErrInvalidCombination = errors.New("jamo: invalid combination")
)

// Initial is a leading consonant (choseong), index 0..18.
type Initial uint8

const (
	InitialKiyeok Initial = iota
	InitialSsangKiyeok
	InitialNieun
	InitialTikeut
	InitialSsangTikeut
	InitialRieul
	InitialMieum
	InitialPieup
	InitialSsangPieup
	InitialSios
	InitialSsangSios
	InitialIeung
	InitialCieuc
	InitialSsangCieuc
	InitialChieuch
	InitialKhieukh
	InitialThieuth
	InitialPhieuph
	InitialHieuh
)

// Vowel is a medial vowel (jungseong), index 0..20.
type Vowel uint8

const (
	VowelA Vowel = iota
	VowelAe
	VowelYa
	VowelYae
	VowelEo
	VowelE
	VowelYeo
	VowelYe
	VowelO
	VowelWa
	VowelWae
	VowelOe
	VowelYo
	VowelU
	VowelWeo
	VowelWe
	VowelWi
	VowelYu
	VowelEu
	VowelYi
	VowelI
)

// Final is a trailing consonant (jongseong), index 1..27. NoFinal marks an
// open syllable and has no code point of its own.
type Final uint8

const (
	NoFinal Final = iota
	FinalKiyeok
	FinalSsangKiyeok
	FinalKiyeokSios
	FinalNieun
	FinalNieunCieuc
	FinalNieunHieuh
	FinalTikeut
	FinalRieul
	FinalRieulKiyeok
	FinalRieulMieum
	FinalRieulPieup
	FinalRieulSios
	FinalRieulThieuth
	FinalRieulPhieuph
	FinalRieulHieuh
	FinalMieum
	FinalPieup
	FinalPieupSios
	FinalSios
	FinalSsangSios
	FinalIeung
	FinalCieuc
	FinalChieuch
	FinalKhieukh
	FinalThieuth
	FinalPhieuph
	FinalHieuh
)

func (i Initial) Valid() bool { return int(i) < initialCount }
func (v Vowel) Valid() bool { return int(v) < vowelCount }
func (f Final) Valid() bool { return int(f) < finalCount }

func (i Initial) Index() int { return int(i) }
func (v Vowel) Index() int { return int(v) }
func (f Final) Index() int { return int(f) }

// Rune returns the modern jamo code point (U+1100..U+1112).
func (i Initial) Rune() rune { return modernInitialBase + rune(i) }

// Rune returns the modern jamo code point (U+1161..U+1175).
func (v Vowel) Rune() rune { return modernVowelBase + rune(v) }

// Rune returns the modern jamo code point (U+11A8..U+11C2), or 0 for NoFinal.
func (f Final) Rune() rune {
	if f == NoFinal {
		return 0
	}
	return modernFinalBase + rune(f)
}

// Compat returns the compatibility jamo code point, or 0 when out of range.
func (i Initial) Compat() rune { return lookup(initialList, int(i)) }
func (v Vowel) Compat() rune { return lookup(vowelList, int(v)) }
func (f Final) Compat() rune { return lookup(finalList, int(f)) }

func (i Initial) String() string { return stringOf(i.Compat(), int(i)) }
func (v Vowel) String() string { return stringOf(v.Compat(), int(v)) }
func (f Final) String() string {
	if f == NoFinal {
		return ""
	}
	return stringOf(f.Compat(), int(f))
}

func lookup(list []rune, idx int) rune {
	if idx < 0 || idx >= len(list) {
		return 0
	}
	return list[idx]
}

func stringOf(compat rune, idx int) string {
	if compat == 0 {
		return fmt.Sprintf("jamo(%d)", idx)
	}
	return string(compat)
}

// Jamo lifts the value into the tagged Jamo form.
func (i Initial) Jamo() Jamo { return Jamo{kind: KindInitial, index: uint8(i)} }
func (v Vowel) Jamo() Jamo { return Jamo{kind: KindVowel, index: uint8(v)} }

// Jamo lifts the value into the tagged Jamo form. NoFinal yields the zero Jamo.
func (f Final) Jamo() Jamo {
	if f == NoFinal {
		return Jamo{}
	}
	return Jamo{kind: KindFinal, index: uint8(f)}
}

// Kind tags which slot of a syllable a Jamo was classified for.
type Kind uint8

const (
	KindNone Kind = iota
	KindInitial
	KindVowel
	KindFinal
)

func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindVowel:
		return "vowel"
	case KindFinal:
		return "final"
	default:
		return "none"
	}
}

// Jamo is one modern jamo: an Initial, a Vowel or a Final. The zero value
// is not a letter.
type Jamo struct {
	kind  Kind
	index uint8
}

func (j Jamo) Kind() Kind { return j.kind }
func (j Jamo) IsZero() bool { return j.kind == KindNone }
func (j Jamo) IsVowel() bool { return j.kind == KindVowel }

func (j Jamo) IsConsonant() bool {
	return j.kind == KindInitial || j.kind == KindFinal
}

// Rune returns the modern jamo code point.
func (j Jamo) Rune() rune {
	switch j.kind {
	case KindInitial:
		return Initial(j.index).Rune()
	case KindVowel:
		return Vowel(j.index).Rune()
	case KindFinal:
		return Final(j.index).Rune()
	default:
		return 0
	}
}

// Compat returns the compatibility jamo code point.
func (j Jamo) Compat() rune {
	switch j.kind {
	case KindInitial:
		return Initial(j.index).Compat()
	case KindVowel:
		return Vowel(j.index).Compat()
	case KindFinal:
		return Final(j.index).Compat()
	default:
		return 0
	}
}

func (j Jamo) String() string {
	if j.kind == KindNone {
		return ""
	}
	return string(j.Compat())
}

// Initial reinterprets the jamo as a leading consonant. Final consonants that
// share a shape with an initial (ㄱ, ㄲ, ㄴ, ...) convert; clusters such as ㄳ
// and vowels do not.
func (j Jamo) Initial() (Initial, bool) {
	switch j.kind {
	case KindInitial:
		return Initial(j.index), true
	case KindFinal:
		idx, ok := initialIndex[Final(j.index).Compat()]
		return Initial(idx), ok
	default:
		return 0, false
	}
}

// Final reinterprets the jamo as a trailing consonant. ㄸ, ㅃ and ㅉ have no
// final form.
func (j Jamo) Final() (Final, bool) {
	switch j.kind {
	case KindFinal:
		return Final(j.index), true
	case KindInitial:
		idx, ok := finalIndex[Initial(j.index).Compat()]
		return Final(idx), ok
	default:
		return NoFinal, false
	}
}

func (j Jamo) Vowel() (Vowel, bool) {
	if j.kind != KindVowel {
		return 0, false
	}
	return Vowel(j.index), true
}
