package jamo

// CreateCompositeInitial forms a doubled initial (ㄱ+ㄱ → ㄲ).
func CreateCompositeInitial(a, b Initial) (Initial, bool) {
	combined, ok := doubleInitial[[2]rune{a.Compat(), b.Compat()}]
	if !ok {
		return 0, false
	}
	return Initial(initialIndex[combined]), true
}

// CreateCompositeVowel forms a diphthong (ㅗ+ㅏ → ㅘ).
func CreateCompositeVowel(a, b Vowel) (Vowel, bool) {
	combined, ok := doubleVowel[[2]rune{a.Compat(), b.Compat()}]
	if !ok {
		return 0, false
	}
	return Vowel(vowelIndex[combined]), true
}

// CreateCompositeFinal forms a final cluster (ㄹ+ㄱ → ㄺ).
func CreateCompositeFinal(a, b Final) (Final, bool) {
	combined, ok := doubleFinal[[2]rune{a.Compat(), b.Compat()}]
	if !ok {
		return NoFinal, false
	}
	return Final(finalIndex[combined]), true
}

func (i Initial) Decompose() (Initial, Initial, bool) {
	pair, ok := initialSplit[i.Compat()]
	if !ok {
		return 0, 0, false
	}
	return Initial(initialIndex[pair[0]]), Initial(initialIndex[pair[1]]), true
}

func (v Vowel) Decompose() (Vowel, Vowel, bool) {
	pair, ok := vowelSplit[v.Compat()]
	if !ok {
		return 0, 0, false
	}
	return Vowel(vowelIndex[pair[0]]), Vowel(vowelIndex[pair[1]]), true
}

func (f Final) Decompose() (Final, Final, bool) {
	pair, ok := finalSplit[f.Compat()]
	if !ok {
		return NoFinal, NoFinal, false
	}
	return Final(finalIndex[pair[0]]), Final(finalIndex[pair[1]]), true
}

// CreateComposite combines b into a, in a's slot. The second jamo is
// reinterpreted positionally, so an Initial ㅅ may complete a Final ㄱ into ㄳ.
func CreateComposite(a, b Jamo) (Jamo, bool) {
	switch a.kind {
	case KindInitial:
		second, ok := b.Initial()
		if !ok {
			return Jamo{}, false
		}
		combined, ok := CreateCompositeInitial(Initial(a.index), second)
		if !ok {
			return Jamo{}, false
		}
		return combined.Jamo(), true
	case KindVowel:
		second, ok := b.Vowel()
		if !ok {
			return Jamo{}, false
		}
		combined, ok := CreateCompositeVowel(Vowel(a.index), second)
		if !ok {
			return Jamo{}, false
		}
		return combined.Jamo(), true
	case KindFinal:
		second, ok := b.Final()
		if !ok {
			return Jamo{}, false
		}
		combined, ok := CreateCompositeFinal(Final(a.index), second)
		if !ok {
			return Jamo{}, false
		}
		return combined.Jamo(), true
	default:
		return Jamo{}, false
	}
}

// DecomposeComposite splits a composite into its two constituents, both of
// the composite's kind. Simple jamo report false.
func DecomposeComposite(j Jamo) (Jamo, Jamo, bool) {
	switch j.kind {
	case KindInitial:
		a, b, ok := Initial(j.index).Decompose()
		if !ok {
			return Jamo{}, Jamo{}, false
		}
		return a.Jamo(), b.Jamo(), true
	case KindVowel:
		a, b, ok := Vowel(j.index).Decompose()
		if !ok {
			return Jamo{}, Jamo{}, false
		}
		return a.Jamo(), b.Jamo(), true
	case KindFinal:
		a, b, ok := Final(j.index).Decompose()
		if !ok {
			return Jamo{}, Jamo{}, false
		}
		return a.Jamo(), b.Jamo(), true
	default:
		return Jamo{}, Jamo{}, false
	}
}
