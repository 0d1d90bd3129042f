package jamo

import (
	"errors"
	"testing"
)

func TestModernizeInitialCompatibility(t *testing.T) {
	initial, err := ModernizeInitial('ㄱ')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if initial.Rune() != 'ᄀ' {
		t.Fatalf("expected U+1100, got %U", initial.Rune())
	}
	if _, err := ModernizeInitial('ㄳ'); !errors.Is(err, ErrNotHangul) {
		t.Fatalf("ㄳ has no initial form, got err=%v", err)
	}
}

func TestModernizeCoversCompatibilityBlock(t *testing.T) {
	for r := rune(compatFirst); r <= compatLast; r++ {
		j, err := Modernize(r)
		if err != nil {
			t.Fatalf("Modernize(%U) failed: %v", r, err)
		}
		if j.Compat() != r {
			t.Fatalf("Modernize(%U) round-trips to %U", r, j.Compat())
		}
	}
	if _, err := Modernize('a'); !errors.Is(err, ErrNotHangul) {
		t.Fatalf("expected ErrNotHangul for latin input, got %v", err)
	}
}

func TestModernizeDefaultForms(t *testing.T) {
	cases := []struct {
		in   rune
		kind Kind
		mod  rune
	}{
		{'ㄱ', KindInitial, 'ᄀ'},
		{'ㄸ', KindInitial, 'ᄄ'},
		{'ㄳ', KindFinal, 'ᆪ'},
		{'ㅀ', KindFinal, 'ᆶ'},
		{'ㅏ', KindVowel, 'ᅡ'},
		{'ㅣ', KindVowel, 'ᅵ'},
	}
	for _, tc := range cases {
		j, err := Modernize(tc.in)
		if err != nil {
			t.Fatalf("Modernize(%c): %v", tc.in, err)
		}
		if j.Kind() != tc.kind || j.Rune() != tc.mod {
			t.Fatalf("Modernize(%c) = %v %U, want %v %U", tc.in, j.Kind(), j.Rune(), tc.kind, tc.mod)
		}
	}
}

func TestClassify(t *testing.T) {
	if ch := Classify('ᄀ'); ch.Category != Hangul || ch.Jamo != InitialKiyeok.Jamo() {
		t.Fatalf("unexpected classification for U+1100: %+v", ch)
	}
	if ch := Classify('ᅵ'); ch.Category != Hangul || ch.Jamo != VowelI.Jamo() {
		t.Fatalf("unexpected classification for U+1175: %+v", ch)
	}
	if ch := Classify('ᆼ'); ch.Category != Hangul || ch.Jamo != FinalIeung.Jamo() {
		t.Fatalf("unexpected classification for U+11BC: %+v", ch)
	}
	if ch := Classify('ㅎ'); ch.Category != Compatibility {
		t.Fatalf("expected compatibility jamo, got %v", ch.Category)
	}
	for _, r := range []rune{'a', '!', ' ', '한', 'ᄓ', 'ᆧ', 'ㅤ', 'ㅥ'} {
		if ch := Classify(r); ch.Category != Other || ch.Rune != r {
			t.Fatalf("expected %U to be Other, got %+v", r, ch)
		}
	}
}

func TestClassifyIsPure(t *testing.T) {
	for r := rune(0x1100); r < 0x3190; r++ {
		if Classify(r) != Classify(r) {
			t.Fatalf("classification of %U is not stable", r)
		}
	}
}

func TestModernJamoRanges(t *testing.T) {
	for i := Initial(0); i < initialCount; i++ {
		if got := Classify(i.Rune()).Jamo; got != i.Jamo() {
			t.Fatalf("initial %d does not round-trip through its code point", i)
		}
	}
	for v := Vowel(0); v < vowelCount; v++ {
		if got := Classify(v.Rune()).Jamo; got != v.Jamo() {
			t.Fatalf("vowel %d does not round-trip through its code point", v)
		}
	}
	for f := FinalKiyeok; f < finalCount; f++ {
		if got := Classify(f.Rune()).Jamo; got != f.Jamo() {
			t.Fatalf("final %d does not round-trip through its code point", f)
		}
	}
	if NoFinal.Rune() != 0 || !NoFinal.Jamo().IsZero() {
		t.Fatalf("NoFinal must not map to a code point")
	}
}

func TestCreateCompositeInitial(t *testing.T) {
	got, ok := CreateCompositeInitial(InitialKiyeok, InitialKiyeok)
	if !ok || got != InitialSsangKiyeok {
		t.Fatalf("expected ㄲ, got %v (ok=%v)", got, ok)
	}
	if _, ok := CreateCompositeInitial(InitialPieup, InitialSios); ok {
		t.Fatalf("ㅂ+ㅅ is not a valid initial")
	}
}

func TestCreateComposite(t *testing.T) {
	cases := []struct {
		a, b rune
		want rune
	}{
		{'ㅗ', 'ㅏ', 'ㅘ'},
		{'ㅜ', 'ㅓ', 'ㅝ'},
		{'ㅡ', 'ㅣ', 'ㅢ'},
		{'ㄷ', 'ㄷ', 'ㄸ'},
	}
	for _, tc := range cases {
		a, _ := Modernize(tc.a)
		b, _ := Modernize(tc.b)
		got, ok := CreateComposite(a, b)
		if !ok || got.Compat() != tc.want {
			t.Fatalf("%c+%c: expected %c, got %v (ok=%v)", tc.a, tc.b, tc.want, got, ok)
		}
	}

	// An initial-form ㅅ completes a final ㄹ.
	got, ok := CreateComposite(FinalRieul.Jamo(), InitialSios.Jamo())
	if !ok || got != FinalRieulSios.Jamo() {
		t.Fatalf("expected ㄽ, got %v (ok=%v)", got, ok)
	}

	if got, ok := CreateComposite(VowelA.Jamo(), VowelA.Jamo()); ok || !got.IsZero() {
		t.Fatalf("ㅏ+ㅏ must not combine, got %v", got)
	}
	if _, ok := CreateComposite(InitialKiyeok.Jamo(), VowelA.Jamo()); ok {
		t.Fatalf("consonant and vowel must not combine")
	}
}

func TestDecomposeComposite(t *testing.T) {
	a, b, ok := DecomposeComposite(VowelWa.Jamo())
	if !ok || a != VowelO.Jamo() || b != VowelA.Jamo() {
		t.Fatalf("expected ㅗ+ㅏ, got %v+%v (ok=%v)", a, b, ok)
	}
	a, b, ok = DecomposeComposite(FinalPieupSios.Jamo())
	if !ok || a != FinalPieup.Jamo() || b != FinalSios.Jamo() {
		t.Fatalf("expected ㅂ+ㅅ, got %v+%v (ok=%v)", a, b, ok)
	}
	if _, _, ok := DecomposeComposite(InitialNieun.Jamo()); ok {
		t.Fatalf("simple jamo must not decompose")
	}
}

func TestCompositesInvert(t *testing.T) {
	for pair, value := range doubleFinal {
		f, _ := ModernizeFinal(value)
		first, second, ok := f.Decompose()
		if !ok || first.Compat() != pair[0] || second.Compat() != pair[1] {
			t.Fatalf("final %c decomposes to %v+%v", value, first, second)
		}
		again, ok := CreateCompositeFinal(first, second)
		if !ok || again != f {
			t.Fatalf("final %c does not recompose", value)
		}
	}
}

func TestPositionalReinterpretation(t *testing.T) {
	if f, ok := InitialKiyeok.Jamo().Final(); !ok || f != FinalKiyeok {
		t.Fatalf("initial ㄱ should reinterpret as final ㄱ, got %v", f)
	}
	if _, ok := InitialSsangTikeut.Jamo().Final(); ok {
		t.Fatalf("ㄸ has no final form")
	}
	if i, ok := FinalSsangSios.Jamo().Initial(); !ok || i != InitialSsangSios {
		t.Fatalf("final ㅆ should reinterpret as initial ㅆ, got %v", i)
	}
	if _, ok := FinalRieulKiyeok.Jamo().Initial(); ok {
		t.Fatalf("ㄺ has no initial form")
	}
	if _, ok := VowelA.Jamo().Initial(); ok {
		t.Fatalf("vowels have no initial form")
	}
}
