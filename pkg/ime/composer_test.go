package ime

import (
	"errors"
	"testing"

	"hancompose/internal/layout"
	"hancompose/pkg/jamo"
)

func dubeolsik(t *testing.T) *layout.Layout {
	t.Helper()
	l, err := layout.Load("dubeolsik")
	if err != nil {
		t.Fatalf("load dubeolsik: %v", err)
	}
	return l
}

func mustText(t *testing.T, composer *Composer) string {
	t.Helper()
	out, err := composer.Text()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return out
}

func TestComposeAnnyeonghaseyo(t *testing.T) {
	composer := NewComposer(dubeolsik(t))
	input := "dkssudgktpdy"
	for _, r := range input {
		if err := composer.TypeKey(r); err != nil {
			t.Fatalf("unexpected error for %c: %v", r, err)
		}
	}
	got, err := composer.Enter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "안녕하세요"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if !composer.Empty() {
		t.Fatalf("enter should start a new line")
	}
}

func TestShiftedAndCompositeKeys(t *testing.T) {
	composer := NewComposer(dubeolsik(t))
	// ㄲ ㅗ ㅏ ㅊ : shifted r gives the doubled initial, h+k the diphthong
	if err := composer.TypeString("Rhkc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustText(t, composer); got != "꽟" {
		t.Fatalf("expected '꽟', got %q", got)
	}
}

func TestBackspaceClearsSyllable(t *testing.T) {
	composer := NewComposer(dubeolsik(t))
	composer.TypeKey('d') // ㅇ
	composer.TypeKey('k') // ㅏ -> 아
	if got := mustText(t, composer); got != "아" {
		t.Fatalf("unexpected composed text: %q", got)
	}

	composer.Backspace() // remove ㅏ
	if got := mustText(t, composer); got != "ㅇ" {
		t.Fatalf("expected lead jamo after removing vowel, got %q", got)
	}

	composer.Backspace() // remove ㅇ
	if got := mustText(t, composer); got != "" {
		t.Fatalf("expected empty buffer after removing lead, got %q", got)
	}
	if composer.Backspace() {
		t.Fatalf("backspace on an empty line should report false")
	}
}

func TestBackspaceUndoesMovedFinal(t *testing.T) {
	composer := NewComposer(dubeolsik(t))
	composer.TypeString("ekfr") // 닭
	composer.TypeKey('k')       // 달가
	if got := mustText(t, composer); got != "달가" {
		t.Fatalf("expected '달가', got %q", got)
	}
	composer.Backspace()
	if got := mustText(t, composer); got != "닭" {
		t.Fatalf("expected backspace to restore '닭', got %q", got)
	}
}

func TestSpaceAndLiteral(t *testing.T) {
	composer := NewComposer(dubeolsik(t))
	for _, r := range "dkssudgktpdy" {
		composer.TypeKey(r)
	}
	composer.Space()
	composer.AppendLiteral('1')
	got := mustText(t, composer)
	if got != "안녕하세요 1" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestRejectedKeyKeepsLine(t *testing.T) {
	composer := NewComposer(dubeolsik(t))
	composer.TypeString("rk ")
	err := composer.TypeKey('k')
	if !errors.Is(err, jamo.ErrInvalidCombination) {
		t.Fatalf("expected ErrInvalidCombination for a vowel after a space, got %v", err)
	}
	if got := mustText(t, composer); got != "가 " {
		t.Fatalf("rejected key changed the line: %q", got)
	}
}

func TestPassthroughLayoutComposesJamo(t *testing.T) {
	none, err := layout.Load("none")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	composer := NewComposer(none)
	if err := composer.TypeString("ㅎㅏㄴㄱㅡㄹ abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustText(t, composer); got != "한글 abc" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextSymbolIsLiteral(t *testing.T) {
	l := dubeolsik(t)
	l.ApplyOverride(';', layout.NewTextSymbol("ㄱ"))
	composer := NewComposer(l)
	composer.TypeString("rk;")
	if got := mustText(t, composer); got != "가ㄱ" {
		t.Fatalf("unexpected text: %q", got)
	}
	// the text symbol closed the word, so a vowel has nothing to join
	if err := composer.TypeKey('k'); err == nil {
		t.Fatalf("expected the vowel to be rejected")
	}
}

func TestFinalKeyKeepsItsConsonant(t *testing.T) {
	l, err := layout.Load("sebeolsik-390")
	if err != nil {
		t.Fatalf("load sebeolsik-390: %v", err)
	}
	composer := NewComposer(l)

	// k ㄱ, f ㅏ, s final ㄴ; a vowel must not pull the ㄴ into a new block
	err = composer.TypeString("kfsf")
	if !errors.Is(err, jamo.ErrInvalidCombination) {
		t.Fatalf("expected vowel after final key to be rejected, got %v", err)
	}
	if got := mustText(t, composer); got != "간" {
		t.Fatalf("rejected vowel changed the line: %q", got)
	}

	// j is the initial ㅇ, so the next syllable starts cleanly
	if err := composer.TypeString("jf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustText(t, composer); got != "간아" {
		t.Fatalf("expected 간아, got %q", got)
	}

	// once the final key is backspaced away a vowel composes again
	composer.Reset()
	if err := composer.TypeString("kvs"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	composer.Backspace()
	if err := composer.TypeString("f"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustText(t, composer); got != "과" {
		t.Fatalf("expected 과, got %q", got)
	}
}

func TestDubeolsikFinalStillMoves(t *testing.T) {
	composer := NewComposer(dubeolsik(t))
	if err := composer.TypeString("gksk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustText(t, composer); got != "하나" {
		t.Fatalf("expected 하나, got %q", got)
	}
}
