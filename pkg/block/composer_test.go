package block

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"hancompose/pkg/jamo"
)

func mustJamo(t *testing.T, r rune) jamo.Jamo {
	t.Helper()
	j, err := jamo.Parse(r)
	if err != nil {
		t.Fatalf("parse %q: %v", r, err)
	}
	return j
}

func pushAll(t *testing.T, c *Composer, input string) {
	t.Helper()
	for _, r := range input {
		signal, err := c.Push(mustJamo(t, r))
		if err != nil {
			t.Fatalf("push %q: %v", r, err)
		}
		if signal != Accepted {
			t.Fatalf("push %q: expected accepted, got %v", r, signal)
		}
	}
}

var composerState = cmp.Options{
	cmp.AllowUnexported(Composer{}, edit{}, jamo.Jamo{}),
	cmpopts.EquateEmpty(),
}

func TestComposerBuildsSyllable(t *testing.T) {
	c := NewComposer()
	if _, err := c.Rune(); !errors.Is(err, ErrIncompleteBlock) {
		t.Fatalf("empty composer should be incomplete, got %v", err)
	}

	pushAll(t, c, "ㅎ")
	if c.State() != StateInitial || c.String() != "ㅎ" {
		t.Fatalf("expected initial state rendering 'ㅎ', got %v %q", c.State(), c.String())
	}
	if _, err := c.Rune(); !errors.Is(err, ErrIncompleteBlock) {
		t.Fatalf("initial-only composer should be incomplete, got %v", err)
	}

	pushAll(t, c, "ㅏ")
	if r, err := c.Rune(); err != nil || r != '하' {
		t.Fatalf("expected '하', got %q (err=%v)", r, err)
	}

	pushAll(t, c, "ㄴ")
	if r, err := c.Rune(); err != nil || r != '한' || c.State() != StateFinal {
		t.Fatalf("expected '한' in final state, got %q %v (err=%v)", r, c.State(), err)
	}
}

func TestComposerComposites(t *testing.T) {
	c := NewComposer()
	pushAll(t, c, "ㄱㄱㅜㅓㄹㅎ")
	if c.String() != "꿣" {
		t.Fatalf("expected '꿣', got %q", c.String())
	}
	if c.Len() != 6 {
		t.Fatalf("expected 6 recorded pushes, got %d", c.Len())
	}
}

func TestComposerAcceptsModernFinalAsInitial(t *testing.T) {
	c := NewComposer()
	if _, err := c.Push(jamo.FinalNieun.Jamo()); err != nil {
		t.Fatalf("final ㄴ should be usable as an initial: %v", err)
	}
	if _, err := c.Push(jamo.VowelA.Jamo()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.String() != "나" {
		t.Fatalf("expected '나', got %q", c.String())
	}
}

func TestComposerRejections(t *testing.T) {
	cases := []struct {
		name    string
		prefix  string
		push    rune
		want    error
		wantSig Signal
	}{
		{name: "vowel without initial", prefix: "", push: 'ㅏ', want: jamo.ErrInvalidCombination},
		{name: "cluster as initial", prefix: "", push: 'ㄳ', want: jamo.ErrInvalidCombination},
		{name: "non-doubling initials", prefix: "ㄱ", push: 'ㄹ', want: jamo.ErrInvalidCombination},
		{name: "tripled initial", prefix: "ㄱㄱ", push: 'ㄱ', want: jamo.ErrInvalidCombination},
		{name: "second plain vowel", prefix: "ㄱㅏ", push: 'ㅏ', wantSig: StartNext},
		{name: "third vowel", prefix: "ㄱㅗㅏ", push: 'ㅣ', wantSig: StartNext},
		{name: "initial-only consonant", prefix: "ㄱㅏ", push: 'ㄸ', wantSig: StartNext},
		{name: "non-cluster final", prefix: "ㄱㅏㄴ", push: 'ㄱ', wantSig: StartNext},
		{name: "vowel after final", prefix: "ㄱㅏㄴ", push: 'ㅏ', wantSig: Resyllabify},
		{name: "vowel after cluster", prefix: "ㄱㅏㄹㄱ", push: 'ㅏ', wantSig: Resyllabify},
	}

	for _, tc := range cases {
		c := NewComposer()
		pushAll(t, c, tc.prefix)
		before := c.Clone()

		signal, err := c.Push(mustJamo(t, tc.push))
		if tc.want != nil {
			if !errors.Is(err, tc.want) {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
			}
		} else if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		} else if signal != tc.wantSig {
			t.Fatalf("%s: expected signal %v, got %v", tc.name, tc.wantSig, signal)
		}

		if diff := cmp.Diff(before, c, composerState); diff != "" {
			t.Fatalf("%s: rejected push changed the composer (-before +after):\n%s", tc.name, diff)
		}
	}
}

func TestComposerPopIsLIFO(t *testing.T) {
	c := NewComposer()
	pushAll(t, c, "ㄷㅗㅏㄹㄱ")
	if c.String() != "돩" {
		t.Fatalf("expected '돩', got %q", c.String())
	}

	steps := []struct {
		popped rune
		render string
	}{
		{'ㄱ', "돨"},
		{'ㄹ', "돠"},
		{'ㅏ', "도"},
		{'ㅗ', "ㄷ"},
		{'ㄷ', ""},
	}
	for _, step := range steps {
		got, err := c.Pop()
		if err != nil {
			t.Fatalf("unexpected pop error: %v", err)
		}
		if got.Compat() != step.popped {
			t.Fatalf("expected to pop %q, got %q", step.popped, got.Compat())
		}
		if c.String() != step.render {
			t.Fatalf("after popping %q expected %q, got %q", step.popped, step.render, c.String())
		}
	}

	if _, err := c.Pop(); !errors.Is(err, ErrEmptyPop) {
		t.Fatalf("expected ErrEmptyPop, got %v", err)
	}
}

func TestComposerPopRevertsDirectComposite(t *testing.T) {
	c := NewComposer()
	pushAll(t, c, "ㅇㅘ")
	if _, err := c.Pop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != StateInitial {
		t.Fatalf("popping a directly pushed ㅘ should clear the vowel, got %v", c.State())
	}
}

func TestComposerPushPopInverse(t *testing.T) {
	inputs := []string{"ㄱ", "ㄱㄱ", "ㄱㅏ", "ㅂㅜㅔㄹㅂ", "ㅆㅡㅣㄴㅎ", "ㅃㅏ"}
	for _, base := range inputs {
		for _, extra := range inputs {
			c := NewComposer()
			pushAll(t, c, base)
			before := c.Clone()

			pushed := 0
			for _, r := range extra {
				if signal, err := c.Push(mustJamo(t, r)); err == nil && signal == Accepted {
					pushed++
				}
			}
			for i := 0; i < pushed; i++ {
				if _, err := c.Pop(); err != nil {
					t.Fatalf("%s+%s: pop %d failed: %v", base, extra, i, err)
				}
			}
			if diff := cmp.Diff(before, c, composerState); diff != "" {
				t.Fatalf("%s+%s: state differs after pops (-want +got):\n%s", base, extra, diff)
			}
		}
	}
}

func TestComposerCloneIsIndependent(t *testing.T) {
	c := NewComposer()
	pushAll(t, c, "ㄱㅏ")
	clone := c.Clone()
	pushAll(t, clone, "ㅁ")
	if c.String() != "가" || clone.String() != "감" {
		t.Fatalf("clone shares state: original %q clone %q", c.String(), clone.String())
	}
	c.Reset()
	if !c.Empty() || c.Len() != 0 || clone.String() != "감" {
		t.Fatalf("reset leaked into clone")
	}
}
