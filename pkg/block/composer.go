package block

import (
	"fmt"

	"hancompose/pkg/jamo"
)

type State uint8

const (
	StateEmpty State = iota
	StateInitial
	StateVowel
	StateFinal
)

// Complete reports whether a block in this state renders as a syllable.
func (s State) Complete() bool {
	return s == StateVowel || s == StateFinal
}

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInitial:
		return "initial"
	case StateVowel:
		return "vowel"
	case StateFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Signal tells the caller what became of a pushed jamo that did not fail.
// Anything other than Accepted leaves the composer untouched.
type Signal uint8

const (
	Accepted Signal = iota
	// StartNext: the block is finished and the jamo opens the next block.
	StartNext
	// Resyllabify: a vowel follows a final consonant, so the most recently
	// pushed final belongs to the next block as its initial.
	Resyllabify
)

func (s Signal) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case StartNext:
		return "start-next"
	case Resyllabify:
		return "resyllabify"
	default:
		return "unknown"
	}
}

// edit records the composer as it was before one accepted push.
type edit struct {
	input jamo.Jamo
	state State
	block Block
}

// Composer is the single-block state machine:
//
//	Empty -> Initial -> Vowel -> Final
//
// Pop is LIFO over accepted pushes, so popping after ㅗ+ㅏ yields ㅗ again.
type Composer struct {
	state   State
	block   Block
	history []edit
}

func NewComposer() *Composer {
	return &Composer{}
}

func (c *Composer) State() State { return c.state }
func (c *Composer) Empty() bool { return c.state == StateEmpty }
func (c *Composer) Complete() bool { return c.state.Complete() }

// Len is the number of accepted pushes that Pop can undo.
func (c *Composer) Len() int { return len(c.history) }

// Block returns the syllable once the composer holds an initial and a vowel.
func (c *Composer) Block() (Block, bool) {
	if !c.state.Complete() {
		return Block{}, false
	}
	return c.block, true
}

// Push applies one jamo. A non-nil error wraps jamo.ErrInvalidCombination.
// StartNext and Resyllabify hand the decision to the caller.
func (c *Composer) Push(j jamo.Jamo) (Signal, error) {
	state, blk, signal, err := c.transition(j)
	if err != nil || signal != Accepted {
		return signal, err
	}
	c.history = append(c.history, edit{input: j, state: c.state, block: c.block})
	c.state, c.block = state, blk
	return Accepted, nil
}

func (c *Composer) transition(j jamo.Jamo) (State, Block, Signal, error) {
	blk := c.block
	switch c.state {
	case StateEmpty:
		initial, ok := j.Initial()
		if !ok {
			return c.reject(j)
		}
		return StateInitial, Block{Initial: initial}, Accepted, nil

	case StateInitial:
		if v, ok := j.Vowel(); ok {
			blk.Vowel = v
			return StateVowel, blk, Accepted, nil
		}
		if second, ok := j.Initial(); ok {
			if combined, ok := jamo.CreateCompositeInitial(blk.Initial, second); ok {
				blk.Initial = combined
				return StateInitial, blk, Accepted, nil
			}
		}
		return c.reject(j)

	case StateVowel:
		if v, ok := j.Vowel(); ok {
			if combined, ok := jamo.CreateCompositeVowel(blk.Vowel, v); ok {
				blk.Vowel = combined
				return StateVowel, blk, Accepted, nil
			}
			return c.state, c.block, StartNext, nil
		}
		if !j.IsConsonant() {
			return c.reject(j)
		}
		if f, ok := j.Final(); ok {
			blk.Final = f
			return StateFinal, blk, Accepted, nil
		}
		return c.state, c.block, StartNext, nil

	case StateFinal:
		if j.IsVowel() {
			return c.state, c.block, Resyllabify, nil
		}
		if !j.IsConsonant() {
			return c.reject(j)
		}
		if f, ok := j.Final(); ok {
			if combined, ok := jamo.CreateCompositeFinal(blk.Final, f); ok {
				blk.Final = combined
				return StateFinal, blk, Accepted, nil
			}
		}
		return c.state, c.block, StartNext, nil
	}
	return c.reject(j)
}

func (c *Composer) reject(j jamo.Jamo) (State, Block, Signal, error) {
	return c.state, c.block, Accepted, fmt.Errorf("block: push %q in %s state: %w", j.String(), c.state, jamo.ErrInvalidCombination)
}

// Pop undoes the most recent accepted push and returns the jamo it applied.
func (c *Composer) Pop() (jamo.Jamo, error) {
	if len(c.history) == 0 {
		return jamo.Jamo{}, ErrEmptyPop
	}
	last := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.state, c.block = last.state, last.block
	return last.input, nil
}

// Rune renders the syllable; Empty and Initial states fail with
// ErrIncompleteBlock.
func (c *Composer) Rune() (rune, error) {
	if !c.state.Complete() {
		return 0, fmt.Errorf("%s state: %w", c.state, ErrIncompleteBlock)
	}
	return c.block.Rune()
}

// String renders a complete block as its syllable and an incomplete one as
// its compatibility jamo.
func (c *Composer) String() string {
	switch c.state {
	case StateEmpty:
		return ""
	case StateInitial:
		return c.block.Initial.String()
	default:
		return c.block.String()
	}
}

func (c *Composer) Reset() {
	c.state = StateEmpty
	c.block = Block{}
	c.history = c.history[:0]
}

func (c *Composer) Clone() *Composer {
	clone := &Composer{state: c.state, block: c.block}
	if len(c.history) > 0 {
		clone.history = append([]edit(nil), c.history...)
	}
	return clone
}
