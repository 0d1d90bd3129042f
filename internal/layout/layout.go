package layout

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"hancompose/pkg/jamo"
)

type SymbolKind int

const (
	SymbolPassthrough SymbolKind = iota
	SymbolText
	SymbolJamo
)

// Role pins a key to one position in the block. RoleAuto leaves the choice
// to the composer.
type Role int

const (
	RoleAuto Role = iota
	RoleLeading
	RoleMedial
	RoleTrailing
)

type LayoutSymbol struct {
	Kind SymbolKind
	Text string
	Jamo rune
	Role Role
}

// Rune returns the code point a jamo symbol feeds the composer: the
// compatibility jamo for RoleAuto, the modern conjoining jamo otherwise.
// A jamo that cannot take the role is an error.
func (s *LayoutSymbol) Rune() (rune, error) {
	if s == nil || s.Kind != SymbolJamo {
		return 0, fmt.Errorf("layout: not a jamo symbol")
	}
	switch s.Role {
	case RoleLeading:
		initial, err := jamo.ModernizeInitial(s.Jamo)
		if err != nil {
			return 0, err
		}
		return initial.Rune(), nil
	case RoleMedial:
		vowel, err := jamo.ModernizeVowel(s.Jamo)
		if err != nil {
			return 0, err
		}
		return vowel.Rune(), nil
	case RoleTrailing:
		final, err := jamo.ModernizeFinal(s.Jamo)
		if err != nil {
			return 0, err
		}
		return final.Rune(), nil
	default:
		return s.Jamo, nil
	}
}

type Layout struct {
	name    string
	mapping map[rune]*LayoutSymbol
}

func NewLayout(name string) *Layout {
	return &Layout{name: name, mapping: make(map[rune]*LayoutSymbol)}
}

func (l *Layout) Name() string { return l.name }

// Translate returns the symbol bound to the typed key, or nil when the key
// is not part of the layout.
func (l *Layout) Translate(key rune) *LayoutSymbol {
	if l == nil {
		return nil
	}
	return l.mapping[key]
}

func (l *Layout) Len() int {
	if l == nil {
		return 0
	}
	return len(l.mapping)
}

// ApplyOverride binds key to symbol; a nil symbol unbinds the key.
func (l *Layout) ApplyOverride(key rune, symbol *LayoutSymbol) {
	if l == nil {
		return
	}
	if symbol == nil {
		delete(l.mapping, key)
		return
	}
	l.mapping[key] = symbol
}

func NewTextSymbol(value string) *LayoutSymbol {
	return &LayoutSymbol{Kind: SymbolText, Text: value}
}

func NewJamoSymbol(value rune, role Role) *LayoutSymbol {
	return &LayoutSymbol{Kind: SymbolJamo, Jamo: value, Role: role}
}

func NewPassthroughSymbol() *LayoutSymbol {
	return &LayoutSymbol{Kind: SymbolPassthrough}
}

func makeJamo(value rune) *LayoutSymbol { return NewJamoSymbol(value, RoleAuto) }

func makeMedial(value rune) *LayoutSymbol { return NewJamoSymbol(value, RoleMedial) }

func makeTrailing(value rune) *LayoutSymbol { return NewJamoSymbol(value, RoleTrailing) }

// addEntry binds a letter key and its shifted (upper case) form. A nil
// shifted symbol repeats the normal one; a nil normal unbinds both.
func (l *Layout) addEntry(key rune, normal, shifted *LayoutSymbol) {
	if shifted == nil {
		shifted = normal
	}
	l.ApplyOverride(key, normal)
	if upper := unicode.ToUpper(key); upper != key {
		l.ApplyOverride(upper, shifted)
	}
}

func buildDubeolsik() *Layout {
	layout := NewLayout("dubeolsik")
	layout.addEntry('q', makeJamo('ㅂ'), makeJamo('ㅃ'))
	layout.addEntry('w', makeJamo('ㅈ'), makeJamo('ㅉ'))
	layout.addEntry('e', makeJamo('ㄷ'), makeJamo('ㄸ'))
	layout.addEntry('r', makeJamo('ㄱ'), makeJamo('ㄲ'))
	layout.addEntry('t', makeJamo('ㅅ'), makeJamo('ㅆ'))
	layout.addEntry('y', makeJamo('ㅛ'), nil)
	layout.addEntry('u', makeJamo('ㅕ'), nil)
	layout.addEntry('i', makeJamo('ㅑ'), nil)
	layout.addEntry('o', makeJamo('ㅐ'), makeJamo('ㅒ'))
	layout.addEntry('p', makeJamo('ㅔ'), makeJamo('ㅖ'))
	layout.addEntry('a', makeJamo('ㅁ'), nil)
	layout.addEntry('s', makeJamo('ㄴ'), nil)
	layout.addEntry('d', makeJamo('ㅇ'), nil)
	layout.addEntry('f', makeJamo('ㄹ'), nil)
	layout.addEntry('g', makeJamo('ㅎ'), nil)
	layout.addEntry('h', makeJamo('ㅗ'), nil)
	layout.addEntry('j', makeJamo('ㅓ'), nil)
	layout.addEntry('k', makeJamo('ㅏ'), nil)
	layout.addEntry('l', makeJamo('ㅣ'), nil)
	layout.addEntry('z', makeJamo('ㅋ'), nil)
	layout.addEntry('x', makeJamo('ㅌ'), nil)
	layout.addEntry('c', makeJamo('ㅊ'), nil)
	layout.addEntry('v', makeJamo('ㅍ'), nil)
	layout.addEntry('b', makeJamo('ㅠ'), nil)
	layout.addEntry('n', makeJamo('ㅜ'), nil)
	layout.addEntry('m', makeJamo('ㅡ'), nil)
	return layout
}

// buildSebeolsik390 binds initials to the right hand and finals to the left
// hand, vowels in between. Vowel keys produce modern vowels and final keys
// modern trailing consonants.
func buildSebeolsik390() *Layout {
	layout := NewLayout("sebeolsik-390")
	mapping := layout.mapping

	initials := map[rune]rune{
		'k': 'ㄱ', 'h': 'ㄴ', 'u': 'ㄷ', 'y': 'ㄹ', 'i': 'ㅁ', ';': 'ㅂ', 'n': 'ㅅ',
		'j': 'ㅇ', 'l': 'ㅈ', 'o': 'ㅊ', '0': 'ㅋ', '\'': 'ㅌ', 'p': 'ㅍ', 'm': 'ㅎ',
	}
	for key, value := range initials {
		mapping[key] = makeJamo(value)
	}

	vowels := map[rune]rune{
		'f': 'ㅏ', 'r': 'ㅐ', '6': 'ㅑ', 't': 'ㅓ', 'c': 'ㅔ', 'e': 'ㅕ', '7': 'ㅖ',
		'v': 'ㅗ', '4': 'ㅛ', 'b': 'ㅜ', '5': 'ㅠ', 'g': 'ㅡ', 'd': 'ㅣ', '8': 'ㅢ',
		'/': 'ㅗ', '9': 'ㅜ',
	}
	for key, value := range vowels {
		mapping[key] = makeMedial(value)
	}

	finals := map[rune]rune{
		'x': 'ㄱ', 's': 'ㄴ', 'a': 'ㅇ', 'w': 'ㄹ', 'z': 'ㅁ', '3': 'ㅂ', 'q': 'ㅅ',
		'2': 'ㅆ', '1': 'ㅎ',
	}
	for key, value := range finals {
		mapping[key] = makeTrailing(value)
	}

	return layout
}

func buildPassthrough() *Layout {
	return NewLayout("none")
}

var aliases = map[string]string{
	"":              "dubeolsik",
	"default":       "dubeolsik",
	"dubeolsik":     "dubeolsik",
	"2beolsik":      "dubeolsik",
	"sebeolsik-390": "sebeolsik-390",
	"sebeolsik":     "sebeolsik-390",
	"3beolsik-390":  "sebeolsik-390",
	"none":          "none",
	"jamo":          "none",
	"raw":           "none",
	"latin":         "none",
}

// Canonical resolves a user supplied layout name.
func Canonical(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	canonical, ok := aliases[normalized]
	if !ok {
		return "", fmt.Errorf("unknown layout %q (available: %s)", name, strings.Join(AvailableLayouts(), ", "))
	}
	return canonical, nil
}

func AvailableLayouts() []string {
	names := []string{"dubeolsik", "sebeolsik-390", "none"}
	sort.Strings(names)
	return names
}

func Load(name string) (*Layout, error) {
	canonical, err := Canonical(name)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case "sebeolsik-390":
		return buildSebeolsik390(), nil
	case "none":
		return buildPassthrough(), nil
	default:
		return buildDubeolsik(), nil
	}
}
