package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

type CustomPair struct {
	Key     string `json:"key"`
	Kind    string `json:"kind"`
	Normal  string `json:"normal"`
	Shifted string `json:"shifted"`
	Role    string `json:"role"`
}

func LoadCustomPairs(path string) ([]CustomPair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open custom keypair file: %w", err)
	}
	defer file.Close()

	var pairs []CustomPair
	if err := json.NewDecoder(file).Decode(&pairs); err != nil {
		return nil, fmt.Errorf("parse custom keypair file: %w", err)
	}
	return pairs, nil
}

// ApplyCustomPairs merges pairs into l. Letter keys also bind their upper
// case form to Shifted (or to Normal when Shifted is empty). The "unbind"
// kind removes a key so it is typed as itself.
func ApplyCustomPairs(l *Layout, pairs []CustomPair) error {
	for _, pair := range pairs {
		key, err := resolveKey(pair.Key)
		if err != nil {
			return err
		}

		var normal, shifted *LayoutSymbol
		switch strings.ToLower(pair.Kind) {
		case "unbind":
		case "passthrough":
			normal = NewPassthroughSymbol()
		case "text":
			normal = NewTextSymbol(pair.Normal)
			if pair.Shifted != "" {
				shifted = NewTextSymbol(pair.Shifted)
			}
		case "jamo":
			normal, shifted, err = makeJamoPair(pair.Normal, pair.Shifted, pair.Role)
			if err != nil {
				return err
			}
			if normal == nil {
				return fmt.Errorf("custom key %q: jamo kind needs a normal value", pair.Key)
			}
		default:
			return fmt.Errorf("unsupported custom keypair kind '%s'", pair.Kind)
		}
		l.addEntry(key, normal, shifted)
	}
	return nil
}

func makeJamoPair(normal, shifted, role string) (*LayoutSymbol, *LayoutSymbol, error) {
	r := parseRole(role)
	makeSymbol := func(value string) (*LayoutSymbol, error) {
		if value == "" {
			return nil, nil
		}
		if utf8.RuneCountInString(value) != 1 {
			return nil, fmt.Errorf("jamo value must be a single rune, got %q", value)
		}
		v, _ := utf8.DecodeRuneInString(value)
		symbol := NewJamoSymbol(v, r)
		if _, err := symbol.Rune(); err != nil {
			return nil, fmt.Errorf("jamo value %q: %w", value, err)
		}
		return symbol, nil
	}

	normalSymbol, err := makeSymbol(normal)
	if err != nil {
		return nil, nil, err
	}
	shiftedSymbol, err := makeSymbol(shifted)
	if err != nil {
		return nil, nil, err
	}
	return normalSymbol, shiftedSymbol, nil
}

func parseRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "leading":
		return RoleLeading
	case "medial", "vowel":
		return RoleMedial
	case "trailing":
		return RoleTrailing
	default:
		return RoleAuto
	}
}

var namedKeys = map[string]rune{
	"SPACE":      ' ',
	"MINUS":      '-',
	"EQUAL":      '=',
	"LEFTBRACE":  '[',
	"RIGHTBRACE": ']',
	"BACKSLASH":  '\\',
	"SEMICOLON":  ';',
	"APOSTROPHE": '\'',
	"GRAVE":      '`',
	"COMMA":      ',',
	"DOT":        '.',
	"SLASH":      '/',
}

// resolveKey accepts a single character ("q", ";") or an evdev style name
// ("KEY_Q", "KEY_SEMICOLON").
func resolveKey(name string) (rune, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, fmt.Errorf("empty key name")
	}
	if utf8.RuneCountInString(trimmed) == 1 {
		r, _ := utf8.DecodeRuneInString(trimmed)
		return r, nil
	}

	normalized := strings.TrimPrefix(strings.ToUpper(trimmed), "KEY_")
	if r, ok := namedKeys[normalized]; ok {
		return r, nil
	}
	if len(normalized) == 1 {
		ch := normalized[0]
		if ch >= 'A' && ch <= 'Z' {
			return rune(ch - 'A' + 'a'), nil
		}
		if ch >= '0' && ch <= '9' {
			return rune(ch), nil
		}
	}
	return 0, fmt.Errorf("unknown key name '%s'", name)
}
