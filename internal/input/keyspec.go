package input

import (
	"fmt"
	"strings"
	"unicode"
)

// Keyspec is a key sequence specification string as found in a config file,
// e.g. "<c-k>b" meaning Ctrl+K, then the B key.
type Keyspec string

// ConfigKeyspecToKeys converts full key sequence specification strings (e.g.
// "<space>qw" meaning the SPACE key, then the Q key, then the W key) to the
// appropriate sequence of Keys (or an error, if invalid).
func ConfigKeyspecToKeys(spec Keyspec) ([]Key, error) {
	keys := make([][]byte, 0)
	specialContext := false

	for pos := 0; pos < len(spec); pos++ {
		c := spec[pos]
		if c >= 0x80 {
			return nil, fmt.Errorf("illegal non-ASCII byte %#02x (pos %d)", c, pos)
		}
		switch c {

		case '<':
			if specialContext {
				return nil, fmt.Errorf("illegal second opening special context ('<') before previous is closed (pos %d)", pos)
			}
			specialContext = true
			keys = append(keys, []byte{c})

		case '>':
			if !specialContext {
				return nil, fmt.Errorf("illegal closing of special context ('>') while none open (pos %d)", pos)
			}
			specialContext = false
			keys[len(keys)-1] = append(keys[len(keys)-1], c)

		default:
			if specialContext {
				if !unicode.IsLetter(rune(c)) && !unicode.IsDigit(rune(c)) && c != '-' {
					return nil,
						fmt.Errorf("illegal character '%c' in special context (pos %d)", c, pos)
				}
				keys[len(keys)-1] = append(keys[len(keys)-1], c)
			} else {
				keys = append(keys, []byte{c})
			}

		}
	}
	if specialContext {
		return nil, fmt.Errorf("unclosed special context at end of keyspec '%s'", spec)
	}

	result := make([]Key, 0)
	for _, keyIdentifier := range keys {
		if keyIdentifier[0] == '<' {
			key, err := KeyIdentifierToKey(string(keyIdentifier[1 : len(keyIdentifier)-1]))
			if err != nil {
				return nil, fmt.Errorf("error mapping identifier '%s' to key: %s", string(keyIdentifier), err.Error())
			}
			result = append(result, key)
		} else {
			result = append(result, Char(keyIdentifier[0]))
		}
	}

	return result, nil
}

var identifierKeys = map[string]Key{
	"space": Char(' '),
	"lt":    Char('<'),
	"gt":    Char('>'),
	"cr":    KeyEnter,
	"esc":   KeyEsc,
	"tab":   KeyTab,
	"bs":    KeyBackspace,
	"ins":   KeyInsert,
	"del":   KeyDelete,
	"home":  KeyHome,
	"end":   KeyEnd,
	"pgup":  KeyPgUp,
	"pgdn":  KeyPgDn,
	"up":    KeyUp,
	"down":  KeyDown,
	"left":  KeyLeft,
	"right": KeyRight,
	"f1":    KeyF1,
	"f2":    KeyF2,
	"f3":    KeyF3,
	"f4":    KeyF4,
	"f5":    KeyF5,
	"f6":    KeyF6,
	"f7":    KeyF7,
	"f8":    KeyF8,
	"f9":    KeyF9,
	"f10":   KeyF10,
	"f11":   KeyF11,
	"f12":   KeyF12,
}

var identifierMods = map[string]Mod{
	"c": ModCtrl,
	"a": ModAlt,
	"s": ModShift,
	"m": ModMeta,
}

// KeyIdentifierToKey converts the given special identifier to the appropriate
// key (or an error, if invalid).
//
// An identifier is a key name optionally prefixed by any number of modifiers,
// e.g. "c-k" (Ctrl+K), "s-up" (Shift+Up) or "c-s-f5".
func KeyIdentifierToKey(identifier string) (Key, error) {
	identifier = strings.ToLower(identifier)
	parts := strings.Split(identifier, "-")
	name := parts[len(parts)-1]

	var mod Mod
	for _, p := range parts[:len(parts)-1] {
		m, ok := identifierMods[p]
		if !ok {
			return KeyNone, fmt.Errorf("unknown modifier '%s' in identifier '%s'", p, identifier)
		}
		mod |= m
	}

	if key, ok := identifierKeys[name]; ok {
		return key.WithMod(mod), nil
	}
	if len(name) == 1 && name[0] > ' ' && name[0] < 0x7f {
		if mod&ModCtrl != 0 {
			return Ctrl(name[0]).WithMod(mod), nil
		}
		return NewKey(mod, ScanNone, name[0]), nil
	}

	return KeyNone, fmt.Errorf("no mapping present for identifier '%s'", identifier)
}

// ToConfigIdentifierString converts the given key to its configuration
// identfier, i.E. the inverse of KeyIdentifierToKey for single keys.
func ToConfigIdentifierString(k Key) string {
	var prefix strings.Builder
	m := k.Mod()
	if m&ModCtrl != 0 {
		prefix.WriteString("c-")
	}
	if m&ModAlt != 0 {
		prefix.WriteString("a-")
	}
	if m&ModMeta != 0 {
		prefix.WriteString("m-")
	}
	if m&ModShift != 0 {
		prefix.WriteString("s-")
	}

	plain := NewKey(ModNone, k.Scan(), k.Char())
	for identifier, key := range identifierKeys {
		if key == plain {
			return "<" + prefix.String() + identifier + ">"
		}
	}
	if prefix.Len() > 0 {
		return "<" + prefix.String() + string(rune(k.Char())) + ">"
	}
	return string(rune(k.Char()))
}

// KeysToConfigKeyspec converts the given sequence of keys back into a keyspec.
func KeysToConfigKeyspec(keys []Key) Keyspec {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(ToConfigIdentifierString(k))
	}
	return Keyspec(b.String())
}
