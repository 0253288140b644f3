package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Key is a single decoded keystroke.
//
// Layout (from most to least significant byte):
//
//	unused | modifiers | scan code | character code
//
// A valid Key always fits into the lower 24 bits, which leaves the upper bits
// for out-of-band pseudo keys such as KeyRecovery.
type Key uint32

// Mod is a bitset of keyboard modifiers.
// The bit values match tcell.ModMask.
type Mod uint8

// Modifier bits.
const (
	ModShift Mod = Mod(tcell.ModShift)
	ModCtrl  Mod = Mod(tcell.ModCtrl)
	ModAlt   Mod = Mod(tcell.ModAlt)
	ModMeta  Mod = Mod(tcell.ModMeta)

	ModNone Mod = 0
)

// Scan codes, numbered after the PC keyboard's set 1.
// Plain characters use scan code 0.
const (
	ScanNone      uint8 = 0x00
	ScanEsc       uint8 = 0x01
	ScanBackspace uint8 = 0x0E
	ScanTab       uint8 = 0x0F
	ScanEnter     uint8 = 0x1C
	ScanF1        uint8 = 0x3B
	ScanF2        uint8 = 0x3C
	ScanF3        uint8 = 0x3D
	ScanF4        uint8 = 0x3E
	ScanF5        uint8 = 0x3F
	ScanF6        uint8 = 0x40
	ScanF7        uint8 = 0x41
	ScanF8        uint8 = 0x42
	ScanF9        uint8 = 0x43
	ScanF10       uint8 = 0x44
	ScanHome      uint8 = 0x47
	ScanUp        uint8 = 0x48
	ScanPgUp      uint8 = 0x49
	ScanLeft      uint8 = 0x4B
	ScanRight     uint8 = 0x4D
	ScanEnd       uint8 = 0x4F
	ScanDown      uint8 = 0x50
	ScanPgDn      uint8 = 0x51
	ScanInsert    uint8 = 0x52
	ScanDelete    uint8 = 0x53
	ScanF11       uint8 = 0x57
	ScanF12       uint8 = 0x58
)

// Predefined keys.
var (
	KeyEsc       = NewKey(ModNone, ScanEsc, 0x1b)
	KeyEnter     = NewKey(ModNone, ScanEnter, '\r')
	KeyTab       = NewKey(ModNone, ScanTab, '\t')
	KeyBackspace = NewKey(ModNone, ScanBackspace, 0x7f)
	KeyUp        = NewKey(ModNone, ScanUp, 0)
	KeyDown      = NewKey(ModNone, ScanDown, 0)
	KeyLeft      = NewKey(ModNone, ScanLeft, 0)
	KeyRight     = NewKey(ModNone, ScanRight, 0)
	KeyHome      = NewKey(ModNone, ScanHome, 0)
	KeyEnd       = NewKey(ModNone, ScanEnd, 0)
	KeyPgUp      = NewKey(ModNone, ScanPgUp, 0)
	KeyPgDn      = NewKey(ModNone, ScanPgDn, 0)
	KeyInsert    = NewKey(ModNone, ScanInsert, 0)
	KeyDelete    = NewKey(ModNone, ScanDelete, 0)
	KeyF1        = NewKey(ModNone, ScanF1, 0)
	KeyF2        = NewKey(ModNone, ScanF2, 0)
	KeyF3        = NewKey(ModNone, ScanF3, 0)
	KeyF4        = NewKey(ModNone, ScanF4, 0)
	KeyF5        = NewKey(ModNone, ScanF5, 0)
	KeyF6        = NewKey(ModNone, ScanF6, 0)
	KeyF7        = NewKey(ModNone, ScanF7, 0)
	KeyF8        = NewKey(ModNone, ScanF8, 0)
	KeyF9        = NewKey(ModNone, ScanF9, 0)
	KeyF10       = NewKey(ModNone, ScanF10, 0)
	KeyF11       = NewKey(ModNone, ScanF11, 0)
	KeyF12       = NewKey(ModNone, ScanF12, 0)
)

const (
	// KeyNone is the zero key, it is never produced by decoding.
	KeyNone Key = 0

	// KeyRecovery is the out-of-band recovery sentinel. It signals that the
	// periodic autosave/recovery interval has elapsed. It is never a valid key.
	KeyRecovery Key = 0x80000000
)

// NewKey composes a key from its modifiers, scan code and character code.
func NewKey(mod Mod, scan uint8, ch uint8) Key {
	return Key(uint32(mod)<<16 | uint32(scan)<<8 | uint32(ch))
}

// Char returns a key for the plain character c.
func Char(c byte) Key { return NewKey(ModNone, ScanNone, c) }

// Ctrl returns the key for Ctrl and the (lower case) letter c.
func Ctrl(c byte) Key { return NewKey(ModCtrl, ScanNone, lower(c)) }

// Mod returns the key's modifier bitset.
func (k Key) Mod() Mod { return Mod(k >> 16) }

// Scan returns the key's scan code.
func (k Key) Scan() uint8 { return uint8(k >> 8) }

// Char returns the key's character code.
func (k Key) Char() uint8 { return uint8(k) }

// Valid returns whether the key is a real keystroke, i.E. neither KeyNone nor
// an out-of-band value.
func (k Key) Valid() bool { return k != KeyNone && k < 1<<24 }

// WithMod returns the key with the given modifiers added.
func (k Key) WithMod(m Mod) Key {
	return NewKey(k.Mod()|m, k.Scan(), k.Char())
}

var scanNames = map[uint8]string{
	ScanEsc:       "Esc",
	ScanBackspace: "Backspace",
	ScanTab:       "Tab",
	ScanEnter:     "Enter",
	ScanF1:        "F1",
	ScanF2:        "F2",
	ScanF3:        "F3",
	ScanF4:        "F4",
	ScanF5:        "F5",
	ScanF6:        "F6",
	ScanF7:        "F7",
	ScanF8:        "F8",
	ScanF9:        "F9",
	ScanF10:       "F10",
	ScanF11:       "F11",
	ScanF12:       "F12",
	ScanHome:      "Home",
	ScanUp:        "Up",
	ScanPgUp:      "PgUp",
	ScanLeft:      "Left",
	ScanRight:     "Right",
	ScanEnd:       "End",
	ScanDown:      "Down",
	ScanPgDn:      "PgDn",
	ScanInsert:    "Ins",
	ScanDelete:    "Del",
}

// String returns a human readable name of the key, e.g. "Ctrl+K" or "Shift+Up".
// This is the form shown in menus.
func (k Key) String() string {
	switch {
	case k == KeyNone:
		return "<none>"
	case k == KeyRecovery:
		return "<recovery>"
	case !k.Valid():
		return fmt.Sprintf("<invalid %#x>", uint32(k))
	}

	var b strings.Builder
	m := k.Mod()
	if m&ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if m&ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if m&ModMeta != 0 {
		b.WriteString("Meta+")
	}
	if m&ModShift != 0 {
		b.WriteString("Shift+")
	}

	if name, ok := scanNames[k.Scan()]; ok {
		b.WriteString(name)
		return b.String()
	}

	c := k.Char()
	switch {
	case c == ' ':
		b.WriteString("Space")
	case m&ModCtrl != 0 && c >= 'a' && c <= 'z':
		b.WriteByte(c - 'a' + 'A')
	case c < 0x20 || c == 0x7f:
		fmt.Fprintf(&b, "%#02x", c)
	default:
		b.WriteByte(c)
	}
	return b.String()
}

// ToDebugString returns a string representation of the key including its raw
// encoding.
func (k Key) ToDebugString() string {
	return fmt.Sprintf("%s (%#08x)", k.String(), uint32(k))
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEsc,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPgUp,
	tcell.KeyPgDn:       KeyPgDn,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

// FromTcell converts a key event as delivered by tcell into a Key.
// Returns false for keys that have no single-byte character representation
// (e.g. runes outside of Latin-1).
func FromTcell(ev *tcell.EventKey) (Key, bool) {
	mod := Mod(ev.Modifiers())

	if k, ok := tcellKeys[ev.Key()]; ok {
		return k.WithMod(mod), true
	}

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r > 0xff {
			return KeyNone, false
		}
		return NewKey(mod, ScanNone, byte(r)), true
	}

	// tcell.KeyCtrlA .. tcell.KeyCtrlZ are the control bytes 0x01 .. 0x1a
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return Ctrl(byte(ev.Key()-tcell.KeyCtrlA) + 'a').WithMod(mod), true
	}

	return KeyNone, false
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
