package escape

import (
	"fmt"

	"github.com/ja-he/edkeys/internal/input"
)

// xterm modifier parameters (the "m" in "ESC [ 1 ; m A").
var xtermModifiers = []struct {
	param int
	mod   input.Mod
}{
	{2, input.ModShift},
	{3, input.ModAlt},
	{4, input.ModShift | input.ModAlt},
	{5, input.ModCtrl},
	{6, input.ModCtrl | input.ModShift},
	{7, input.ModCtrl | input.ModAlt},
	{8, input.ModCtrl | input.ModShift | input.ModAlt},
}

// keys sent as "ESC [ <final>" / "ESC O <final>", and "ESC [ 1 ; m <final>"
// with modifiers.
var finalKeys = []struct {
	final   byte
	key     input.Key
	cap     string
	augment bool
}{
	{'A', input.KeyUp, "kcuu1", true},
	{'B', input.KeyDown, "kcud1", true},
	{'C', input.KeyRight, "kcuf1", true},
	{'D', input.KeyLeft, "kcub1", true},
	{'H', input.KeyHome, "khome", true},
	{'F', input.KeyEnd, "kend", true},
	{'P', input.KeyF1, "kf1", false},
	{'Q', input.KeyF2, "kf2", false},
	{'R', input.KeyF3, "kf3", false},
	{'S', input.KeyF4, "kf4", false},
}

// keys sent as "ESC [ n ~", and "ESC [ n ; m ~" with modifiers.
var tildeKeys = []struct {
	n       int
	key     input.Key
	cap     string
	augment bool
}{
	{1, input.KeyHome, "", true},
	{2, input.KeyInsert, "kich1", true},
	{3, input.KeyDelete, "kdch1", true},
	{4, input.KeyEnd, "", true},
	{5, input.KeyPgUp, "kpp", true},
	{6, input.KeyPgDn, "knp", true},
	{7, input.KeyHome, "", true},
	{8, input.KeyEnd, "", true},
	{11, input.KeyF1, "", false},
	{12, input.KeyF2, "", false},
	{13, input.KeyF3, "", false},
	{14, input.KeyF4, "", false},
	{15, input.KeyF5, "kf5", false},
	{17, input.KeyF6, "kf6", false},
	{18, input.KeyF7, "kf7", false},
	{19, input.KeyF8, "kf8", false},
	{20, input.KeyF9, "kf9", false},
	{21, input.KeyF10, "kf10", false},
	{23, input.KeyF11, "kf11", false},
	{24, input.KeyF12, "kf12", false},
}

// DefaultEntries returns the built-in entries: control bytes, the Escape key,
// Alt+<key> as escape-prefixed bytes and the CSI/SS3 sequences of xterm,
// vt220, rxvt and the Linux console.
func DefaultEntries() []Entry {
	esc := string(DefaultIntroducer)
	entries := make([]Entry, 0, 256)
	add := func(seq string, k input.Key, cap string, augment bool) {
		entries = append(entries, Entry{Pattern: []byte(seq), Key: k, Cap: cap, Augment: augment})
	}

	// control bytes
	add("\x00", input.NewKey(input.ModCtrl, input.ScanNone, ' '), "", false)
	for c := byte(0x01); c <= 0x1a; c++ {
		switch c {
		case '\t':
			add("\t", input.KeyTab, "", true)
		case '\r':
			add("\r", input.KeyEnter, "", false)
		case '\n':
			add("\n", input.Ctrl('j'), "", false)
		case 0x08:
			add("\x08", input.KeyBackspace.WithMod(input.ModCtrl), "", false)
		default:
			add(string([]byte{c}), input.Ctrl('a'+c-1), "", false)
		}
	}
	add("\x1c", input.NewKey(input.ModCtrl, input.ScanNone, '\\'), "", false)
	add("\x1d", input.NewKey(input.ModCtrl, input.ScanNone, ']'), "", false)
	add("\x1e", input.NewKey(input.ModCtrl, input.ScanNone, '^'), "", false)
	add("\x1f", input.NewKey(input.ModCtrl, input.ScanNone, '_'), "", false)
	add("\x7f", input.KeyBackspace, "kbs", false)

	// Alt+<key>, sent as introducer followed by the key's byte
	for c := byte('a'); c <= 'z'; c++ {
		add(esc+string([]byte{c}), input.NewKey(input.ModAlt, input.ScanNone, c), "", false)
	}
	for c := byte('0'); c <= '9'; c++ {
		add(esc+string([]byte{c}), input.NewKey(input.ModAlt, input.ScanNone, c), "", false)
	}
	add(esc+"\r", input.KeyEnter.WithMod(input.ModAlt), "", false)
	add(esc+"\x7f", input.KeyBackspace.WithMod(input.ModAlt), "", false)

	add(esc+"[Z", input.KeyTab.WithMod(input.ModShift), "kcbt", false)

	for _, f := range finalKeys {
		add(esc+"["+string([]byte{f.final}), f.key, f.cap, f.augment)
		add(esc+"O"+string([]byte{f.final}), f.key, "", f.augment)
		for _, m := range xtermModifiers {
			add(fmt.Sprintf("%s[1;%d%c", esc, m.param, f.final), f.key.WithMod(m.mod), "", false)
		}
	}
	for _, tk := range tildeKeys {
		add(fmt.Sprintf("%s[%d~", esc, tk.n), tk.key, tk.cap, tk.augment)
		for _, m := range xtermModifiers {
			add(fmt.Sprintf("%s[%d;%d~", esc, tk.n, m.param), tk.key.WithMod(m.mod), "", false)
		}
	}

	// Linux console F1-F5
	add(esc+"[[A", input.KeyF1, "", false)
	add(esc+"[[B", input.KeyF2, "", false)
	add(esc+"[[C", input.KeyF3, "", false)
	add(esc+"[[D", input.KeyF4, "", false)
	add(esc+"[[E", input.KeyF5, "", false)

	return entries
}

// Default returns the built-in table with passthrough of printable bytes.
func Default() *Table {
	t, err := NewTable(DefaultEntries(), Options{Passthrough: true})
	if err != nil {
		panic(fmt.Sprintf("built-in escape table is malformed: %s", err.Error()))
	}
	return t
}
