// Package shift queries the current keyboard modifier state independently of
// the input byte stream.
//
// Some terminals (notably the Linux virtual console) send identical byte
// sequences for e.g. Up and Shift+Up; the modifier state then has to be
// asked for separately.
package shift

import (
	"github.com/ja-he/edkeys/internal/input"
)

// Probe reports the modifiers currently held down.
// A Probe never fails; where the state is unavailable it reports no modifiers.
type Probe interface {
	Modifiers() input.Mod
}

// None is a Probe that never reports any modifiers.
type None struct{}

// Modifiers always returns input.ModNone.
func (None) Modifiers() input.Mod { return input.ModNone }

// Fixed is a Probe that always reports the same modifiers.
type Fixed input.Mod

// Modifiers returns the fixed modifiers.
func (f Fixed) Modifiers() input.Mod { return input.Mod(f) }

// console shift state bits as reported by TIOCLINUX subcode 6 (see
// linux/keyboard.h: KG_SHIFT, KG_ALTGR, KG_CTRL, KG_ALT).
const (
	kgShift = 1 << 0
	kgAltGr = 1 << 1
	kgCtrl  = 1 << 2
	kgAlt   = 1 << 3
)

func fromConsoleState(state byte) input.Mod {
	var m input.Mod
	if state&kgShift != 0 {
		m |= input.ModShift
	}
	if state&kgCtrl != 0 {
		m |= input.ModCtrl
	}
	if state&(kgAlt|kgAltGr) != 0 {
		m |= input.ModAlt
	}
	return m
}
