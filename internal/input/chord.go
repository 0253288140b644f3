package input

import (
	"fmt"

	"github.com/ja-he/edkeys/internal/control/command"
)

// MaxChordLength is the maximum number of keys in a chord.
const MaxChordLength = 4

// Chord is a sequence of keys bound to a command.
type Chord struct {
	Keys    []Key
	Command command.Code
}

// ChordTable is the table of all chord bindings.
type ChordTable []Chord

// NewChord returns a chord for the keys described by the keyspec.
func NewChord(spec Keyspec, code command.Code) (Chord, error) {
	keys, err := ConfigKeyspecToKeys(spec)
	if err != nil {
		return Chord{}, err
	}
	if len(keys) == 0 || len(keys) > MaxChordLength {
		return Chord{}, fmt.Errorf("keyspec '%s' has %d keys, must have 1 to %d", spec, len(keys), MaxChordLength)
	}
	return Chord{Keys: keys, Command: code}, nil
}

// String returns the chord's keys as shown in menus, e.g. "Ctrl+K B".
func (c Chord) String() string {
	s := ""
	for i, k := range c.Keys {
		if i > 0 {
			s += " "
		}
		s += k.String()
	}
	return s
}

// Result is the outcome of feeding a key to an Accumulator.
type Result int

const (
	// NeedMore means the keys so far are a valid prefix of a chord.
	NeedMore Result = iota
	// NoMatch means no chord starts with the keys so far; the caller should
	// reset the accumulator.
	NoMatch
	// Resolved means the keys so far form a complete chord.
	Resolved
)

func (r Result) String() string {
	switch r {
	case NeedMore:
		return "need-more"
	case NoMatch:
		return "no-match"
	case Resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Accumulator collects keys into a chord and matches it against a chord
// table.
//
// In strict mode all keys compare exactly. Otherwise the first key compares
// exactly and every following key compares ignoring Ctrl and Shift, so that
// e.g. {Ctrl+K, B} also accepts Ctrl+B, Ctrl+Shift+B and Shift+B as second key
// (a leader modifier still held, or caps lock).
type Accumulator struct {
	table  ChordTable
	strict bool
	keys   []Key
}

// NewAccumulator returns a pointer to a new empty accumulator.
func NewAccumulator(table ChordTable, strict bool) *Accumulator {
	return &Accumulator{
		table:  table,
		strict: strict,
		keys:   make([]Key, 0, MaxChordLength),
	}
}

// Feed adds k to the accumulated keys and matches them against the table.
// The returned code is only meaningful for Resolved.
//
// The accumulator is not reset by Feed; on Resolved and NoMatch the caller
// decides when to Reset.
func (a *Accumulator) Feed(k Key) (Result, command.Code) {
	a.keys = append(a.keys, k)
	n := len(a.keys)

	longest := 0
	code := command.None
	complete := false
	for _, chord := range a.table {
		m := a.matched(chord.Keys)
		if m > longest {
			longest = m
		}
		if m == n && len(chord.Keys) == n && !complete {
			complete = true
			code = chord.Command
		}
	}

	switch {
	case longest < n:
		return NoMatch, command.None
	case complete:
		return Resolved, code
	default:
		return NeedMore, command.None
	}
}

// matched returns the number of leading accumulated keys matching the chord.
func (a *Accumulator) matched(chord []Key) int {
	m := 0
	for m < len(chord) && m < len(a.keys) {
		if !a.equal(m, chord[m], a.keys[m]) {
			break
		}
		m++
	}
	return m
}

func (a *Accumulator) equal(pos int, bound, actual Key) bool {
	if a.strict || pos == 0 {
		return bound == actual
	}
	return bound.Scan() == actual.Scan() &&
		bound.Char() == actual.Char() &&
		bound.Mod()&^(ModCtrl|ModShift) == actual.Mod()&^(ModCtrl|ModShift)
}

// Reset drops the accumulated keys.
func (a *Accumulator) Reset() {
	a.keys = a.keys[:0]
}

// Len returns the number of accumulated keys.
func (a *Accumulator) Len() int { return len(a.keys) }

// Pending returns a copy of the accumulated keys.
func (a *Accumulator) Pending() []Key {
	return append([]Key(nil), a.keys...)
}

// Strict returns whether all keys are compared exactly.
func (a *Accumulator) Strict() bool { return a.strict }
