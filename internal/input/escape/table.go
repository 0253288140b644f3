// Package escape turns raw terminal bytes into keys.
//
// Decoding is table driven: a Table maps byte patterns to keys, a Matcher
// consumes bytes one at a time and resolves them against the table. Multi-byte
// patterns all start with the escape-introducer byte, which on its own is the
// Escape key; the two are told apart by the time between bytes.
package escape

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ja-he/edkeys/internal/input"
)

const (
	// DefaultIntroducer is the byte starting every multi-byte sequence.
	DefaultIntroducer byte = 0x1b

	// MaxPatternLength is the maximum length of an entry's byte pattern.
	MaxPatternLength = 8
)

// Entry maps a byte pattern to the key it produces.
type Entry struct {
	Pattern []byte
	Key     input.Key

	// Cap optionally names the terminfo capability (e.g. "kcuu1") describing
	// the same key, so a terminal-specific sequence can be bound late.
	Cap string

	// Augment marks keys whose modifiers cannot be encoded in the sequence by
	// some terminals; the modifiers are then completed from a shift.Probe.
	Augment bool
}

// Options configure a Table.
type Options struct {
	// Introducer is the escape-introducer byte, DefaultIntroducer if zero.
	Introducer byte

	// Passthrough makes printable single bytes (0x20-0x7e, 0x80-0xff) without
	// an entry resolve to plain character keys.
	Passthrough bool
}

// Table is an immutable set of entries sorted by pattern.
type Table struct {
	entries     []Entry
	introducer  byte
	passthrough bool
	maxLen      int
}

// NewTable validates the given entries and returns a table of them.
//
// Patterns must be 1 to MaxPatternLength bytes long, multi-byte patterns must
// start with the introducer, patterns must be unique and, apart from the lone
// introducer, no pattern may be a prefix of another.
func NewTable(entries []Entry, opts Options) (*Table, error) {
	t := &Table{
		entries:     make([]Entry, len(entries)),
		introducer:  opts.Introducer,
		passthrough: opts.Passthrough,
		maxLen:      1,
	}
	if t.introducer == 0 {
		t.introducer = DefaultIntroducer
	}

	for i, e := range entries {
		switch {
		case len(e.Pattern) < 1 || len(e.Pattern) > MaxPatternLength:
			return nil, fmt.Errorf("entry %d (%s): pattern length %d not in [1,%d]", i, e.Key, len(e.Pattern), MaxPatternLength)
		case len(e.Pattern) > 1 && e.Pattern[0] != t.introducer:
			return nil, fmt.Errorf("entry %d (%s): multi-byte pattern %q does not start with introducer %#02x", i, e.Key, e.Pattern, t.introducer)
		case !e.Key.Valid():
			return nil, fmt.Errorf("entry %d: pattern %q maps to invalid key %#x", i, e.Pattern, uint32(e.Key))
		}
		e.Pattern = append([]byte(nil), e.Pattern...)
		t.entries[i] = e
		if len(e.Pattern) > t.maxLen {
			t.maxLen = len(e.Pattern)
		}
	}

	sort.SliceStable(t.entries, func(i, j int) bool {
		return bytes.Compare(t.entries[i].Pattern, t.entries[j].Pattern) < 0
	})

	for i := 1; i < len(t.entries); i++ {
		prev, cur := t.entries[i-1].Pattern, t.entries[i].Pattern
		if bytes.Equal(prev, cur) {
			return nil, fmt.Errorf("duplicate pattern %q (%s, %s)", cur, t.entries[i-1].Key, t.entries[i].Key)
		}
		if bytes.HasPrefix(cur, prev) && !t.isLoneIntroducer(prev) {
			return nil, fmt.Errorf("pattern %q (%s) is a prefix of %q (%s)", prev, t.entries[i-1].Key, cur, t.entries[i].Key)
		}
	}

	return t, nil
}

// Lookup searches the table for seq.
// exact is whether an entry has exactly the pattern seq (which is then
// returned), prefix is whether seq is a strict prefix of at least one entry.
func (t *Table) Lookup(seq []byte) (e Entry, exact bool, prefix bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return bytes.Compare(t.entries[i].Pattern, seq) >= 0
	})
	if i < len(t.entries) && bytes.Equal(t.entries[i].Pattern, seq) {
		e, exact = t.entries[i], true
		i++
	}
	if i < len(t.entries) && bytes.HasPrefix(t.entries[i].Pattern, seq) {
		prefix = true
	}
	return e, exact, prefix
}

// Entries returns a copy of the table's entries in pattern order.
func (t *Table) Entries() []Entry {
	result := make([]Entry, len(t.entries))
	copy(result, t.entries)
	return result
}

// Introducer returns the table's escape-introducer byte.
func (t *Table) Introducer() byte { return t.introducer }

// MaxLen returns the length of the longest pattern in the table.
func (t *Table) MaxLen() int { return t.maxLen }

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

func (t *Table) isLoneIntroducer(p []byte) bool {
	return len(p) == 1 && p[0] == t.introducer
}

// single resolves a byte that arrived on its own (not within a sequence).
func (t *Table) single(b byte) (Entry, bool) {
	if e, exact, _ := t.Lookup([]byte{b}); exact {
		return e, true
	}
	if t.passthrough && (b >= 0x20 && b != 0x7f) {
		return Entry{Pattern: []byte{b}, Key: input.Char(b)}, true
	}
	return Entry{}, false
}

// loneIntroducer returns the key an introducer followed by silence resolves
// to: its own entry if the table has one, the Escape key otherwise.
func (t *Table) loneIntroducer() Entry {
	if e, exact, _ := t.Lookup([]byte{t.introducer}); exact {
		return e
	}
	return Entry{Pattern: []byte{t.introducer}, Key: input.KeyEsc}
}
