package escape

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xo/terminfo"
)

// CapabilityDB resolves terminal capability names (e.g. "kcuu1") to the
// sequence the terminal sends.
type CapabilityDB interface {
	Capability(name string) (string, bool)
}

// TerminfoDB is a CapabilityDB backed by a compiled terminfo entry.
type TerminfoDB struct {
	name string
	caps map[string][]byte
}

// LookupTerminfo loads the terminfo entry of the named terminal (usually
// $TERM) from the system's terminfo directories.
func LookupTerminfo(term string) (*TerminfoDB, error) {
	ti, err := terminfo.Load(term)
	if err != nil {
		return nil, fmt.Errorf("could not look up terminfo for '%s': %w", term, err)
	}
	return NewTerminfoDB(ti), nil
}

// NewTerminfoDB returns the capability database of a decoded terminfo entry.
// Extended capabilities (e.g. "kUP5") are included; standard ones win on a
// name clash.
func NewTerminfoDB(ti *terminfo.Terminfo) *TerminfoDB {
	db := &TerminfoDB{caps: ti.ExtStringCapsShort()}
	for name, seq := range ti.StringCapsShort() {
		db.caps[name] = seq
	}
	if len(ti.Names) > 0 {
		db.name = ti.Names[0]
	}
	return db
}

// Name returns the name of the terminal described.
func (db *TerminfoDB) Name() string { return db.name }

// Capability returns the sequence for the named string capability.
func (db *TerminfoDB) Capability(name string) (string, bool) {
	seq, ok := db.caps[name]
	return string(seq), ok && len(seq) > 0
}

// MapDB is a CapabilityDB backed by a plain map.
type MapDB map[string]string

// Capability returns the sequence for the named capability.
func (db MapDB) Capability(name string) (string, bool) {
	s, ok := db[name]
	return s, ok && s != ""
}

// Patch returns a new table containing this table's entries plus, for every
// entry naming a capability, the sequence the capability database resolves
// it to.
// Static entries win over conflicting capability sequences; sequences that
// cannot be represented in the table are skipped. Either case is traced.
func (t *Table) Patch(db CapabilityDB, logger zerolog.Logger) (*Table, error) {
	entries := t.Entries()
	added := 0

	for _, e := range t.entries {
		if e.Cap == "" {
			continue
		}
		seq, ok := db.Capability(e.Cap)
		if !ok || bytes.Equal([]byte(seq), e.Pattern) {
			continue
		}

		pattern := []byte(seq)
		switch {
		case len(pattern) > MaxPatternLength:
			logger.Trace().Str("cap", e.Cap).Hex("bytes", pattern).Msg("capability sequence too long, skipping")
			continue
		case len(pattern) > 1 && pattern[0] != t.introducer:
			logger.Trace().Str("cap", e.Cap).Hex("bytes", pattern).Msg("capability sequence lacks introducer, skipping")
			continue
		}

		if conflict, ok := conflicting(entries, pattern, t.introducer); ok {
			if conflict.Key != e.Key {
				logger.Trace().Str("cap", e.Cap).Hex("bytes", pattern).Stringer("static", conflict.Key).Msg("capability sequence conflicts with static entry, keeping static")
			}
			continue
		}

		entries = append(entries, Entry{Pattern: pattern, Key: e.Key, Cap: e.Cap, Augment: e.Augment})
		added++
	}

	logger.Debug().Int("added", added).Msg("patched escape table from capabilities")
	return NewTable(entries, Options{Introducer: t.introducer, Passthrough: t.passthrough})
}

// conflicting returns an entry whose pattern equals p or is in a prefix
// relation to it (the lone introducer aside).
func conflicting(entries []Entry, p []byte, introducer byte) (Entry, bool) {
	for _, e := range entries {
		if len(e.Pattern) == 1 && e.Pattern[0] == introducer && len(p) > 1 {
			continue
		}
		if bytes.HasPrefix(e.Pattern, p) || bytes.HasPrefix(p, e.Pattern) {
			return e, true
		}
	}
	return Entry{}, false
}
