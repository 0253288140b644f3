package input

import (
	"fmt"
	"sort"

	"github.com/ja-he/edkeys/internal/control/command"
)

// ConstructChordTable builds a chord table for the given mapping of keyspecs
// to command names, resolving the names through the command table.
// The chords are ordered by keyspec, so the result does not depend on map
// iteration order.
// If the given mapping is invalid (bad keyspec, unknown command, the same
// chord bound twice), this returns an error.
func ConstructChordTable(spec map[Keyspec]string, commands *command.Table) (ChordTable, error) {
	keyspecs := make([]Keyspec, 0, len(spec))
	for k := range spec {
		keyspecs = append(keyspecs, k)
	}
	sort.Slice(keyspecs, func(i, j int) bool { return keyspecs[i] < keyspecs[j] })

	table := make(ChordTable, 0, len(spec))
	seen := make(map[Keyspec]Keyspec, len(spec))
	for _, keyspec := range keyspecs {
		name := spec[keyspec]
		d, ok := commands.ByName(name)
		if !ok {
			return nil, fmt.Errorf("keyspec '%s' bound to unknown command '%s'", keyspec, name)
		}
		chord, err := NewChord(keyspec, d.Code)
		if err != nil {
			return nil, fmt.Errorf("error converting config keyspec '%s': %w", keyspec, err)
		}

		// differently written keyspecs may denote the same keys
		canonical := KeysToConfigKeyspec(chord.Keys)
		if other, dup := seen[canonical]; dup {
			return nil, fmt.Errorf("keyspecs '%s' and '%s' bind the same chord", other, keyspec)
		}
		seen[canonical] = keyspec

		table = append(table, chord)
	}

	return table, nil
}
