package input

import (
	"sort"

	"github.com/ja-he/edkeys/internal/control/command"
)

// ShortcutIndex finds the chord bound to a command, e.g. to show it next to
// the command's menu entry.
type ShortcutIndex struct {
	byCode []Chord
}

// NewShortcutIndex returns a pointer to a new index over the given chords.
// Where several chords are bound to one command, the first one in the table
// is the command's shortcut.
func NewShortcutIndex(chords ChordTable) *ShortcutIndex {
	byCode := make([]Chord, len(chords))
	copy(byCode, chords)
	sort.SliceStable(byCode, func(i, j int) bool { return byCode[i].Command < byCode[j].Command })
	return &ShortcutIndex{byCode: byCode}
}

// Chord returns the shortcut chord for the command.
func (s *ShortcutIndex) Chord(code command.Code) (Chord, bool) {
	i := sort.Search(len(s.byCode), func(i int) bool { return s.byCode[i].Command >= code })
	if i < len(s.byCode) && s.byCode[i].Command == code {
		return s.byCode[i], true
	}
	return Chord{}, false
}

// Shortcut returns the display string of the shortcut for the command, e.g.
// "Ctrl+K B".
func (s *ShortcutIndex) Shortcut(code command.Code) (string, bool) {
	c, ok := s.Chord(code)
	if !ok {
		return "", false
	}
	return c.String(), true
}
