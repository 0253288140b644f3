package escape

import (
	"github.com/rs/zerolog"

	"github.com/ja-he/edkeys/internal/input"
	"github.com/ja-he/edkeys/internal/input/shift"
)

// State is the state a Matcher rests in between bytes.
type State int

const (
	// Idle means no bytes are buffered.
	Idle State = iota
	// Collecting means the buffered bytes are a strict prefix of at least one
	// pattern and more bytes are expected.
	Collecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Collecting:
		return "collecting"
	default:
		return "unknown"
	}
}

// Step describes what a single Feed or Expire did.
type Step int

const (
	// StepNone means nothing happened (Expire while idle).
	StepNone Step = iota
	// StepCollecting means the byte was buffered as part of a sequence.
	StepCollecting
	// StepMatched means a key was resolved.
	StepMatched
	// StepAbandoned means the buffered bytes matched nothing and were
	// replayed individually.
	StepAbandoned
)

func (s Step) String() string {
	switch s {
	case StepNone:
		return "none"
	case StepCollecting:
		return "collecting"
	case StepMatched:
		return "matched"
	case StepAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Matcher is the byte-level state machine resolving escape sequences.
//
// It never blocks and does not know about time itself; the owner calls Expire
// once the inter-byte timeout has passed while the matcher is Collecting.
type Matcher struct {
	table *Table
	probe shift.Probe
	log   zerolog.Logger

	buf [MaxPatternLength]byte
	n   int
}

// NewMatcher returns a pointer to a new idle Matcher over the given table.
// A nil probe reports no modifiers.
func NewMatcher(table *Table, probe shift.Probe, logger zerolog.Logger) *Matcher {
	if probe == nil {
		probe = shift.None{}
	}
	return &Matcher{
		table: table,
		probe: probe,
		log:   logger,
	}
}

// State returns whether the matcher is idle or collecting.
func (m *Matcher) State() State {
	if m.n == 0 {
		return Idle
	}
	return Collecting
}

// Pending returns a copy of the buffered bytes.
func (m *Matcher) Pending() []byte {
	return append([]byte(nil), m.buf[:m.n]...)
}

// MaxEmit returns the maximum number of keys a single Feed or Expire can
// emit.
func (m *Matcher) MaxEmit() int {
	return m.table.MaxLen()
}

// Table returns the matcher's table.
func (m *Matcher) Table() *Table { return m.table }

// Feed consumes a single byte, calling emit for every key it resolves.
func (m *Matcher) Feed(b byte, emit func(input.Key)) Step {
	if m.n == 0 {
		return m.idle(b, emit)
	}

	m.buf[m.n] = b
	m.n++
	e, exact, prefix := m.table.Lookup(m.buf[:m.n])
	switch {
	case exact:
		m.n = 0
		emit(m.resolve(e))
		return StepMatched
	case prefix && m.n < MaxPatternLength:
		return StepCollecting
	default:
		m.abandon("no match", emit)
		return StepAbandoned
	}
}

// Expire signals that the inter-byte timeout passed.
// A lone introducer resolves to the Escape key, a longer partial sequence is
// abandoned.
func (m *Matcher) Expire(emit func(input.Key)) Step {
	switch {
	case m.n == 0:
		return StepNone
	case m.n == 1 && m.buf[0] == m.table.introducer:
		m.n = 0
		emit(m.resolve(m.table.loneIntroducer()))
		return StepMatched
	default:
		m.abandon("timeout", emit)
		return StepAbandoned
	}
}

// Reset drops any buffered bytes without resolving them.
func (m *Matcher) Reset() {
	m.n = 0
}

func (m *Matcher) idle(b byte, emit func(input.Key)) Step {
	if b == m.table.introducer {
		m.buf[0] = b
		m.n = 1
		return StepCollecting
	}
	if e, ok := m.table.single(b); ok {
		emit(m.resolve(e))
		return StepMatched
	}
	m.log.Trace().Hex("bytes", []byte{b}).Msg("discarding unrecognized byte")
	return StepAbandoned
}

// abandon discards the buffered sequence: the first byte is resolved as if it
// had arrived alone, the rest is fed again starting from Idle.
func (m *Matcher) abandon(reason string, emit func(input.Key)) {
	var pending [MaxPatternLength]byte
	n := copy(pending[:], m.buf[:m.n])
	m.n = 0

	m.log.Trace().Str("reason", reason).Hex("bytes", pending[:n]).Msg("abandoning unrecognized sequence")

	if pending[0] == m.table.introducer {
		emit(m.resolve(m.table.loneIntroducer()))
	} else {
		m.idle(pending[0], emit)
	}
	for _, b := range pending[1:n] {
		m.Feed(b, emit)
	}
}

func (m *Matcher) resolve(e Entry) input.Key {
	if e.Augment {
		return e.Key.WithMod(m.probe.Modifiers())
	}
	return e.Key
}
