package escape_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/edkeys/internal/input"
	"github.com/ja-he/edkeys/internal/input/escape"
	"github.com/ja-he/edkeys/internal/input/shift"
)

const esc = "\x1b"

// feed feeds all bytes and returns the keys emitted and the last step.
func feed(m *escape.Matcher, s string) ([]input.Key, escape.Step) {
	var keys []input.Key
	step := escape.StepNone
	for i := 0; i < len(s); i++ {
		step = m.Feed(s[i], func(k input.Key) { keys = append(keys, k) })
	}
	return keys, step
}

func expire(m *escape.Matcher) ([]input.Key, escape.Step) {
	var keys []input.Key
	step := m.Expire(func(k input.Key) { keys = append(keys, k) })
	return keys, step
}

var keyA = input.NewKey(input.ModNone, 0x1e, 'a')

// scenarioTable is {"a" -> KeyA, "ESC [ A" -> KeyUp}, the lone ESC resolving
// through timeout.
func scenarioTable(t *testing.T, passthrough bool) *escape.Table {
	table, err := escape.NewTable([]escape.Entry{
		{Pattern: []byte("a"), Key: keyA},
		{Pattern: []byte(esc + "[A"), Key: input.KeyUp},
	}, escape.Options{Passthrough: passthrough})
	require.NoError(t, err)
	return table
}

func TestEveryDefaultEntryReproducesItsKey(t *testing.T) {
	table := escape.Default()
	m := escape.NewMatcher(table, shift.None{}, zerolog.Nop())

	for _, e := range table.Entries() {
		keys, step := feed(m, string(e.Pattern))
		require.Equal(t, escape.StepMatched, step, "pattern %q", e.Pattern)
		require.Equal(t, []input.Key{e.Key}, keys, "pattern %q", e.Pattern)
		require.Equal(t, escape.Idle, m.State())
	}
}

func TestConcreteScenario(t *testing.T) {
	m := escape.NewMatcher(scenarioTable(t, false), nil, zerolog.Nop())

	t.Run("a resolves immediately", func(t *testing.T) {
		keys, step := feed(m, "a")
		assert.Equal(t, escape.StepMatched, step)
		assert.Equal(t, []input.Key{keyA}, keys)
	})

	t.Run("ESC [ A resolves to Up once without intermediates", func(t *testing.T) {
		var keys []input.Key
		for i, b := range []byte(esc + "[A") {
			step := m.Feed(b, func(k input.Key) { keys = append(keys, k) })
			if i < 2 {
				assert.Equal(t, escape.StepCollecting, step)
				assert.Empty(t, keys)
			} else {
				assert.Equal(t, escape.StepMatched, step)
			}
		}
		assert.Equal(t, []input.Key{input.KeyUp}, keys)
	})

	t.Run("lone ESC resolves to Esc on timeout, once", func(t *testing.T) {
		keys, step := feed(m, esc)
		assert.Equal(t, escape.StepCollecting, step)
		assert.Empty(t, keys)

		keys, step = expire(m)
		assert.Equal(t, escape.StepMatched, step)
		assert.Equal(t, []input.Key{input.KeyEsc}, keys)

		keys, step = expire(m)
		assert.Equal(t, escape.StepNone, step)
		assert.Empty(t, keys)
	})
}

func TestTwoBurstsStaySeparate(t *testing.T) {
	m := escape.NewMatcher(escape.Default(), nil, zerolog.Nop())

	var keys []input.Key
	emit := func(k input.Key) { keys = append(keys, k) }

	for _, b := range []byte(esc + "[A") {
		m.Feed(b, emit)
	}
	m.Expire(emit) // the gap between bursts
	m.Feed(0x1b, emit)
	m.Expire(emit)

	assert.Equal(t, []input.Key{input.KeyUp, input.KeyEsc}, keys)
}

func TestPrefixThenTimeoutReplays(t *testing.T) {
	t.Run("ESC [ replays as Esc and '['", func(t *testing.T) {
		m := escape.NewMatcher(scenarioTable(t, true), nil, zerolog.Nop())
		keys, _ := feed(m, esc+"[")
		require.Empty(t, keys)

		keys, step := expire(m)
		assert.Equal(t, escape.StepAbandoned, step)
		assert.Equal(t, []input.Key{input.KeyEsc, input.Char('[')}, keys)
		assert.Equal(t, escape.Idle, m.State())
	})

	t.Run("replayed bytes resolve as they do standalone", func(t *testing.T) {
		table := escape.Default()
		m := escape.NewMatcher(table, nil, zerolog.Nop())
		for _, prefix := range []string{esc + "[1;", esc + "[2", esc + "[[", esc + "O", esc + "[24;"} {
			keys, _ := feed(m, prefix)
			require.Empty(t, keys, "prefix %q", prefix)
			replayed, step := expire(m)
			require.Equal(t, escape.StepAbandoned, step, "prefix %q", prefix)

			var standalone []input.Key
			for _, b := range []byte(prefix) {
				single := escape.NewMatcher(table, nil, zerolog.Nop())
				ks, _ := feed(single, string([]byte{b}))
				ks2, _ := expire(single)
				standalone = append(standalone, append(ks, ks2...)...)
			}
			assert.Equal(t, standalone, replayed, "prefix %q", prefix)
		}
	})
}

func TestMismatchReplays(t *testing.T) {
	m := escape.NewMatcher(escape.Default(), nil, zerolog.Nop())

	t.Run("ESC [ x", func(t *testing.T) {
		keys, step := feed(m, esc+"[x")
		assert.Equal(t, escape.StepAbandoned, step)
		assert.Equal(t, []input.Key{input.KeyEsc, input.Char('['), input.Char('x')}, keys)
	})

	t.Run("ESC ESC [ A", func(t *testing.T) {
		keys, _ := feed(m, esc+esc+"[A")
		assert.Equal(t, []input.Key{input.KeyEsc, input.KeyUp}, keys)
	})

	t.Run("ESC [ ESC continues collecting", func(t *testing.T) {
		keys, step := feed(m, esc+"["+esc)
		assert.Equal(t, escape.StepAbandoned, step)
		assert.Equal(t, []input.Key{input.KeyEsc, input.Char('[')}, keys)
		assert.Equal(t, escape.Collecting, m.State())
		assert.Equal(t, []byte(esc), m.Pending())

		keys, _ = feed(m, "OP")
		assert.Equal(t, []input.Key{input.KeyF1}, keys)
	})
}

func TestAltPrefix(t *testing.T) {
	m := escape.NewMatcher(escape.Default(), nil, zerolog.Nop())
	keys, _ := feed(m, esc+"x")
	assert.Equal(t, []input.Key{input.NewKey(input.ModAlt, input.ScanNone, 'x')}, keys)
}

func TestXtermModifiers(t *testing.T) {
	m := escape.NewMatcher(escape.Default(), nil, zerolog.Nop())
	cases := map[string]input.Key{
		esc + "[1;5A":  input.KeyUp.WithMod(input.ModCtrl),
		esc + "[1;2D":  input.KeyLeft.WithMod(input.ModShift),
		esc + "[3;5~":  input.KeyDelete.WithMod(input.ModCtrl),
		esc + "[24;8~": input.KeyF12.WithMod(input.ModCtrl | input.ModShift | input.ModAlt),
		esc + "[Z":     input.KeyTab.WithMod(input.ModShift),
	}
	for seq, expected := range cases {
		keys, _ := feed(m, seq)
		assert.Equal(t, []input.Key{expected}, keys, "sequence %q", seq)
	}
}

func TestControlBytes(t *testing.T) {
	m := escape.NewMatcher(escape.Default(), nil, zerolog.Nop())
	cases := map[byte]input.Key{
		0x0b: input.Ctrl('k'),
		0x01: input.Ctrl('a'),
		'\r': input.KeyEnter,
		'\t': input.KeyTab,
		0x7f: input.KeyBackspace,
		'K':  input.Char('K'),
		0xe4: input.Char(0xe4),
	}
	for b, expected := range cases {
		keys, step := feed(m, string([]byte{b}))
		assert.Equal(t, escape.StepMatched, step, "byte %#02x", b)
		assert.Equal(t, []input.Key{expected}, keys, "byte %#02x", b)
	}
}

func TestShiftStateAugmentation(t *testing.T) {
	m := escape.NewMatcher(escape.Default(), shift.Fixed(input.ModShift), zerolog.Nop())

	keys, _ := feed(m, esc+"[A")
	assert.Equal(t, []input.Key{input.KeyUp.WithMod(input.ModShift)}, keys, "augmentable key not augmented")

	keys, _ = feed(m, esc+"[1;5A")
	assert.Equal(t, []input.Key{input.KeyUp.WithMod(input.ModCtrl)}, keys, "explicitly modified key was augmented")

	keys, _ = feed(m, "a")
	assert.Equal(t, []input.Key{input.Char('a')}, keys, "plain character was augmented")
}

func TestUnrecognizedByteIsTraced(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	m := escape.NewMatcher(scenarioTable(t, false), nil, logger)

	keys, step := feed(m, "b")
	assert.Equal(t, escape.StepAbandoned, step)
	assert.Empty(t, keys)
	assert.Contains(t, buf.String(), "discarding unrecognized byte")

	// later input is unaffected
	keys, _ = feed(m, "a")
	assert.Equal(t, []input.Key{keyA}, keys)
}

func TestTimedOutSequenceIsTraced(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	m := escape.NewMatcher(escape.Default(), nil, logger)

	feed(m, esc+"[1")
	expire(m)
	assert.Contains(t, buf.String(), "abandoning unrecognized sequence")
	assert.Contains(t, buf.String(), "timeout")
}

func TestMaxEmitBoundsEmission(t *testing.T) {
	table := escape.Default()
	m := escape.NewMatcher(table, nil, zerolog.Nop())
	assert.Equal(t, table.MaxLen(), m.MaxEmit())

	feed(m, esc+"[24;8")
	keys, _ := expire(m)
	assert.LessOrEqual(t, len(keys), m.MaxEmit())
}
