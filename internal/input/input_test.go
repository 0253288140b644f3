package input_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/ja-he/edkeys/internal/control/command"
	"github.com/ja-he/edkeys/internal/input"
)

func TestConfigKeyspecToKey(t *testing.T) {

	t.Run("valid", func(t *testing.T) {
		expectValid := func(s input.Keyspec) []input.Key {
			keys, err := input.ConfigKeyspecToKeys(s)
			if err != nil {
				t.Error("unexpected error on valid spec:", err.Error())
			}
			if keys == nil {
				t.Error("unexpected nil keyspec on valid spec")
			}
			return keys
		}

		t.Run("empty", func(t *testing.T) {
			keys := expectValid("")
			if len(keys) != 0 {
				t.Error("expected empty seq of keys")
			}
		})

		t.Run("single", func(t *testing.T) {
			keys := expectValid("x")
			if len(keys) != 1 {
				t.Error("expected single key")
			}
			if keys[0] != input.Char('x') {
				t.Error("expected single key to be 'x'")
			}
		})

		t.Run("special", func(t *testing.T) {
			expectations := map[input.Keyspec]input.Key{
				"<c-a>":    input.Ctrl('a'),
				"<C-A>":    input.Ctrl('a'),
				"<space>":  input.Char(' '),
				"<esc>":    input.KeyEsc,
				"<up>":     input.KeyUp,
				"<s-up>":   input.KeyUp.WithMod(input.ModShift),
				"<c-s-f5>": input.KeyF5.WithMod(input.ModCtrl | input.ModShift),
				"<a-x>":    input.NewKey(input.ModAlt, input.ScanNone, 'x'),
				"<lt>":     input.Char('<'),
				"<f12>":    input.KeyF12,
			}
			for spec, expected := range expectations {
				keys := expectValid(spec)
				if len(keys) != 1 {
					t.Errorf("expected single key for %s", spec)
					continue
				}
				if keys[0] != expected {
					t.Errorf("expected %s to be %s, got %s", spec, expected, keys[0])
				}
			}
		})

		t.Run("sequence", func(t *testing.T) {
			t.Run("characters", func(t *testing.T) {
				keys := expectValid("xyz")
				if len(keys) != 3 {
					t.Fatal("expected three keys")
				}
				if keys[0] != input.Char('x') || keys[1] != input.Char('y') || keys[2] != input.Char('z') {
					t.Error("expected sequence [x,y,z], not", keys)
				}
			})
			t.Run("with special", func(t *testing.T) {
				keys := expectValid("x<c-w>z")
				if len(keys) != 3 {
					t.Fatal("expected three keys")
				}
				if keys[0] != input.Char('x') || keys[1] != input.Ctrl('w') || keys[2] != input.Char('z') {
					t.Error("expected sequence [x,<c-w>,z], not", keys)
				}
			})
		})
	})

	t.Run("invalid", func(t *testing.T) {
		expectInvalid := func(s input.Keyspec) error {
			keys, err := input.ConfigKeyspecToKeys(s)
			if err == nil {
				t.Errorf("unexpectedly no err on invalid spec '%s'", s)
			}
			if keys != nil {
				t.Error("unexpected key seq on invalid spec:", keys)
			}
			return err
		}

		t.Run("unopened special", func(t *testing.T) {
			expectInvalid("c-w>")
		})
		t.Run("unclosed special (EOL)", func(t *testing.T) {
			expectInvalid("<c-w")
		})
		t.Run("unclosed special (double open)", func(t *testing.T) {
			expectInvalid("<c-w<c-a>")
		})
		t.Run("wrong delimiter in special", func(t *testing.T) {
			expectInvalid("<c+a>")
		})
		t.Run("unknown modifier", func(t *testing.T) {
			expectInvalid("<x-a>")
		})
		t.Run("unknown name", func(t *testing.T) {
			expectInvalid("<frobnicate>")
		})
		t.Run("non-ascii", func(t *testing.T) {
			expectInvalid("ä")
		})
	})

}

func TestKeyspecRoundTrip(t *testing.T) {
	for _, spec := range []input.Keyspec{"<c-k>b", "<esc>", "<s-up><c-s-f5>", "<space>qw", "<lt><gt>", "<a-x>"} {
		keys, err := input.ConfigKeyspecToKeys(spec)
		if err != nil {
			t.Fatalf("unexpected error for '%s': %s", spec, err.Error())
		}
		if actual := input.KeysToConfigKeyspec(keys); actual != spec {
			t.Errorf("expected '%s' to round trip, got '%s'", spec, actual)
		}
	}
}

func TestKeyString(t *testing.T) {
	expectations := map[input.Key]string{
		input.Ctrl('k'):                         "Ctrl+K",
		input.Char('b'):                         "b",
		input.KeyUp.WithMod(input.ModShift):     "Shift+Up",
		input.KeyF1:                             "F1",
		input.KeyEsc:                            "Esc",
		input.Char(' '):                         "Space",
		input.KeyRecovery:                       "<recovery>",
		input.KeyNone:                           "<none>",
		input.Ctrl('k').WithMod(input.ModShift): "Ctrl+Shift+K",
		input.NewKey(input.ModAlt, 0, 'x'):      "Alt+x",
	}
	for k, expected := range expectations {
		if k.String() != expected {
			t.Errorf("expected %#x to be '%s', got '%s'", uint32(k), expected, k.String())
		}
	}
}

func TestKeyLayout(t *testing.T) {
	k := input.NewKey(input.ModCtrl|input.ModAlt, input.ScanF3, 'q')
	if k.Mod() != input.ModCtrl|input.ModAlt || k.Scan() != input.ScanF3 || k.Char() != 'q' {
		t.Error("key fields do not round trip:", k.ToDebugString())
	}
	if !k.Valid() {
		t.Error("composed key not valid")
	}
	if input.KeyRecovery.Valid() || input.KeyNone.Valid() {
		t.Error("sentinel or zero key valid")
	}
}

func TestChordProcessor(t *testing.T) {

	setup := func(t *testing.T, bindings map[input.Keyspec]string, actions map[string]func()) *input.ChordProcessor {
		t.Helper()
		r := command.NewRegistry()
		code := command.Code(1)
		for name, f := range actions {
			r.RegisterSimple(code, name, name+" action", f)
			code++
		}
		commands, err := r.Build()
		if err != nil {
			t.Fatal(err)
		}
		chords, err := input.ConstructChordTable(bindings, commands)
		if err != nil {
			t.Fatal(err)
		}
		return input.NewChordProcessor(chords, commands, true, zerolog.Nop())
	}

	t.Run("single input sequence", func(t *testing.T) {
		shouldGetSetToTrue := false
		p := setup(t,
			map[input.Keyspec]string{"xyz": "xyz"},
			map[string]func(){"xyz": func() { shouldGetSetToTrue = true }},
		)
		if p.ProcessInput(input.Char('q')) {
			t.Error("processor processes non-added input")
		}
		if p.CapturesInput() {
			t.Error("processor claims to capture input after processing non-added")
		}

		for _, c := range []byte("xy") {
			if !p.ProcessInput(input.Char(c)) {
				t.Errorf("processor fails to process added input '%c'", c)
			}
			if !p.CapturesInput() {
				t.Error("processor fails to capture input in the middle of a sequence")
			}
		}
		if !p.ProcessInput(input.Char('z')) {
			t.Error("processor fails to process added input")
		}
		if !shouldGetSetToTrue {
			t.Error("action not applied")
		}
		if p.CapturesInput() {
			t.Error("processor claims to capture input after complete sequence")
		}
	})

	t.Run("complex inputs", func(t *testing.T) {
		xyzTrueable := false
		ctrlaTrueable := false
		p := setup(t,
			map[input.Keyspec]string{"xyz": "xyz", "<c-a>": "ctrl-a"},
			map[string]func(){
				"xyz":    func() { xyzTrueable = true },
				"ctrl-a": func() { ctrlaTrueable = true },
			},
		)

		if !p.ProcessInput(input.Char('x')) {
			t.Error("processor fails to process added input")
		}
		if p.ProcessInput(input.Char('q')) {
			t.Error("processor processes invalid input in middle of sequence")
		}
		if p.CapturesInput() {
			t.Error("processor still captures input after invalid input")
		}
		if !p.ProcessInput(input.Ctrl('a')) {
			t.Error("processor fails to process input <c-a>")
		}
		if !ctrlaTrueable {
			t.Error("action not applied")
		}

		for _, c := range []byte("xyz") {
			p.ProcessInput(input.Char(c))
		}
		if !xyzTrueable {
			t.Error("action not applied")
		}
	})

	t.Run("cancel key drops pending chord", func(t *testing.T) {
		applied := false
		p := setup(t,
			map[input.Keyspec]string{"<c-k>b": "block", "<esc>": "escape"},
			map[string]func(){"block": func() { applied = true }, "escape": func() {}},
		)
		p.ProcessInput(input.Ctrl('k'))
		if !p.ProcessInput(input.KeyEsc) {
			t.Error("cancel key not consumed")
		}
		if p.CapturesInput() {
			t.Error("chord still pending after cancel")
		}
		if p.ProcessInput(input.Char('b')) {
			t.Error("second key applied after cancel")
		}
		if applied {
			t.Error("action applied despite cancel")
		}
		// without a pending chord the cancel key is an ordinary key
		if !p.ProcessInput(input.KeyEsc) {
			t.Error("<esc> binding not applied")
		}
	})

	t.Run("unhandled command", func(t *testing.T) {
		r := command.NewRegistry()
		r.Register(command.Descriptor{Code: 1, Name: "no-handler"})
		commands, err := r.Build()
		if err != nil {
			t.Fatal(err)
		}
		chords, err := input.ConstructChordTable(map[input.Keyspec]string{"x": "no-handler"}, commands)
		if err != nil {
			t.Fatal(err)
		}
		p := input.NewChordProcessor(chords, commands, true, zerolog.Nop())
		if p.ProcessInput(input.Char('x')) {
			t.Error("chord bound to command without handler reported as applied")
		}
	})

	t.Run("context is handed to handlers", func(t *testing.T) {
		r := command.NewRegistry()
		var got any
		r.Register(command.Descriptor{Code: 5, Name: "ctx", Handler: command.Func(func(ctx any) { got = ctx })})
		commands, _ := r.Build()
		chords, _ := input.ConstructChordTable(map[input.Keyspec]string{"<c-x>": "ctx"}, commands)
		p := input.NewChordProcessor(chords, commands, true, zerolog.Nop())
		window := &struct{ name string }{"main"}
		p.SetContext(window)
		p.ProcessInput(input.Ctrl('x'))
		if got != window {
			t.Error("handler did not receive the context")
		}
	})

	t.Run("GetHelp", func(t *testing.T) {
		p := setup(t,
			map[input.Keyspec]string{"a": "A", "bc": "BC"},
			map[string]func(){"A": func() {}, "BC": func() {}},
		)
		help := p.GetHelp()
		if len(help) != 2 {
			t.Error("got help with unexpected amount of entries:", len(help))
		}
		if actual, ok := help["a"]; !ok || actual != "A action" {
			t.Errorf("help for 'a' wrong: '%s'", actual)
		}
		if actual, ok := help["bc"]; !ok || actual != "BC action" {
			t.Errorf("help for 'bc' wrong: '%s'", actual)
		}
	})
}

func TestConstructChordTable(t *testing.T) {
	r := command.NewRegistry()
	r.RegisterSimple(1, "save", "", func() {})
	r.RegisterSimple(2, "quit", "", func() {})
	commands, err := r.Build()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("valid", func(t *testing.T) {
		chords, err := input.ConstructChordTable(map[input.Keyspec]string{"<c-k>s": "save", "<c-q>": "quit"}, commands)
		if err != nil {
			t.Fatal(err)
		}
		if len(chords) != 2 {
			t.Fatal("expected two chords, got", len(chords))
		}
		// ordered by keyspec
		if chords[0].Command != 1 || chords[1].Command != 2 {
			t.Error("unexpected chord order:", chords)
		}
	})

	invalid := map[string]map[input.Keyspec]string{
		"unknown command": {"x": "frobnicate"},
		"invalid keyspec": {"<asdf": "save"},
		"empty keyspec":   {"": "save"},
		"too long":        {"abcde": "save"},
		"same chord":      {"<c-k>s": "save", "<C-K>s": "quit"},
	}
	for name, bindings := range invalid {
		t.Run(name, func(t *testing.T) {
			chords, err := input.ConstructChordTable(bindings, commands)
			if err == nil {
				t.Error("nil error despite invalid bindings")
			}
			if chords != nil {
				t.Error("non-nil chords despite invalid bindings")
			}
		})
	}
}

func TestShortcutIndex(t *testing.T) {
	chords := input.ChordTable{
		{Keys: []input.Key{input.Ctrl('k'), input.Char('b')}, Command: 30},
		{Keys: []input.Key{input.KeyF2}, Command: 10},
		{Keys: []input.Key{input.Ctrl('s')}, Command: 10},
		{Keys: []input.Key{input.Ctrl('q')}, Command: 20},
	}
	index := input.NewShortcutIndex(chords)

	expectations := map[command.Code]string{
		10: "F2",
		20: "Ctrl+Q",
		30: "Ctrl+K b",
	}
	for code, expected := range expectations {
		actual, ok := index.Shortcut(code)
		if !ok || actual != expected {
			t.Errorf("shortcut for %d: expected '%s', got '%s'", code, expected, actual)
		}
	}
	if _, ok := index.Shortcut(40); ok {
		t.Error("shortcut found for unbound command")
	}
}
