package config

import "github.com/ja-he/edkeys/internal/input"

// Default returns the default configuration.
func Default() Config {
	return Config{
		Input: Input{
			StrictChords:     boolPtr(false),
			EscapeTimeout:    "50ms",
			Tick:             "100ms",
			RecoveryInterval: "2m",
			Terminfo:         boolPtr(true),
		},
		Bindings: map[input.Keyspec]string{
			"<c-k>q":    "quit",
			"<c-s>":     "save",
			"<c-k>b":    "block-begin",
			"<c-k>k":    "block-end",
			"<c-k>c":    "block-copy",
			"<c-k>v":    "block-move",
			"<c-k>y":    "block-delete",
			"<c-k>h":    "block-hide",
			"<c-q>f":    "find",
			"<c-q>a":    "replace",
			"<c-l>":     "find-next",
			"<c-y>":     "delete-line",
			"<c-z>":     "undo",
			"<c-g>":     "goto-line",
			"<up>":      "cursor-up",
			"<down>":    "cursor-down",
			"<left>":    "cursor-left",
			"<right>":   "cursor-right",
			"<c-left>":  "word-left",
			"<c-right>": "word-right",
			"<home>":    "line-start",
			"<end>":     "line-end",
			"<pgup>":    "page-up",
			"<pgdn>":    "page-down",
			"<f1>":      "help",
			"<f10>":     "menu",
		},
	}
}

func boolPtr(b bool) *bool { return &b }
