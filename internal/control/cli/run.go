package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/edkeys/internal/control/command"
	"github.com/ja-he/edkeys/internal/input"
	"github.com/ja-he/edkeys/internal/input/processors"
	"github.com/ja-he/edkeys/internal/tui"
)

type RunCommand struct {
	LogOpts
	Tcell bool `long:"tcell" description:"let tcell decode the input and draw the output instead of the built-in decoder"`
}

// keySource hands out decoded keys, e.g. a terminal.Session.
type keySource interface {
	NextKey() (input.Key, error)
}

// Execute runs the interactive input loop until the quit command.
func (command *RunCommand) Execute(args []string) error {
	stderrLogger, terminalLogger := command.setUpLogging()

	configData, inputConfig, err := loadConfig()
	if err != nil {
		stderrLogger.Fatal().Err(err).Msg("can't load config")
	}

	commands, err := Commands()
	if err != nil {
		return fmt.Errorf("invalid command table (%w)", err)
	}
	chords, err := input.ConstructChordTable(configData.Bindings, commands)
	if err != nil {
		return fmt.Errorf("invalid bindings (%w)", err)
	}

	var keys keySource
	var out io.Writer
	if command.Tcell {
		screenHandler, err := tui.NewTUIScreenHandler()
		if err != nil {
			stderrLogger.Fatal().Err(err).Msg("could not set up screen")
		}
		defer screenHandler.Fini()
		tcellKeys := tui.NewKeySource(screenHandler.GetEventPollable(), screenHandler, inputConfig.Tick, inputConfig.RecoveryInterval)
		defer tcellKeys.Close()
		keys = tcellKeys
		out = tui.NewStatusWriter(screenHandler)
	} else {
		tty, session, err := openSession(inputConfig, terminalLogger)
		if err != nil {
			stderrLogger.Fatal().Err(err).Msg("could not set up terminal input")
		}
		defer tty.Close()
		keys = session
		out = os.Stdout
	}

	// now that the terminal is raw, stderr output would garble it
	log.Logger = terminalLogger

	editor := NewEditor(out)
	processor := newEditorProcessor(editor, chords, commands, inputConfig.StrictChords, terminalLogger)

	editor.status("edkeys %s, quit with %s", version, shortcutFor(chords, cmdQuit))
	return runLoop(keys, processor, editor, commands)
}

// newEditorProcessor returns the editor's input processor: the chord
// processor for its command table, below any modal overlays the editor
// applies.
func newEditorProcessor(editor *Editor, chords input.ChordTable, commands *command.Table, strict bool, logger zerolog.Logger) *processors.ModalInputProcessor {
	chordProcessor := input.NewChordProcessor(chords, commands, strict, logger)
	chordProcessor.SetContext(editor)

	modal := processors.NewModalInputProcessor(chordProcessor)
	editor.modal = modal
	editor.inputHelpFunc = modal.GetHelp
	return modal
}

func runLoop(keys keySource, processor input.SimpleInputProcessor, editor *Editor, commands *command.Table) error {
	log.Info().Msg("edkeys input loop started")
	for !editor.quit {
		k, err := keys.NextKey()
		if errors.Is(err, io.EOF) {
			log.Info().Msg("input closed")
			return nil
		}
		if err != nil {
			return err
		}

		if k == input.KeyRecovery {
			command.Dispatch(commands, cmdAutosave, editor)
			continue
		}

		captured := processor.CapturesInput()
		if processor.ProcessInput(k) {
			continue
		}
		if !captured && isInsertable(k) {
			editor.insert(k.Char())
			continue
		}
		log.Debug().Str("key", k.ToDebugString()).Msg("could not apply key input")
	}
	log.Info().Msg("edkeys input loop exited")
	return nil
}

// isInsertable returns whether the key is a plain character to be inserted
// into the text.
func isInsertable(k input.Key) bool {
	return k.Mod()&^input.ModShift == 0 && k.Scan() == input.ScanNone && k.Char() >= 0x20 && k.Char() != 0x7f
}

func shortcutFor(chords input.ChordTable, code command.Code) string {
	s, ok := input.NewShortcutIndex(chords).Shortcut(code)
	if !ok {
		return "(unbound)"
	}
	return s
}
