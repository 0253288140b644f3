package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/edkeys/internal/control/command"
	"github.com/ja-he/edkeys/internal/input"
	"github.com/ja-he/edkeys/internal/input/processors"
)

// Command codes of the demo editor.
const (
	cmdQuit command.Code = iota + 1
	cmdSave
	cmdAutosave
	cmdCursorUp
	cmdCursorDown
	cmdCursorLeft
	cmdCursorRight
	cmdWordLeft
	cmdWordRight
	cmdLineStart
	cmdLineEnd
	cmdPageUp
	cmdPageDown
	cmdGotoLine
	cmdDeleteLine
	cmdUndo
	cmdFind
	cmdFindNext
	cmdReplace
	cmdBlockBegin
	cmdBlockEnd
	cmdBlockCopy
	cmdBlockMove
	cmdBlockDelete
	cmdBlockHide
	cmdHelp
	cmdMenu
)

const pageLines = 20

// Editor is a stand-in for an editor's buffer state, showing what the
// commands reached through the input layer do.
// Commands print a status line to out.
type Editor struct {
	out io.Writer

	line, col     int
	blockBegin    int
	blockEnd      int
	modified      bool
	quit          bool
	saves         int
	autosaves     int
	modal         *processors.ModalInputProcessor
	inputHelpFunc func() input.Help
}

// NewEditor returns a pointer to a new Editor writing status lines to out.
func NewEditor(out io.Writer) *Editor {
	return &Editor{out: out, line: 1, col: 1, blockBegin: -1, blockEnd: -1}
}

// editorCommand is a command handler acting on the *Editor handed in as
// dispatch context.
type editorCommand struct {
	explanation string
	action      func(e *Editor)
}

func (c *editorCommand) Invoke(ctx any) {
	e, ok := ctx.(*Editor)
	if !ok {
		log.Error().Str("context", fmt.Sprintf("%T", ctx)).Msg("editor command dispatched without editor context")
		return
	}
	c.action(e)
}

func (c *editorCommand) Explain() string { return c.explanation }

// Commands returns the command table of the demo editor.
func Commands() (*command.Table, error) {
	r := command.NewRegistry()
	register := func(code command.Code, name, explanation string, action func(e *Editor), help ...string) {
		r.Register(command.Descriptor{
			Code:    code,
			Name:    name,
			Handler: &editorCommand{explanation: explanation, action: action},
			Help:    help,
		})
	}

	register(cmdQuit, "quit", "exit the editor", func(e *Editor) {
		if e.modified {
			e.status("quitting with unsaved changes")
		}
		e.quit = true
	})
	register(cmdSave, "save", "save the file", func(e *Editor) {
		e.saves++
		e.modified = false
		e.status("saved")
	}, "file")
	register(cmdAutosave, "autosave", "write the recovery file", func(e *Editor) {
		e.autosaves++
		e.status("recovery file written")
	}, "file")

	move := func(dLine, dCol int) func(e *Editor) {
		return func(e *Editor) { e.moveTo(e.line+dLine, e.col+dCol) }
	}
	register(cmdCursorUp, "cursor-up", "move the cursor up", move(-1, 0), "cursor")
	register(cmdCursorDown, "cursor-down", "move the cursor down", move(1, 0), "cursor")
	register(cmdCursorLeft, "cursor-left", "move the cursor left", move(0, -1), "cursor")
	register(cmdCursorRight, "cursor-right", "move the cursor right", move(0, 1), "cursor")
	register(cmdWordLeft, "word-left", "move to the previous word", move(0, -8), "cursor")
	register(cmdWordRight, "word-right", "move to the next word", move(0, 8), "cursor")
	register(cmdLineStart, "line-start", "move to the start of the line", func(e *Editor) { e.moveTo(e.line, 1) }, "cursor")
	register(cmdLineEnd, "line-end", "move to the end of the line", func(e *Editor) { e.moveTo(e.line, 80) }, "cursor")
	register(cmdPageUp, "page-up", "scroll a page up", move(-pageLines, 0), "cursor")
	register(cmdPageDown, "page-down", "scroll a page down", move(pageLines, 0), "cursor")
	register(cmdGotoLine, "goto-line", "go to a line by number", func(e *Editor) { e.promptLine() }, "cursor")

	register(cmdDeleteLine, "delete-line", "delete the current line", func(e *Editor) { e.edit("line %d deleted", e.line) }, "edit")
	register(cmdUndo, "undo", "undo the last change", func(e *Editor) { e.edit("undone") }, "edit")
	register(cmdFind, "find", "find text", func(e *Editor) { e.status("find") }, "search")
	register(cmdFindNext, "find-next", "repeat the last find", func(e *Editor) { e.status("find next") }, "search")
	register(cmdReplace, "replace", "find and replace text", func(e *Editor) { e.status("replace") }, "search")

	register(cmdBlockBegin, "block-begin", "mark the block begin", func(e *Editor) {
		e.blockBegin = e.line
		e.status("block begins at line %d", e.line)
	}, "block")
	register(cmdBlockEnd, "block-end", "mark the block end", func(e *Editor) {
		e.blockEnd = e.line
		e.status("block ends at line %d", e.line)
	}, "block")
	register(cmdBlockCopy, "block-copy", "copy the block to the cursor", func(e *Editor) { e.blockEdit("copied") }, "block")
	register(cmdBlockMove, "block-move", "move the block to the cursor", func(e *Editor) { e.blockEdit("moved") }, "block")
	register(cmdBlockDelete, "block-delete", "delete the block", func(e *Editor) { e.blockEdit("deleted") }, "block")
	register(cmdBlockHide, "block-hide", "hide the block marks", func(e *Editor) {
		e.blockBegin, e.blockEnd = -1, -1
		e.status("block hidden")
	}, "block")

	register(cmdHelp, "help", "show the key bindings", func(e *Editor) { e.showHelp() })
	register(cmdMenu, "menu", "open the menu", func(e *Editor) { e.status("menu") })

	return r.Build()
}

func (e *Editor) status(format string, args ...any) {
	fmt.Fprintf(e.out, format+"\r\n", args...)
}

func (e *Editor) edit(format string, args ...any) {
	e.modified = true
	e.status(format, args...)
}

func (e *Editor) moveTo(line, col int) {
	e.line, e.col = max(line, 1), max(col, 1)
	e.status("%d:%d", e.line, e.col)
}

func (e *Editor) blockEdit(what string) {
	if e.blockBegin < 0 || e.blockEnd < e.blockBegin {
		e.status("no block marked")
		return
	}
	e.edit("block %d-%d %s", e.blockBegin, e.blockEnd, what)
}

func (e *Editor) insert(c byte) {
	e.col++
	e.modified = true
	e.status("%c", c)
}

func (e *Editor) showHelp() {
	if e.inputHelpFunc == nil {
		return
	}
	help := e.inputHelpFunc()
	specs := make([]input.Keyspec, 0, len(help))
	for spec := range help {
		specs = append(specs, spec)
	}
	slices.Sort(specs)
	for _, spec := range specs {
		e.status("%-12s %s", spec, help[spec])
	}
}

// promptLine reads a line number through a modal overlay capturing all input
// until confirmed or aborted.
func (e *Editor) promptLine() {
	if e.modal == nil {
		return
	}
	digits := ""
	e.status("go to line: ")
	finish := func() {
		if err := e.modal.PopModalOverlay(); err != nil {
			log.Error().Err(err).Msg("could not pop line prompt")
		}
	}
	overlay, err := processors.NewTextInputProcessor(
		map[input.Keyspec]command.Handler{
			"<cr>": command.NewSimple(func() string { return "go to the entered line" }, func() {
				finish()
				if n, err := strconv.Atoi(digits); err == nil {
					e.moveTo(n, 1)
				} else {
					e.status("not a line number: '%s'", digits)
				}
			}),
			"<esc>": command.NewSimple(func() string { return "abort" }, func() {
				finish()
				e.status("aborted")
			}),
			"<bs>": command.NewSimple(func() string { return "delete last digit" }, func() {
				if len(digits) > 0 {
					digits = digits[:len(digits)-1]
				}
			}),
		},
		func(c byte) {
			if c >= '0' && c <= '9' {
				digits += string(c)
			}
		},
	)
	if err != nil {
		log.Error().Err(err).Msg("could not construct line prompt")
		return
	}
	e.modal.ApplyModalOverlay(overlay)
}
