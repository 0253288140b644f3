package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ja-he/edkeys/internal/control/command"
	"github.com/ja-he/edkeys/internal/input"
)

type BindingsCommand struct {
	Unbound bool `short:"u" long:"unbound" description:"also list commands without a shortcut"`
}

// Execute lists the commands with their shortcuts, the way a menu shows
// them.
func (command *BindingsCommand) Execute(args []string) error {
	configData, _, err := loadConfig()
	if err != nil {
		return err
	}
	commands, err := Commands()
	if err != nil {
		return fmt.Errorf("invalid command table (%w)", err)
	}
	chords, err := input.ConstructChordTable(configData.Bindings, commands)
	if err != nil {
		return fmt.Errorf("invalid bindings (%w)", err)
	}

	writeBindings(os.Stdout, commands, input.NewShortcutIndex(chords), command.Unbound)
	return nil
}

func writeBindings(out io.Writer, commands *command.Table, shortcuts *input.ShortcutIndex, unbound bool) {
	type row struct{ name, shortcut, explanation string }
	var rows []row
	nameWidth, shortcutWidth := 0, 0
	for _, d := range commands.Descriptors() {
		shortcut, ok := shortcuts.Shortcut(d.Code)
		if !ok && !unbound {
			continue
		}
		explanation := d.Explain()
		if len(d.Help) > 0 {
			explanation += " [" + strings.Join(d.Help, ", ") + "]"
		}
		rows = append(rows, row{d.Name, shortcut, explanation})
		nameWidth = max(nameWidth, runewidth.StringWidth(d.Name))
		shortcutWidth = max(shortcutWidth, runewidth.StringWidth(shortcut))
	}

	for _, r := range rows {
		fmt.Fprintf(out, "%s  %s  %s\n",
			runewidth.FillRight(r.name, nameWidth),
			runewidth.FillRight(r.shortcut, shortcutWidth),
			r.explanation,
		)
	}
}
