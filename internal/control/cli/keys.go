package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/edkeys/internal/input"
	"github.com/ja-he/edkeys/internal/potatolog"
)

type KeysCommand struct {
	LogOpts
}

// Execute prints every decoded key until Ctrl+C.
func (command *KeysCommand) Execute(args []string) error {
	command.Trace = true
	stderrLogger, terminalLogger := command.setUpLogging()

	_, inputConfig, err := loadConfig()
	if err != nil {
		stderrLogger.Fatal().Err(err).Msg("can't load config")
	}

	tty, session, err := openSession(inputConfig, terminalLogger)
	if err != nil {
		stderrLogger.Fatal().Err(err).Msg("could not set up terminal input")
	}
	defer tty.Close()
	log.Logger = terminalLogger

	fmt.Fprintf(os.Stdout, "press keys to see their events, %s to exit\r\n", input.Ctrl('c'))
	return printKeys(session, os.Stdout, potatolog.GlobalMemoryLogReaderWriter)
}

// printKeys prints the keys from the source, each followed by the trace
// records logged while decoding it.
func printKeys(keys keySource, out io.Writer, traces *potatolog.MemoryLogReaderWriter) error {
	_, seen := traces.Since(0)
	for {
		k, err := keys.NextKey()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		var entries []potatolog.LogEntry
		entries, seen = traces.Since(seen)
		for _, e := range entries {
			if e["level"] != "trace" {
				continue
			}
			fmt.Fprintf(out, "  (%v: %v)\r\n", e["message"], e["bytes"])
		}

		if k == input.KeyRecovery {
			fmt.Fprintf(out, "%s\r\n", k)
			continue
		}
		fmt.Fprintf(out, "%-16s %s\r\n", k, k.ToDebugString())
		if k == input.Ctrl('c') {
			return nil
		}
	}
}
