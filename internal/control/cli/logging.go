package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/edkeys/internal/potatolog"
)

// LogOpts are the logging flags shared by the interactive commands.
type LogOpts struct {
	LogOutputFile string `short:"l" long:"log-output-file" description:"specify a log output file (otherwise logs only kept in memory)"`
	LogPretty     bool   `short:"p" long:"log-pretty" description:"prettify logs to file"`
	Trace         bool   `short:"t" long:"trace" description:"log unrecognized input sequences (trace level)"`
}

// setUpLogging sets up the logger to use once the terminal is in raw mode and
// returns it along with the stderr logger.
// Until log.Logger is replaced by the caller, the global logger writes to both.
func (opts *LogOpts) setUpLogging() (stderrLogger, terminalLogger zerolog.Logger) {
	stderrLogger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var logWriter io.Writer
	if opts.LogOutputFile != "" {
		var fileLogger io.Writer
		file, err := os.OpenFile(opts.LogOutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			stderrLogger.Fatal().Err(err).Str("file", opts.LogOutputFile).Msg("could not open file for logging")
		}
		if opts.LogPretty {
			fileLogger = zerolog.ConsoleWriter{Out: file}
		} else {
			fileLogger = file
		}
		logWriter = zerolog.MultiLevelWriter(fileLogger, potatolog.GlobalMemoryLogReaderWriter)
	} else {
		logWriter = potatolog.GlobalMemoryLogReaderWriter
	}
	terminalLogger = zerolog.New(logWriter).With().Timestamp().Logger()

	if opts.Trace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// temporarily log to both (in case the terminal doesn't get set up we want
	// the info on the stderr logger)
	log.Logger = log.Output(zerolog.MultiLevelWriter(stderrLogger, terminalLogger))

	return stderrLogger, terminalLogger
}
