// Package logging configures the shared logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogFile is the on-disk log next to stdout output.
const LogFile = "deskbooker.log"

// Log is the global logger instance.
var Log = logrus.New()

// Init configures the global logger: text output with full timestamps,
// written to stdout and to LogFile in the working directory. Debug enables
// debug-level logging. The log file is best-effort; if it cannot be opened
// logging continues on stdout alone.
func Init(debug bool) {
	initWith(debug, true)
}

// InitQuiet configures the logger for TUI mode: the log file only, so log
// lines never corrupt the alternate screen.
func InitQuiet(debug bool) {
	initWith(debug, false)
}

func initWith(debug, stdout bool) {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if debug {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}

	var writers []io.Writer
	if stdout {
		writers = append(writers, os.Stdout)
	}
	f, err := os.OpenFile(LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		if stdout {
			Log.WithError(err).Warn("Could not open log file, logging to stdout only")
		}
	} else {
		writers = append(writers, f)
	}

	if len(writers) == 0 {
		Log.SetOutput(io.Discard)
		return
	}
	Log.SetOutput(io.MultiWriter(writers...))
}
