// Package log provides the process-wide file loggers. Lines written to the
// warning and error loggers are also forwarded to Sentry when telemetry is on.
package log

import (
	"fmt"
	"io"
	golog "log"
	"os"
	"path/filepath"

	"github.com/kastheco/feedr/internal/sentry"
)

const logFileName = "feedr.log"

var (
	InfoLog    = golog.New(io.Discard, "", 0)
	WarningLog = golog.New(io.Discard, "", 0)
	ErrorLog   = golog.New(io.Discard, "", 0)
)

var logFile *os.File

// LogPath returns the location of the log file.
func LogPath() string {
	return filepath.Join(os.TempDir(), logFileName)
}

// Initialize opens the log file and points the package loggers at it. It is
// safe to call more than once; the previous file is closed first. When the
// file cannot be opened the loggers fall back to stderr.
func Initialize(telemetry bool) {
	Close()

	var out io.Writer = os.Stderr
	f, err := os.OpenFile(LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file %s: %v\n", LogPath(), err)
	} else {
		logFile = f
		out = f
	}

	var warnOut, errOut io.Writer = out, out
	if telemetry {
		warnOut = sentry.NewWriter(out, sentry.LevelWarning)
		errOut = sentry.NewWriter(out, sentry.LevelError)
	}

	flags := golog.Ldate | golog.Ltime | golog.Lshortfile
	InfoLog = golog.New(out, "INFO: ", flags)
	WarningLog = golog.New(warnOut, "WARNING: ", flags)
	ErrorLog = golog.New(errOut, "ERROR: ", flags)
}

// Close flushes and closes the log file, leaving the loggers discarding.
func Close() {
	if logFile == nil {
		return
	}
	_ = logFile.Close()
	logFile = nil
	InfoLog = golog.New(io.Discard, "", 0)
	WarningLog = golog.New(io.Discard, "", 0)
	ErrorLog = golog.New(io.Discard, "", 0)
}
