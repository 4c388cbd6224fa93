package sentry

import (
	"io"
	"strings"

	gosentry "github.com/getsentry/sentry-go"
)

// Level selects how a Writer forwards lines.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// logPrefixes are stripped so Sentry groups events by message, not by the
// log package's level prefix.
var logPrefixes = []string{"ERROR: ", "WARNING: ", "INFO: "}

// Writer tees log output to inner and to Sentry: error lines become events,
// everything else becomes a breadcrumb on the next event.
type Writer struct {
	inner io.Writer
	level Level
}

// NewWriter creates a Writer that tees to inner and forwards to Sentry.
func NewWriter(inner io.Writer, level Level) *Writer {
	return &Writer{inner: inner, level: level}
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.inner.Write(p)
	if !enabled {
		return n, err
	}

	msg := cleanMessage(string(p))
	if msg == "" {
		return n, err
	}

	switch w.level {
	case LevelError:
		gosentry.CaptureMessage(msg)
	case LevelWarning:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{Level: gosentry.LevelWarning, Category: "sidebar", Message: msg})
	default:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{Level: gosentry.LevelInfo, Category: "sidebar", Message: msg})
	}
	return n, err
}

// cleanMessage trims whitespace and the level prefix. Date and file prefixes
// written by log flags come before the level prefix, so cut from its index.
func cleanMessage(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range logPrefixes {
		if i := strings.Index(s, prefix); i >= 0 {
			return strings.TrimSpace(s[i+len(prefix):])
		}
	}
	return s
}
