// Package dwlog provides the structured logging sink every CLI
// collaborator uses (SPEC_FULL.md §3.8). It plays the role the
// teacher's text_color_set/dw_printf pair plays in log.go and the rest
// of the source tree: a small set of severities (error, info, debug,
// warning) used to annotate console output. Rather than hand-rolled
// ANSI color codes and a variadic printf wrapper, this package routes
// those same severities through github.com/charmbracelet/log, the
// logging library the teacher's go.mod already depends on.
package dwlog

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// Severity mirrors the teacher's DW_COLOR_* constants (ERROR, INFO,
// DEBUG) plus WARNING, which the teacher expresses inline via dw_printf
// text rather than a distinct color.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityDebug
)

// Logger wraps a *log.Logger with the frame-processing fields
// SPEC_FULL.md §3.8 names as the standard structured record.
type Logger struct {
	*log.Logger
}

// New builds a Logger writing to w with the given minimum severity.
func New(w io.Writer, level Severity) *Logger {
	var l = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           toCharmLevel(level),
	})
	return &Logger{Logger: l}
}

// Default builds a Logger writing to stderr at SeverityInfo, the sink
// every cmd/ tool uses.
func Default() *Logger {
	return New(os.Stderr, SeverityInfo)
}

func toCharmLevel(s Severity) log.Level {
	switch s {
	case SeverityDebug:
		return log.DebugLevel
	case SeverityWarning:
		return log.WarnLevel
	case SeverityError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// FrameEvent logs one processed-frame record: frame_type, sequence,
// total, and byte count, matching SPEC_FULL.md §3.8's structured log
// line. Decode-side callers additionally pass corrected/failed counts
// via WithCorrection.
func (l *Logger) FrameEvent(msg string, frameType string, sequence, total, bytes int) {
	l.Info(msg, "frame_type", frameType, "sequence", sequence, "total", total, "bytes", bytes)
}

// WithCorrection logs a decode-side frame event additionally carrying
// the RS correction status.
func (l *Logger) WithCorrection(msg string, frameType string, sequence, total, bytes, corrected int, failed bool) {
	if failed {
		l.Warn(msg, "frame_type", frameType, "sequence", sequence, "total", total, "bytes", bytes, "failed", true)
		return
	}
	l.Info(msg, "frame_type", frameType, "sequence", sequence, "total", total, "bytes", bytes, "corrected", corrected)
}

// DailyLogPath renders a dated log file path under dir using a strftime
// pattern, the same library call the teacher's xmit.go/tq.go use to
// expand a user-configurable timestamp format
// (strftime.Format(pattern, time.Now())), generalized here from
// transmit-timing logs to daily-rotated log file naming
// (log.go's "automatic daily file names" feature, ported from its
// hardcoded "2006-01-02.log" Go time layout to a user-supplied strftime
// pattern passed by the caller; the link config file has no setting
// for it).
func DailyLogPath(dir, pattern string) (string, error) {
	var name, err = strftime.Format(pattern, time.Now())
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
