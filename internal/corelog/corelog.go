// Package corelog implements the core's structured logger: stdlib log
// underneath, github.com/kr/pretty for dumping synthesis/rewiring state
// on verbose levels, and github.com/dustin/go-humanize for comma-grouping
// gate counts in progress lines (durations use time.Duration's own
// formatting).
package corelog

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
)

// Level orders log verbosity from quiet to noisy.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger wraps a standard *log.Logger with a minimum level filter.
type Logger struct {
	min Level
	std *log.Logger
}

// New returns a Logger writing to os.Stderr with the given minimum
// level; messages below min are dropped without formatting their args.
func New(min Level) *Logger {
	return &Logger{min: min, std: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level > l.min {
		return
	}
	l.std.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) { l.log(LevelError, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(LevelWarn, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(LevelInfo, format, args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }

// Dump pretty-prints v at debug level, for logging a network/AIG/SAT
// assignment too structured for a one-line Printf.
func (l *Logger) Dump(label string, v interface{}) {
	if l.min < LevelDebug {
		return
	}
	l.std.Printf("[DEBUG] %s:\n%# v", label, pretty.Formatter(v))
}

// Progress logs a rewiring/synthesis progress line: elapsed time and a
// gate/clause count rendered with humanize so large counts stay
// readable (e.g. "12,345" instead of "12345").
func (l *Logger) Progress(stage string, elapsed time.Duration, count int) {
	l.Infof("%s: %s elapsed, %s gates", stage, elapsed.Round(time.Millisecond), humanize.Comma(int64(count)))
}
