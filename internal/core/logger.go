package core

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cellularmitosis/retainn/pkg/resync"
	"github.com/fatih/color"
)

var (
	// Lazy-load and ensure a single read
	loggerOnce      resync.Once
	loggerSingleton *Logger
)

type VerboseLevel int

const (
	VerboseOff VerboseLevel = iota
	VerboseInfo
	VerboseDebug
	VerboseTrace
)

var warnColor = color.New(color.FgYellow)

func CurrentLogger() *Logger {
	loggerOnce.Do(func() {
		loggerSingleton = NewLogger()
	})
	return loggerSingleton
}

// Logger prints diagnostics on stderr so that they never mix with command output.
type Logger struct {
	verbose VerboseLevel
	out     *log.Logger
}

func NewLogger() *Logger {
	return &Logger{
		verbose: VerboseOff,
		out:     log.New(os.Stderr, "", log.LstdFlags),
	}
}

// SetVerboseLevel overrides the default verbose level
func (l *Logger) SetVerboseLevel(level VerboseLevel) *Logger {
	l.verbose = level
	return l
}

// Verbose returns the current verbose level.
func (l *Logger) Verbose() VerboseLevel {
	return l.verbose
}

// SetOutput redirects the messages (ex: to capture them in tests).
func (l *Logger) SetOutput(w io.Writer) *Logger {
	l.out.SetOutput(w)
	return l
}

func (l *Logger) Fatal(v ...any) {
	l.out.Fatalln(v...)
}
func (l *Logger) Fatalf(format string, v ...any) {
	l.out.Fatalf(format, v...)
}

// Warn messages are always printed, in yellow when the output supports it.
func (l *Logger) Warn(v ...any) {
	l.out.Print(warnColor.Sprint(fmt.Sprintln(v...)))
}
func (l *Logger) Warnf(format string, v ...any) {
	l.out.Print(warnColor.Sprint(fmt.Sprintf(format, v...)))
}

func (l *Logger) Info(v ...any) {
	l.println(VerboseInfo, v...)
}
func (l *Logger) Infof(format string, v ...any) {
	l.printf(VerboseInfo, format, v...)
}

func (l *Logger) Debug(v ...any) {
	l.println(VerboseDebug, v...)
}
func (l *Logger) Debugf(format string, v ...any) {
	l.printf(VerboseDebug, format, v...)
}

func (l *Logger) Trace(v ...any) {
	l.println(VerboseTrace, v...)
}
func (l *Logger) Tracef(format string, v ...any) {
	l.printf(VerboseTrace, format, v...)
}

func (l *Logger) println(level VerboseLevel, v ...any) {
	if l.verbose >= level {
		l.out.Println(v...)
	}
}

func (l *Logger) printf(level VerboseLevel, format string, v ...any) {
	if l.verbose >= level {
		l.out.Printf(format, v...)
	}
}
