package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger writes tagged, colorized status lines. It is constructed once at
// process start and handed to each component; nothing in the engine logs
// through package-level state.
type Logger struct {
	out    io.Writer
	silent bool

	info    func(a ...interface{}) string
	success func(a ...interface{}) string
	warn    func(a ...interface{}) string
	fail    func(a ...interface{}) string
	alert   func(a ...interface{}) string
}

// New creates a Logger writing to out. A silent logger drops everything.
func New(out io.Writer, silent bool) *Logger {
	return &Logger{
		out:     out,
		silent:  silent,
		info:    color.New(color.FgBlue).SprintFunc(),
		success: color.New(color.FgGreen).SprintFunc(),
		warn:    color.New(color.FgYellow).SprintFunc(),
		fail:    color.New(color.FgRed).SprintFunc(),
		alert:   color.New(color.FgRed, color.Bold).SprintFunc(),
	}
}

func (l *Logger) line(tag, format string, args ...interface{}) {
	if l.silent {
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.line(l.info("[*]"), format, args...)
}

func (l *Logger) Successf(format string, args ...interface{}) {
	l.line(l.success("[+]"), format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.line(l.warn("[!]"), format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.line(l.fail("[-]"), format, args...)
}

func (l *Logger) Alertf(format string, args ...interface{}) {
	l.line(l.alert("[!!!]"), format, args...)
}

// Printf writes an untagged line.
func (l *Logger) Printf(format string, args ...interface{}) {
	if l.silent {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}
