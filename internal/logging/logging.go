package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled, colored messages. The zero value logs warnings and
// errors to os.Stderr and drops info and debug messages.
type Logger struct {
	Verbose bool
	Debug   bool

	// Out receives info and debug messages, Err warnings and errors.
	// Nil means os.Stdout and os.Stderr.
	Out io.Writer
	Err io.Writer
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.write(l.out(), color.GreenString("[info] "), msg, args)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.write(l.out(), color.CyanString("[debug] "), msg, args)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	l.write(l.err(), color.YellowString("[warn] "), msg, args)
}

func (l Logger) Errorf(msg string, args ...any) {
	l.write(l.err(), color.RedString("[error] "), msg, args)
}

// ErrorfAndReturn logs the message at error level and returns it as an error.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	l.Errorf(msg, args...)
	return fmt.Errorf(msg, args...)
}

func (l Logger) write(w io.Writer, prefix, msg string, args []any) {
	fmt.Fprintf(w, prefix+msg+"\n", args...)
}

func (l Logger) out() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

func (l Logger) err() io.Writer {
	if l.Err != nil {
		return l.Err
	}
	return os.Stderr
}
