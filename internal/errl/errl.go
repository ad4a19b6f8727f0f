// Package errl wraps errors with the source location of the caller, so log
// output points to the place where the error was raised instead of where it
// was finally logged.
package errl

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Error annotates err with the file:line of the caller. Returns nil if err is nil.
func Error(err error) error {
	if err == nil {
		return nil
	}
	return &locError{loc: location(2), err: err}
}

// Errorf builds an error like fmt.Errorf and annotates it with the file:line
// of the caller. The %w verb works as in fmt.Errorf.
func Errorf(format string, args ...any) error {
	return &locError{loc: location(2), err: fmt.Errorf(format, args...)}
}

type locError struct {
	loc string
	err error
}

func (e *locError) Error() string {
	return e.loc + ": " + e.err.Error()
}

func (e *locError) Unwrap() error {
	return e.err
}

func location(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
