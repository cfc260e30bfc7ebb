// Package crt is the process entry point: it runs a hosted main once with a
// neutral initial state and terminates through the transport.
package crt

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hobbyos/userrt/go/libc"
	"github.com/hobbyos/userrt/go/models"
)

// PanicStatus is the exit status of a main that panicked.
const PanicStatus = 2

var ErrAlreadyStarted = errors.New("process already started")

// Main is a hosted program.
type Main func(lc *libc.Libc, args []string) int

// Start calls main with no arguments, flushes the standard streams and exits
// with main's status. The status is returned as a models.ExitStatus, nil for 0.
func Start(lc *libc.Libc, main Main) error {
	return StartArgs(lc, main, nil)
}

// StartArgs is Start for hosts that pass an argument vector.
func StartArgs(lc *libc.Libc, main Main, args []string) error {
	if lc.Started {
		return ErrAlreadyStarted
	}
	lc.Started = true
	status := run(lc, main, args)
	if err := lc.FlushAll(); err != nil && lc.Config.Verbose {
		fmt.Fprintf(lc.Config.Out(), "flush at exit: %v\n", err)
	}
	lc.Exit(status)
	if status != 0 {
		return models.ExitStatus(status)
	}
	return nil
}

func run(lc *libc.Libc, main Main, args []string) (status int) {
	defer func() {
		if r := recover(); r != nil {
			lc.Stdout.Flush()
			lc.Fprintf(lc.Stderr, "panic: %s\n", fmt.Sprint(r))
			status = PanicStatus
		}
	}()
	return main(lc, append([]string(nil), args...))
}
