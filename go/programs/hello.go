package programs

import (
	"github.com/hobbyos/userrt/go/libc"
)

func hello(lc *libc.Libc, args []string) int {
	lc.Printf("hello from pid %d (parent %d)\n", lc.Getpid(), lc.Getppid())
	sec, usec, err := lc.GetTime()
	if err != nil {
		lc.Fprintf(lc.Stderr, "get_time: %s\n", err)
		return 1
	}
	lc.Printf("time %ld.%d\n", int64(sec), int(usec))
	if cwd, err := lc.Getcwd(); err == nil {
		lc.Printf("cwd %s\n", cwd)
	}
	return 0
}

func init() { Register("hello", "print process info", hello) }
