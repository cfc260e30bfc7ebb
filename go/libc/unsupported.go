package libc

import (
	"github.com/pkg/errors"

	"github.com/hobbyos/userrt/go/syscalls"
)

// Dir is an open directory. Directory iteration is not offered by the kernel.
type Dir struct{}

type Dirent struct {
	Name string
}

type Sigaction struct {
	Handler func(sig int)
	Flags   int
}

// unsupported reports name on stderr and returns ErrUnsupported.
func (lc *Libc) unsupported(name string) error {
	lc.Stderr.WriteString("unsupported: " + name + "\n")
	lc.Stderr.Flush()
	return errors.Wrap(syscalls.ErrUnsupported, name)
}

func (lc *Libc) Fork() (int, error) {
	return -1, lc.unsupported("fork")
}

func (lc *Libc) Vfork() (int, error) {
	lc.call(syscalls.Vfork)
	return -1, lc.unsupported("vfork")
}

func (lc *Libc) Execve(path string, argv, envp []string) (int, error) {
	if addrs, err := lc.cstrings(path); err == nil {
		lc.call(syscalls.Execve, addrs[0], 0, 0)
	}
	return -1, lc.unsupported("execve")
}

func (lc *Libc) Signal(sig int, handler func(sig int)) error {
	return lc.unsupported("signal")
}

func (lc *Libc) Sigaction(sig int, act, old *Sigaction) (int, error) {
	return -1, lc.unsupported("sigaction")
}

func (lc *Libc) Pipe() ([2]int, error) {
	return [2]int{-1, -1}, lc.unsupported("pipe")
}

func (lc *Libc) Dup(fd int) (int, error) {
	return -1, lc.unsupported("dup")
}

func (lc *Libc) Dup2(oldfd, newfd int) (int, error) {
	return -1, lc.unsupported("dup2")
}

func (lc *Libc) Setjmp() (int, error) {
	return -1, lc.unsupported("setjmp")
}

func (lc *Libc) Longjmp(val int) error {
	return lc.unsupported("longjmp")
}

func (lc *Libc) Opendir(name string) (*Dir, error) {
	return nil, lc.unsupported("opendir")
}

func (lc *Libc) Readdir(d *Dir) (*Dirent, error) {
	return nil, lc.unsupported("readdir")
}
