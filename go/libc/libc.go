// Package libc is the freestanding runtime library: allocation, buffered and
// formatted I/O, file access, syscall wrappers and generic algorithms, all
// built on a syscalls.Transport and a guest address space.
//
// A Libc and its streams are not safe for concurrent use.
package libc

import (
	"github.com/pkg/errors"

	"github.com/hobbyos/userrt/go/models"
	"github.com/hobbyos/userrt/go/models/cpu"
	"github.com/hobbyos/userrt/go/syscalls"
)

const (
	Stdin  = 0
	Stdout = 1
	Stderr = 2

	EOF = -1
)

// Ptr marks a guest address passed to a %s conversion.
type Ptr uint64

type Libc struct {
	T      syscalls.Transport
	Mem    *cpu.Mem
	Config *models.Config

	Stdin, Stdout, Stderr *Stream

	// Started is set by the process entry point.
	Started bool

	scratch    uint64
	scratchCap uint64
}

func New(t syscalls.Transport, mem *cpu.Mem, config *models.Config) *Libc {
	if config == nil {
		config = models.DefaultConfig()
	}
	lc := &Libc{T: t, Mem: mem, Config: config}
	lc.Stdin = lc.newStream(Stdin)
	lc.Stdout = lc.newStream(Stdout)
	lc.Stderr = lc.newStream(Stderr)
	return lc
}

func (lc *Libc) call(num syscalls.Num, args ...uint64) (uint64, error) {
	return syscalls.Call(lc.T, num, args...)
}

// scratchBuf returns a guest region of at least n bytes for marshaling
// syscall arguments. It is reused by every call.
func (lc *Libc) scratchBuf(n uint64) (uint64, error) {
	if n <= lc.scratchCap && lc.scratch != 0 {
		return lc.scratch, nil
	}
	size := lc.scratchCap * 2
	if size < 256 {
		size = 256
	}
	if size < n {
		size = n
	}
	addr, err := lc.Malloc(size)
	if err != nil {
		return 0, errors.Wrap(err, "scratch")
	}
	lc.scratch, lc.scratchCap = addr, size
	return addr, nil
}

// cstrings copies strs into scratch memory, NUL-terminated and back to back.
func (lc *Libc) cstrings(strs ...string) ([]uint64, error) {
	var total uint64
	for _, s := range strs {
		total += uint64(len(s)) + 1
	}
	base, err := lc.scratchBuf(total)
	if err != nil {
		return nil, err
	}
	addrs := make([]uint64, len(strs))
	addr := base
	for i, s := range strs {
		if err := lc.Mem.WriteStrAt(addr, s); err != nil {
			return nil, err
		}
		addrs[i] = addr
		addr += uint64(len(s)) + 1
	}
	return addrs, nil
}

// FlushAll flushes the standard output streams.
func (lc *Libc) FlushAll() error {
	err := lc.Stdout.Flush()
	if err2 := lc.Stderr.Flush(); err == nil {
		err = err2
	}
	return err
}

// Exit issues the terminate operation. It does not flush.
func (lc *Libc) Exit(status int) {
	lc.T.Syscall(syscalls.Exit, uint64(int64(status)), 0, 0)
}
