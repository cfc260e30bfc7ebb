package libc

import (
	"github.com/pkg/errors"

	"github.com/hobbyos/userrt/go/syscalls"
)

// Malloc asks the kernel for size bytes. Memory is never reclaimed.
func (lc *Libc) Malloc(size uint64) (uint64, error) {
	addr, err := lc.call(syscalls.Malloc, size)
	if err != nil {
		return 0, errors.Wrapf(err, "malloc(%d)", size)
	}
	return addr, nil
}

// Free is a no-op.
func (lc *Libc) Free(addr uint64) {}

// Block is an allocation whose Release marks the end of its use.
type Block struct {
	Addr uint64
	Size uint64

	lc *Libc
}

func (lc *Libc) Alloc(size uint64) (*Block, error) {
	addr, err := lc.Malloc(size)
	if err != nil {
		return nil, err
	}
	return &Block{Addr: addr, Size: size, lc: lc}, nil
}

func (b *Block) Release() {
	b.lc.Free(b.Addr)
}

// Bytes reads the block's current contents.
func (b *Block) Bytes() ([]byte, error) {
	return b.lc.Mem.MemRead(b.Addr, b.Size)
}

// Calloc allocates n*size zeroed bytes.
func (lc *Libc) Calloc(n, size uint64) (uint64, error) {
	total := n * size
	if size != 0 && total/size != n {
		return 0, errors.Wrapf(syscalls.ErrDenied, "calloc(%d, %d) overflows", n, size)
	}
	addr, err := lc.Malloc(total)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		if err := lc.Mem.MemWrite(addr, make([]byte, total)); err != nil {
			return 0, err
		}
	}
	return addr, nil
}

// Realloc returns a block of size bytes holding the contents of addr.
func (lc *Libc) Realloc(addr, size uint64) (uint64, error) {
	ret, err := lc.call(syscalls.Realloc, addr, size)
	if err != nil {
		return 0, errors.Wrapf(err, "realloc(%#x, %d)", addr, size)
	}
	return ret, nil
}

// Strdup copies s into a fresh NUL-terminated block.
func (lc *Libc) Strdup(s string) (uint64, error) {
	addr, err := lc.Malloc(uint64(len(s)) + 1)
	if err != nil {
		return 0, err
	}
	return addr, lc.Mem.WriteStrAt(addr, s)
}
