package hv

import (
	co "github.com/hobbyos/userrt/go/kernel/common"
)

const heapAlign = 8

// Malloc bumps the heap pointer. Zero-size requests still get a unique
// address, and exhaustion answers 0.
func (k *Kernel) Malloc(size co.Len) uint64 {
	n := (uint64(size) + heapAlign - 1) &^ (heapAlign - 1)
	if n == 0 {
		if size != 0 {
			return 0
		}
		n = heapAlign
	}
	end := k.brk + n
	if end < k.brk || end > k.heapEnd {
		return 0
	}
	addr := k.brk
	k.brk = end
	k.sizes[addr] = n
	return addr
}

// Realloc moves a block to a fresh allocation, copying the old contents.
func (k *Kernel) Realloc(ptr co.Ptr, size co.Len) uint64 {
	if ptr == 0 {
		return k.Malloc(size)
	}
	old, ok := k.sizes[uint64(ptr)]
	if !ok {
		return 0
	}
	addr := k.Malloc(size)
	if addr == 0 {
		return 0
	}
	n := old
	if uint64(size) < n {
		n = uint64(size)
	}
	tmp, err := k.Mem.MemRead(uint64(ptr), n)
	if err != nil {
		return 0
	}
	if err := k.Mem.MemWrite(addr, tmp); err != nil {
		return 0
	}
	return addr
}

// HeapUsed reports bytes handed out so far.
func (k *Kernel) HeapUsed() uint64 {
	return k.brk - k.heapBase
}
