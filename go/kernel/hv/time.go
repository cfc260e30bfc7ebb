package hv

import (
	co "github.com/hobbyos/userrt/go/kernel/common"
)

// GetTime writes seconds and microseconds as 32-bit words. It answers 0 if
// either word cannot be stored.
func (k *Kernel) GetTime(sec co.Ptr, usec co.Ptr) uint64 {
	now := k.now()
	if err := k.Mem.WriteUint(uint64(sec), 4, uint64(uint32(now.Unix()))); err != nil {
		return 0
	}
	if err := k.Mem.WriteUint(uint64(usec), 4, uint64(now.Nanosecond()/1000)); err != nil {
		return 0
	}
	return 1
}
