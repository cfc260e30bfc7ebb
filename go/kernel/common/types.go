package common

import (
	"github.com/pkg/errors"

	"github.com/hobbyos/userrt/go/models"
)

type (
	Buf struct {
		Addr uint64
		K    *KernelBase
	}
	Obuf struct{ Buf }
	Len  uint64
	Off  int64
	Fd   int32
	Ptr  uint64
)

func NewBuf(k Kernel, addr uint64) Buf {
	return Buf{K: k.Base(), Addr: addr}
}

func (b Buf) Struc() *models.StrucStream {
	return models.StrucAt(b.K.Mem, b.Addr)
}

func (b Buf) Pack(i interface{}) error {
	return errors.Wrap(b.Struc().Pack(i), "struc.Pack() failed")
}

func (b Buf) Unpack(i interface{}) error {
	return errors.Wrap(b.Struc().Unpack(i), "struc.Unpack() failed")
}

// Read copies n bytes out of guest memory.
func (b Buf) Read(n uint64) ([]byte, error) {
	return b.K.Mem.MemRead(b.Addr, n)
}

// Write copies p into guest memory.
func (b Buf) Write(p []byte) error {
	return b.K.Mem.MemWrite(b.Addr, p)
}
