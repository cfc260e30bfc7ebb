package models

import (
	"encoding/binary"
	"io"

	"github.com/lunixbochs/struc"

	"github.com/hobbyos/userrt/go/models/cpu"
)

type StrucStream struct {
	Stream io.ReadWriter
	Order  binary.ByteOrder
}

func (s *StrucStream) Pack(i interface{}) error {
	return struc.PackWithOrder(s.Stream, i, s.Order)
}

func (s *StrucStream) Unpack(i interface{}) error {
	return struc.UnpackWithOrder(s.Stream, i, s.Order)
}

type memStream struct {
	*cpu.MemReader
	*cpu.MemWriter
}

// StrucAt returns a StrucStream reading and writing guest memory at addr.
// Reads and writes advance independent cursors.
func StrucAt(mem *cpu.Mem, addr uint64) *StrucStream {
	return &StrucStream{
		Stream: memStream{mem.Reader(addr), mem.Writer(addr)},
		Order:  mem.ByteOrder(),
	}
}
