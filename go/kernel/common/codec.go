package common

import (
	"github.com/lunixbochs/argjoy"
)

// MaxStrArg bounds string arguments read from guest memory.
const MaxStrArg = 256

// wordCodec turns one raw ABI word into the typed argument a kernel method
// declares. Guest addresses become Buf/Obuf/Ptr bound to this kernel's memory.
// Lengths are cut to the guest address space, descriptors keep their low 32
// bits and offsets are read as signed.
func (k *KernelBase) wordCodec(arg interface{}, vals []interface{}) error {
	reg, ok := vals[0].(uint64)
	if !ok {
		return argjoy.NoMatch
	}
	switch v := arg.(type) {
	case *Buf:
		*v = NewBuf(k, reg)
	case *Obuf:
		*v = Obuf{NewBuf(k, reg)}
	case *Ptr:
		*v = Ptr(reg)
	case *Len:
		*v = k.lenArg(reg)
	case *Off:
		*v = Off(int64(reg))
	case *Fd:
		*v = Fd(int32(uint32(reg)))
	case *string:
		s, err := k.strArg(reg)
		if err != nil {
			return err
		}
		*v = s
	default:
		return argjoy.NoMatch
	}
	return nil
}

func (k *KernelBase) lenArg(reg uint64) Len {
	if bits := k.Mem.Bits(); bits < 64 && reg > 1<<bits {
		return Len(1 << bits)
	}
	return Len(reg)
}

// strArg reads a NUL-terminated guest string of at most MaxStrArg bytes.
func (k *KernelBase) strArg(addr uint64) (string, error) {
	return k.Mem.ReadStrMax(addr, MaxStrArg)
}
