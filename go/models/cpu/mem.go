package cpu

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Mem is the guest address space shared by the runtime and the kernel model.
// Every pointer that crosses the syscall boundary is an address in a Mem.
// Mem is not safe for concurrent use.
type Mem struct {
	bits uint
	// methods return an error for addresses that do not fit inside mask
	mask  uint64
	sim   *MemSim
	order binary.ByteOrder
}

func NewMem(bits uint, order binary.ByteOrder) *Mem {
	return &Mem{
		bits:  bits,
		mask:  ^uint64(0) >> (64 - bits),
		sim:   &MemSim{},
		order: order,
	}
}

func (m *Mem) Bits() uint                  { return m.bits }
func (m *Mem) ByteOrder() binary.ByteOrder { return m.order }

// Maps returns the current mappings, sorted by address.
func (m *Mem) Maps() Pages { return m.sim.Mem }

func (m *Mem) inRange(addr, size uint64) bool {
	end := addr + size
	return end >= addr && end&m.mask == end
}

func (m *Mem) MemMapProt(addr, size uint64, prot int) error {
	_, err := m.MemMapDesc(addr, size, prot, "")
	return err
}

// MemMapDesc maps a zeroed region and labels it for dumps.
func (m *Mem) MemMapDesc(addr, size uint64, prot int, desc string) (*Page, error) {
	if !m.inRange(addr, size) {
		return nil, errors.Errorf("region %#x(%d) outside memory range", addr, size)
	}
	page, err := m.sim.Map(addr, size, prot)
	if err != nil {
		return nil, err
	}
	page.Desc = desc
	return page, nil
}

func (m *Mem) MemReadInto(p []byte, addr uint64) error {
	return m.sim.Read(addr, p, PROT_READ)
}

// MemRead checks the whole range before allocating, so a bogus size from
// the guest fails instead of exhausting the host.
func (m *Mem) MemRead(addr, size uint64) ([]byte, error) {
	if gmap, gprot := m.sim.RangeValid(addr, size, PROT_READ); !gmap {
		return nil, &MemError{Addr: addr, Size: int(size), Fault: FaultUnmapped}
	} else if !gprot {
		return nil, &MemError{Addr: addr, Size: int(size), Fault: FaultProt}
	}
	p := make([]byte, size)
	if err := m.MemReadInto(p, addr); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *Mem) MemWrite(addr uint64, p []byte) error {
	return m.sim.Write(addr, p, PROT_WRITE)
}

func (m *Mem) ReadUint(addr uint64, size int) (uint64, error) {
	if size > 8 {
		return 0, errors.Errorf("ReadUint size too large: %d > 8", size)
	}
	p, err := m.MemRead(addr, uint64(size))
	if err != nil {
		return 0, err
	}
	return UnpackUint(m.order, size, p)
}

func (m *Mem) WriteUint(addr uint64, size int, val uint64) error {
	var buf [8]byte
	if size > 8 {
		return errors.Errorf("WriteUint size too large: %d > 8", size)
	}
	if _, err := PackUint(m.order, size, buf[:], val); err != nil {
		return err
	}
	return m.MemWrite(addr, buf[:size])
}

// ReadStrAt reads a NUL-terminated string starting at addr.
func (m *Mem) ReadStrAt(addr uint64) (string, error) {
	return m.ReadStrMax(addr, 0)
}

// ReadStrMax reads a NUL-terminated string of at most max bytes (0 means no
// limit). Reading stops early without error at the end of mapped memory if
// at least one byte was read.
func (m *Mem) ReadStrMax(addr uint64, max int) (string, error) {
	var out []byte
	for {
		page := m.sim.Mem.Find(addr)
		if page == nil || page.Prot&PROT_READ == 0 {
			if len(out) > 0 {
				return string(out), nil
			}
			return "", &MemError{Addr: addr, Size: 1, Fault: FaultUnmapped}
		}
		chunk := page.Data[addr-page.Addr:]
		if max > 0 && len(out)+len(chunk) > max {
			chunk = chunk[:max-len(out)]
		}
		if i := bytes.IndexByte(chunk, 0); i >= 0 {
			return string(append(out, chunk[:i]...)), nil
		}
		out = append(out, chunk...)
		if max > 0 && len(out) >= max {
			return string(out), nil
		}
		addr += uint64(len(chunk))
	}
}

// WriteStrAt writes s followed by a NUL byte.
func (m *Mem) WriteStrAt(addr uint64, s string) error {
	p := make([]byte, len(s)+1)
	copy(p, s)
	return m.MemWrite(addr, p)
}

// Reader returns an io.Reader walking guest memory from addr.
func (m *Mem) Reader(addr uint64) *MemReader { return &MemReader{Mem: m, Addr: addr} }

// Writer returns an io.Writer walking guest memory from addr.
func (m *Mem) Writer(addr uint64) *MemWriter { return &MemWriter{Mem: m, Addr: addr} }

type MemReader struct {
	Mem  *Mem
	Addr uint64
}

func (r *MemReader) Read(p []byte) (int, error) {
	if err := r.Mem.MemReadInto(p, r.Addr); err != nil {
		return 0, err
	}
	r.Addr += uint64(len(p))
	return len(p), nil
}

type MemWriter struct {
	Mem  *Mem
	Addr uint64
}

func (w *MemWriter) Write(p []byte) (int, error) {
	if err := w.Mem.MemWrite(w.Addr, p); err != nil {
		return 0, err
	}
	w.Addr += uint64(len(p))
	return len(p), nil
}
