package cpu

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// ErrOverlap is returned when a new region would overlap a mapped one.
var ErrOverlap = errors.New("region overlaps an existing mapping")

type MemError struct {
	Addr  uint64
	Size  int
	Write bool
	Fault Fault
}

func (m *MemError) Error() string {
	op := "read"
	if m.Write {
		op = "write"
	}
	reason := "unmapped " + op
	if m.Fault == FaultProt {
		reason = "protected " + op
	}
	return fmt.Sprintf("%s at %#x(%d)", reason, m.Addr, m.Size)
}

// MemSim is a sparse list of non-overlapping regions kept sorted by address.
// Regions live until the address space is dropped.
type MemSim struct {
	Mem Pages
}

// RangeValid reports whether addr:size is fully mapped, and if prot > 0,
// whether every page covering it carries all of prot.
func (m *MemSim) RangeValid(addr, size uint64, prot int) (mapGood bool, protGood bool) {
	end := addr + size
	if end < addr {
		return false, false
	}
	first := m.Mem.bsearch(addr)
	if first == -1 {
		return false, false
	}
	protGood = true
	for _, mm := range m.Mem[first:] {
		if !mm.Contains(addr) {
			break
		}
		if prot > 0 && mm.Prot&prot != prot {
			protGood = false
		}
		addr = mm.Addr + mm.Size
		if addr >= end {
			break
		}
	}
	return addr >= end, protGood
}

// Map adds a zeroed region at addr:size.
func (m *MemSim) Map(addr, size uint64, prot int) (*Page, error) {
	if size == 0 {
		return nil, errors.Errorf("empty region at %#x", addr)
	}
	if hit := m.Mem.FindRange(addr, size); len(hit) > 0 {
		return nil, errors.Wrapf(ErrOverlap, "%#x(%d) overlaps %s", addr, size, hit[0])
	}
	page := &Page{Addr: addr, Size: size, Prot: prot, Data: make([]byte, size)}
	i := sort.Search(len(m.Mem), func(i int) bool { return m.Mem[i].Addr > addr })
	m.Mem = append(m.Mem, nil)
	copy(m.Mem[i+1:], m.Mem[i:])
	m.Mem[i] = page
	return page, nil
}

func (m *MemSim) access(addr uint64, p []byte, prot int, write bool) error {
	if len(p) == 0 {
		return nil
	}
	if gmap, gprot := m.RangeValid(addr, uint64(len(p)), prot); !gmap {
		return &MemError{Addr: addr, Size: len(p), Write: write, Fault: FaultUnmapped}
	} else if !gprot {
		return &MemError{Addr: addr, Size: len(p), Write: write, Fault: FaultProt}
	}
	for i := m.Mem.bsearch(addr); i < len(m.Mem) && len(p) > 0; i++ {
		mm := m.Mem[i]
		var n int
		if write {
			n = copy(mm.Data[addr-mm.Addr:], p)
		} else {
			n = copy(p, mm.Data[addr-mm.Addr:])
		}
		addr, p = addr+uint64(n), p[n:]
	}
	return nil
}

func (m *MemSim) Read(addr uint64, p []byte, prot int) error {
	return m.access(addr, p, prot, false)
}

func (m *MemSim) Write(addr uint64, p []byte, prot int) error {
	return m.access(addr, p, prot, true)
}
