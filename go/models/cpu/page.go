package cpu

import (
	"fmt"
	"strings"
)

// Page is one contiguous mapping in the guest address space.
type Page struct {
	Addr uint64
	Size uint64
	Prot int
	Data []byte

	// Desc names the region for dumps ("[heap]", "fb").
	Desc string
}

func (p *Page) String() string {
	prot := []byte("---")
	for i, c := range "rwx" {
		if p.Prot&(1<<uint(i)) != 0 {
			prot[i] = byte(c)
		}
	}
	desc := fmt.Sprintf("0x%x-0x%x %s", p.Addr, p.Addr+p.Size, prot)
	if p.Desc != "" {
		desc += " " + p.Desc
	}
	return desc
}

func (p *Page) Contains(addr uint64) bool {
	return addr >= p.Addr && addr < p.Addr+p.Size
}

func (p *Page) Overlaps(addr, size uint64) bool {
	return addr < p.Addr+p.Size && p.Addr < addr+size
}

type Pages []*Page

func (p Pages) String() string {
	s := make([]string, len(p))
	for i, v := range p {
		s[i] = v.String()
	}
	return strings.Join(s, "\n")
}

// index of the region containing addr, or -1
func (p Pages) bsearch(addr uint64) int {
	l, r := 0, len(p)-1
	for l <= r {
		mid := l + (r-l)/2
		e := p[mid]
		if addr < e.Addr {
			r = mid - 1
		} else if addr >= e.Addr+e.Size {
			l = mid + 1
		} else {
			return mid
		}
	}
	return -1
}

func (p Pages) Find(addr uint64) *Page {
	if i := p.bsearch(addr); i >= 0 {
		return p[i]
	}
	return nil
}

// FindRange returns every page overlapping addr:size.
func (p Pages) FindRange(addr, size uint64) Pages {
	var ret Pages
	for _, pg := range p {
		if pg.Overlaps(addr, size) {
			ret = append(ret, pg)
		}
	}
	return ret
}

// Mapped sums the size of every region.
func (p Pages) Mapped() uint64 {
	var n uint64
	for _, pg := range p {
		n += pg.Size
	}
	return n
}
