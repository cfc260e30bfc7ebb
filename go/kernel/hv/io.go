package hv

import (
	"bytes"
	"io"

	co "github.com/hobbyos/userrt/go/kernel/common"
)

// OpenRing gives fd an in-memory ring: writes append, reads consume.
func (k *Kernel) OpenRing(fd co.Fd) {
	if _, ok := k.rings[fd]; !ok {
		k.rings[fd] = &bytes.Buffer{}
	}
}

// Tee copies every byte written to fd to w as well.
func (k *Kernel) Tee(fd co.Fd, w io.Writer) {
	k.tee[fd] = w
}

// Feed queues p for reading from fd.
func (k *Kernel) Feed(fd co.Fd, p []byte) {
	k.OpenRing(fd)
	k.rings[fd].Write(p)
}

// Output returns the unread contents of fd's ring.
func (k *Kernel) Output(fd co.Fd) []byte {
	if ring, ok := k.rings[fd]; ok {
		return ring.Bytes()
	}
	return nil
}

func (k *Kernel) Write(fd co.Fd, buf co.Buf, size co.Len) uint64 {
	if size == 0 {
		return 0
	}
	ring, ok := k.rings[fd]
	if !ok {
		return 0
	}
	tmp, err := buf.Read(uint64(size))
	if err != nil {
		return 0
	}
	ring.Write(tmp)
	if w, ok := k.tee[fd]; ok {
		w.Write(tmp)
	}
	return uint64(size)
}

// Read never blocks: an empty ring answers 0.
func (k *Kernel) Read(fd co.Fd, buf co.Obuf, size co.Len) uint64 {
	ring, ok := k.rings[fd]
	if !ok || size == 0 {
		return 0
	}
	if uint64(size) > uint64(ring.Len()) {
		size = co.Len(ring.Len())
	}
	tmp := make([]byte, size)
	n, _ := ring.Read(tmp)
	if n == 0 {
		return 0
	}
	if err := buf.Write(tmp[:n]); err != nil {
		return 0
	}
	return uint64(n)
}
