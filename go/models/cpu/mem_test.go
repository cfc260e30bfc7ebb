package cpu

import (
	"bytes"
	"encoding/binary"
	"testing"
)

var asdf = []byte("asdf")

func TestMem8(t *testing.T) {
	mem := NewMem(8, binary.LittleEndian)
	if err := mem.MemMapProt(0x10, 0x10, PROT_READ|PROT_WRITE); err != nil {
		t.Fatal("failed to map memory:", err)
	}
	if err := mem.MemMapProt(0x0, 0x1000, 0); err == nil {
		t.Fatal("mapped memory outside range")
	}
	if err := mem.MemWrite(0x1000, asdf); err == nil {
		t.Error("write succeeded above mapped memory")
	}
}

func TestMem(t *testing.T) {
	mappings := [][]uint64{
		{0x1000, 0x1000, PROT_READ | PROT_WRITE},
		{0x2000, 0x1000, PROT_READ},
		{0x3000, 0x1000, PROT_WRITE},
	}
	mem := NewMem(32, binary.LittleEndian)
	for _, v := range mappings {
		if err := mem.MemMapProt(v[0], v[1], int(v[2])); err != nil {
			t.Fatalf("failed to map memory (%#x, %#x, %d): %v", v[0], v[1], v[2], err)
		}
	}
	if err := mem.MemWrite(0, asdf); err == nil {
		t.Error("write succeeded below mapped memory")
	}
	if err := mem.MemWrite(0x4000, asdf); err == nil {
		t.Error("write succeeded above mapped memory")
	}
	if err := mem.MemWrite(0x1000, asdf); err != nil {
		t.Error("write failed inside rw memory:", err)
	}
	if tmp, err := mem.MemRead(0x1000, uint64(len(asdf))); err != nil {
		t.Error("read failed inside rw memory:", err)
	} else if !bytes.Equal(tmp, asdf) {
		t.Error("read returned bad value")
	}
	if err := mem.MemWrite(0x2000, asdf); err == nil {
		t.Error("write succeeded on read-only memory")
	}
	if _, err := mem.MemRead(0x3000, 4); err == nil {
		t.Error("read succeeded on write-only memory")
	}
	// spanning rw -> r must fail for writes
	if err := mem.MemWrite(0x1ffe, asdf); err == nil {
		t.Error("write spanning into read-only memory succeeded")
	}
}

func TestMemUint(t *testing.T) {
	rawtest := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	ltable := map[int]uint64{
		1: 0x1,
		2: 0x0201,
		4: 0x04030201,
		8: 0x0807060504030201,
	}
	mem := NewMem(64, binary.LittleEndian)
	if err := mem.MemMapProt(0x1000, 0x1000, PROT_READ|PROT_WRITE); err != nil {
		t.Fatal("failed to map memory:", err)
	}
	if err := mem.MemWrite(0x1000, rawtest); err != nil {
		t.Fatal("failed to write memory:", err)
	}
	for size, val := range ltable {
		if n, err := mem.ReadUint(0x1000, size); err != nil {
			t.Error("failed to read uint:", err)
		} else if n != val {
			t.Error("inconsistent uint value:", n, val)
		}
	}
	for size, val := range ltable {
		if err := mem.WriteUint(0x1800, size, val); err != nil {
			t.Error("failed to write uint:", err)
		}
		if n, err := mem.ReadUint(0x1800, size); err != nil {
			t.Error("failed to read uint:", err)
		} else if n != val {
			t.Error("inconsistent uint value:", n, val)
		}
	}
	if _, err := mem.ReadUint(0x1000, 16); err == nil {
		t.Error("16-byte uint read succeeded")
	}
}

func TestMemStr(t *testing.T) {
	mem := NewMem(64, binary.LittleEndian)
	mem.MemMapProt(0x1000, 0x1000, PROT_READ|PROT_WRITE)
	mem.MemMapProt(0x2000, 0x1000, PROT_READ|PROT_WRITE)

	if err := mem.WriteStrAt(0x1000, "hello"); err != nil {
		t.Fatal(err)
	}
	if s, err := mem.ReadStrAt(0x1000); err != nil || s != "hello" {
		t.Fatalf("ReadStrAt = %q, %v", s, err)
	}
	if s, _ := mem.ReadStrMax(0x1000, 3); s != "hel" {
		t.Errorf("ReadStrMax(3) = %q", s)
	}
	// a string crossing into the next page
	if err := mem.WriteStrAt(0x1ffd, "spanning"); err != nil {
		t.Fatal(err)
	}
	if s, err := mem.ReadStrAt(0x1ffd); err != nil || s != "spanning" {
		t.Errorf("ReadStrAt across pages = %q, %v", s, err)
	}
	if _, err := mem.ReadStrAt(0x5000); err == nil {
		t.Error("ReadStrAt on unmapped memory succeeded")
	}
}

func TestMemReaderWriter(t *testing.T) {
	mem := NewMem(64, binary.LittleEndian)
	mem.MemMapProt(0x1000, 0x1000, PROT_READ|PROT_WRITE)
	w := mem.Writer(0x1000)
	w.Write([]byte("ab"))
	w.Write([]byte("cd"))
	p := make([]byte, 4)
	if _, err := mem.Reader(0x1000).Read(p); err != nil {
		t.Fatal(err)
	}
	if string(p) != "abcd" {
		t.Errorf("reader got %q", p)
	}
}

func TestMemReadHuge(t *testing.T) {
	mem := NewMem(64, binary.LittleEndian)
	if err := mem.MemMapProt(0x1000, 0x1000, PROT_READ); err != nil {
		t.Fatal(err)
	}
	for _, size := range []uint64{0x1001, 1 << 62, ^uint64(0)} {
		if _, err := mem.MemRead(0x1000, size); err == nil {
			t.Errorf("MemRead(0x1000, %#x) succeeded", size)
		}
	}
	if _, err := mem.MemRead(0x1ff0, 0x10); err != nil {
		t.Fatal(err)
	}
}
