package hv

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hobbyos/userrt/go/models"
	"github.com/hobbyos/userrt/go/models/cpu"
	"github.com/hobbyos/userrt/go/models/frames"
	"github.com/hobbyos/userrt/go/syscalls"
)

const scratch = 0x1000

func newKernel(t *testing.T, config *models.Config) *Kernel {
	if config == nil {
		config = models.DefaultConfig()
	}
	mem := cpu.NewMem(64, binary.LittleEndian)
	if err := mem.MemMapProt(scratch, 0x10000, cpu.PROT_READ|cpu.PROT_WRITE); err != nil {
		t.Fatal(err)
	}
	k, err := NewKernel(mem, config)
	if err != nil {
		t.Fatal(err)
	}
	k.FS = fstest.MapFS{
		"a.txt":     {Data: []byte("hello world"), Mode: 0644},
		"dir/b.txt": {Data: []byte("b"), Mode: 0600},
	}
	return k
}

func poke(t *testing.T, k *Kernel, addr uint64, s string) uint64 {
	if err := k.Mem.WriteStrAt(addr, s); err != nil {
		t.Fatal(err)
	}
	return addr
}

func peek(t *testing.T, k *Kernel, addr, n uint64) string {
	p, err := k.Mem.MemRead(addr, n)
	if err != nil {
		t.Fatal(err)
	}
	return string(p)
}

func TestWriteRead(t *testing.T) {
	k := newKernel(t, nil)
	buf := poke(t, k, scratch, "hi")
	if n := k.Syscall(syscalls.Write, 1, buf, 2); n != 2 {
		t.Fatalf("write = %d", n)
	}
	if n := k.Syscall(syscalls.Write, 1, buf, 0); n != 0 {
		t.Fatalf("empty write = %d", n)
	}
	if n := k.Syscall(syscalls.Write, 7, buf, 2); n != 0 {
		t.Fatalf("write to closed fd = %d", n)
	}
	if out := string(k.Output(1)); out != "hi" {
		t.Fatalf("stdout = %q", out)
	}

	k.Feed(0, []byte("abc"))
	if n := k.Syscall(syscalls.Read, 0, scratch+0x100, 2); n != 2 || peek(t, k, scratch+0x100, 2) != "ab" {
		t.Fatalf("read = %d", n)
	}
	if n := k.Syscall(syscalls.Read, 0, scratch+0x100, 2); n != 1 || peek(t, k, scratch+0x100, 1) != "c" {
		t.Fatalf("second read = %d", n)
	}
	if n := k.Syscall(syscalls.Read, 0, scratch+0x100, 2); n != 0 {
		t.Fatalf("read of empty ring = %d", n)
	}
}

func TestHugeLength(t *testing.T) {
	k := newKernel(t, nil)
	k.Feed(0, []byte("xy"))
	if n := k.Syscall(syscalls.Write, 1, scratch, 1<<62); n != 0 {
		t.Fatalf("huge write = %d", n)
	}
	if n := k.Syscall(syscalls.Write, 1, scratch, ^uint64(0)); n != 0 {
		t.Fatalf("wrapping write = %d", n)
	}
	if n := k.Syscall(syscalls.Read, 0, scratch, 1<<62); n != 2 || peek(t, k, scratch, 2) != "xy" {
		t.Fatalf("huge read = %d", n)
	}
	if n := k.Syscall(syscalls.Read, 0, scratch, 1<<62); n != 0 {
		t.Fatalf("huge read of empty ring = %d", n)
	}
	if len(k.Output(1)) != 0 {
		t.Fatalf("stdout = %q", k.Output(1))
	}
}

func TestTee(t *testing.T) {
	k := newKernel(t, nil)
	var host bytes.Buffer
	k.Tee(2, &host)
	buf := poke(t, k, scratch, "oops")
	k.Syscall(syscalls.Write, 2, buf, 4)
	if host.String() != "oops" {
		t.Fatalf("tee got %q", host.String())
	}
}

func TestMalloc(t *testing.T) {
	config := models.DefaultConfig()
	config.HeapSize = 64
	k := newKernel(t, config)
	a := k.Syscall(syscalls.Malloc, 3, 0, 0)
	b := k.Syscall(syscalls.Malloc, 0, 0, 0)
	c := k.Syscall(syscalls.Malloc, 16, 0, 0)
	if a != config.HeapBase || b != a+8 || c != b+8 {
		t.Fatalf("bad addresses: %#x %#x %#x", a, b, c)
	}
	if k.HeapUsed() != 32 {
		t.Fatalf("heap used = %d", k.HeapUsed())
	}
	if d := k.Syscall(syscalls.Malloc, 33, 0, 0); d != 0 {
		t.Fatalf("exhausted heap answered %#x", d)
	}
	if d := k.Syscall(syscalls.Malloc, 32, 0, 0); d != c+16 {
		t.Fatalf("last block at %#x", d)
	}
}

func TestRealloc(t *testing.T) {
	k := newKernel(t, nil)
	a := k.Syscall(syscalls.Malloc, 4, 0, 0)
	poke(t, k, a, "abc")
	b := k.Syscall(syscalls.Realloc, a, 64, 0)
	if b == 0 || b == a {
		t.Fatalf("realloc = %#x", b)
	}
	if s := peek(t, k, b, 3); s != "abc" {
		t.Fatalf("contents not copied: %q", s)
	}
	if c := k.Syscall(syscalls.Realloc, 0x1234, 8, 0); c != 0 {
		t.Fatalf("realloc of unknown block = %#x", c)
	}
	if c := k.Syscall(syscalls.Realloc, 0, 8, 0); c == 0 {
		t.Fatal("realloc(0) did not allocate")
	}
}

func TestFiles(t *testing.T) {
	k := newKernel(t, nil)
	path := poke(t, k, scratch, "a.txt")
	mode := poke(t, k, scratch+0x10, "r")
	bad := poke(t, k, scratch+0x20, "x")
	missing := poke(t, k, scratch+0x30, "nope")
	buf := uint64(scratch + 0x100)

	if h := k.Syscall(syscalls.Fopen, missing, mode, 0); h != 0 {
		t.Fatalf("open of missing file = %d", h)
	}
	if h := k.Syscall(syscalls.Fopen, path, bad, 0); h != 0 {
		t.Fatalf("open with bad mode = %d", h)
	}
	h := k.Syscall(syscalls.Fopen, path, mode, 0)
	if h != 1 {
		t.Fatalf("open = %d", h)
	}
	if n := k.Syscall(syscalls.Fread, h, buf, 5); n != 5 || peek(t, k, buf, 5) != "hello" {
		t.Fatalf("fread = %d", n)
	}
	if pos := k.Syscall(syscalls.Ftell, h, 0, 0); pos != 5 {
		t.Fatalf("ftell = %d", pos)
	}
	if k.Syscall(syscalls.Feof, h, 0, 0) != 0 {
		t.Fatal("feof before end")
	}
	if r := k.Syscall(syscalls.Fseek, h, 5, 2); r != 0 {
		t.Fatalf("fseek = %d", r)
	}
	if n := k.Syscall(syscalls.Fread, h, buf, 100); n != 5 || peek(t, k, buf, 5) != "world" {
		t.Fatalf("clamped fread = %d", n)
	}
	if k.Syscall(syscalls.Feof, h, 0, 0) == 0 {
		t.Fatal("feof at end")
	}
	if r := k.Syscall(syscalls.Fseek, h, 0, 3); r != 1 {
		t.Fatalf("fseek with bad origin = %d", r)
	}
	if r := k.Syscall(syscalls.Fseek, h, 1, 0); r != 0 || k.Syscall(syscalls.Ftell, h, 0, 0) != 1 {
		t.Fatal("fseek set")
	}
	if r := k.Syscall(syscalls.Fseek, h, 2, 1); r != 0 || k.Syscall(syscalls.Ftell, h, 0, 0) != 3 {
		t.Fatal("fseek cur")
	}

	dir := poke(t, k, scratch+0x40, "dir")
	if r := k.Syscall(syscalls.Chdir, dir, 0, 0); r != 0 {
		t.Fatalf("chdir = %#x", r)
	}
	if n := k.Syscall(syscalls.Getcwd, buf, 2, 0); n != 4 || peek(t, k, buf, 2) != "/d" {
		t.Fatalf("getcwd = %d", n)
	}
	name := poke(t, k, scratch+0x50, "b.txt")
	if h := k.Syscall(syscalls.Fopen, name, mode, 0); h != 2 {
		t.Fatalf("relative open = %d", h)
	}
	empty := poke(t, k, scratch+0x60, "")
	if r := k.Syscall(syscalls.Chdir, empty, 0, 0); r != syscalls.Failure {
		t.Fatalf("chdir(\"\") = %#x", r)
	}
}

func TestStat(t *testing.T) {
	k := newKernel(t, nil)
	path := poke(t, k, scratch, "a.txt")
	out := uint64(scratch + 0x100)
	if r := k.Syscall(syscalls.Stat, path, out, 0); r != 0 {
		t.Fatalf("stat = %#x", r)
	}
	var rec syscalls.StatRecord
	if err := models.StrucAt(k.Mem, out).Unpack(&rec); err != nil {
		t.Fatal(err)
	}
	if rec.Size != 11 || rec.Mode != syscalls.S_IFREG|0644 || rec.Blocks != 1 {
		t.Fatalf("bad stat record: %+v", rec)
	}
	missing := poke(t, k, scratch+0x10, "nope")
	if r := k.Syscall(syscalls.Stat, missing, out, 0); r != syscalls.Failure {
		t.Fatalf("stat of missing file = %#x", r)
	}
}

func TestGetTime(t *testing.T) {
	k := newKernel(t, nil)
	k.Clock = func() time.Time { return time.Unix(1234, 567000) }
	if r := k.Syscall(syscalls.GetTime, scratch, scratch+4, 0); r != 1 {
		t.Fatalf("get_time = %d", r)
	}
	sec, _ := k.Mem.ReadUint(scratch, 4)
	usec, _ := k.Mem.ReadUint(scratch+4, 4)
	if sec != 1234 || usec != 567 {
		t.Fatalf("get_time wrote %d.%d", sec, usec)
	}
	if r := k.Syscall(syscalls.GetTime, 0x10, scratch+4, 0); r != 0 {
		t.Fatalf("get_time to unmapped sec = %d", r)
	}
	if r := k.Syscall(syscalls.GetTime, scratch, 0x10, 0); r != 0 {
		t.Fatalf("get_time to unmapped usec = %d", r)
	}
}

func TestVideo(t *testing.T) {
	k := newKernel(t, nil)
	var capture bytes.Buffer
	w, err := frames.NewWriter(&capture)
	if err != nil {
		t.Fatal(err)
	}
	k.Frames = w

	k.Syscall(syscalls.SwitchVGAMode, 1, 0, 0)
	if !k.VgaMode() {
		t.Fatal("vga mode not set")
	}
	k.Syscall(syscalls.DrawPixel, 2, 1, 7)
	k.Syscall(syscalls.DrawPixel, 400, 1, 7)
	if k.Framebuffer()[frames.Width+2] != 7 {
		t.Fatal("pixel not drawn")
	}
	if _, err := k.Mem.MemMapDesc(0x100000, fbSize, cpu.PROT_READ|cpu.PROT_WRITE, "fb"); err != nil {
		t.Fatal(err)
	}
	k.Mem.MemWrite(0x100000, []byte{9})
	k.Syscall(syscalls.PlotFramebuffer, 0x100000, 0, 0)
	if k.Framebuffer()[0] != 9 || k.Framebuffer()[frames.Width+2] != 0 {
		t.Fatal("framebuffer not replaced")
	}
	if k.Flips() != 3 || w.Count() != 3 {
		t.Fatalf("flips=%d frames=%d", k.Flips(), w.Count())
	}
	k.Syscall(syscalls.SwitchVGAMode, 1, 0, 0)
	if k.Framebuffer()[0] != 0 {
		t.Fatal("vga switch did not clear the screen")
	}
}

func TestKeystate(t *testing.T) {
	k := newKernel(t, nil)
	k.PressKey('a')
	if k.Syscall(syscalls.GetKeystate, 'a', 0, 0) != 1 {
		t.Fatal("key not pressed")
	}
	if k.Syscall(syscalls.GetKeystate, 'a', 0, 0) != 0 {
		t.Fatal("key state not cleared")
	}
	if k.Syscall(syscalls.GetKeystate, 999, 0, 0) != 0 {
		t.Fatal("out of range key")
	}
}

func TestProcess(t *testing.T) {
	k := newKernel(t, nil)
	k.SetPid(5, 4)
	if k.Syscall(syscalls.Getpid, 0, 0, 0) != 5 || k.Syscall(syscalls.Getppid, 0, 0, 0) != 4 {
		t.Fatal("bad pids")
	}
	if k.Syscall(syscalls.Kill, 5, 9, 0) != 0 || len(k.Signals()) != 1 || k.Signals()[0] != 9 {
		t.Fatal("kill of self")
	}
	if k.Syscall(syscalls.Kill, 6, 9, 0) != syscalls.Failure {
		t.Fatal("kill of other pid")
	}
	if k.Syscall(syscalls.Vfork, 0, 0, 0) != syscalls.Failure || k.Syscall(syscalls.Execve, 0, 0, 0) != syscalls.Failure {
		t.Fatal("vfork/execve should fail")
	}
	if k.Syscall(99, 1, 2, 3) != syscalls.Undefined {
		t.Fatal("undefined op")
	}
	if _, exited := k.ExitStatus(); exited {
		t.Fatal("exited early")
	}
	k.Syscall(syscalls.Exit, 3, 0, 0)
	if status, exited := k.ExitStatus(); !exited || status != 3 {
		t.Fatalf("exit status = %d, %v", status, exited)
	}
}

func TestTrace(t *testing.T) {
	var out bytes.Buffer
	config := models.DefaultConfig()
	config.TraceSys = true
	config.Output = &out
	k := newKernel(t, config)
	buf := poke(t, k, scratch, "hi")
	k.Syscall(syscalls.Write, 1, buf, 2)
	k.Syscall(42, 0, 0, 0)
	bad := k.Syscall(syscalls.Fopen, 0x900000, 0x900000, 0)
	lines := strings.Split(out.String(), "\n")
	if lines[0] != `write(1, "hi", 0x2) = 0x2` {
		t.Fatalf("bad trace line: %q", lines[0])
	}
	if lines[1] != "syscall_42(0x0, 0x0, 0x0) = 0xdeadbeef" {
		t.Fatalf("bad undefined trace: %q", lines[1])
	}
	if bad != syscalls.Failure || !strings.HasPrefix(lines[2], "fopen(") {
		t.Fatalf("bad pointer trace: %q", lines[2])
	}
}
