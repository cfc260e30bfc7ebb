// Package hv models the hypervisor side of the numbered syscall ABI. It is
// the kernel the runtime talks to when running on the host, and the test
// double for everything above the transport.
package hv

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"time"

	co "github.com/hobbyos/userrt/go/kernel/common"
	"github.com/hobbyos/userrt/go/models"
	"github.com/hobbyos/userrt/go/models/cpu"
	"github.com/hobbyos/userrt/go/models/frames"
	"github.com/hobbyos/userrt/go/syscalls"
)

const (
	DefaultPid  = 1
	DefaultPpid = 0
)

// Kernel implements syscalls.Transport over a guest Mem.
// It is not safe for concurrent use.
type Kernel struct {
	co.KernelBase

	// FS backs fopen and stat. Nil means no files exist.
	FS fs.FS
	// Clock backs get_time. Nil means time.Now.
	Clock func() time.Time
	// Frames receives a frame on every flip when set.
	Frames *frames.Writer

	heapBase, heapEnd, brk uint64
	sizes                  map[uint64]uint64

	files []*file
	cwd   string

	pid, ppid uint64
	signals   []uint64

	rings map[co.Fd]*bytes.Buffer
	tee   map[co.Fd]io.Writer

	fb    [frames.Width * frames.Height]byte
	vga   bool
	flips int
	keys  [256]bool

	exited bool
	status int
}

// NewKernel maps the heap described by config into mem and opens rings for
// descriptors 0, 1 and 2.
func NewKernel(mem *cpu.Mem, config *models.Config) (*Kernel, error) {
	if config == nil {
		config = models.DefaultConfig()
	}
	k := &Kernel{
		KernelBase: co.KernelBase{Mem: mem, Config: config},
		sizes:      make(map[uint64]uint64),
		cwd:        "/",
		pid:        DefaultPid,
		ppid:       DefaultPpid,
		rings:      make(map[co.Fd]*bytes.Buffer),
		tee:        make(map[co.Fd]io.Writer),
	}
	if config.HeapSize > 0 {
		if _, err := mem.MemMapDesc(config.HeapBase, config.HeapSize, cpu.PROT_READ|cpu.PROT_WRITE, "[heap]"); err != nil {
			return nil, err
		}
	}
	k.heapBase = config.HeapBase
	k.heapEnd = config.HeapBase + config.HeapSize
	k.brk = k.heapBase
	for fd := co.Fd(0); fd < 3; fd++ {
		k.OpenRing(fd)
	}
	co.Init(k)
	return k, nil
}

// Syscall dispatches one numbered call.
func (k *Kernel) Syscall(num syscalls.Num, a0, a1, a2 uint64) uint64 {
	config := k.Config
	out := config.Out()
	args := []uint64{a0, a1, a2}
	var sys *co.Syscall
	if _, ok := num.Desc(); ok {
		sys = co.Lookup(k, num.String())
	}
	if sys == nil {
		if config.TraceSys {
			line := fmt.Sprintf("%s(0x%x, 0x%x, 0x%x) = 0x%x\n", num, a0, a1, a2, syscalls.Undefined)
			fmt.Fprint(out, models.ColorErr(line, config.Color))
		}
		return syscalls.Undefined
	}
	if config.TraceSys {
		fmt.Fprint(out, models.ColorName(sys.Trace(args), config.Color))
	}
	ret, err := sys.Call(args)
	if err != nil {
		ret = syscalls.Failure
		if config.TraceSys {
			fmt.Fprint(out, models.ColorErr(fmt.Sprintf(" = 0x%x (%s)\n", ret, err), config.Color))
		}
		return ret
	}
	if config.TraceSys {
		fmt.Fprint(out, models.ColorRet(sys.TraceRet(args, ret), config.Color))
	}
	return ret
}

func (k *Kernel) now() time.Time {
	if k.Clock != nil {
		return k.Clock()
	}
	return time.Now()
}

func (k *Kernel) SetPid(pid, ppid uint64) {
	k.pid, k.ppid = pid, ppid
}

// ExitStatus reports the status passed to exit, if it was called.
func (k *Kernel) ExitStatus() (int, bool) {
	return k.status, k.exited
}

// Signals lists the signals delivered to this process by kill, in order.
func (k *Kernel) Signals() []uint64 {
	return k.signals
}
