// Package syscalls describes the numbered syscall ABI shared by the runtime
// and the kernel: operation numbers, argument kinds, result conventions and
// the transport the runtime calls through.
package syscalls

import (
	"fmt"
)

// Num is an operation number, passed in the first transport register.
type Num uint64

const (
	Write Num = iota + 1
	Getpid
	DrawPixel
	Malloc
	Fopen
	Fread
	Fseek
	Ftell
	Feof
	PlotFramebuffer
	SwitchVGAMode
	GetKeystate
	GetTime
	Stat
	Chdir
	Getcwd
	Getppid
	Kill
	Read
	Realloc
	Vfork
	Execve

	Exit Num = 60
)

const (
	// Undefined is the kernel's answer to an operation it does not know.
	Undefined uint64 = 0xdeadbeef
	// Failure is the all-ones answer of operations that report failure.
	Failure uint64 = 0xFFFFFFFFFFFFFFFF
)

// Argument kinds, used for tracing and arity checks.
const (
	INT = iota
	FD
	STR
	BUF
	OBUF
	LEN
	OFF
	PTR
	PID
	SIGNAL
)

// Convention says how a raw result word is turned into (value, error).
type Convention int

const (
	// RetValue results are returned as-is.
	RetValue Convention = iota
	// RetCount results are byte counts. Short counts are for the caller to judge.
	RetCount
	// RetAddr results are addresses or handles where 0 means the kernel refused.
	RetAddr
	// RetStatus results are all-ones on failure.
	RetStatus
)

type A []int

type Desc struct {
	Name string
	Args A
	Ret  Convention
}

var table = map[Num]Desc{
	Write:           {"write", A{FD, BUF, LEN}, RetCount},
	Getpid:          {"getpid", A{}, RetValue},
	DrawPixel:       {"draw_pixel", A{INT, INT, INT}, RetValue},
	Malloc:          {"malloc", A{LEN}, RetAddr},
	Fopen:           {"fopen", A{STR, STR}, RetAddr},
	Fread:           {"fread", A{FD, OBUF, LEN}, RetCount},
	Fseek:           {"fseek", A{FD, OFF, INT}, RetValue},
	Ftell:           {"ftell", A{FD}, RetValue},
	Feof:            {"feof", A{FD}, RetValue},
	PlotFramebuffer: {"plot_framebuffer", A{PTR}, RetValue},
	SwitchVGAMode:   {"switch_vga_mode", A{INT}, RetValue},
	GetKeystate:     {"get_keystate", A{INT}, RetValue},
	GetTime:         {"get_time", A{PTR, PTR}, RetValue},
	Stat:            {"stat", A{STR, PTR}, RetStatus},
	Chdir:           {"chdir", A{STR}, RetStatus},
	Getcwd:          {"getcwd", A{OBUF, LEN}, RetValue},
	Getppid:         {"getppid", A{}, RetValue},
	Kill:            {"kill", A{PID, SIGNAL}, RetStatus},
	Read:            {"read", A{FD, OBUF, LEN}, RetCount},
	Realloc:         {"realloc", A{PTR, LEN}, RetAddr},
	Vfork:           {"vfork", A{}, RetStatus},
	Execve:          {"execve", A{STR, PTR, PTR}, RetStatus},
	Exit:            {"exit", A{INT}, RetValue},
}

func (n Num) String() string {
	if d, ok := table[n]; ok {
		return d.Name
	}
	return fmt.Sprintf("syscall_%d", uint64(n))
}

// Desc returns the table entry for n.
func (n Num) Desc() (Desc, bool) {
	d, ok := table[n]
	return d, ok
}

// Lookup finds an operation by name.
func Lookup(name string) (Num, bool) {
	for n, d := range table {
		if d.Name == name {
			return n, true
		}
	}
	return 0, false
}

// Nums lists every known operation in ascending order.
func Nums() []Num {
	var out []Num
	for n := Write; n <= Execve; n++ {
		out = append(out, n)
	}
	return append(out, Exit)
}
