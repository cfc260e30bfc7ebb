package common

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hobbyos/userrt/go/models"
)

func (s Syscall) strsize() int {
	return s.Kernel.Config.Strsize
}

func (s Syscall) traceArg(args ...interface{}) string {
	hex := func(a interface{}) string {
		tmp := fmt.Sprintf("0x%x", a)
		if strings.HasPrefix(tmp, "0x-") {
			tmp = "-0x" + tmp[3:]
		}
		return tmp
	}

	switch arg := args[0].(type) {
	case Obuf:
		return hex(arg.Addr)
	case Buf:
		if len(args) > 1 {
			if length, ok := args[1].(Len); ok {
				mem, _ := s.Kernel.Mem.MemRead(arg.Addr, uint64(length))
				return models.Repr(mem, s.strsize())
			}
		}
		return hex(arg.Addr)
	case Off:
		return hex(int64(arg))
	case Ptr:
		return hex(uint64(arg))
	case Len:
		return hex(uint64(arg))
	case Fd:
		return fmt.Sprintf("%d", int32(arg))
	case string:
		return models.Repr([]byte(arg), s.strsize())
	case uint64:
		return hex(arg)
	default:
		return fmt.Sprintf("%v", arg)
	}
}

func (s Syscall) traceArgs(regs []uint64) string {
	if len(regs) > len(s.In) {
		regs = regs[:len(s.In)]
	}
	inRef, err := s.Kernel.Argjoy.Convert(s.In, false, regs)
	if err != nil {
		return err.Error()
	}
	in := make([]interface{}, len(inRef))
	for i, val := range inRef {
		in[i] = val.Interface()
	}
	ret := make([]string, len(in))
	for i := range in {
		ret[i] = s.traceArg(in[i:]...)
	}
	return strings.Join(ret, ", ")
}

// Trace renders the call half of an strace line, e.g. `write(1, "hi", 0x2)`.
func (s Syscall) Trace(regs []uint64) string {
	return fmt.Sprintf("%s(%s)", s.Name, s.traceArgs(regs))
}

// TraceRet renders the result half, including output buffers the call filled.
func (s Syscall) TraceRet(args []uint64, ret uint64) string {
	var out []string
	for i, typ := range s.In {
		if typ == reflect.TypeOf(Obuf{}) && len(args) > i+1 {
			length := int64(ret)
			if uint64(length) <= args[i+1] && length >= 0 {
				mem, _ := s.Kernel.Mem.MemRead(args[i], uint64(length))
				out = append(out, models.Repr(mem, s.strsize()))
			}
		}
	}
	if len(s.Out) > 0 {
		out = append(out, s.traceArg(ret))
	}
	if len(out) > 0 {
		return fmt.Sprintf(" = %s\n", strings.Join(out, ", "))
	}
	return "\n"
}
