package syscalls

import (
	"github.com/pkg/errors"
)

// Transport issues one numbered call to the kernel. Calls are synchronous:
// guest memory written before the call is visible to the kernel, and kernel
// writes are visible when it returns.
type Transport interface {
	Syscall(num Num, a0, a1, a2 uint64) uint64
}

// TransportFunc adapts a plain function to Transport.
type TransportFunc func(num Num, a0, a1, a2 uint64) uint64

func (f TransportFunc) Syscall(num Num, a0, a1, a2 uint64) uint64 {
	return f(num, a0, a1, a2)
}

// Call invokes num with up to three arguments, zero-filling the rest, and
// applies the operation's result convention.
func Call(t Transport, num Num, args ...uint64) (uint64, error) {
	if d, ok := table[num]; ok && len(args) > len(d.Args) {
		return 0, errors.Errorf("%s: expected %d args, got %d", d.Name, len(d.Args), len(args))
	}
	if len(args) > 3 {
		return 0, errors.Errorf("%s: too many args (%d)", num, len(args))
	}
	var a [3]uint64
	copy(a[:], args)
	return Check(num, t.Syscall(num, a[0], a[1], a[2]))
}

// Check turns a raw result word into (value, error) using num's convention.
// The raw value is always returned alongside any error.
func Check(num Num, ret uint64) (uint64, error) {
	d, ok := table[num]
	if !ok {
		if ret == Undefined {
			return ret, errors.Wrapf(ErrUndefined, "%s", num)
		}
		return ret, nil
	}
	switch d.Ret {
	case RetAddr:
		if ret == 0 {
			return 0, errors.Wrapf(ErrDenied, "%s", d.Name)
		}
	case RetStatus:
		if ret == Failure {
			return ret, errors.Wrapf(ErrFailed, "%s", d.Name)
		}
	}
	return ret, nil
}
