package libc

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Format grammar: %d (32-bit int), %ld (64-bit int), %s, %c. %l followed by
// anything else emits "%l" and that byte, any other conversion emits "%" and
// its byte, and a trailing "%" is emitted as-is. Missing arguments format as
// zero values.

const (
	stateLiteral = iota
	statePercent
	stateLong
)

type emitFunc func(b byte) error

// format runs the interpreter and returns the number of format items
// processed: one per literal byte and one per conversion directive. A failed
// emit does not stop interpretation; the first error is returned with the
// full count.
func (lc *Libc) format(emit emitFunc, format string, args []interface{}) (int, error) {
	count, next := 0, 0
	var first error
	arg := func() interface{} {
		if next >= len(args) {
			next++
			return nil
		}
		a := args[next]
		next++
		return a
	}
	emitStr := func(s string) error {
		var first error
		for i := 0; i < len(s); i++ {
			if err := emit(s[i]); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	state := stateLiteral
	for i := 0; i < len(format); i++ {
		c := format[i]
		var err error
		switch state {
		case stateLiteral:
			if c == '%' {
				state = statePercent
				continue
			}
			err = emit(c)
		case statePercent:
			state = stateLiteral
			switch c {
			case 'l':
				state = stateLong
				continue
			case 'd':
				err = putSigned(emit, int64(int32(intArg(arg()))))
			case 's':
				err = emitStr(lc.strArg(arg()))
			case 'c':
				err = emit(byte(intArg(arg())))
			default:
				err = emitStr(string([]byte{'%', c}))
			}
		case stateLong:
			state = stateLiteral
			if c == 'd' {
				err = putSigned(emit, intArg(arg()))
			} else {
				err = emitStr(string([]byte{'%', 'l', c}))
			}
		}
		count++
		if err != nil && first == nil {
			first = err
		}
	}
	var err error
	switch state {
	case statePercent:
		count++
		err = emit('%')
	case stateLong:
		count++
		err = emitStr("%l")
	}
	if first == nil {
		first = err
	}
	return count, first
}

// putSigned writes v in decimal. The magnitude of a negative value is taken
// without negating v so the minimum int64 prints correctly.
func putSigned(emit emitFunc, v int64) error {
	var mag uint64
	if v < 0 {
		if err := emit('-'); err != nil {
			return err
		}
		mag = uint64(-(v + 1)) + 1
	} else {
		mag = uint64(v)
	}
	return putDigits(emit, mag)
}

// putDigits emits higher digits first by recursing on v/10.
func putDigits(emit emitFunc, v uint64) error {
	if v >= 10 {
		if err := putDigits(emit, v/10); err != nil {
			return err
		}
	}
	return emit(byte('0' + v%10))
}

func intArg(a interface{}) int64 {
	switch v := a.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case uintptr:
		return int64(v)
	case Ptr:
		return int64(v)
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

func (lc *Libc) strArg(a interface{}) string {
	switch v := a.(type) {
	case string:
		return v
	case []byte:
		if i := bytes.IndexByte(v, 0); i >= 0 {
			v = v[:i]
		}
		return string(v)
	case Ptr:
		if v == 0 {
			return "(null)"
		}
		s, _ := lc.Mem.ReadStrAt(uint64(v))
		return s
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}
	return ""
}

// Fprintf formats to s and flushes it. The result counts format items, not
// bytes: one per literal byte and one per directive.
func (lc *Libc) Fprintf(s *Stream, format string, args ...interface{}) (int, error) {
	count, err := lc.format(func(b byte) error {
		_, err := s.PutByte(b)
		return err
	}, format, args)
	if ferr := s.Flush(); err == nil {
		err = ferr
	}
	return count, err
}

func (lc *Libc) Printf(format string, args ...interface{}) (int, error) {
	return lc.Fprintf(lc.Stdout, format, args...)
}

// AppendFormat formats into Go memory.
func (lc *Libc) AppendFormat(dst []byte, format string, args ...interface{}) []byte {
	lc.format(func(b byte) error {
		dst = append(dst, b)
		return nil
	}, format, args)
	return dst
}

// Sprintf formats into guest memory at dst and NUL-terminates. The caller
// guarantees capacity: the only bound is the end of the mapping. Prefer
// Snprintf.
func (lc *Libc) Sprintf(dst uint64, format string, args ...interface{}) (int, error) {
	out := lc.AppendFormat(nil, format, args...)
	if err := lc.Mem.MemWrite(dst, append(out, 0)); err != nil {
		return 0, errors.Wrap(err, "sprintf")
	}
	return len(out), nil
}

// Snprintf writes at most size-1 formatted bytes to dst followed by a NUL,
// never touching dst+size or beyond, and returns the bytes written.
func (lc *Libc) Snprintf(dst, size uint64, format string, args ...interface{}) (int, error) {
	if size == 0 {
		return 0, nil
	}
	out := lc.AppendFormat(nil, format, args...)
	if uint64(len(out)) > size-1 {
		out = out[:size-1]
	}
	if err := lc.Mem.MemWrite(dst, append(out, 0)); err != nil {
		return 0, errors.Wrap(err, "snprintf")
	}
	return len(out), nil
}

// SnprintfBytes is Snprintf into a Go buffer.
func (lc *Libc) SnprintfBytes(buf []byte, format string, args ...interface{}) int {
	if len(buf) == 0 {
		return 0
	}
	out := lc.AppendFormat(nil, format, args...)
	n := copy(buf[:len(buf)-1], out)
	buf[n] = 0
	return n
}
