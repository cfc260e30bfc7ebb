package libc

import (
	"io"

	"github.com/pkg/errors"

	"github.com/hobbyos/userrt/go/syscalls"
)

// ErrClosed is returned by operations on a closed stream.
var ErrClosed = errors.New("stream closed")

// Stream is a buffered byte stream over a descriptor or a kernel file handle.
// Buffered bytes live in guest memory and reach the kernel only through a
// flush: when the buffer fills, on Flush, after each formatted write, and at
// exit.
type Stream struct {
	lc *Libc

	fd     uint64
	handle uint64 // kernel file handle, 0 for descriptor streams

	buf      uint64
	cap      int
	pos      int
	buffered bool
	closed   bool
}

func (lc *Libc) newStream(fd uint64) *Stream {
	return &Stream{
		lc:       lc,
		fd:       fd,
		cap:      lc.Config.BufSize,
		buffered: !lc.Config.Unbuffered,
	}
}

func (s *Stream) Fd() uint64 { return s.fd }

// Buffered reports how many bytes are waiting for a flush.
func (s *Stream) Buffered() int { return s.pos }

// SetBuffered switches buffering. Turning it off flushes first.
func (s *Stream) SetBuffered(on bool) error {
	if !on {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	s.buffered = on
	return nil
}

func (s *Stream) ensureBuf() error {
	if s.buf != 0 {
		return nil
	}
	if s.cap <= 0 {
		s.cap = 1
	}
	addr, err := s.lc.Malloc(uint64(s.cap))
	if err != nil {
		return errors.Wrap(err, "stream buffer")
	}
	s.buf = addr
	return nil
}

func (s *Stream) writable() error {
	if s.closed {
		return ErrClosed
	}
	if s.handle != 0 {
		return errors.Wrap(syscalls.ErrUnsupported, "write to file stream")
	}
	return nil
}

// write issues a single write of n bytes starting at addr.
func (s *Stream) write(addr uint64, n int) (int, error) {
	ret, err := s.lc.call(syscalls.Write, s.fd, addr, uint64(n))
	if err != nil {
		return 0, err
	}
	if ret > uint64(n) {
		ret = uint64(n)
	}
	if int(ret) < n {
		return int(ret), errors.Wrapf(syscalls.ErrShortWrite, "write(%d): %d of %d bytes", s.fd, ret, n)
	}
	return n, nil
}

// Flush hands buffered bytes to the kernel in one write. On a short write
// the unaccepted tail stays buffered.
func (s *Stream) Flush() error {
	if s.pos == 0 || s.closed {
		return nil
	}
	n, err := s.write(s.buf, s.pos)
	if err != nil {
		if n > 0 {
			rest, rerr := s.lc.Mem.MemRead(s.buf+uint64(n), uint64(s.pos-n))
			if rerr == nil {
				s.lc.Mem.MemWrite(s.buf, rest)
			}
		}
		s.pos -= n
		return err
	}
	s.pos = 0
	return nil
}

// WriteRaw hands p to the kernel with exactly one write call, after flushing
// anything already buffered. A short count is returned with ErrShortWrite.
func (s *Stream) WriteRaw(p []byte) (int, error) {
	if err := s.writable(); err != nil {
		return 0, err
	}
	if err := s.Flush(); err != nil {
		return 0, err
	}
	addr, err := s.lc.scratchBuf(uint64(len(p)))
	if err != nil {
		return 0, err
	}
	if err := s.lc.Mem.MemWrite(addr, p); err != nil {
		return 0, err
	}
	return s.write(addr, len(p))
}

// PutByte emits one byte and returns it, or EOF with the error.
func (s *Stream) PutByte(b byte) (int, error) {
	if err := s.writable(); err != nil {
		return EOF, err
	}
	if err := s.ensureBuf(); err != nil {
		return EOF, err
	}
	if !s.buffered {
		if err := s.lc.Mem.MemWrite(s.buf, []byte{b}); err != nil {
			return EOF, err
		}
		if _, err := s.write(s.buf, 1); err != nil {
			return EOF, err
		}
		return int(b), nil
	}
	if s.pos >= s.cap {
		if err := s.Flush(); err != nil {
			return EOF, err
		}
	}
	if err := s.lc.Mem.MemWrite(s.buf+uint64(s.pos), []byte{b}); err != nil {
		return EOF, err
	}
	s.pos++
	if s.pos == s.cap {
		if err := s.Flush(); err != nil {
			return EOF, err
		}
	}
	return int(b), nil
}

// Write buffers p, or writes it raw on an unbuffered stream.
func (s *Stream) Write(p []byte) (int, error) {
	if !s.buffered {
		return s.WriteRaw(p)
	}
	if err := s.writable(); err != nil {
		return 0, err
	}
	if err := s.ensureBuf(); err != nil {
		return 0, err
	}
	written := 0
	for len(p) > 0 {
		n := s.cap - s.pos
		if n > len(p) {
			n = len(p)
		}
		if err := s.lc.Mem.MemWrite(s.buf+uint64(s.pos), p[:n]); err != nil {
			return written, err
		}
		s.pos += n
		written += n
		p = p[n:]
		if s.pos == s.cap {
			if err := s.Flush(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

func (s *Stream) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Read fills p from the descriptor (op 19) or the file (op 6). It returns
// io.EOF when nothing is available.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	addr, err := s.lc.scratchBuf(uint64(len(p)))
	if err != nil {
		return 0, err
	}
	num, id := syscalls.Read, s.fd
	if s.handle != 0 {
		num, id = syscalls.Fread, s.handle
	}
	ret, err := s.lc.call(num, id, addr, uint64(len(p)))
	if err != nil {
		return 0, err
	}
	if ret == 0 {
		return 0, io.EOF
	}
	if ret > uint64(len(p)) {
		ret = uint64(len(p))
	}
	if err := s.lc.Mem.MemReadInto(p[:ret], addr); err != nil {
		return 0, err
	}
	return int(ret), nil
}

// Getc reads one byte, or EOF.
func (s *Stream) Getc() (int, error) {
	var b [1]byte
	if _, err := s.Read(b[:]); err != nil {
		return EOF, err
	}
	return int(b[0]), nil
}

// Getline reads up to and including the next newline. The final line may
// lack one; io.EOF is returned only when nothing was read.
func (s *Stream) Getline() (string, error) {
	var line []byte
	for {
		c, err := s.Getc()
		if err == io.EOF {
			if len(line) == 0 {
				return "", io.EOF
			}
			return string(line), nil
		} else if err != nil {
			return string(line), err
		}
		line = append(line, byte(c))
		if c == '\n' {
			return string(line), nil
		}
	}
}

// Puts writes s and a newline to stdout.
func (lc *Libc) Puts(s string) (int, error) {
	n, err := lc.Stdout.WriteString(s + "\n")
	if err != nil {
		return n, err
	}
	return n, lc.Stdout.Flush()
}
