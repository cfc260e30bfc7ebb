package libc

import (
	"io"

	"github.com/pkg/errors"

	"github.com/hobbyos/userrt/go/syscalls"
)

const (
	SeekSet = 0
	SeekCur = 1
	SeekEnd = 2
)

// ErrSeek is returned when the kernel rejects a seek.
var ErrSeek = errors.New("invalid seek")

// Fopen opens a kernel file. mode is one of "r", "w" or "rw".
func (lc *Libc) Fopen(path, mode string) (*Stream, error) {
	addrs, err := lc.cstrings(path, mode)
	if err != nil {
		return nil, err
	}
	h, err := lc.call(syscalls.Fopen, addrs[0], addrs[1])
	if err != nil {
		return nil, errors.Wrapf(err, "fopen(%q, %q)", path, mode)
	}
	s := lc.newStream(0)
	s.handle = h
	return s, nil
}

func (s *Stream) fileHandle() (uint64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.handle == 0 {
		return 0, errors.Errorf("fd %d is not a file stream", s.fd)
	}
	return s.handle, nil
}

// Fread reads up to len(p) bytes from a file stream. It returns 0 and
// io.EOF at the end of the file.
func (lc *Libc) Fread(s *Stream, p []byte) (int, error) {
	if _, err := s.fileHandle(); err != nil {
		return 0, err
	}
	return s.Read(p)
}

func (lc *Libc) Fseek(s *Stream, offset int64, origin int) error {
	h, err := s.fileHandle()
	if err != nil {
		return err
	}
	ret, err := lc.call(syscalls.Fseek, h, uint64(offset), uint64(origin))
	if err != nil {
		return err
	}
	if ret != 0 {
		return errors.Wrapf(ErrSeek, "fseek(%d, %d)", offset, origin)
	}
	return nil
}

func (lc *Libc) Ftell(s *Stream) (int64, error) {
	h, err := s.fileHandle()
	if err != nil {
		return 0, err
	}
	ret, err := lc.call(syscalls.Ftell, h)
	return int64(ret), err
}

func (lc *Libc) Feof(s *Stream) bool {
	h, err := s.fileHandle()
	if err != nil {
		return true
	}
	ret, _ := lc.call(syscalls.Feof, h)
	return ret != 0
}

// Fclose releases the stream. The kernel keeps no per-handle state to free.
func (lc *Libc) Fclose(s *Stream) error {
	if s.closed {
		return ErrClosed
	}
	err := s.Flush()
	s.closed = true
	return err
}

// ReadAll reads a stream until it reports io.EOF.
func ReadAll(s *Stream) ([]byte, error) {
	var out []byte
	buf := make([]byte, 512)
	for {
		n, err := s.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			return out, err
		}
	}
}
